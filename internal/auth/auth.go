package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pronosport/tips-platform/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInvite      = errors.New("invalid or used invite")
)

const inviteTTL = 7 * 24 * time.Hour

// Store são as operações de store usadas pela autenticação.
type Store interface {
	SaveSession(ctx context.Context, token, email string) error
	SessionEmail(ctx context.Context, token string) (string, error)
	SaveInvite(ctx context.Context, token string, ttl time.Duration) error
	ConsumeInvite(ctx context.Context, token string) error
	SaveUserPassword(ctx context.Context, email, hash string) error
	UserPasswordHash(ctx context.Context, email string) (string, error)
}

// Service cuida de sessões com token opaco, convites de uso único e senhas
// bcrypt. Registro só acontece via convite.
type Service struct {
	store       Store
	adminSecret string
}

func NewService(st Store, adminSecret string) *Service {
	return &Service{store: st, adminSecret: adminSecret}
}

// Login autentica por master password (admin) ou pelo hash bcrypt do usuário
// convidado, e abre uma sessão.
func (s *Service) Login(ctx context.Context, email, password string) (token string, isAdmin bool, err error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", false, ErrInvalidCredentials
	}

	if s.adminSecret != "" && password == s.adminSecret {
		token, err = s.openSession(ctx, email)
		return token, true, err
	}

	hash, err := s.store.UserPasswordHash(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, ErrInvalidCredentials
	}
	if err != nil {
		return "", false, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", false, ErrInvalidCredentials
	}

	token, err = s.openSession(ctx, email)
	return token, false, err
}

// RegisterInvite consome um convite, grava a senha e abre a primeira sessão.
func (s *Service) RegisterInvite(ctx context.Context, invite, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 6 {
		return "", ErrInvalidCredentials
	}

	if err := s.store.ConsumeInvite(ctx, invite); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidInvite
		}
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveUserPassword(ctx, email, string(hash)); err != nil {
		return "", err
	}

	return s.openSession(ctx, email)
}

// CreateInvite emite um token de convite de uso único, válido por 7 dias.
func (s *Service) CreateInvite(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.store.SaveInvite(ctx, token, inviteTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolve o email dono de um token de sessão.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidCredentials
	}
	email, err := s.store.SessionEmail(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	return email, err
}

func (s *Service) openSession(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	if err := s.store.SaveSession(ctx, token, email); err != nil {
		return "", err
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
