package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pronosport/tips-platform/internal/store"
)

type fakeStore struct {
	sessions  map[string]string
	invites   map[string]bool
	passwords map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:  map[string]string{},
		invites:   map[string]bool{},
		passwords: map[string]string{},
	}
}

func (f *fakeStore) SaveSession(_ context.Context, token, email string) error {
	f.sessions[token] = email
	return nil
}

func (f *fakeStore) SessionEmail(_ context.Context, token string) (string, error) {
	email, ok := f.sessions[token]
	if !ok {
		return "", store.ErrNotFound
	}
	return email, nil
}

func (f *fakeStore) SaveInvite(_ context.Context, token string, _ time.Duration) error {
	f.invites[token] = true
	return nil
}

func (f *fakeStore) ConsumeInvite(_ context.Context, token string) error {
	if !f.invites[token] {
		return store.ErrNotFound
	}
	delete(f.invites, token)
	return nil
}

func (f *fakeStore) SaveUserPassword(_ context.Context, email, hash string) error {
	f.passwords[email] = hash
	return nil
}

func (f *fakeStore) UserPasswordHash(_ context.Context, email string) (string, error) {
	hash, ok := f.passwords[email]
	if !ok {
		return "", store.ErrNotFound
	}
	return hash, nil
}

func TestLoginMasterPassword(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs, "master-secret")

	token, isAdmin, err := svc.Login(context.Background(), "Boss@Example.COM ", "master-secret")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	email, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", email, "email normalizado na sessão")
}

func TestRegisterInviteThenLogin(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs, "master-secret")

	invite, err := svc.CreateInvite(context.Background())
	require.NoError(t, err)

	token, err := svc.RegisterInvite(context.Background(), invite, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	t.Run("convite não pode ser reutilizado", func(t *testing.T) {
		_, err := svc.RegisterInvite(context.Background(), invite, "bob@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidInvite)
	})

	t.Run("login com a senha registrada", func(t *testing.T) {
		tok, isAdmin, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
		require.NoError(t, err)
		assert.False(t, isAdmin)
		assert.NotEmpty(t, tok)
	})

	t.Run("senha errada é recusada", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegisterInviteRejectsShortPassword(t *testing.T) {
	fs := newFakeStore()
	fs.invites["inv"] = true
	svc := NewService(fs, "")

	_, err := svc.RegisterInvite(context.Background(), "inv", "a@b.com", "12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, fs.invites["inv"], "convite intacto se a validação falha antes")
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewService(newFakeStore(), "")
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc := NewService(newFakeStore(), "")
	_, err := svc.Authenticate(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
