package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 7 * 24 * time.Hour

func sessionKey(token string) string { return "session:" + token }
func inviteKey(token string) string  { return "invite:" + token }
func passwordKey(email string) string {
	return "user:" + email + ":password"
}

// SaveSession associa um token opaco a um email por sessionTTL.
func (s *Redis) SaveSession(ctx context.Context, token, email string) error {
	return s.rdb.Set(ctx, sessionKey(token), email, sessionTTL).Err()
}

// SessionEmail resolve o dono da sessão, ErrNotFound para token inválido/expirado.
func (s *Redis) SessionEmail(ctx context.Context, token string) (string, error) {
	email, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return email, nil
}

// SaveInvite registra um token de convite de uso único.
func (s *Redis) SaveInvite(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, inviteKey(token), "1", ttl).Err()
}

// ConsumeInvite consome o convite de forma atômica (GETDEL): a segunda
// tentativa com o mesmo token falha.
func (s *Redis) ConsumeInvite(ctx context.Context, token string) error {
	_, err := s.rdb.GetDel(ctx, inviteKey(token)).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("consume invite: %w", err)
	}
	return nil
}

// SaveUserPassword grava o hash bcrypt do usuário.
func (s *Redis) SaveUserPassword(ctx context.Context, email, hash string) error {
	return s.rdb.Set(ctx, passwordKey(email), hash, 0).Err()
}

// UserPasswordHash retorna o hash bcrypt, ErrNotFound para usuário desconhecido.
func (s *Redis) UserPasswordHash(ctx context.Context, email string) (string, error) {
	hash, err := s.rdb.Get(ctx, passwordKey(email)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}
