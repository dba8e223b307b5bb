package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func pushKey(email string) string { return "push:" + email }

// SavePushSubscription grava (ou substitui) a inscrição Web Push do usuário.
func (s *Redis) SavePushSubscription(ctx context.Context, sub PushSubscription) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, pushKey(sub.Email), raw, 0).Err()
}

// PushSubscription retorna a inscrição do usuário, ErrNotFound se ausente.
func (s *Redis) PushSubscription(ctx context.Context, email string) (*PushSubscription, error) {
	raw, err := s.rdb.Get(ctx, pushKey(email)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get push subscription: %w", err)
	}
	var sub PushSubscription
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return nil, fmt.Errorf("decode push subscription: %w", err)
	}
	return &sub, nil
}

// DeletePushSubscription purga uma inscrição morta (endpoint respondeu 410).
func (s *Redis) DeletePushSubscription(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, pushKey(email)).Err()
}
