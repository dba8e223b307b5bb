package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	draftKey     = "draft:daily:pronostics"
	publishedKey = "published:daily:pronostics"
	statsTotal   = "stats:total"
)

// SaveDraft grava o rascunho diário gerado pelos modelos.
func (s *Redis) SaveDraft(ctx context.Context, raw json.RawMessage) error {
	return s.rdb.Set(ctx, draftKey, []byte(raw), 0).Err()
}

// Draft devolve o rascunho pendente, ErrNotFound se não houver.
func (s *Redis) Draft(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.rdb.Get(ctx, draftKey).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return json.RawMessage(raw), nil
}

// PublishDraft move o rascunho para a chave publicada e incrementa o contador
// de publicações. O incremento é best-effort.
func (s *Redis) PublishDraft(ctx context.Context, raw json.RawMessage) error {
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, publishedKey, []byte(raw), 0)
	pipe.Del(ctx, draftKey)
	pipe.Incr(ctx, statsTotal)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish draft: %w", err)
	}
	return nil
}
