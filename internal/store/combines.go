package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	combinePrefix      = "combine:"
	combinesListKey    = "combines:list"
	combinesLastGenKey = "combines:last_generation"
	combinesMaxListed  = 10
)

func combineKey(id string) string { return combinePrefix + id }

// SaveCombine grava o ticket e empilha o id na lista de combinés.
func (s *Redis) SaveCombine(ctx context.Context, c Combine) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, combineKey(c.ID), raw, 0)
	pipe.LPush(ctx, combinesListKey, c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save combine: %w", err)
	}
	return nil
}

// Combines devolve os 10 combinés mais recentes, do mais novo para o mais
// antigo. Ids órfãos na lista (ticket apagado) são ignorados.
func (s *Redis) Combines(ctx context.Context) ([]Combine, error) {
	ids, err := s.rdb.LRange(ctx, combinesListKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list combines: %w", err)
	}
	out := make([]Combine, 0, len(ids))
	for _, id := range ids {
		raw, err := s.rdb.Get(ctx, combineKey(id)).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get combine %s: %w", id, err)
		}
		var c Combine
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode combine %s: %w", id, err)
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > combinesMaxListed {
		out = out[:combinesMaxListed]
	}
	return out, nil
}

// UpdateCombineStatus muda o status de um combiné (liquidação manual do
// admin). ErrNotFound se o ticket não existe.
func (s *Redis) UpdateCombineStatus(ctx context.Context, id string, status BetStatus) (*Combine, error) {
	raw, err := s.rdb.Get(ctx, combineKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get combine %s: %w", id, err)
	}
	var c Combine
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode combine %s: %w", id, err)
	}
	c.Status = status
	updated, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, combineKey(id), updated, 0).Err(); err != nil {
		return nil, fmt.Errorf("update combine %s: %w", id, err)
	}
	return &c, nil
}

// DeleteCombine remove o ticket e tira o id da lista.
func (s *Redis) DeleteCombine(ctx context.Context, id string) error {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, combineKey(id))
	pipe.LRem(ctx, combinesListKey, 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete combine %s: %w", id, err)
	}
	return nil
}

// CombinesGeneratedOn devolve o dia (YYYY-MM-DD) da última geração
// automática, vazio se nunca rodou.
func (s *Redis) CombinesGeneratedOn(ctx context.Context) (string, error) {
	day, err := s.rdb.Get(ctx, combinesLastGenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get combines last generation: %w", err)
	}
	return day, nil
}

// MarkCombinesGenerated carimba o dia da geração automática.
func (s *Redis) MarkCombinesGenerated(ctx context.Context, day string) error {
	return s.rdb.Set(ctx, combinesLastGenKey, day, 0).Err()
}

// ClearCombines apaga todos os tickets, a lista e o carimbo de geração.
// Devolve quantos tickets foram removidos.
func (s *Redis) ClearCombines(ctx context.Context) (int, error) {
	ids, err := s.rdb.LRange(ctx, combinesListKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("list combines: %w", err)
	}
	pipe := s.rdb.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, combineKey(id))
	}
	pipe.Del(ctx, combinesListKey)
	pipe.Del(ctx, combinesLastGenKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("clear combines: %w", err)
	}
	return len(ids), nil
}
