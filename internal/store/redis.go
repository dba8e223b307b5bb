package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// InitialBankroll é o saldo inicial de qualquer bankroll (global ou de usuário).
const InitialBankroll = 100

var (
	ErrNotFound = errors.New("not found")

	// ErrAlreadySettled sinaliza tentativa de re-liquidar um pari que já
	// saiu de pending. A transição pending -> won|lost é terminal.
	ErrAlreadySettled = errors.New("bet already settled")
)

// Redis implementa o ledger de apostas sobre o key-value store.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis { return &Redis{rdb: rdb} }

func (s *Redis) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// scanKeys enumera todas as chaves de um prefixo via SCAN (KEYS bloqueia o servidor).
func (s *Redis) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}
	return keys, nil
}
