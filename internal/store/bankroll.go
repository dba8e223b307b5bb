package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	globalBankrollKey  = "bankroll:current"
	bankrollHistoryKey = "bankroll:history"
	historyMaxEntries  = 100
)

// GlobalBankroll retorna a bankroll global do sistema. Sem valor gravado, ou
// com valor negativo (estado corrompido), volta para o saldo inicial.
func (s *Redis) GlobalBankroll(ctx context.Context) (float64, error) {
	val, err := s.rdb.Get(ctx, globalBankrollKey).Float64()
	if err == redis.Nil {
		return InitialBankroll, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get global bankroll: %w", err)
	}
	if val < 0 {
		return InitialBankroll, nil
	}
	return val, nil
}

// SetGlobalBankroll grava a bankroll global. Uma escrita por ciclo de
// liquidação; leituras/escritas concorrentes podem se sobrepor (sem lock).
func (s *Redis) SetGlobalBankroll(ctx context.Context, v float64) error {
	return s.rdb.Set(ctx, globalBankrollKey, v, 0).Err()
}

// AppendBankrollHistory empilha um snapshot e poda a lista para os 100 mais
// recentes. A lista fica em ordem cronológica inversa (LPUSH).
func (s *Redis) AppendBankrollHistory(ctx context.Context, e HistoryEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, bankrollHistoryKey, raw)
	pipe.LTrim(ctx, bankrollHistoryKey, 0, historyMaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append bankroll history: %w", err)
	}
	return nil
}

// BankrollHistory devolve os snapshots em ordem cronológica (mais antigo
// primeiro), revertendo o armazenamento LPUSH.
func (s *Redis) BankrollHistory(ctx context.Context) ([]HistoryEntry, error) {
	items, err := s.rdb.LRange(ctx, bankrollHistoryKey, 0, historyMaxEntries-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read bankroll history: %w", err)
	}
	out := make([]HistoryEntry, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		var e HistoryEntry
		if err := json.Unmarshal([]byte(items[i]), &e); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// IncrVIPStats acumula contadores de acerto dos picks VIP.
func (s *Redis) IncrVIPStats(ctx context.Context, won bool) error {
	pipe := s.rdb.Pipeline()
	pipe.Incr(ctx, statsVIPTotalKey)
	if won {
		pipe.Incr(ctx, statsVIPWinsKey)
	}
	_, err := pipe.Exec(ctx)
	return err
}
