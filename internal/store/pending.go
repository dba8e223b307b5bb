package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	pendingPickPrefix = "pending_match:"
	pendingBetPrefix  = "pending_user_bet:"
)

func pendingPickKey(fixtureID int) string {
	return pendingPickPrefix + strconv.Itoa(fixtureID)
}

// TrackPendingPick registra o marker de um pick do sistema. A existência do
// marker é a única fila de trabalho do reconciliador.
func (s *Redis) TrackPendingPick(ctx context.Context, p Pick) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, pendingPickKey(p.FixtureID), raw, 0).Err()
}

// PendingPicks enumera todos os picks do sistema ainda não liquidados.
// Entradas ilegíveis são puladas em silêncio (marker removido num ciclo futuro
// pelo caminho fixture-not-found).
func (s *Redis) PendingPicks(ctx context.Context) ([]PendingPick, error) {
	keys, err := s.scanKeys(ctx, pendingPickPrefix+"*")
	if err != nil {
		return nil, err
	}
	out := make([]PendingPick, 0, len(keys))
	for _, key := range keys {
		raw, err := s.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var p Pick
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, PendingPick{Key: key, Pick: p})
	}
	return out, nil
}

// PendingUserBets enumera todos os paris de usuário ainda não liquidados.
func (s *Redis) PendingUserBets(ctx context.Context) ([]PendingBet, error) {
	keys, err := s.scanKeys(ctx, pendingBetPrefix+"*")
	if err != nil {
		return nil, err
	}
	out := make([]PendingBet, 0, len(keys))
	for _, key := range keys {
		raw, err := s.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var b Bet
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, PendingBet{Key: key, Bet: b})
	}
	return out, nil
}

// DropPending apaga um marker pendente pela chave completa.
func (s *Redis) DropPending(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// DropPendingBet apaga o marker de um pari de usuário pelo id.
func (s *Redis) DropPendingBet(ctx context.Context, betID string) error {
	return s.rdb.Del(ctx, pendingBetKey(betID)).Err()
}
