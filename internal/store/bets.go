package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func userBetsKey(email string) string     { return "user:" + email + ":bets" }
func userBankrollKey(email string) string { return "user:" + email + ":bankroll" }
func pendingBetKey(id string) string      { return pendingBetPrefix + id }

// UserBets retorna a lista de paris do usuário (vazia se nunca apostou).
func (s *Redis) UserBets(ctx context.Context, email string) ([]Bet, error) {
	raw, err := s.rdb.Get(ctx, userBetsKey(email)).Result()
	if err == redis.Nil {
		return []Bet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user bets: %w", err)
	}
	var bets []Bet
	if err := json.Unmarshal([]byte(raw), &bets); err != nil {
		return nil, fmt.Errorf("decode user bets: %w", err)
	}
	return bets, nil
}

func (s *Redis) saveUserBets(ctx context.Context, email string, bets []Bet) error {
	raw, err := json.Marshal(bets)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, userBetsKey(email), raw, 0).Err()
}

// PlaceBet grava o pari no topo da lista, registra o marker pendente e
// reserva a mise debitando a bankroll do usuário (reserve-at-placement).
func (s *Redis) PlaceBet(ctx context.Context, b *Bet) error {
	bets, err := s.UserBets(ctx, b.UserEmail)
	if err != nil {
		return err
	}
	bets = append([]Bet{*b}, bets...)
	if err := s.saveUserBets(ctx, b.UserEmail, bets); err != nil {
		return fmt.Errorf("save user bets: %w", err)
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, pendingBetKey(b.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("track pending bet: %w", err)
	}

	if _, err := s.CreditUserBankroll(ctx, b.UserEmail, -b.Stake); err != nil {
		return fmt.Errorf("reserve stake: %w", err)
	}
	return nil
}

// DeleteBet remove o pari da lista. Se ainda estiver pending, devolve a mise
// integralmente e apaga o marker.
func (s *Redis) DeleteBet(ctx context.Context, email, betID string) (*Bet, error) {
	bets, err := s.UserBets(ctx, email)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range bets {
		if bets[i].ID == betID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	deleted := bets[idx]

	if deleted.Status == BetPending {
		if _, err := s.CreditUserBankroll(ctx, email, deleted.Stake); err != nil {
			return nil, fmt.Errorf("refund stake: %w", err)
		}
		if err := s.rdb.Del(ctx, pendingBetKey(betID)).Err(); err != nil {
			return nil, fmt.Errorf("drop pending marker: %w", err)
		}
	}

	bets = append(bets[:idx], bets[idx+1:]...)
	if err := s.saveUserBets(ctx, email, bets); err != nil {
		return nil, fmt.Errorf("save user bets: %w", err)
	}
	return &deleted, nil
}

// SettleUserBet muda o status do pari pending -> won|lost dentro da lista e
// carimba settledAt. A transição é terminal: um pari que já saiu de pending
// devolve ErrAlreadySettled sem tocar em nada (o crédito de potentialWin
// acontece uma única vez). O chamador apaga o marker depois.
func (s *Redis) SettleUserBet(ctx context.Context, email, betID string, status BetStatus, settledAt time.Time) (*Bet, error) {
	bets, err := s.UserBets(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range bets {
		if bets[i].ID != betID {
			continue
		}
		if bets[i].Status != BetPending {
			return nil, ErrAlreadySettled
		}
		bets[i].Status = status
		if status != BetPending {
			t := settledAt
			bets[i].SettledAt = &t
			bets[i].PerplexityVerified = true
		}
		if err := s.saveUserBets(ctx, email, bets); err != nil {
			return nil, fmt.Errorf("save user bets: %w", err)
		}
		settled := bets[i]
		return &settled, nil
	}
	return nil, ErrNotFound
}

// UserBankroll retorna o saldo do usuário, inicializando em InitialBankroll
// no primeiro acesso.
func (s *Redis) UserBankroll(ctx context.Context, email string) (float64, error) {
	val, err := s.rdb.Get(ctx, userBankrollKey(email)).Float64()
	if err == redis.Nil {
		return InitialBankroll, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get user bankroll: %w", err)
	}
	return val, nil
}

// CreditUserBankroll aplica um delta (positivo ou negativo) de forma atômica
// via INCRBYFLOAT, depois de garantir o saldo inicial com SETNX.
func (s *Redis) CreditUserBankroll(ctx context.Context, email string, delta float64) (float64, error) {
	key := userBankrollKey(email)
	if err := s.rdb.SetNX(ctx, key, InitialBankroll, 0).Err(); err != nil {
		return 0, fmt.Errorf("init user bankroll: %w", err)
	}
	val, err := s.rdb.IncrByFloat(ctx, key, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("incr user bankroll: %w", err)
	}
	return val, nil
}
