package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/bankroll"
	"github.com/pronosport/tips-platform/internal/football"
	"github.com/pronosport/tips-platform/internal/grading"
	"github.com/pronosport/tips-platform/internal/shared/metrics"
	"github.com/pronosport/tips-platform/internal/store"
	ev "github.com/pronosport/tips-platform/pkg/contracts/events"
)

// Ledger são as operações de store que o reconciliador usa.
type Ledger interface {
	GlobalBankroll(ctx context.Context) (float64, error)
	SetGlobalBankroll(ctx context.Context, v float64) error
	AppendBankrollHistory(ctx context.Context, e store.HistoryEntry) error
	IncrVIPStats(ctx context.Context, won bool) error

	PendingPicks(ctx context.Context) ([]store.PendingPick, error)
	PendingUserBets(ctx context.Context) ([]store.PendingBet, error)
	DropPending(ctx context.Context, key string) error

	SettleUserBet(ctx context.Context, email, betID string, status store.BetStatus, settledAt time.Time) (*store.Bet, error)
	CreditUserBankroll(ctx context.Context, email string, delta float64) (float64, error)
}

// Fixtures busca o resultado estruturado de um fixture pelo id salvo no pick.
type Fixtures interface {
	FixtureByID(ctx context.Context, id int) (*football.Fixture, error)
}

// Verifier é o caminho heurístico (paris de usuário).
type Verifier interface {
	Verify(ctx context.Context, bet *store.Bet) (grading.Result, error)
}

// Publisher emite o evento de liquidação consumido pelo notification-worker.
type Publisher interface {
	PublishBetSettled(ctx context.Context, e ev.BetSettled) error
}

// Reconciler drena os markers pendentes, gradua cada item e comita as
// mutações item a item. Não há transação entre itens: um ciclo interrompido
// deixa os markers restantes para a próxima invocação.
type Reconciler struct {
	log      *zap.Logger
	ledger   Ledger
	fixtures Fixtures
	verifier Verifier
	events   Publisher

	now func() time.Time
}

func New(log *zap.Logger, ledger Ledger, fixtures Fixtures, verifier Verifier, events Publisher) *Reconciler {
	return &Reconciler{
		log:      log,
		ledger:   ledger,
		fixtures: fixtures,
		verifier: verifier,
		events:   events,
		now:      time.Now,
	}
}

// Run executa um ciclo de reconciliação completo e devolve o log humano de
// cada item. Erros de item são registrados e o loop segue; só falhas totais
// (store inacessível) retornam erro.
func (r *Reconciler) Run(ctx context.Context) ([]string, error) {
	metrics.SettlementRuns.Inc()

	current, err := r.ledger.GlobalBankroll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read global bankroll: %w", err)
	}

	var updates []string
	var totalProfit float64

	systemLog, systemProfit, err := r.settleSystemPicks(ctx, current)
	if err != nil {
		return nil, err
	}
	updates = append(updates, systemLog...)
	totalProfit += systemProfit

	userLog, err := r.settleUserBets(ctx)
	if err != nil {
		return nil, err
	}
	updates = append(updates, userLog...)

	// Uma única escrita da bankroll global por ciclo, não uma por pari:
	// evita estados parciais intercalados no loop sem lock entre itens.
	if totalProfit != 0 {
		newBankroll := current + totalProfit
		if err := r.ledger.SetGlobalBankroll(ctx, newBankroll); err != nil {
			return nil, fmt.Errorf("write global bankroll: %w", err)
		}
		entry := store.HistoryEntry{
			Date:     r.now().Format("2006-01-02"),
			Bankroll: bankroll.Round2(newBankroll),
		}
		if err := r.ledger.AppendBankrollHistory(ctx, entry); err != nil {
			r.log.Warn("bankroll history append failed", zap.Error(err))
		}
		updates = append(updates, fmt.Sprintf("Bankroll globale mise a jour: %.2f", newBankroll))
	}

	if len(updates) == 0 {
		updates = append(updates, "Aucun paris a verifier.")
	}
	return updates, nil
}

// settleSystemPicks gradua os picks do sistema contra o resultado estruturado
// do provedor. O profit é acumulado num total de batch; a bankroll só é
// escrita uma vez, no fim do ciclo, pelo chamador.
func (r *Reconciler) settleSystemPicks(ctx context.Context, currentBankroll float64) ([]string, float64, error) {
	picks, err := r.ledger.PendingPicks(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending picks: %w", err)
	}
	if len(picks) == 0 {
		return nil, 0, nil
	}

	updates := []string{fmt.Sprintf("--- Paris systeme (%d) ---", len(picks))}
	var totalProfit float64

	for _, item := range picks {
		pick := item.Pick

		fx, err := r.fixtures.FixtureByID(ctx, pick.FixtureID)
		if errors.Is(err, football.ErrFixtureNotFound) {
			// Referência permanentemente quebrada: descarta em vez de
			// re-tentar para sempre.
			updates = append(updates, fmt.Sprintf(
				"Match non trouve pour %s (ID: %d). Suppression.", pick.Teams, pick.FixtureID))
			if derr := r.ledger.DropPending(ctx, item.Key); derr != nil {
				r.log.Error("drop pending pick", zap.String("key", item.Key), zap.Error(derr))
			}
			continue
		}
		if err != nil {
			// Provedor indisponível: o item fica para o próximo ciclo.
			metrics.SettlementItemErrors.Inc()
			r.log.Warn("fixture fetch failed", zap.Int("fixtureId", pick.FixtureID), zap.Error(err))
			continue
		}

		result := grading.GradeStructured(pick.Market, pick.Prediction, fx)
		if !result.Terminal() {
			continue
		}

		// Percentual aplicado sobre a bankroll na liquidação, não na criação
		// do pick (simplicidade > fidelidade de backtesting).
		stakeAmount := (pick.Staking.Percentage / 100) * currentBankroll
		profit := bankroll.Profit(stakeAmount, pick.Odds, result == grading.Won)
		totalProfit += profit

		if pick.IsVIP {
			if err := r.ledger.IncrVIPStats(ctx, result == grading.Won); err != nil {
				r.log.Warn("vip stats update failed", zap.Error(err))
			}
		}

		if result == grading.Won {
			metrics.BetsSettled.WithLabelValues("system", "won").Inc()
			updates = append(updates, fmt.Sprintf("GAGNE: %s | %s (+%.2f)", pick.Teams, pick.Market, profit))
		} else {
			metrics.BetsSettled.WithLabelValues("system", "lost").Inc()
			updates = append(updates, fmt.Sprintf("PERDU: %s | %s (%.2f)", pick.Teams, pick.Market, profit))
		}

		if err := r.ledger.DropPending(ctx, item.Key); err != nil {
			r.log.Error("drop pending pick", zap.String("key", item.Key), zap.Error(err))
		}
	}

	return updates, totalProfit, nil
}

// settleUserBets gradua os paris de usuário pelo caminho heurístico. Em WON a
// bankroll do usuário é creditada com potentialWin (a mise foi reservada no
// placement; em LOST não há débito adicional).
func (r *Reconciler) settleUserBets(ctx context.Context) ([]string, error) {
	pending, err := r.ledger.PendingUserBets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending user bets: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	updates := []string{fmt.Sprintf("--- Paris utilisateurs (%d) ---", len(pending))}

	for _, item := range pending {
		bet := item.Bet

		result, err := r.verifier.Verify(ctx, &bet)
		if err != nil {
			metrics.SettlementItemErrors.Inc()
			updates = append(updates, fmt.Sprintf(
				"ERREUR: %s - %s vs %s (%v)", bet.UserEmail, bet.HomeTeam, bet.AwayTeam, err))
			continue
		}
		if !result.Terminal() {
			continue
		}

		status := store.BetLost
		if result == grading.Won {
			status = store.BetWon
		}
		settledAt := r.now()

		if _, err := r.ledger.SettleUserBet(ctx, bet.UserEmail, bet.ID, status, settledAt); err != nil {
			if errors.Is(err, store.ErrAlreadySettled) {
				// Liquidado manualmente com marker órfão: só limpa, sem
				// crédito duplicado.
				if derr := r.ledger.DropPending(ctx, item.Key); derr != nil {
					r.log.Error("drop pending bet", zap.String("key", item.Key), zap.Error(derr))
				}
				continue
			}
			metrics.SettlementItemErrors.Inc()
			r.log.Error("settle user bet", zap.String("betId", bet.ID), zap.Error(err))
			continue
		}

		var profit float64
		if result == grading.Won {
			profit = bet.PotentialWin - bet.Stake
			if _, err := r.ledger.CreditUserBankroll(ctx, bet.UserEmail, bet.PotentialWin); err != nil {
				r.log.Error("credit user bankroll", zap.String("betId", bet.ID), zap.Error(err))
			}
			metrics.BetsSettled.WithLabelValues("user", "won").Inc()
			updates = append(updates, fmt.Sprintf(
				"GAGNE: %s - %s vs %s (+%.2f)", bet.UserEmail, bet.HomeTeam, bet.AwayTeam, profit))
		} else {
			profit = -bet.Stake
			metrics.BetsSettled.WithLabelValues("user", "lost").Inc()
			updates = append(updates, fmt.Sprintf(
				"PERDU: %s - %s vs %s (%.2f)", bet.UserEmail, bet.HomeTeam, bet.AwayTeam, profit))
		}

		// Notificação best-effort: falha é logada, nunca bloqueia o loop.
		event := ev.BetSettled{
			BetID:     bet.ID,
			UserEmail: bet.UserEmail,
			HomeTeam:  bet.HomeTeam,
			AwayTeam:  bet.AwayTeam,
			Market:    bet.Market,
			Selection: bet.Selection,
			Odds:      bet.Odds,
			Stake:     bet.Stake,
			Result:    string(result),
			Profit:    bankroll.Round2(profit),
			SettledAt: settledAt,
		}
		if err := r.events.PublishBetSettled(ctx, event); err != nil {
			r.log.Warn("publish bet_settled", zap.String("betId", bet.ID), zap.Error(err))
		}

		if err := r.ledger.DropPending(ctx, item.Key); err != nil {
			r.log.Error("drop pending bet", zap.String("key", item.Key), zap.Error(err))
		}
	}

	return updates, nil
}
