package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/bankroll"
	"github.com/pronosport/tips-platform/internal/shared/metrics"
	"github.com/pronosport/tips-platform/internal/store"
	"github.com/pronosport/tips-platform/internal/tipsapi/dto"
)

const (
	defaultOdds  = 1.5
	defaultStake = 5.0
)

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	email := sessionEmail(r)
	bets, err := s.store.UserBets(r.Context(), email)
	if err != nil {
		s.log.Error("falha ao listar paris", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	balance, err := s.store.UserBankroll(r.Context(), email)
	if err != nil {
		s.log.Error("falha ao ler bankroll do usuário", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.UserBetsResponse{
		Success:  true,
		Bets:     bets,
		Bankroll: bankroll.Round2(balance),
		Stats:    computeStats(bets),
	})
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Odds <= 0 {
		req.Odds = defaultOdds
	}
	if req.Stake <= 0 {
		req.Stake = defaultStake
	}

	bet := store.Bet{
		ID:           uuid.NewString(),
		MatchID:      req.MatchID,
		HomeTeam:     req.HomeTeam,
		AwayTeam:     req.AwayTeam,
		League:       req.League,
		Date:         req.Date,
		TicketType:   req.TicketType,
		Market:       req.Market,
		Selection:    req.Selection,
		Odds:         req.Odds,
		Stake:        req.Stake,
		PotentialWin: bankroll.PotentialWin(req.Stake, req.Odds),
		Status:       store.BetPending,
		CreatedAt:    time.Now().UTC(),
		UserEmail:    sessionEmail(r),
		FixtureID:    req.FixtureID,
	}
	if err := s.store.PlaceBet(r.Context(), &bet); err != nil {
		s.log.Error("falha ao registrar pari", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.PlaceBetResponse{Success: true, Bet: bet})
}

// updateBet liquida manualmente um pari (override de admin ou correção do
// usuário). Segue a mesma contabilidade da liquidação automática.
func (s *Server) updateBet(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Status != store.BetWon && req.Status != store.BetLost {
		writeError(w, http.StatusBadRequest, "statut invalide")
		return
	}
	email := sessionEmail(r)

	bet, err := s.store.SettleUserBet(r.Context(), email, req.BetID, req.Status, time.Now().UTC())
	if errors.Is(err, store.ErrAlreadySettled) {
		// Transição terminal: sem novo crédito, sem flip de resultado.
		writeError(w, http.StatusConflict, "pari déjà réglé")
		return
	}
	if err != nil {
		writeError(w, notFoundStatus(err), "pari introuvable")
		return
	}
	if req.Status == store.BetWon {
		if _, err := s.store.CreditUserBankroll(r.Context(), email, bet.PotentialWin); err != nil {
			s.log.Error("falha ao creditar ganho", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "erreur interne")
			return
		}
	}
	if err := s.store.DropPendingBet(r.Context(), req.BetID); err != nil {
		s.log.Warn("falha ao apagar marker pendente", zap.String("bet_id", req.BetID), zap.Error(err))
	}
	metrics.BetsSettled.WithLabelValues("user", string(req.Status)).Inc()
	writeJSON(w, http.StatusOK, dto.PlaceBetResponse{Success: true, Bet: *bet})
}

func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	bet, err := s.store.DeleteBet(r.Context(), sessionEmail(r), req.BetID)
	if err != nil {
		writeError(w, notFoundStatus(err), "pari introuvable")
		return
	}
	writeJSON(w, http.StatusOK, dto.PlaceBetResponse{Success: true, Bet: *bet})
}

// kellySuggestion calcula a mise sugerida para ?probability=&odds= sobre a
// bankroll atual do usuário.
func (s *Server) kellySuggestion(w http.ResponseWriter, r *http.Request) {
	probability, err1 := strconv.ParseFloat(r.URL.Query().Get("probability"), 64)
	odds, err2 := strconv.ParseFloat(r.URL.Query().Get("odds"), 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "paramètres invalides")
		return
	}
	balance, err := s.store.UserBankroll(r.Context(), sessionEmail(r))
	if err != nil {
		s.log.Error("falha ao ler bankroll do usuário", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.KellySuggestion{
		Bankroll: bankroll.Round2(balance),
		Stake:    bankroll.KellyStake(balance, probability, odds),
	})
}

func (s *Server) bankrollHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.BankrollHistory(r.Context())
	if err != nil {
		s.log.Error("falha ao ler histórico de bankroll", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "history": history})
}

func (s *Server) subscribePush(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Subscription.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	sub := store.PushSubscription{
		Email:        sessionEmail(r),
		Subscription: req.Subscription,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := s.store.SavePushSubscription(r.Context(), sub); err != nil {
		s.log.Error("falha ao salvar inscrição push", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// computeStats deriva os agregados exibidos no painel do usuário. Profit
// conta só paris liquidados (mises pendentes não entram).
func computeStats(bets []store.Bet) dto.BetStats {
	st := dto.BetStats{Total: len(bets)}
	var profit float64
	for _, b := range bets {
		switch b.Status {
		case store.BetWon:
			st.Won++
			profit += b.PotentialWin - b.Stake
		case store.BetLost:
			st.Lost++
			profit -= b.Stake
		default:
			st.Pending++
		}
	}
	if settled := st.Won + st.Lost; settled > 0 {
		st.WinRate = int(math.Round(float64(st.Won) / float64(settled) * 100))
	}
	st.Profit = bankroll.Round2(profit)
	return st
}
