package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/store"
	"github.com/pronosport/tips-platform/internal/tipsapi/dto"
	"github.com/pronosport/tips-platform/internal/tipsgen"
)

func (s *Server) cronDaily(w http.ResponseWriter, r *http.Request) {
	summary, err := s.generator.GenerateDaily(r.Context())
	if err != nil {
		s.log.Error("falha na geração diária", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "summary": summary})
}

func (s *Server) cronCheckResults(w http.ResponseWriter, r *http.Request) {
	updates, err := s.reconciler.Run(r.Context())
	if err != nil {
		s.log.Error("falha no ciclo de liquidação", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.SettlementResponse{Success: true, Log: updates})
}

// recentSettled lista as últimas liquidações arquivadas no Postgres.
func (s *Server) recentSettled(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "archive indisponible")
		return
	}
	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	settled, err := s.archive.RecentSettled(r.Context(), limit)
	if err != nil {
		s.log.Error("falha ao ler liquidações arquivadas", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "settled": settled})
}

func (s *Server) getDraft(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.Draft(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, dto.DraftResponse{Message: "aucun brouillon en attente"})
		return
	}
	if err != nil {
		s.log.Error("falha ao ler rascunho", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.DraftResponse{Draft: raw})
}

// publish valida o segredo no corpo, envia o pronóstico no Telegram, registra
// os markers pendentes dos picks do rascunho e move o rascunho para publicado.
func (s *Server) publish(w http.ResponseWriter, r *http.Request) {
	var req dto.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if s.adminSecret == "" || req.Secret != s.adminSecret {
		writeError(w, http.StatusUnauthorized, "accès non autorisé")
		return
	}

	raw, err := s.store.Draft(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "aucun brouillon à publier")
		return
	}
	if err != nil {
		s.log.Error("falha ao ler rascunho", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}

	mode := "none"
	if s.telegram != nil && req.Message != "" {
		mode, err = s.telegram.Publish(req.Message)
		if err != nil {
			s.log.Error("falha ao publicar no Telegram", zap.Error(err))
			writeError(w, http.StatusBadGateway, "échec de la publication Telegram")
			return
		}
	}

	var draft tipsgen.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		s.log.Warn("rascunho ilegível, publicado sem markers", zap.Error(err))
	} else {
		s.trackDraftPicks(r, draft)
	}

	if err := s.store.PublishDraft(r.Context(), raw); err != nil {
		s.log.Error("falha ao mover rascunho para publicado", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.PublishResponse{Success: true, Message: "pronostic publié", Mode: mode})
}

// trackDraftPicks congela cada pick publicado como marker pendente para o
// ciclo de liquidação. Picks sem fixture id não são rastreáveis.
func (s *Server) trackDraftPicks(r *http.Request, draft tipsgen.Draft) {
	track := func(dp tipsgen.DraftPick, vip bool) {
		if dp.FixtureID == 0 {
			return
		}
		pick := store.Pick{
			FixtureID:  dp.FixtureID,
			Teams:      dp.Match,
			League:     dp.League,
			Market:     dp.Pari,
			Prediction: dp.Pari,
			Odds:       dp.Cote,
			Staking:    stakingFor(dp.Confiance, vip),
			Analysis:   dp.Analyse,
			IsVIP:      vip,
		}
		if err := s.store.TrackPendingPick(r.Context(), pick); err != nil {
			s.log.Warn("falha ao registrar marker de pick",
				zap.Int("fixture_id", dp.FixtureID), zap.Error(err))
		}
	}
	if draft.VIP != nil {
		track(*draft.VIP, true)
	}
	for _, dp := range draft.Free {
		track(dp, false)
	}
}

// stakingFor converte o rótulo de confiança do rascunho no percentual de
// bankroll apostado. O pick VIP carrega a mise mais alta.
func stakingFor(confiance string, vip bool) store.Staking {
	if vip {
		return store.Staking{Percentage: 8, Label: "Confiance"}
	}
	if confiance == "Ultra-Safe" {
		return store.Staking{Percentage: 3, Label: "Prudent"}
	}
	return store.Staking{Percentage: 5, Label: "Standard"}
}
