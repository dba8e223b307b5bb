package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/llm"
	"github.com/pronosport/tips-platform/internal/store"
	"github.com/pronosport/tips-platform/internal/tipsapi/dto"
	"github.com/pronosport/tips-platform/internal/tipsgen"
)

// siteStats expõe o placar público do site (taxa de acerto e totais).
func (s *Server) siteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.SiteStats(r.Context())
	if err != nil {
		s.log.Error("falha ao ler stats do site", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.StatsResponse{Success: true, Data: stats})
}

// listCombines devolve os combinés recentes, públicos.
func (s *Server) listCombines(w http.ResponseWriter, r *http.Request) {
	combines, err := s.store.Combines(r.Context())
	if err != nil {
		s.log.Error("falha ao listar combinés", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	resp := dto.CombinesResponse{Combines: combines}
	if len(combines) == 0 {
		resp.Message = "Aucun combiné disponible. Les nouveaux combinés arrivent chaque jour."
	}
	writeJSON(w, http.StatusOK, resp)
}

// createCombine registra um ticket montado à mão pelo admin.
func (s *Server) createCombine(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCombineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if s.adminSecret == "" || req.Secret != s.adminSecret {
		writeError(w, http.StatusUnauthorized, "accès non autorisé")
		return
	}
	if req.Type == "" || req.Title == "" || req.Cote <= 0 || req.Mise <= 0 || len(req.Matches) == 0 {
		writeError(w, http.StatusBadRequest, "données incomplètes")
		return
	}

	combine := store.Combine{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Title:     req.Title,
		Cote:      req.Cote,
		Mise:      req.Mise,
		Matches:   req.Matches,
		Status:    store.BetPending,
		CreatedAt: time.Now().UTC(),
		Analysis:  req.Analysis,
	}
	if err := s.store.SaveCombine(r.Context(), combine); err != nil {
		s.log.Error("falha ao salvar combiné", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.CombineResponse{Success: true, Combine: combine})
}

// updateCombineStatus liquida manualmente um combiné.
func (s *Server) updateCombineStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.CombineStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if s.adminSecret == "" || req.Secret != s.adminSecret {
		writeError(w, http.StatusUnauthorized, "accès non autorisé")
		return
	}
	switch req.Status {
	case store.BetPending, store.BetWon, store.BetLost:
	default:
		writeError(w, http.StatusBadRequest, "statut invalide")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id requis")
		return
	}

	combine, err := s.store.UpdateCombineStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		writeError(w, notFoundStatus(err), "combiné introuvable")
		return
	}
	writeJSON(w, http.StatusOK, dto.CombineResponse{Success: true, Combine: *combine})
}

// deleteCombine remove um ticket; gateado pelo ?key= do grupo admin.
func (s *Server) deleteCombine(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id requis")
		return
	}
	if err := s.store.DeleteCombine(r.Context(), id); err != nil {
		s.log.Error("falha ao remover combiné", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// cronGenerateCombines dispara a geração diária dos tickets.
// ?force=true regenera; ?clear=true apaga os anteriores antes.
func (s *Server) cronGenerateCombines(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"
	clear := r.URL.Query().Get("clear") == "true"

	summary, err := s.combines.Run(r.Context(), force, clear)
	if err != nil {
		s.log.Error("falha na geração de combinés", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "summary": summary})
}

// matchPronostic gera a análise sob demanda de um match.
func (s *Server) matchPronostic(w http.ResponseWriter, r *http.Request) {
	if s.analyst == nil {
		writeError(w, http.StatusServiceUnavailable, "analyste indisponible")
		return
	}
	var req struct {
		Match tipsgen.MatchRequest `json:"match"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Match.HomeTeam == "" || req.Match.AwayTeam == "" {
		writeError(w, http.StatusBadRequest, "données du match invalides")
		return
	}

	pronostic, err := s.analyst.Analyze(r.Context(), req.Match)
	if errors.Is(err, llm.ErrNoAPIKey) {
		writeError(w, http.StatusServiceUnavailable, "analyste indisponible")
		return
	}
	if errors.Is(err, tipsgen.ErrBadAnalysis) {
		writeError(w, http.StatusInternalServerError, "erreur de parsing, réessayez")
		return
	}
	if err != nil {
		s.log.Error("falha na análise sob demanda", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": pronostic})
}

const broadcastCaption = "🚀 *Nouveau Pronostic !* \n\n⚡ Analyse générée par IA.\n👉 Rejoignez le VIP pour plus de détails."

// telegramBroadcast envia a imagem do pronóstico do dia para o canal.
func (s *Server) telegramBroadcast(w http.ResponseWriter, r *http.Request) {
	if s.telegram == nil {
		writeError(w, http.StatusServiceUnavailable, "bot indisponible")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "pas d'image reçue")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image illisible")
		return
	}
	if err := s.telegram.BroadcastPhoto(image, header.Filename, broadcastCaption); err != nil {
		s.log.Error("falha no broadcast Telegram", zap.Error(err))
		writeError(w, http.StatusBadGateway, "échec de l'envoi Telegram")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
