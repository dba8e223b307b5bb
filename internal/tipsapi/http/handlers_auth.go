package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/auth"
	"github.com/pronosport/tips-platform/internal/tipsapi/dto"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	token, isAdmin, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "identifiants invalides")
			return
		}
		s.log.Error("falha no login", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	setSessionCookies(w, token, email)
	writeJSON(w, http.StatusOK, dto.LoginResponse{Success: true, Email: email, IsAdmin: isAdmin})
}

func (s *Server) registerInvite(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	token, err := s.auth.RegisterInvite(r.Context(), req.Invite, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidInvite) {
			writeError(w, http.StatusUnauthorized, "invitation invalide ou expirée")
			return
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "mot de passe trop court")
			return
		}
		s.log.Error("falha no registro por convite", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	setSessionCookies(w, token, email)
	writeJSON(w, http.StatusOK, dto.LoginResponse{Success: true, Email: email})
}

func (s *Server) createInvite(w http.ResponseWriter, r *http.Request) {
	invite, err := s.auth.CreateInvite(r.Context())
	if err != nil {
		s.log.Error("falha ao criar convite", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erreur interne")
		return
	}
	writeJSON(w, http.StatusOK, dto.InviteResponse{Invite: invite})
}
