package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/auth"
	"github.com/pronosport/tips-platform/internal/store"
	"github.com/pronosport/tips-platform/internal/tipsgen"
	"github.com/pronosport/tips-platform/pkg/contracts/events"
)

// Store são as operações de ledger usadas pelos handlers.
type Store interface {
	UserBets(ctx context.Context, email string) ([]store.Bet, error)
	PlaceBet(ctx context.Context, b *store.Bet) error
	DeleteBet(ctx context.Context, email, betID string) (*store.Bet, error)
	SettleUserBet(ctx context.Context, email, betID string, status store.BetStatus, settledAt time.Time) (*store.Bet, error)
	CreditUserBankroll(ctx context.Context, email string, delta float64) (float64, error)
	UserBankroll(ctx context.Context, email string) (float64, error)
	DropPendingBet(ctx context.Context, betID string) error

	BankrollHistory(ctx context.Context) ([]store.HistoryEntry, error)

	Draft(ctx context.Context) (json.RawMessage, error)
	PublishDraft(ctx context.Context, raw json.RawMessage) error
	TrackPendingPick(ctx context.Context, p store.Pick) error

	SiteStats(ctx context.Context) (store.SiteStats, error)

	SaveCombine(ctx context.Context, c store.Combine) error
	Combines(ctx context.Context) ([]store.Combine, error)
	UpdateCombineStatus(ctx context.Context, id string, status store.BetStatus) (*store.Combine, error)
	DeleteCombine(ctx context.Context, id string) error

	SavePushSubscription(ctx context.Context, sub store.PushSubscription) error
}

// Reconciler é o ciclo de liquidação disparado por /cron/check-results.
type Reconciler interface {
	Run(ctx context.Context) ([]string, error)
}

// Generator é o job diário disparado por /cron/daily.
type Generator interface {
	GenerateDaily(ctx context.Context) (*tipsgen.Summary, error)
}

// CombineGenerator é o job de combinés disparado por /cron/generate-combines.
type CombineGenerator interface {
	Run(ctx context.Context, force, clear bool) (*tipsgen.CombineSummary, error)
}

// MatchAnalyst é a análise de match sob demanda. Pode ser nil (sem chave
// Perplexity configurada).
type MatchAnalyst interface {
	Analyze(ctx context.Context, m tipsgen.MatchRequest) (*tipsgen.Pronostic, error)
}

// Telegram publica o pronóstico no canal. Pode ser nil (sem bot configurado).
type Telegram interface {
	Publish(message string) (mode string, err error)
	BroadcastPhoto(image []byte, name, caption string) error
}

// Archive é o histórico de liquidações arquivado em Postgres.
type Archive interface {
	RecentSettled(ctx context.Context, limit int) ([]events.BetSettled, error)
}

// Server expõe a API pública do tips-platform.
type Server struct {
	log         *zap.Logger
	store       Store
	auth        *auth.Service
	reconciler  Reconciler
	generator   Generator
	combines    CombineGenerator
	analyst     MatchAnalyst
	telegram    Telegram
	archive     Archive
	adminSecret string
}

func NewServer(log *zap.Logger, st Store, au *auth.Service, rec Reconciler, gen Generator, cmb CombineGenerator, an MatchAnalyst, tg Telegram, arq Archive, adminSecret string) *Server {
	return &Server{
		log:         log,
		store:       st,
		auth:        au,
		reconciler:  rec,
		generator:   gen,
		combines:    cmb,
		analyst:     an,
		telegram:    tg,
		archive:     arq,
		adminSecret: adminSecret,
	}
}

// Router monta as rotas da API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", s.login)
	r.Post("/auth/register-invite", s.registerInvite)

	r.Get("/stats", s.siteStats)
	r.Get("/stats/bankroll", s.bankrollHistory)

	r.Get("/combines", s.listCombines)
	r.Post("/combines", s.createCombine)
	r.Patch("/combines", s.updateCombineStatus)

	r.Post("/pronostic", s.matchPronostic)

	// Endpoints autenticados por cookie de sessão
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/user/bets", s.listBets)
		r.Post("/user/bets", s.placeBet)
		r.Patch("/user/bets", s.updateBet)
		r.Delete("/user/bets", s.deleteBet)
		r.Get("/user/bets/kelly", s.kellySuggestion)
		r.Post("/push/subscribe", s.subscribePush)
	})

	// Endpoints de cron/admin gateados por ?key=ADMIN_SECRET (segredo
	// compartilhado em query string, como no produto original)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAdminKey)
		r.Get("/cron/daily", s.cronDaily)
		r.Get("/cron/check-results", s.cronCheckResults)
		r.Get("/cron/generate-combines", s.cronGenerateCombines)
		r.Post("/admin/invite", s.createInvite)
		r.Get("/admin/publish", s.getDraft)
		r.Get("/admin/settled", s.recentSettled)
		r.Delete("/combines", s.deleteCombine)
		r.Post("/telegram/broadcast", s.telegramBroadcast)
	})

	r.Post("/admin/publish", s.publish)

	return r
}

type ctxKey int

const emailKey ctxKey = 0

const (
	sessionCookie = "vip_session"
	emailCookie   = "user_email"
)

// requireSession resolve a sessão do cookie e injeta o email no contexto.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "non autorisé")
			return
		}
		email, err := s.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "non autorisé")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), emailKey, email)))
	})
}

// requireAdminKey valida o segredo compartilhado da query string.
func (s *Server) requireAdminKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminSecret == "" || r.URL.Query().Get("key") != s.adminSecret {
			writeError(w, http.StatusUnauthorized, "accès non autorisé")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func setSessionCookies(w http.ResponseWriter, token, email string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     emailCookie,
		Value:    email,
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
}

// notFoundStatus traduz store.ErrNotFound para 404, o resto para 500.
func notFoundStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
