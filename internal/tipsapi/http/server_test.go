package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/auth"
	"github.com/pronosport/tips-platform/internal/store"
	"github.com/pronosport/tips-platform/internal/tipsapi/dto"
	"github.com/pronosport/tips-platform/internal/tipsgen"
	"github.com/pronosport/tips-platform/pkg/contracts/events"
)

// fakeStore cobre as operações do ledger e do store de autenticação.
type fakeStore struct {
	bets      map[string][]store.Bet // por email
	bankrolls map[string]float64
	history   []store.HistoryEntry
	draft     json.RawMessage
	published json.RawMessage
	tracked   []store.Pick
	pushSubs  map[string]store.PushSubscription
	dropped   []string
	stats     store.SiteStats
	combines  []store.Combine

	sessions  map[string]string
	invites   map[string]bool
	passwords map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bets:      map[string][]store.Bet{},
		bankrolls: map[string]float64{},
		pushSubs:  map[string]store.PushSubscription{},
		sessions:  map[string]string{},
		invites:   map[string]bool{},
		passwords: map[string]string{},
	}
}

func (f *fakeStore) UserBets(_ context.Context, email string) ([]store.Bet, error) {
	return f.bets[email], nil
}

func (f *fakeStore) PlaceBet(_ context.Context, b *store.Bet) error {
	f.bets[b.UserEmail] = append([]store.Bet{*b}, f.bets[b.UserEmail]...)
	f.credit(b.UserEmail, -b.Stake)
	return nil
}

func (f *fakeStore) DeleteBet(_ context.Context, email, betID string) (*store.Bet, error) {
	list := f.bets[email]
	for i, b := range list {
		if b.ID == betID {
			if b.Status == store.BetPending {
				f.credit(email, b.Stake)
			}
			f.bets[email] = append(list[:i], list[i+1:]...)
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) SettleUserBet(_ context.Context, email, betID string, status store.BetStatus, settledAt time.Time) (*store.Bet, error) {
	list := f.bets[email]
	for i := range list {
		if list[i].ID == betID {
			if list[i].Status != store.BetPending {
				return nil, store.ErrAlreadySettled
			}
			list[i].Status = status
			t := settledAt
			list[i].SettledAt = &t
			return &list[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) credit(email string, delta float64) float64 {
	if _, ok := f.bankrolls[email]; !ok {
		f.bankrolls[email] = store.InitialBankroll
	}
	f.bankrolls[email] += delta
	return f.bankrolls[email]
}

func (f *fakeStore) CreditUserBankroll(_ context.Context, email string, delta float64) (float64, error) {
	return f.credit(email, delta), nil
}

func (f *fakeStore) UserBankroll(_ context.Context, email string) (float64, error) {
	if v, ok := f.bankrolls[email]; ok {
		return v, nil
	}
	return store.InitialBankroll, nil
}

func (f *fakeStore) DropPendingBet(_ context.Context, betID string) error {
	f.dropped = append(f.dropped, betID)
	return nil
}

func (f *fakeStore) BankrollHistory(context.Context) ([]store.HistoryEntry, error) {
	return f.history, nil
}

func (f *fakeStore) Draft(context.Context) (json.RawMessage, error) {
	if f.draft == nil {
		return nil, store.ErrNotFound
	}
	return f.draft, nil
}

func (f *fakeStore) PublishDraft(_ context.Context, raw json.RawMessage) error {
	f.published = raw
	f.draft = nil
	return nil
}

func (f *fakeStore) TrackPendingPick(_ context.Context, p store.Pick) error {
	f.tracked = append(f.tracked, p)
	return nil
}

func (f *fakeStore) SavePushSubscription(_ context.Context, sub store.PushSubscription) error {
	f.pushSubs[sub.Email] = sub
	return nil
}

func (f *fakeStore) SiteStats(context.Context) (store.SiteStats, error) {
	return f.stats, nil
}

func (f *fakeStore) SaveCombine(_ context.Context, c store.Combine) error {
	f.combines = append([]store.Combine{c}, f.combines...)
	return nil
}

func (f *fakeStore) Combines(context.Context) ([]store.Combine, error) {
	return f.combines, nil
}

func (f *fakeStore) UpdateCombineStatus(_ context.Context, id string, status store.BetStatus) (*store.Combine, error) {
	for i := range f.combines {
		if f.combines[i].ID == id {
			f.combines[i].Status = status
			return &f.combines[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) DeleteCombine(_ context.Context, id string) error {
	for i := range f.combines {
		if f.combines[i].ID == id {
			f.combines = append(f.combines[:i], f.combines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) SaveSession(_ context.Context, token, email string) error {
	f.sessions[token] = email
	return nil
}

func (f *fakeStore) SessionEmail(_ context.Context, token string) (string, error) {
	email, ok := f.sessions[token]
	if !ok {
		return "", store.ErrNotFound
	}
	return email, nil
}

func (f *fakeStore) SaveInvite(_ context.Context, token string, _ time.Duration) error {
	f.invites[token] = true
	return nil
}

func (f *fakeStore) ConsumeInvite(_ context.Context, token string) error {
	if !f.invites[token] {
		return store.ErrNotFound
	}
	delete(f.invites, token)
	return nil
}

func (f *fakeStore) SaveUserPassword(_ context.Context, email, hash string) error {
	f.passwords[email] = hash
	return nil
}

func (f *fakeStore) UserPasswordHash(_ context.Context, email string) (string, error) {
	hash, ok := f.passwords[email]
	if !ok {
		return "", store.ErrNotFound
	}
	return hash, nil
}

type fakeReconciler struct{ log []string }

func (f *fakeReconciler) Run(context.Context) ([]string, error) { return f.log, nil }

type fakeGenerator struct{ summary *tipsgen.Summary }

func (f *fakeGenerator) GenerateDaily(context.Context) (*tipsgen.Summary, error) {
	return f.summary, nil
}

type fakeTelegram struct {
	messages []string
	mode     string
	photos   []string // nomes dos arquivos enviados
}

func (f *fakeTelegram) Publish(message string) (string, error) {
	f.messages = append(f.messages, message)
	return f.mode, nil
}

func (f *fakeTelegram) BroadcastPhoto(_ []byte, name, _ string) error {
	f.photos = append(f.photos, name)
	return nil
}

type fakeCombineGen struct {
	summary   *tipsgen.CombineSummary
	ran       bool
	lastForce bool
	lastClear bool
}

func (f *fakeCombineGen) Run(_ context.Context, force, clear bool) (*tipsgen.CombineSummary, error) {
	f.ran = true
	f.lastForce = force
	f.lastClear = clear
	return f.summary, nil
}

type fakeAnalyst struct {
	pronostic *tipsgen.Pronostic
	err       error
	lastMatch tipsgen.MatchRequest
}

func (f *fakeAnalyst) Analyze(_ context.Context, m tipsgen.MatchRequest) (*tipsgen.Pronostic, error) {
	f.lastMatch = m
	return f.pronostic, f.err
}

type fakeArchive struct {
	settled   []events.BetSettled
	lastLimit int
}

func (f *fakeArchive) RecentSettled(_ context.Context, limit int) ([]events.BetSettled, error) {
	f.lastLimit = limit
	return f.settled, nil
}

const adminSecret = "topsecret"

func newTestServer(fs *fakeStore) (*Server, *fakeReconciler, *fakeTelegram) {
	rec := &fakeReconciler{log: []string{"Aucun paris a verifier."}}
	tg := &fakeTelegram{mode: "Markdown"}
	gen := &fakeGenerator{summary: &tipsgen.Summary{Status: "success"}}
	cmb := &fakeCombineGen{summary: &tipsgen.CombineSummary{Message: "2 combinés générés avec les vrais matchs du jour"}}
	an := &fakeAnalyst{}
	authSvc := auth.NewService(fs, adminSecret)
	arq := &fakeArchive{}
	return NewServer(zap.NewNop(), fs, authSvc, rec, gen, cmb, an, tg, arq, adminSecret), rec, tg
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, h http.Handler, email string) *http.Cookie {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: adminSecret})
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("session cookie não emitido")
	return nil
}

func TestLogin(t *testing.T) {
	fs := newFakeStore()
	srv, _, _ := newTestServer(fs)
	h := srv.Router()

	t.Run("master password abre sessão admin", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "Admin@Example.com", Password: adminSecret})
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsAdmin)
		assert.Equal(t, "admin@example.com", resp.Email)
	})

	t.Run("senha errada devolve 401", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "x@y.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegisterInvite(t *testing.T) {
	fs := newFakeStore()
	fs.invites["inv-1"] = true
	srv, _, _ := newTestServer(fs)
	h := srv.Router()

	t.Run("convite válido registra e abre sessão", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/register-invite",
			dto.RegisterInviteRequest{Invite: "inv-1", Email: "new@user.com", Password: "secret7"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, fs.passwords["new@user.com"])
	})

	t.Run("convite já consumido devolve 401", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/register-invite",
			dto.RegisterInviteRequest{Invite: "inv-1", Email: "other@user.com", Password: "secret7"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBetsEndpointsRequireSession(t *testing.T) {
	fs := newFakeStore()
	srv, _, _ := newTestServer(fs)
	h := srv.Router()

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete} {
		w := doJSON(t, h, method, "/user/bets", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, method)
	}
}

func TestPlaceAndListBets(t *testing.T) {
	fs := newFakeStore()
	srv, _, _ := newTestServer(fs)
	h := srv.Router()
	cookie := loginAs(t, h, "alice@example.com")

	w := doJSON(t, h, http.MethodPost, "/user/bets", dto.PlaceBetRequest{
		HomeTeam: "PSG", AwayTeam: "Lens", Market: "1N2", Selection: "PSG",
		Odds: 1.8, Stake: 10,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var placed dto.PlaceBetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.NotEmpty(t, placed.Bet.ID)
	assert.Equal(t, store.BetPending, placed.Bet.Status)
	assert.Equal(t, 18.0, placed.Bet.PotentialWin)

	// a mise é reservada na criação
	w = doJSON(t, h, http.MethodGet, "/user/bets", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.UserBetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 90.0, list.Bankroll)
	assert.Equal(t, 1, list.Stats.Pending)
	assert.Equal(t, 0.0, list.Stats.Profit, "pari pendente não conta no profit")
}

func TestPlaceBetDefaults(t *testing.T) {
	fs := newFakeStore()
	srv, _, _ := newTestServer(fs)
	h := srv.Router()
	cookie := loginAs(t, h, "alice@example.com")

	w := doJSON(t, h, http.MethodPost, "/user/bets", dto.PlaceBetRequest{HomeTeam: "A", AwayTeam: "B"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var placed dto.PlaceBetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Equal(t, 1.5, placed.Bet.Odds)
	assert.Equal(t, 5.0, placed.Bet.Stake)
}

func TestManualSettle(t *testing.T) {
	fs := newFakeStore()
	fs.bets["alice@example.com"] = []store.Bet{{
		ID: "b-1", UserEmail: "alice@example.com", Stake: 10, Odds: 2.0,
		PotentialWin: 20, Status: store.BetPending,
	}}
	fs.bankrolls["alice@example.com"] = 90
	srv, _, _ := newTestServer(fs)
	h := srv.Router()
	cookie := loginAs(t, h, "alice@example.com")

	t.Run("won credita o potentialWin e remove o marker", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPatch, "/user/bets",
			dto.UpdateBetRequest{BetID: "b-1", Status: store.BetWon}, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 110.0, fs.bankrolls["alice@example.com"])
		assert.Contains(t, fs.dropped, "b-1")
	})

	t.Run("re-liquidar o mesmo pari não credita de novo", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPatch, "/user/bets",
			dto.UpdateBetRequest{BetID: "b-1", Status: store.BetWon}, cookie)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 110.0, fs.bankrolls["alice@example.com"])
	})

	t.Run("pari liquidado não vira won depois de lost", func(t *testing.T) {
		fs.bets["alice@example.com"] = append(fs.bets["alice@example.com"], store.Bet{
			ID: "b-2", UserEmail: "alice@example.com", Stake: 10, Odds: 2.0,
			PotentialWin: 20, Status: store.BetLost,
		})
		w := doJSON(t, h, http.MethodPatch, "/user/bets",
			dto.UpdateBetRequest{BetID: "b-2", Status: store.BetWon}, cookie)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 110.0, fs.bankrolls["alice@example.com"])
		assert.Equal(t, store.BetLost, fs.bets["alice@example.com"][1].Status)
	})

	t.Run("status fora do ciclo devolve 400", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPatch, "/user/bets",
			dto.UpdateBetRequest{BetID: "b-1", Status: store.BetPending}, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pari inexistente devolve 404", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPatch, "/user/bets",
			dto.UpdateBetRequest{BetID: "ghost", Status: store.BetWon}, cookie)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteBetRefundsPending(t *testing.T) {
	fs := newFakeStore()
	fs.bets["alice@example.com"] = []store.Bet{{
		ID: "b-1", UserEmail: "alice@example.com", Stake: 10, Status: store.BetPending,
	}}
	fs.bankrolls["alice@example.com"] = 90
	srv, _, _ := newTestServer(fs)
	h := srv.Router()
	cookie := loginAs(t, h, "alice@example.com")

	w := doJSON(t, h, http.MethodDelete, "/user/bets", dto.DeleteBetRequest{BetID: "b-1"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100.0, fs.bankrolls["alice@example.com"])
	assert.Empty(t, fs.bets["alice@example.com"])
}

func TestKellySuggestion(t *testing.T) {
	fs := newFakeStore()
	fs.bankrolls["alice@example.com"] = 100
	srv, _, _ := newTestServer(fs)
	h := srv.Router()
	cookie := loginAs(t, h, "alice@example.com")

	w := doJSON(t, h, http.MethodGet, "/user/bets/kelly?probability=60&odds=2.0", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.KellySuggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.Bankroll)
	assert.Equal(t, 5.0, resp.Stake)

	w = doJSON(t, h, http.MethodGet, "/user/bets/kelly?probability=abc&odds=2.0", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCronEndpointsGatedByKey(t *testing.T) {
	fs := newFakeStore()
	srv, rec, _ := newTestServer(fs)
	h := srv.Router()

	t.Run("sem chave devolve 401", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/cron/check-results", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("chave errada devolve 401", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/cron/check-results?key=wrong", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("chave certa roda o ciclo", func(t *testing.T) {
		rec.log = []string{"GAGNE: Lyon vs Nice | Over 2.5 buts (+5.00)"}
		w := doJSON(t, h, http.MethodGet, "/cron/check-results?key="+adminSecret, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.SettlementResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, rec.log, resp.Log)
	})

	t.Run("geração diária também é gateada", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/cron/daily", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		w = doJSON(t, h, http.MethodGet, "/cron/daily?key="+adminSecret, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPublishFlow(t *testing.T) {
	fs := newFakeStore()
	draft := tipsgen.Draft{
		VIP: &tipsgen.DraftPick{
			Match: "Real Madrid vs City", Pari: "Over 2.5 buts", Cote: 1.9,
			League: "Champions League", FixtureID: 9001,
		},
		Free: []tipsgen.DraftPick{
			{Match: "Lyon vs Nice", Pari: "BTTS oui", Cote: 1.7, Confiance: "Ultra-Safe", FixtureID: 9002},
			{Match: "Sans fixture", Pari: "1N2", Cote: 2.0},
		},
	}
	raw, err := json.Marshal(draft)
	require.NoError(t, err)
	fs.draft = raw

	srv, _, tg := newTestServer(fs)
	h := srv.Router()

	t.Run("segredo errado devolve 401", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/admin/publish",
			dto.PublishRequest{Secret: "wrong", Message: "..."})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, tg.messages)
	})

	t.Run("publica, envia no Telegram e registra os markers", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/admin/publish",
			dto.PublishRequest{Secret: adminSecret, Message: "Pronostics du jour"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.PublishResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Markdown", resp.Mode)

		assert.Equal(t, []string{"Pronostics du jour"}, tg.messages)
		assert.NotNil(t, fs.published)
		assert.Nil(t, fs.draft)

		// pick sem fixture id não vira marker
		require.Len(t, fs.tracked, 2)
		assert.True(t, fs.tracked[0].IsVIP)
		assert.Equal(t, 8.0, fs.tracked[0].Staking.Percentage)
		assert.Equal(t, 3.0, fs.tracked[1].Staking.Percentage)
	})

	t.Run("sem rascunho devolve 404", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/admin/publish",
			dto.PublishRequest{Secret: adminSecret, Message: "again"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBankrollHistoryPublic(t *testing.T) {
	fs := newFakeStore()
	fs.history = []store.HistoryEntry{
		{Date: "2026-08-28", Bankroll: 100},
		{Date: "2026-08-29", Bankroll: 105},
	}
	srv, _, _ := newTestServer(fs)
	h := srv.Router()

	w := doJSON(t, h, http.MethodGet, "/stats/bankroll", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                 `json:"success"`
		History []store.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, fs.history, resp.History)
}

func TestSubscribePush(t *testing.T) {
	fs := newFakeStore()
	srv, _, _ := newTestServer(fs)
	h := srv.Router()
	cookie := loginAs(t, h, "alice@example.com")

	w := doJSON(t, h, http.MethodPost, "/push/subscribe", dto.SubscribeRequest{
		Subscription: store.WebPushEndpoint{
			Endpoint: "https://push.example.com/abc",
			Keys:     store.SubscriptionKeys{P256dh: "pk", Auth: "au"},
		},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	sub, ok := fs.pushSubs["alice@example.com"]
	require.True(t, ok)
	assert.True(t, sub.IsActive)
	assert.Equal(t, "https://push.example.com/abc", sub.Subscription.Endpoint)

	t.Run("inscrição sem endpoint devolve 400", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/push/subscribe", dto.SubscribeRequest{}, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecentSettledGatedByKey(t *testing.T) {
	fs := newFakeStore()
	srv, _, _ := newTestServer(fs)
	arq := srv.archive.(*fakeArchive)
	arq.settled = []events.BetSettled{{BetID: "b-1", Result: "WON"}}
	h := srv.Router()

	w := doJSON(t, h, http.MethodGet, "/admin/settled", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodGet, "/admin/settled?key="+adminSecret+"&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, arq.lastLimit)

	var resp struct {
		Success bool                `json:"success"`
		Settled []events.BetSettled `json:"settled"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Settled, 1)
	assert.Equal(t, "b-1", resp.Settled[0].BetID)
}

func TestComputeStats(t *testing.T) {
	bets := []store.Bet{
		{Status: store.BetWon, Stake: 10, PotentialWin: 18},
		{Status: store.BetWon, Stake: 5, PotentialWin: 15},
		{Status: store.BetLost, Stake: 10},
		{Status: store.BetPending, Stake: 20},
	}
	st := computeStats(bets)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.Won)
	assert.Equal(t, 1, st.Lost)
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 67, st.WinRate)
	assert.Equal(t, 8.0, st.Profit)
}
