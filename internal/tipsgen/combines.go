package tipsgen

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/bankroll"
	"github.com/pronosport/tips-platform/internal/football"
	"github.com/pronosport/tips-platform/internal/store"
)

// Ligas elegíveis para os combinés, bem mais largas que as do pick VIP.
// Id desconhecido usa o nome que o provedor devolve.
var combineLeagues = map[int]string{
	61: "Ligue 1", 39: "Premier League", 140: "La Liga", 135: "Serie A", 78: "Bundesliga",
	2: "Champions League", 3: "Europa League", 848: "Conference League",
	88: "Eredivisie", 94: "Primeira Liga", 144: "Jupiler Pro League", 203: "Super Lig",
	62: "Ligue 2", 40: "Championship", 141: "La Liga 2", 136: "Serie B",
	179: "Scottish Premiership", 197: "Super League Grèce", 218: "Tippeligaen",
	66: "Coupe de France", 45: "FA Cup", 143: "Copa del Rey",
}

var safePronos = []string{
	"Plus de 1.5 buts",
	"Double chance 1X",
	"Double chance X2",
	"Plus de 0.5 buts 1ère MT",
}

var funPronos = []string{
	"Plus de 2.5 buts",
	"Les deux équipes marquent",
	"Plus de 3.5 buts",
	"Victoire domicile",
}

var safeAnalyses = []string{
	"Combiné sécurisé basé sur les statistiques récentes. Ces équipes affichent une constance remarquable. Probabilité de réussite estimée à 75%+.",
	"Sélection prudente avec des matchs où les stats sont en notre faveur. Confiance élevée sur ce ticket.",
	"Analyse Perplexity AI : Les tendances actuelles convergent vers ce combiné. Risque maîtrisé.",
}

var funAnalyses = []string{
	"Combiné à forte cote pour les amateurs de sensations ! Ces matchs ont le potentiel d'offrir du spectacle.",
	"Sélection audacieuse mais réfléchie. Mise raisonnable conseillée pour maximiser le fun.",
	"Analyse Perplexity AI : Combiné risqué mais les conditions sont réunies pour une belle surprise.",
}

// DayFixtures lista todos os matchs de uma data, sem filtro de liga.
type DayFixtures interface {
	FixturesOfDay(ctx context.Context, date string) ([]football.Fixture, error)
}

// CombineStore persiste os tickets e o carimbo de geração diária.
type CombineStore interface {
	SaveCombine(ctx context.Context, c store.Combine) error
	CombinesGeneratedOn(ctx context.Context) (string, error)
	MarkCombinesGenerated(ctx context.Context, day string) error
	ClearCombines(ctx context.Context) (int, error)
}

// CombineSummary é o retorno do endpoint de geração de combinés.
type CombineSummary struct {
	Generated        []store.Combine `json:"combines"`
	MatchesAvailable int             `json:"matchesAvailable"`
	Skipped          bool            `json:"skipped,omitempty"`
	Cleared          int             `json:"cleared,omitempty"`
	Message          string          `json:"message"`
}

// CombineGenerator monta os dois tickets do dia (safe de 2 pernas, fun de 3)
// sobre matchs reais ainda não começados. Só os matchs são reais: pronos,
// cotes e análises são sorteados das tabelas fixas, como no produto.
type CombineGenerator struct {
	log      *zap.Logger
	fixtures DayFixtures
	store    CombineStore

	rng *rand.Rand
	now func() time.Time
}

func NewCombineGenerator(log *zap.Logger, fx DayFixtures, st CombineStore) *CombineGenerator {
	return &CombineGenerator{
		log:      log,
		fixtures: fx,
		store:    st,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Run executa a geração do dia. force regenera mesmo se já rodou hoje; clear
// apaga os tickets anteriores antes.
func (g *CombineGenerator) Run(ctx context.Context, force, clear bool) (*CombineSummary, error) {
	summary := &CombineSummary{}

	if clear {
		n, err := g.store.ClearCombines(ctx)
		if err != nil {
			return nil, fmt.Errorf("clear combines: %w", err)
		}
		summary.Cleared = n
		g.log.Info("combinés anciens supprimés", zap.Int("count", n))
	}

	today := g.now().Format("2006-01-02")
	lastGen, err := g.store.CombinesGeneratedOn(ctx)
	if err != nil {
		return nil, err
	}
	if lastGen == today && !force && !clear {
		summary.Skipped = true
		summary.Message = "Combinés déjà générés aujourd'hui. Ajoute ?force=true pour regénérer."
		return summary, nil
	}

	fixtures, err := g.fixtures.FixturesOfDay(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}

	matches := upcomingMatches(fixtures)
	summary.MatchesAvailable = len(matches)
	if len(matches) == 0 {
		summary.Message = "Aucun match à venir aujourd'hui"
		return summary, nil
	}

	for _, kind := range []string{"safe", "fun"} {
		combine := g.buildCombine(matches, kind)
		if combine == nil {
			continue
		}
		if err := g.store.SaveCombine(ctx, *combine); err != nil {
			return nil, fmt.Errorf("save combine: %w", err)
		}
		summary.Generated = append(summary.Generated, *combine)
	}

	if err := g.store.MarkCombinesGenerated(ctx, today); err != nil {
		g.log.Warn("combines generation stamp failed", zap.Error(err))
	}

	summary.Message = fmt.Sprintf("%d combinés générés avec les vrais matchs du jour", len(summary.Generated))
	g.log.Info("combinés générés",
		zap.Int("combines", len(summary.Generated)),
		zap.Int("matches", len(matches)))
	return summary, nil
}

// upcomingMatches filtra os matchs ainda não começados (NS) e congela as
// pernas candidatas.
func upcomingMatches(fixtures []football.Fixture) []store.CombineMatch {
	out := make([]store.CombineMatch, 0, len(fixtures))
	for _, fx := range fixtures {
		if fx.Status != "NS" {
			continue
		}
		league := combineLeagues[fx.LeagueID]
		if league == "" {
			league = fx.LeagueName
		}
		heure := ""
		if t, err := time.Parse(time.RFC3339, fx.Date); err == nil {
			heure = t.Format("15:04")
		}
		out = append(out, store.CombineMatch{
			Equipe1:     fx.HomeTeam,
			Equipe2:     fx.AwayTeam,
			Competition: league,
			Heure:       heure,
		})
	}
	return out
}

func (g *CombineGenerator) buildCombine(matches []store.CombineMatch, kind string) *store.Combine {
	if len(matches) == 0 {
		return nil
	}

	legs := 2
	pronos, analyses, mise := safePronos, safeAnalyses, 20.0
	if kind == "fun" {
		legs = 3
		pronos, analyses, mise = funPronos, funAnalyses, 10.0
	}
	if legs > len(matches) {
		legs = len(matches)
	}

	shuffled := make([]store.CombineMatch, len(matches))
	copy(shuffled, matches)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cote := 1.0
	selected := make([]store.CombineMatch, legs)
	for i := 0; i < legs; i++ {
		leg := shuffled[i]
		leg.Prono = pronos[g.rng.Intn(len(pronos))]
		selected[i] = leg

		if kind == "safe" {
			cote *= 1.25 + g.rng.Float64()*0.35
		} else {
			cote *= 1.50 + g.rng.Float64()*0.70
		}
	}

	now := g.now()
	title := "Combiné Safe - " + now.Format("2 January")
	if kind == "fun" {
		title = "Combiné Fun - " + now.Format("2 January")
	}

	return &store.Combine{
		ID:        uuid.NewString(),
		Type:      kind,
		Title:     title,
		Cote:      bankroll.Round2(cote),
		Mise:      mise,
		Matches:   selected,
		Status:    store.BetPending,
		CreatedAt: now,
		Analysis:  analyses[g.rng.Intn(len(analyses))],
	}
}
