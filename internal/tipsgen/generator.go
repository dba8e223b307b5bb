package tipsgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/football"
)

// Ligas usadas na escolha do match VIP, em ordem de prioridade.
const (
	leagueChampions = 2
	leagueEuropa    = 3
	leaguePremier   = 39
)

// Fixtures lista os matchs reais do dia. Política zero-fake-data: sem match
// real, o rascunho sai vazio. Nunca se inventa um match.
type Fixtures interface {
	FixturesByDate(ctx context.Context, date string, leagueIDs string) ([]football.Fixture, error)
}

// Analyst gera o rascunho em JSON estrito (Groq, modo json_object).
type Analyst interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

// Researcher enriquece a análise com fatos ao vivo (Perplexity). Opcional.
type Researcher interface {
	Ask(ctx context.Context, system, prompt string) (string, error)
}

// Drafts persiste o rascunho gerado.
type Drafts interface {
	SaveDraft(ctx context.Context, raw json.RawMessage) error
}

// Generator monta o pronóstico diário: fixtures reais -> pesquisa opcional ->
// geração JSON -> rascunho no store, aguardando revisão do admin.
type Generator struct {
	log        *zap.Logger
	fixtures   Fixtures
	analyst    Analyst
	researcher Researcher
	drafts     Drafts
	leagueIDs  string

	now func() time.Time
}

func NewGenerator(log *zap.Logger, fx Fixtures, analyst Analyst, researcher Researcher, drafts Drafts, leagueIDs string) *Generator {
	return &Generator{
		log:        log,
		fixtures:   fx,
		analyst:    analyst,
		researcher: researcher,
		drafts:     drafts,
		leagueIDs:  leagueIDs,
		now:        time.Now,
	}
}

// GenerateDaily executa o job do dia para hoje e amanhã.
func (g *Generator) GenerateDaily(ctx context.Context) (*Summary, error) {
	today := g.now()
	dates := []string{
		today.Format("2006-01-02"),
		today.AddDate(0, 0, 1).Format("2006-01-02"),
	}
	return g.Generate(ctx, dates)
}

// Generate executa o job para um conjunto explícito de datas.
func (g *Generator) Generate(ctx context.Context, dates []string) (*Summary, error) {
	var all []football.Fixture
	for _, date := range dates {
		fixtures, err := g.fixtures.FixturesByDate(ctx, date, g.leagueIDs)
		if err != nil {
			g.log.Warn("fixtures fetch failed", zap.String("date", date), zap.Error(err))
			continue
		}
		all = append(all, fixtures...)
	}
	g.log.Info("fixtures fetched", zap.Int("total", len(all)), zap.Strings("dates", dates))

	if len(all) == 0 {
		if err := g.saveNoMatchDraft(ctx, dates, "le provedor n'a retourné aucun match pour ces dates"); err != nil {
			return nil, err
		}
		return &Summary{DatesChecked: dates, Status: "no_matches"}, nil
	}

	vip := pickVIPMatch(all)
	vipTitle := vip.HomeTeam + " vs " + vip.AwayTeam
	g.log.Info("vip match selected", zap.String("match", vipTitle), zap.String("league", vip.LeagueName))

	research := g.research(ctx, vipTitle, vip.LeagueName)

	content, err := g.analyst.GenerateJSON(ctx, buildSystemPrompt(all, vip, research), userPrompt)
	if err != nil {
		g.saveErrorDraft(ctx, dates, "échec génération IA")
		return nil, fmt.Errorf("generate analysis: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		g.saveErrorDraft(ctx, dates, "erreur parsing JSON IA")
		return nil, fmt.Errorf("parse analysis JSON: %w", err)
	}

	draft.PerplexityAnalysis = research
	draft.Meta = DraftMeta{
		GeneratedAt:    g.now(),
		DatesChecked:   dates,
		MatchesFound:   len(all),
		VIPMatch:       vipTitle,
		VIPLeague:      vip.LeagueName,
		PerplexityUsed: research != "",
		Status:         "success",
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	if err := g.drafts.SaveDraft(ctx, raw); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	return &Summary{
		DatesChecked:   dates,
		MatchesFound:   len(all),
		VIPMatch:       vipTitle,
		VIPLeague:      vip.LeagueName,
		PerplexityUsed: research != "",
		Status:         "success",
	}, nil
}

// pickVIPMatch escolhe o destaque do dia: LDC > Europa > Premier League >
// primeiro match disponível.
func pickVIPMatch(all []football.Fixture) football.Fixture {
	for _, leagueID := range []int{leagueChampions, leagueEuropa, leaguePremier} {
		for _, fx := range all {
			if fx.LeagueID == leagueID {
				return fx
			}
		}
	}
	return all[0]
}

func (g *Generator) research(ctx context.Context, vipTitle, league string) string {
	if g.researcher == nil {
		return ""
	}
	query := fmt.Sprintf(`Analyse le match de football %s (%s).
Donne-moi uniquement des FAITS VÉRIFIABLES:
1. Les joueurs blessés ou suspendus majeurs des deux équipes
2. La forme récente des équipes (5 derniers matchs)
3. Un avis sur le pronostic le plus sûr (Over 2.5, BTTS, ou résultat)
Réponds en 3-4 phrases maximum, sans inventer d'informations.`, vipTitle, league)

	out, err := g.researcher.Ask(ctx,
		"Tu es un expert en football. Réponds de manière précise et concise avec uniquement des faits vérifiables. Si tu ne connais pas une information, dis-le.",
		query)
	if err != nil {
		g.log.Warn("perplexity research skipped", zap.Error(err))
		return ""
	}
	return out
}

const userPrompt = "Génère l'analyse du jour au format JSON. Utilise UNIQUEMENT les matchs de la liste fournie."

func buildSystemPrompt(all []football.Fixture, vip football.Fixture, research string) string {
	type promptMatch struct {
		ID     int    `json:"id"`
		Teams  string `json:"teams"`
		League string `json:"league"`
		Date   string `json:"date"`
	}
	limit := len(all)
	if limit > 5 {
		limit = 5
	}
	list := make([]promptMatch, 0, limit)
	for _, fx := range all[:limit] {
		list = append(list, promptMatch{
			ID:     fx.ID,
			Teams:  fx.HomeTeam + " vs " + fx.AwayTeam,
			League: fx.LeagueName,
			Date:   fx.Date,
		})
	}
	listJSON, _ := json.MarshalIndent(list, "", "  ")

	vipTitle := vip.HomeTeam + " vs " + vip.AwayTeam
	researchLine := "Pas d'analyse Perplexity disponible"
	if research != "" {
		researchLine = "ANALYSE PERPLEXITY (blessures, forme): " + research
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Tu es un expert en paris sportifs professionnels. Tu dois générer une analyse quotidienne au format JSON STRICT.

IMPORTANT: Tu dois UNIQUEMENT utiliser les matchs fournis ci-dessous. N'invente AUCUN match.

MATCHS DISPONIBLES (DONNÉES RÉELLES):
%s

MATCH VIP SÉLECTIONNÉ: %s
%s

RÈGLES STRICTES:
1. Utilise UNIQUEMENT les matchs de la liste ci-dessus
2. Le VIP doit avoir une cote réaliste entre 1.50 et 2.00
3. Les free picks doivent avoir des cotes entre 1.80 et 2.50
4. L'analyse doit être factuelle et professionnelle
5. Ne propose PAS de matchs qui ne sont pas dans la liste

FORMAT JSON OBLIGATOIRE:
{
  "intro": "Introduction de 2-3 phrases sur la journée de football",
  "vip": {
    "match": "%s",
    "pari": "Type de pari (Over 2.5, BTTS, 1X, etc.)",
    "confiance": "Safe ou Ultra-Safe",
    "analyse": "Explication en 2-3 phrases",
    "cote": 1.75,
    "league": "%s",
    "fixture_id": %d
  },
  "free": [
    {"match": "...", "pari": "...", "analyse": "...", "cote": 1.9, "league": "...", "fixture_id": 0}
  ]
}`, listJSON, vipTitle, researchLine, vipTitle, vip.LeagueName, vip.ID)
	return b.String()
}

func (g *Generator) saveNoMatchDraft(ctx context.Context, dates []string, reason string) error {
	draft := Draft{
		Intro: "Aucun match des grandes ligues européennes n'est programmé aujourd'hui. Revenez demain pour de nouvelles analyses !",
		Free:  []DraftPick{},
		Meta: DraftMeta{
			GeneratedAt:  g.now(),
			DatesChecked: dates,
			Status:       "no_matches",
			Reason:       reason,
		},
	}
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return g.drafts.SaveDraft(ctx, raw)
}

// saveErrorDraft é best-effort: a falha original já vai ser propagada.
func (g *Generator) saveErrorDraft(ctx context.Context, dates []string, message string) {
	draft := Draft{
		Intro: "Une erreur technique s'est produite lors de la génération. Veuillez réessayer.",
		Free:  []DraftPick{},
		Error: message,
		Meta: DraftMeta{
			GeneratedAt:  g.now(),
			DatesChecked: dates,
			Status:       "error",
		},
	}
	raw, merr := json.Marshal(draft)
	if merr != nil {
		return
	}
	if err := g.drafts.SaveDraft(ctx, raw); err != nil {
		g.log.Warn("save error draft", zap.Error(err))
	}
}
