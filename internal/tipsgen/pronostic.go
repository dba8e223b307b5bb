package tipsgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// MatchRequest identifica o match a analisar sob demanda.
type MatchRequest struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	League   string `json:"league"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Venue    string `json:"stade"`
}

// Pronostic é a análise completa de um match: contexto, probabilidades e os
// dois tickets sugeridos. As seções ficam opacas para a API; o front é quem
// as renderiza.
type Pronostic struct {
	Analysis    json.RawMessage `json:"analysis"`
	Predictions json.RawMessage `json:"predictions"`
	VIPTickets  json.RawMessage `json:"vip_tickets"`
}

// ErrBadAnalysis indica resposta do modelo sem o JSON esperado.
var ErrBadAnalysis = errors.New("analysis reply unusable")

// DeepResearcher é a busca ao vivo com orçamento grande (sonar-pro).
type DeepResearcher interface {
	AskDeep(ctx context.Context, system, prompt string) (string, error)
}

// MatchAnalyst gera a análise sob demanda de um match, fora do ciclo diário.
type MatchAnalyst struct {
	log        *zap.Logger
	researcher DeepResearcher
}

func NewMatchAnalyst(log *zap.Logger, r DeepResearcher) *MatchAnalyst {
	return &MatchAnalyst{log: log, researcher: r}
}

const pronosticSystemPrompt = `Tu es l'Analyste Senior d'un service de pronostics football professionnels.

## TA MÉTHODOLOGIE STRICTE :

### 1. DEEP RESEARCH (Recherche en temps réel)
- Absents confirmés (blessures, suspensions, choix tactiques)
- Forme récente des 2 équipes (5 derniers matchs toutes compétitions)
- Arbitre désigné, météo, contexte du match

### 2. ANALYSE STATISTIQUE
- xG des 2 équipes sur les 10 derniers matchs
- Stats H2H des 5 dernières confrontations
- Statistiques domicile/extérieur

### 3. VALUE BETTING
- Calcule les probabilités réelles pour chaque issue (1/N/2)
- fair_odds = 100 / probability_percent

### 4. GÉNÉRATION DE TICKETS
- TICKET SAFE (bankroll 5%): confiance minimum 70%, cote minimum 1.60
- TICKET FUN (bankroll 1-2%): value détectée, cote minimum 2.00

## FORMAT DE RÉPONSE OBLIGATOIRE

Réponds UNIQUEMENT avec un objet JSON valide, sans aucun texte autour.
Structure exacte :

{
  "analysis": {
    "context": "...",
    "key_stats": [{"label": "...", "value": "...", "impact": "positive"}],
    "missing_players": [{"team": "...", "player": "...", "importance": "High"}],
    "weather": "...",
    "referee_tendency": "...",
    "home_team_stats": {"attack": 0, "defense": 0, "form": 0, "morale": 0, "h2h": 0},
    "away_team_stats": {"attack": 0, "defense": 0, "form": 0, "morale": 0, "h2h": 0},
    "h2h_history": {"results": ["W","D","L","W","W"], "home_wins": 0, "draws": 0, "away_wins": 0}
  },
  "predictions": {
    "main_market": {"selection": "1", "probability_percent": 0, "fair_odds": 0},
    "score_exact": "0-0",
    "btts_prob": 0,
    "over_2_5_prob": 0
  },
  "vip_tickets": {
    "safe": {"market": "...", "selection": "...", "odds_estimated": 0, "confidence": 0, "reason": "...", "bankroll_percent": 5},
    "fun": {"market": "...", "selection": "...", "odds_estimated": 0, "ev_value": 0, "risk_analysis": "...", "bankroll_percent": 2}
  }
}

Si tu ne trouves pas d'info sur les absents, mets un tableau vide. Sois honnête sur le niveau de confiance.`

// Analyze pesquisa e analisa o match. O JSON do modelo é extraído mesmo se
// vier cercado de texto ou code fences.
func (a *MatchAnalyst) Analyze(ctx context.Context, m MatchRequest) (*Pronostic, error) {
	venue := m.Venue
	if venue == "" {
		venue = "Stade non spécifié"
	}
	prompt := fmt.Sprintf(`Analyse ce match de football et génère un pronostic complet :

**MATCH**
%s (Domicile) vs %s (Extérieur)

**COMPÉTITION**
%s

**DATE & HEURE**
%s à %s

**LIEU**
%s

---

INSTRUCTIONS :
1. Recherche les dernières vraies infos sur ce match (absents, forme, stats)
2. Calcule les probabilités réelles
3. Génère les tickets SAFE et FUN selon la méthodologie
4. Réponds UNIQUEMENT avec le JSON, sans aucun texte autour`,
		m.HomeTeam, m.AwayTeam, m.League, m.Date, m.Time, venue)

	reply, err := a.researcher.AskDeep(ctx, pronosticSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("match analysis: %w", err)
	}

	raw := extractJSONObject(reply)
	if raw == "" {
		a.log.Warn("analysis reply without JSON", zap.String("match", m.HomeTeam+" vs "+m.AwayTeam))
		return nil, ErrBadAnalysis
	}

	var p Pronostic
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAnalysis, err)
	}
	if len(p.Analysis) == 0 || len(p.Predictions) == 0 || len(p.VIPTickets) == 0 {
		return nil, fmt.Errorf("%w: structure incomplète", ErrBadAnalysis)
	}
	return &p, nil
}

// extractJSONObject tira code fences e recorta do primeiro { ao último },
// devolvendo vazio se não houver objeto.
func extractJSONObject(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first < 0 || last <= first {
		return ""
	}
	return s[first : last+1]
}
