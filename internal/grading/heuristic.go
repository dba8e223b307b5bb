package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/store"
)

// Asker é o provedor de verificação em linguagem natural (Perplexity com
// busca ao vivo).
type Asker interface {
	Ask(ctx context.Context, system, prompt string) (string, error)
}

// HeuristicGrader verifica paris de usuário perguntando ao modelo pelo
// resultado real do match. O veredito é consultivo, não autoritativo: qualquer
// falha (rede, chave ausente, JSON ilegível, valor desconhecido) degrada para
// PENDING e o item fica para o próximo ciclo.
type HeuristicGrader struct {
	llm Asker
	log *zap.Logger
}

func NewHeuristicGrader(llm Asker, log *zap.Logger) *HeuristicGrader {
	return &HeuristicGrader{llm: llm, log: log}
}

// jsonObject localiza o primeiro objeto JSON dentro de texto arbitrário.
var jsonObject = regexp.MustCompile(`\{[^}]+\}`)

// Verify devolve sempre um veredito utilizável: qualquer falha degrada para
// PENDING, com o erro retornado junto para o chamador registrar.
func (h *HeuristicGrader) Verify(ctx context.Context, bet *store.Bet) (Result, error) {
	prompt := fmt.Sprintf(`Tu es un expert en paris sportifs. Verifie si ce pari est gagne ou perdu.

Match: %s vs %s
Date du match: %s
Type de pari: %s
Selection: %s

Recherche le resultat reel du match et determine si le pari est gagne ou perdu.
IMPORTANT: Reponds UNIQUEMENT avec un JSON valide, sans texte avant ou apres:
{"result": "WON"} si le pari est gagne
{"result": "LOST"} si le pari est perdu
{"result": "PENDING"} si le match n'est pas encore termine ou si tu ne trouves pas l'information`,
		bet.HomeTeam, bet.AwayTeam, bet.Date, bet.Market, bet.Selection)

	content, err := h.llm.Ask(ctx, "", prompt)
	if err != nil {
		h.log.Warn("heuristic verification failed",
			zap.String("betId", bet.ID),
			zap.Error(err),
		)
		return Pending, fmt.Errorf("verify bet %s: %w", bet.ID, err)
	}

	raw := jsonObject.FindString(content)
	if raw == "" {
		h.log.Warn("no JSON object in verification reply", zap.String("betId", bet.ID))
		return Pending, nil
	}

	var parsed struct {
		Result Result `json:"result"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		h.log.Warn("unparsable verification reply", zap.String("betId", bet.ID), zap.Error(err))
		return Pending, nil
	}
	if !parsed.Result.Valid() {
		return Pending, nil
	}
	return parsed.Result, nil
}
