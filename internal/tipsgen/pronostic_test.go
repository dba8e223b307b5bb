package tipsgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDeepResearcher struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeDeepResearcher) AskDeep(_ context.Context, _, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

const goodPronosticJSON = `{
	"analysis": {"context": "derby tendu, forme équilibrée"},
	"predictions": {"score_exact": "2-1", "btts_prob": 62},
	"vip_tickets": {"safe": {"selection": "1X", "bankroll_percent": 5}}
}`

func TestMatchAnalyst(t *testing.T) {
	match := MatchRequest{
		HomeTeam: "Lyon", AwayTeam: "Nice", League: "Ligue 1",
		Date: "2026-08-30", Time: "21:00",
	}

	t.Run("JSON limpo é parseado", func(t *testing.T) {
		r := &fakeDeepResearcher{reply: goodPronosticJSON}
		a := NewMatchAnalyst(zap.NewNop(), r)

		p, err := a.Analyze(context.Background(), match)
		require.NoError(t, err)
		assert.Contains(t, string(p.Analysis), "derby tendu")
		assert.Contains(t, string(p.Predictions), "2-1")
		assert.Contains(t, r.lastPrompt, "Lyon (Domicile) vs Nice (Extérieur)")
	})

	t.Run("JSON dentro de code fences é extraído", func(t *testing.T) {
		r := &fakeDeepResearcher{reply: "```json\n" + goodPronosticJSON + "\n```"}
		a := NewMatchAnalyst(zap.NewNop(), r)

		p, err := a.Analyze(context.Background(), match)
		require.NoError(t, err)
		assert.Contains(t, string(p.VIPTickets), "1X")
	})

	t.Run("resposta sem JSON devolve ErrBadAnalysis", func(t *testing.T) {
		r := &fakeDeepResearcher{reply: "Je ne peux pas analyser ce match."}
		a := NewMatchAnalyst(zap.NewNop(), r)

		_, err := a.Analyze(context.Background(), match)
		require.ErrorIs(t, err, ErrBadAnalysis)
	})

	t.Run("estrutura incompleta devolve ErrBadAnalysis", func(t *testing.T) {
		r := &fakeDeepResearcher{reply: `{"analysis": {"context": "x"}}`}
		a := NewMatchAnalyst(zap.NewNop(), r)

		_, err := a.Analyze(context.Background(), match)
		require.ErrorIs(t, err, ErrBadAnalysis)
	})

	t.Run("erro do provedor é propagado", func(t *testing.T) {
		boom := errors.New("rate limited")
		r := &fakeDeepResearcher{err: boom}
		a := NewMatchAnalyst(zap.NewNop(), r)

		_, err := a.Analyze(context.Background(), match)
		require.ErrorIs(t, err, boom)
	})
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONObject("voici le résultat: {\"a\":1} merci"))
	assert.Equal(t, `{"a":1}`, extractJSONObject("```\n{\"a\":1}\n```"))
	assert.Empty(t, extractJSONObject("pas d'objet ici"))
}
