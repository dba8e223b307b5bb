package grading

import (
	"strings"

	"github.com/pronosport/tips-platform/internal/football"
)

// marketKind é a enumeração fechada dos mercados suportados. Rótulos de
// mercado chegam como texto livre (inclusive em francês); o parse acontece uma
// única vez e o resto do grader trabalha sobre a variante.
type marketKind int

const (
	marketWinner marketKind = iota // 1-N-2, também o fallback para rótulo desconhecido
	marketBTTSYes
	marketBTTSNo
	marketOver25
	marketUnder25
	marketDoubleChance
)

func parseMarket(label string) marketKind {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "btts oui", "btts yes", "les deux équipes marquent":
		return marketBTTSYes
	case "btts non", "btts no":
		return marketBTTSNo
	case "over 2.5", "over 2.5 buts", "plus de 2.5 buts":
		return marketOver25
	case "under 2.5", "under 2.5 buts", "moins de 2.5 buts":
		return marketUnder25
	case "double chance":
		return marketDoubleChance
	default:
		return marketWinner
	}
}

type matchWinner int

const (
	winnerHome matchWinner = iota
	winnerAway
	winnerDraw
)

func winnerOf(fx *football.Fixture) matchWinner {
	switch {
	case fx.HomeWinner:
		return winnerHome
	case fx.AwayWinner:
		return winnerAway
	default:
		return winnerDraw
	}
}

// GradeStructured decide WON|LOST|PENDING para um pick do sistema a partir do
// resultado estruturado do fixture. Fixture não terminal devolve PENDING sem
// avaliar nenhuma outra regra. Função pura, sem efeitos colaterais; o chamador
// decide re-consultar num ciclo futuro (o marker persiste até a deleção).
func GradeStructured(market, selection string, fx *football.Fixture) Result {
	if !fx.Finished() {
		return Pending
	}

	switch parseMarket(market) {
	case marketBTTSYes:
		return verdict(fx.HomeGoals > 0 && fx.AwayGoals > 0)

	case marketBTTSNo:
		return verdict(fx.HomeGoals == 0 || fx.AwayGoals == 0)

	case marketOver25:
		return verdict(float64(fx.HomeGoals+fx.AwayGoals) > 2.5)

	case marketUnder25:
		return verdict(float64(fx.HomeGoals+fx.AwayGoals) < 2.5)

	case marketDoubleChance:
		return gradeDoubleChance(selection, fx)

	default:
		return gradeWinner(selection, fx)
	}
}

func verdict(won bool) Result {
	if won {
		return Won
	}
	return Lost
}

// gradeDoubleChance lê a seleção em texto livre. Seleção que não referencia
// nenhum dos dois lados é graduada LOST (default conservador: quase sempre é
// um erro de dados, não um palpite válido).
func gradeDoubleChance(selection string, fx *football.Fixture) Result {
	sel := strings.ToLower(selection)
	winner := winnerOf(fx)

	if strings.Contains(sel, "1x") || strings.Contains(sel, strings.ToLower(fx.HomeTeam)) {
		return verdict(winner == winnerHome || winner == winnerDraw)
	}
	if strings.Contains(sel, "x2") || strings.Contains(sel, strings.ToLower(fx.AwayTeam)) {
		return verdict(winner == winnerAway || winner == winnerDraw)
	}
	return Lost
}

// gradeWinner é a regra 1-N-2, também usada como fallback de mercado
// desconhecido. Seleção que não casa com nenhum token é LOST.
func gradeWinner(selection string, fx *football.Fixture) Result {
	sel := strings.ToLower(selection)
	winner := winnerOf(fx)

	if strings.Contains(sel, strings.ToLower(fx.HomeTeam)) && winner == winnerHome {
		return Won
	}
	if strings.Contains(sel, strings.ToLower(fx.AwayTeam)) && winner == winnerAway {
		return Won
	}
	if (strings.Contains(sel, "nul") || strings.Contains(sel, "draw")) && winner == winnerDraw {
		return Won
	}
	return Lost
}
