package bankroll

import "math"

const (
	// kellyFraction é o multiplicador quarter-Kelly (conservador).
	kellyFraction = 0.25
	// maxFraction limita a sugestão a 10% da bankroll.
	maxFraction = 0.10
)

// KellyStake sugere uma mise por Kelly fracionário: com b = odds-1,
// p = probability/100 e q = 1-p, kelly = (b*p - q)/b; a fração usável é
// kelly * 0.25, cortada para [0, 0.10] da bankroll. Sugestão apenas, não
// limita a mise que o usuário escolhe de fato.
func KellyStake(bankroll, probability, odds float64) float64 {
	if odds <= 1 || probability <= 0 || probability >= 100 || bankroll <= 0 {
		return 0
	}
	b := odds - 1
	p := probability / 100
	q := 1 - p
	kelly := (b*p - q) / b

	fraction := math.Max(0, math.Min(kelly*kellyFraction, maxFraction))
	return Round2(bankroll * fraction)
}

// PotentialWin é o retorno total de um pari vencedor, fixado no placement.
func PotentialWin(stake, odds float64) float64 {
	return Round2(stake * odds)
}

// Profit é a variação de bankroll realizada na liquidação de um pick do
// sistema: WON rende stake*(odds-1), LOST perde a mise inteira.
func Profit(stake, odds float64, won bool) float64 {
	if won {
		return stake * (odds - 1)
	}
	return -stake
}

// Round2 arredonda para centavos.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
