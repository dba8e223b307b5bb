package events

import "time"

// Evento emitido pelo reconciliador quando um pari de usuário sai de pending.
// Consumido pelo notification-worker (push + arquivo de reporting).
type BetSettled struct {
	BetID     string    `json:"betId"`
	UserEmail string    `json:"userEmail"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	Market    string    `json:"market"`
	Selection string    `json:"selection"`
	Odds      float64   `json:"odds"`
	Stake     float64   `json:"stake"`
	Result    string    `json:"result"` // "WON" | "LOST"
	Profit    float64   `json:"profit"` // positivo em WON, -stake em LOST
	SettledAt time.Time `json:"settledAt"`
}
