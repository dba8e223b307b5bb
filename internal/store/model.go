package store

import "time"

// BetStatus segue o ciclo pending -> won|lost (terminal).
type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// Bet é um pari de usuário, persistido dentro da lista user:{email}:bets.
// Campos descritivos são congelados no placement.
type Bet struct {
	ID           string     `json:"id"`
	MatchID      string     `json:"matchId"`
	HomeTeam     string     `json:"homeTeam"`
	AwayTeam     string     `json:"awayTeam"`
	League       string     `json:"league"`
	Date         string     `json:"date"` // YYYY-MM-DD
	TicketType   string     `json:"ticketType"` // "safe" | "fun"
	Market       string     `json:"market"`
	Selection    string     `json:"selection"`
	Odds         float64    `json:"odds"`
	Stake        float64    `json:"stake"`
	PotentialWin float64    `json:"potentialWin"` // stake * odds, fixado no placement
	Status       BetStatus  `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	SettledAt    *time.Time `json:"settledAt,omitempty"`
	UserEmail    string     `json:"userEmail"`
	FixtureID    int        `json:"fixtureId,omitempty"`

	VerificationAttempts int  `json:"verificationAttempts"`
	PerplexityVerified   bool `json:"perplexityVerified"`
}

// Staking define o percentual da bankroll global apostado num pick do sistema.
type Staking struct {
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"` // "Prudent" | "Standard" | "Confiance"
}

// Pick é um pronóstico curado (house pick), graduado de forma determinística
// contra o resultado estruturado do fixture.
type Pick struct {
	FixtureID  int     `json:"fixture_id"`
	Teams      string  `json:"teams"`
	League     string  `json:"league"`
	Market     string  `json:"market"`
	Prediction string  `json:"prediction"`
	Odds       float64 `json:"odds"`
	Staking    Staking `json:"staking"`
	Analysis   string  `json:"analysis"`
	IsVIP      bool    `json:"is_vip,omitempty"`
}

// CombineMatch é uma perna de um ticket combiné, congelada na geração.
type CombineMatch struct {
	Equipe1     string `json:"equipe1"`
	Equipe2     string `json:"equipe2"`
	Prono       string `json:"prono"`
	Competition string `json:"competition"`
	Heure       string `json:"heure"` // HH:MM
}

// Combine é um ticket accumulateur do dia, gerado pelo cron ou criado pelo
// admin. O status segue o mesmo ciclo dos paris, liquidado manualmente.
type Combine struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"` // "safe" | "fun"
	Title     string         `json:"title"`
	Cote      float64        `json:"cote"`
	Mise      float64        `json:"mise"`
	Matches   []CombineMatch `json:"matches"`
	Status    BetStatus      `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Analysis  string         `json:"analysis,omitempty"`
}

// HistoryEntry é um snapshot da bankroll global, apenas para exibição.
type HistoryEntry struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Bankroll float64 `json:"bankroll"`
}

// PendingPick associa a chave do marker pendente ao pick congelado.
type PendingPick struct {
	Key  string
	Pick Pick
}

// PendingBet associa a chave do marker pendente ao pari rastreado.
type PendingBet struct {
	Key string
	Bet Bet
}

// SubscriptionKeys são as chaves de criptografia do endpoint Web Push.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// WebPushEndpoint é o destino registrado pelo navegador do usuário.
type WebPushEndpoint struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// PushSubscription é o registro completo guardado em push:{email}.
type PushSubscription struct {
	Email        string          `json:"email"`
	Subscription WebPushEndpoint `json:"subscription"`
	CreatedAt    time.Time       `json:"createdAt"`
	IsActive     bool            `json:"isActive"`
}
