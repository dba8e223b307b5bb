package dto

import "github.com/pronosport/tips-platform/internal/store"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInviteRequest struct {
	Invite   string `json:"invite"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PlaceBetRequest traz os campos congelados do fixture no momento do pari.
type PlaceBetRequest struct {
	MatchID    string  `json:"matchId"`
	HomeTeam   string  `json:"homeTeam"`
	AwayTeam   string  `json:"awayTeam"`
	League     string  `json:"league"`
	Date       string  `json:"date"`
	TicketType string  `json:"ticketType"` // "safe" | "fun"
	Market     string  `json:"market"`
	Selection  string  `json:"selection"`
	Odds       float64 `json:"odds"`
	Stake      float64 `json:"stake"`
	FixtureID  int     `json:"fixtureId"`
}

type UpdateBetRequest struct {
	BetID  string          `json:"betId"`
	Status store.BetStatus `json:"status"`
}

type DeleteBetRequest struct {
	BetID string `json:"betId"`
}

type PublishRequest struct {
	Secret  string `json:"secret"`
	Message string `json:"message"`
}

type SubscribeRequest struct {
	Subscription store.WebPushEndpoint `json:"subscription"`
}

// CreateCombineRequest cria um ticket manual (admin). O segredo viaja no
// corpo, como no publish.
type CreateCombineRequest struct {
	Secret   string               `json:"secret"`
	Type     string               `json:"type"` // "safe" | "fun"
	Title    string               `json:"title"`
	Cote     float64              `json:"cote"`
	Mise     float64              `json:"mise"`
	Matches  []store.CombineMatch `json:"matches"`
	Analysis string               `json:"analysis"`
}

// CombineStatusRequest liquida manualmente um combiné (admin).
type CombineStatusRequest struct {
	Secret string          `json:"secret"`
	ID     string          `json:"id"`
	Status store.BetStatus `json:"status"`
}
