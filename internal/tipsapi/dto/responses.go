package dto

import (
	"encoding/json"

	"github.com/pronosport/tips-platform/internal/store"
)

type LoginResponse struct {
	Success bool   `json:"success"`
	IsAdmin bool   `json:"isAdmin"`
	Email   string `json:"email"`
}

type BetStats struct {
	Total   int     `json:"total"`
	Won     int     `json:"won"`
	Lost    int     `json:"lost"`
	Pending int     `json:"pending"`
	WinRate int     `json:"winRate"`
	Profit  float64 `json:"profit"`
}

type UserBetsResponse struct {
	Success  bool        `json:"success"`
	Bets     []store.Bet `json:"bets"`
	Bankroll float64     `json:"bankroll"`
	Stats    BetStats    `json:"stats"`
}

type PlaceBetResponse struct {
	Success bool      `json:"success"`
	Bet     store.Bet `json:"bet"`
}

type KellySuggestion struct {
	Bankroll float64 `json:"bankroll"`
	Stake    float64 `json:"stake"`
}

type SettlementResponse struct {
	Success bool     `json:"success"`
	Log     []string `json:"log"`
}

type DraftResponse struct {
	Draft   json.RawMessage `json:"draft"`
	Message string          `json:"message,omitempty"`
}

type PublishResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type InviteResponse struct {
	Invite string `json:"invite"`
}

type StatsResponse struct {
	Success bool            `json:"success"`
	Data    store.SiteStats `json:"data"`
}

type CombinesResponse struct {
	Combines []store.Combine `json:"combines"`
	Message  string          `json:"message,omitempty"`
}

type CombineResponse struct {
	Success bool          `json:"success"`
	Combine store.Combine `json:"combine"`
}
