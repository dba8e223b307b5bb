package tipsgen

import "time"

// DraftPick é um pronóstico dentro do rascunho diário, no formato que o
// painel admin edita antes de publicar.
type DraftPick struct {
	Match     string  `json:"match"`
	Pari      string  `json:"pari"`
	Confiance string  `json:"confiance,omitempty"` // "Safe" | "Ultra-Safe"
	Analyse   string  `json:"analyse"`
	Cote      float64 `json:"cote"`
	League    string  `json:"league"`
	FixtureID int     `json:"fixture_id"`
}

// DraftMeta acompanha cada rascunho para auditoria do job.
type DraftMeta struct {
	GeneratedAt    time.Time `json:"generated_at"`
	DatesChecked   []string  `json:"dates_checked"`
	MatchesFound   int       `json:"matches_found"`
	VIPMatch       string    `json:"vip_match,omitempty"`
	VIPLeague      string    `json:"vip_league,omitempty"`
	PerplexityUsed bool      `json:"perplexity_used"`
	Status         string    `json:"status"` // "success" | "no_matches" | "error"
	Reason         string    `json:"reason,omitempty"`
}

// Draft é o rascunho diário completo guardado em draft:daily:pronostics.
type Draft struct {
	Intro              string      `json:"intro"`
	VIP                *DraftPick  `json:"vip"`
	Free               []DraftPick `json:"free"`
	PerplexityAnalysis string      `json:"perplexity_analysis,omitempty"`
	Error              string      `json:"error,omitempty"`
	Meta               DraftMeta   `json:"_meta"`
}

// Summary é o retorno do endpoint de geração.
type Summary struct {
	DatesChecked   []string `json:"dates_checked"`
	MatchesFound   int      `json:"matches_found"`
	VIPMatch       string   `json:"vip_match,omitempty"`
	VIPLeague      string   `json:"vip_league,omitempty"`
	PerplexityUsed bool     `json:"perplexity_used"`
	Status         string   `json:"status"`
}
