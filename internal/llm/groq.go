package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Groq chama a API OpenAI-compatible da Groq em modo JSON. Usada pela geração
// do rascunho diário.
type Groq struct {
	apiKey string
	http   *http.Client
}

func NewGroq(apiKey string) *Groq {
	return &Groq{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 45 * time.Second},
	}
}

const (
	groqURL   = "https://api.groq.com/openai/v1/chat/completions"
	groqModel = "llama-3.3-70b-versatile"
)

// GenerateJSON pede uma resposta JSON estrita (response_format: json_object).
func (g *Groq) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, _ := json.Marshal(map[string]any{
		"model": groqModel,
		"messages": []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.3,
		"max_tokens":      2000,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("groq http %s", resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode groq response: %w", err)
	}
	return out.content(), nil
}
