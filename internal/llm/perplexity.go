package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoAPIKey sinaliza cliente configurado sem credencial; chamadas devem
// degradar (o grader heurístico devolve PENDING).
var ErrNoAPIKey = errors.New("llm: api key not configured")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (r *chatResponse) content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Perplexity chama a chat-completion da Perplexity (modelos sonar com busca
// ao vivo). Usada pelo grader heurístico e pelo enriquecimento do draft.
type Perplexity struct {
	apiKey string
	http   *http.Client
}

func NewPerplexity(apiKey string) *Perplexity {
	return &Perplexity{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 45 * time.Second},
	}
}

const perplexityURL = "https://api.perplexity.ai/chat/completions"

// Ask envia um prompt simples (modelo sonar) e devolve o texto bruto.
func (p *Perplexity) Ask(ctx context.Context, system, prompt string) (string, error) {
	return p.chat(ctx, "sonar", 0, 500, system, prompt)
}

// AskDeep usa o sonar-pro com orçamento maior de tokens, para a análise de
// match sob demanda.
func (p *Perplexity) AskDeep(ctx context.Context, system, prompt string) (string, error) {
	return p.chat(ctx, "sonar-pro", 0.1, 3000, system, prompt)
}

func (p *Perplexity) chat(ctx context.Context, model string, temperature float64, maxTokens int, system, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", ErrNoAPIKey
	}

	msgs := []chatMessage{}
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

	body, _ := json.Marshal(map[string]any{
		"model":       model,
		"messages":    msgs,
		"temperature": temperature,
		"max_tokens":  maxTokens,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, perplexityURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("perplexity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("perplexity http %s", resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode perplexity response: %w", err)
	}
	return out.content(), nil
}
