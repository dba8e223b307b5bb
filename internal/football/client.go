package football

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ErrFixtureNotFound indica que o provedor não conhece o fixture (referência
// permanentemente quebrada; o chamador descarta o marker).
var ErrFixtureNotFound = errors.New("fixture not found")

// Status short codes terminais do provedor.
const (
	StatusFullTime  = "FT"
	StatusExtraTime = "AET"
	StatusPenalties = "PEN"
)

// Fixture é o snapshot efêmero consumido pelo grader e descartado em seguida.
type Fixture struct {
	ID         int
	LeagueID   int
	LeagueName string
	Date       string
	Status     string // short code: NS, 1H, FT, AET, PEN...
	HomeTeam   string
	AwayTeam   string
	HomeGoals  int
	AwayGoals  int
	HomeWinner bool
	AwayWinner bool
}

// Finished informa se o fixture está num estado terminal.
func (f *Fixture) Finished() bool {
	switch f.Status {
	case StatusFullTime, StatusExtraTime, StatusPenalties:
		return true
	}
	return false
}

// Client fala com a API-Football v3 (v3.football.api-sports.io).
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// payload espelha só os campos da resposta que o grader precisa.
type fixturePayload struct {
	Errors   json.RawMessage `json:"errors"`
	Response []struct {
		Fixture struct {
			ID     int    `json:"id"`
			Date   string `json:"date"`
			Status struct {
				Short string `json:"short"`
			} `json:"status"`
		} `json:"fixture"`
		League struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"league"`
		Teams struct {
			Home struct {
				Name   string `json:"name"`
				Winner *bool  `json:"winner"`
			} `json:"home"`
			Away struct {
				Name   string `json:"name"`
				Winner *bool  `json:"winner"`
			} `json:"away"`
		} `json:"teams"`
		Goals struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"goals"`
	} `json:"response"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*fixturePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("football api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("football api http %s", resp.Status)
	}

	var payload fixturePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode football response: %w", err)
	}
	return &payload, nil
}

func (p *fixturePayload) fixtures() []Fixture {
	out := make([]Fixture, 0, len(p.Response))
	for _, r := range p.Response {
		fx := Fixture{
			ID:         r.Fixture.ID,
			LeagueID:   r.League.ID,
			LeagueName: r.League.Name,
			Date:       r.Fixture.Date,
			Status:     r.Fixture.Status.Short,
			HomeTeam:   r.Teams.Home.Name,
			AwayTeam:   r.Teams.Away.Name,
		}
		if r.Goals.Home != nil {
			fx.HomeGoals = *r.Goals.Home
		}
		if r.Goals.Away != nil {
			fx.AwayGoals = *r.Goals.Away
		}
		if r.Teams.Home.Winner != nil {
			fx.HomeWinner = *r.Teams.Home.Winner
		}
		if r.Teams.Away.Winner != nil {
			fx.AwayWinner = *r.Teams.Away.Winner
		}
		out = append(out, fx)
	}
	return out
}

// FixtureByID busca um fixture pelo id salvo no pick.
func (c *Client) FixtureByID(ctx context.Context, id int) (*Fixture, error) {
	q := url.Values{}
	q.Set("id", fmt.Sprintf("%d", id))

	payload, err := c.get(ctx, "/fixtures", q)
	if err != nil {
		return nil, err
	}
	fixtures := payload.fixtures()
	if len(fixtures) == 0 {
		return nil, ErrFixtureNotFound
	}
	return &fixtures[0], nil
}

// FixturesByDate busca os fixtures do dia para as ligas prioritárias.
// Erros da API (rate limit etc.) viram lista vazia, como uma chamada
// best-effort única, sem retry.
func (c *Client) FixturesByDate(ctx context.Context, date string, leagueIDs string) ([]Fixture, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("league", leagueIDs)
	q.Set("timezone", "Europe/Paris")

	payload, err := c.get(ctx, "/fixtures", q)
	if err != nil {
		return nil, err
	}
	if len(payload.Errors) > 0 && string(payload.Errors) != "[]" && string(payload.Errors) != "{}" {
		c.log.Warn("football api returned errors", zap.ByteString("errors", payload.Errors))
		return nil, nil
	}
	return payload.fixtures(), nil
}

// FixturesOfDay busca todos os fixtures do dia, sem filtro de liga. Uma
// única chamada; os combinés filtram depois pelos matchs ainda não começados.
func (c *Client) FixturesOfDay(ctx context.Context, date string) ([]Fixture, error) {
	q := url.Values{}
	q.Set("date", date)

	payload, err := c.get(ctx, "/fixtures", q)
	if err != nil {
		return nil, err
	}
	if len(payload.Errors) > 0 && string(payload.Errors) != "[]" && string(payload.Errors) != "{}" {
		c.log.Warn("football api returned errors", zap.ByteString("errors", payload.Errors))
		return nil, nil
	}
	return payload.fixtures(), nil
}
