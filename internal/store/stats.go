package store

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

const (
	statsVIPTotalKey = "stats:vip:total"
	statsVIPWinsKey  = "stats:vip:wins"
)

// SiteStats é o placar público do site: taxa de acerto dos picks do sistema
// já liquidados e total de pronósticos publicados.
type SiteStats struct {
	WinRate         int   `json:"winRate"` // 0-100
	TotalPronostics int64 `json:"totalPronostics"`
	Wins            int64 `json:"wins"`
	Losses          int64 `json:"losses"`
}

// SiteStats lê os contadores acumulados pela liquidação e pela publicação.
// Contadores ausentes valem zero.
func (s *Redis) SiteStats(ctx context.Context) (SiteStats, error) {
	vals, err := s.rdb.MGet(ctx, statsVIPWinsKey, statsVIPTotalKey, statsTotal).Result()
	if err != nil {
		return SiteStats{}, fmt.Errorf("read site stats: %w", err)
	}
	wins := counterValue(vals[0])
	settled := counterValue(vals[1])
	published := counterValue(vals[2])

	st := SiteStats{
		TotalPronostics: published,
		Wins:            wins,
		Losses:          settled - wins,
	}
	if settled > 0 {
		st.WinRate = int(math.Round(float64(wins) / float64(settled) * 100))
	}
	return st, nil
}

func counterValue(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
