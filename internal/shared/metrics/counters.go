package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de domínio expostos por /metrics.
var (
	BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tips_bets_settled_total",
		Help: "Apostas liquidadas por origem (system|user) e resultado (won|lost).",
	}, []string{"kind", "outcome"})

	SettlementRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tips_settlement_runs_total",
		Help: "Execuções do ciclo de liquidação.",
	})

	SettlementItemErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tips_settlement_item_errors_total",
		Help: "Itens pendentes que falharam dentro de um ciclo de liquidação.",
	})

	PushDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tips_push_deliveries_total",
		Help: "Notificações push por status (sent|failed|expired).",
	}, []string{"status"})
)
