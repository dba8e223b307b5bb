package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthFunc verifica as dependências do binário (Redis, Postgres...).
type HealthFunc func(ctx context.Context) error

const healthTimeout = 500 * time.Millisecond

// StartMetricsServer sobe o servidor de observabilidade do binário, separado
// da porta pública: /metrics (Prometheus) e /healthz. Roda numa goroutine;
// o chamador pode usar o *http.Server devolvido para Shutdown.
func StartMetricsServer(port string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", healthHandler(healthFn))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}

// healthHandler responde 200 "ok" quando as dependências respondem dentro do
// timeout, 503 com o erro da primeira que falhar.
func healthHandler(healthFn HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			http.Error(w, "unhealthy: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
