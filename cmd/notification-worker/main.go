package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/archive"
	"github.com/pronosport/tips-platform/internal/push"
	"github.com/pronosport/tips-platform/internal/shared/cache"
	"github.com/pronosport/tips-platform/internal/shared/config"
	"github.com/pronosport/tips-platform/internal/shared/db"
	"github.com/pronosport/tips-platform/internal/shared/kafka"
	"github.com/pronosport/tips-platform/internal/shared/logger"
	"github.com/pronosport/tips-platform/internal/shared/metrics"
	"github.com/pronosport/tips-platform/internal/store"
	ev "github.com/pronosport/tips-platform/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Redis (inscrições Web Push)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	st := store.NewRedis(rdb)

	// Postgres (arquivo de liquidações para reporting)
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	arq := archive.NewPostgres(pg)
	if err := arq.EnsureSchema(context.Background()); err != nil {
		log.Fatal("pg schema", zap.Error(err))
	}

	// Kafka consumer: eventos bet_settled emitidos pelo reconciliador
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetSettled, "notification-worker")
	defer reader.Close()

	var dlqWriter *kafka.Writer
	if cfg.TopicBetSettledDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettledDLQ)
		defer dlqWriter.Close()
	}

	sender := push.NewSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubject, st, log)

	// Servidor HTTP para métricas Prometheus e healthcheck
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := st.Ping(ctx); err != nil {
			return err
		}
		return pg.PingContext(ctx)
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("notification-worker started", zap.String("consume", cfg.TopicBetSettled))

	ctx := context.Background()

	// Loop principal: consome bet_settled, arquiva e notifica o usuário
	for {
		key, value, err := kafka.ReadNext(ctx, reader)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		var settled ev.BetSettled
		if jerr := json.Unmarshal(value, &settled); jerr != nil {
			log.Error("unmarshal bet_settled", zap.Error(jerr))
			sendToDLQ(ctx, log, dlqWriter, key, value)
			continue
		}

		if err := processOne(ctx, log, arq, sender, &settled); err != nil {
			log.Error("process settled bet", zap.String("betId", settled.BetID), zap.Error(err))
			sendToDLQ(ctx, log, dlqWriter, key, value)
			// Backoff simples para evitar flood em caso de erro
			time.Sleep(500 * time.Millisecond)
		}
	}
}

// processOne arquiva a liquidação e entrega o push. O arquivo manda: falha de
// push não é erro do evento (entrega best-effort, usuário pode não ter
// inscrição).
func processOne(ctx context.Context, log *zap.Logger, arq *archive.Postgres, sender *push.Sender, settled *ev.BetSettled) error {
	if err := arq.RecordSettled(ctx, *settled); err != nil {
		return fmt.Errorf("archive settled bet: %w", err)
	}

	n := buildNotification(settled)
	if err := sender.Send(ctx, settled.UserEmail, n); err != nil {
		if errors.Is(err, push.ErrNoSubscription) {
			return nil
		}
		log.Warn("push delivery failed",
			zap.String("betId", settled.BetID),
			zap.String("email", settled.UserEmail),
			zap.Error(err),
		)
	}
	return nil
}

func buildNotification(settled *ev.BetSettled) push.Notification {
	match := settled.HomeTeam + " vs " + settled.AwayTeam
	if settled.Result == "WON" {
		return push.Notification{
			Title: "Pari gagné !",
			Body:  fmt.Sprintf("%s : %s @ %.2f (+%.2f€)", match, settled.Selection, settled.Odds, settled.Profit),
			URL:   "/mes-paris",
			BetID: settled.BetID,
		}
	}
	return push.Notification{
		Title: "Pari perdu",
		Body:  fmt.Sprintf("%s : %s @ %.2f (%.2f€)", match, settled.Selection, settled.Odds, settled.Profit),
		URL:   "/mes-paris",
		BetID: settled.BetID,
	}
}

func sendToDLQ(ctx context.Context, log *zap.Logger, w *kafka.Writer, key, value []byte) {
	if w == nil {
		return
	}
	if err := kafka.WriteJSON(ctx, w, string(key), value); err != nil {
		log.Error("dlq write", zap.Error(err))
	}
}
