package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/archive"
	"github.com/pronosport/tips-platform/internal/auth"
	"github.com/pronosport/tips-platform/internal/football"
	"github.com/pronosport/tips-platform/internal/grading"
	"github.com/pronosport/tips-platform/internal/llm"
	"github.com/pronosport/tips-platform/internal/settlement"
	kpub "github.com/pronosport/tips-platform/internal/settlement/producer"
	"github.com/pronosport/tips-platform/internal/shared/cache"
	"github.com/pronosport/tips-platform/internal/shared/config"
	"github.com/pronosport/tips-platform/internal/shared/db"
	"github.com/pronosport/tips-platform/internal/shared/kafka"
	"github.com/pronosport/tips-platform/internal/shared/logger"
	"github.com/pronosport/tips-platform/internal/shared/metrics"
	"github.com/pronosport/tips-platform/internal/store"
	"github.com/pronosport/tips-platform/internal/telegram"
	thttp "github.com/pronosport/tips-platform/internal/tipsapi/http"
	"github.com/pronosport/tips-platform/internal/tipsgen"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Redis (ledger completo: paris, bankrolls, markers, rascunhos, sessões)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	st := store.NewRedis(rdb)

	// Postgres (leitura do arquivo de liquidações, painel admin)
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()
	arq := archive.NewPostgres(pg)

	// Kafka writer (topic bet_settled)
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()

	// Provedores externos
	fixtures := football.NewClient(cfg.FootballAPIBase, cfg.FootballAPIKey, log)
	perplexity := llm.NewPerplexity(cfg.PerplexityKey)
	groq := llm.NewGroq(cfg.GroqKey)

	var tg thttp.Telegram
	if cfg.TelegramBotToken != "" {
		pub, err := telegram.NewPublisher(cfg.TelegramBotToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Fatal("telegram", zap.Error(err))
		}
		tg = pub
	}

	// deps
	verifier := grading.NewHeuristicGrader(perplexity, log)
	reconciler := settlement.New(log, st, fixtures, verifier, kpub.NewKafkaPublisher(settledWriter))
	generator := tipsgen.NewGenerator(log, fixtures, groq, perplexity, st, cfg.LeagueIDs)
	combines := tipsgen.NewCombineGenerator(log, fixtures, st)
	analyst := tipsgen.NewMatchAnalyst(log, perplexity)
	authSvc := auth.NewService(st, cfg.AdminSecret)

	// HTTP público
	api := thttp.NewServer(log, st, authSvc, reconciler, generator, combines, analyst, tg, arq, cfg.AdminSecret)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, st.Ping)
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("tips-api listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
