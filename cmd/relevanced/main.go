// relevanced is the relevance ranking service. It hosts corpora in memory,
// ranks their sentences against free-text queries over HTTP, and optionally
// ingests corpora from Kafka, caches results in Redis, and logs queries to
// PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/relevanced/relevanced/internal/ingest"
	"github.com/relevanced/relevanced/internal/querylog"
	"github.com/relevanced/relevanced/internal/service/cache"
	"github.com/relevanced/relevanced/internal/service/handler"
	"github.com/relevanced/relevanced/internal/service/store"
	"github.com/relevanced/relevanced/pkg/config"
	"github.com/relevanced/relevanced/pkg/health"
	"github.com/relevanced/relevanced/pkg/kafka"
	"github.com/relevanced/relevanced/pkg/logger"
	"github.com/relevanced/relevanced/pkg/metrics"
	"github.com/relevanced/relevanced/pkg/middleware"
	"github.com/relevanced/relevanced/pkg/postgres"
	pkgredis "github.com/relevanced/relevanced/pkg/redis"
	"github.com/relevanced/relevanced/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("main")
	log.Info("starting relevanced",
		"port", cfg.Server.Port,
		"stemmer", cfg.Relevance.Stemmer,
		"kafka_enabled", cfg.Kafka.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	corpora := store.New()
	checker := health.NewChecker()
	checker.Register("store", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d corpora", corpora.Count()),
		}
	})

	// Redis is optional: without it ranking still works, just uncached.
	var rankCache *cache.RankCache
	var redisClient *pkgredis.Client
	err = resilience.Retry(ctx, "redis-connect", resilience.RetryConfig{MaxAttempts: 3}, func() error {
		var connErr error
		redisClient, connErr = pkgredis.NewClient(cfg.Redis)
		return connErr
	})
	if err != nil {
		log.Warn("redis unavailable, result caching disabled", "addr", cfg.Redis.Addr, "error", err)
	} else {
		defer redisClient.Close()
		rankCache = cache.New(redisClient, cfg.Redis)
		checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
			if err := redisClient.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	// PostgreSQL is optional: without it queries are served but not logged.
	var (
		collector *querylog.Collector
		history   handler.HistoryReader
	)
	var pgClient *postgres.Client
	err = resilience.Retry(ctx, "postgres-connect", resilience.RetryConfig{MaxAttempts: 5}, func() error {
		var connErr error
		pgClient, connErr = postgres.New(cfg.Postgres)
		return connErr
	})
	if err != nil {
		log.Warn("postgres unavailable, query logging disabled", "error", err)
	} else {
		defer pgClient.Close()
		qlStore := querylog.NewPostgresStore(pgClient)
		if err := qlStore.EnsureSchema(ctx); err != nil {
			log.Error("failed to ensure query log schema", "error", err)
			os.Exit(1)
		}
		collector = querylog.NewCollector(qlStore, m)
		collector.Start()
		defer collector.Stop()
		history = qlStore
		checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
			if err := pgClient.DB.PingContext(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	// Kafka wires both directions: a publisher for async creation requests
	// and a consumer that builds corpora from the topic.
	var publisher *ingest.Publisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.CorpusTopic)
		publisher = ingest.NewPublisher(producer)
		defer publisher.Close()

		validator := ingest.NewValidator(cfg.Relevance.MaxDocumentSize)
		ingestConsumer := ingest.NewConsumer(corpora, validator, cfg.Relevance.Stemmer, m)
		consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.CorpusTopic, ingestConsumer.Handle)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error("kafka consumer stopped", "error", err)
			}
		}()
	}

	var shutdownMetrics func(context.Context) error
	if cfg.Metrics.Enabled {
		shutdownMetrics = metrics.StartServer(cfg.Metrics.Port)
	}

	h := handler.New(corpora, rankCache, publisher, collector, history, m, cfg.Relevance)
	mux := http.NewServeMux()
	h.Routes(mux)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	chain := middleware.RequestID(
		middleware.Metrics(m)(
			middleware.Timeout(cfg.Server.WriteTimeout)(mux),
		),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
	if shutdownMetrics != nil {
		if err := shutdownMetrics(shutdownCtx); err != nil {
			log.Error("metrics server shutdown failed", "error", err)
		}
	}
	log.Info("relevanced stopped")
}
