package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/parishbooks/ledger/internal/adapter/http"
	"github.com/parishbooks/ledger/internal/adapter/http/handler"
	"github.com/parishbooks/ledger/internal/adapter/http/middleware"
	postgresRepo "github.com/parishbooks/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/parishbooks/ledger/internal/adapter/repository/redis"
	"github.com/parishbooks/ledger/internal/infrastructure/config"
	"github.com/parishbooks/ledger/internal/infrastructure/eventpublisher"
	"github.com/parishbooks/ledger/internal/infrastructure/logging"
	"github.com/parishbooks/ledger/internal/infrastructure/metrics"
	"github.com/parishbooks/ledger/internal/infrastructure/postgres"
	"github.com/parishbooks/ledger/internal/infrastructure/redis"
	"github.com/parishbooks/ledger/internal/usecase"
)

const migrationsPath = "migrations"

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	appLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis. The service degrades to uncached, non-idempotent
	// operation when no Redis is configured.
	var (
		idempotencyStore usecase.IdempotencyStore
		cache            usecase.Cache
		redisClient      *goredis.Client
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		log.Info().Msg("connected to redis")

		redisClient = client
		idempotencyStore = redisRepo.NewIdempotencyStore(client)
		cache = redisRepo.NewCache(client)
	}

	// Metrics
	m := metrics.New()

	// Initialize repositories
	headerRepo := postgresRepo.NewHeaderRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	postingRepo := postgresRepo.NewPostingRepository(pool)
	mappingRepo := postgresRepo.NewMappingRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)

	// Without a publisher draining the outbox, recorded events would only
	// accumulate; drop them instead.
	var outboxRepo usecase.OutboxRepository = postgresRepo.NewNullOutboxRepository()
	if cfg.PublisherEnabled {
		outboxRepo = postgresRepo.NewOutboxRepository(pool)
	}
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	batchUC := usecase.NewBatchUseCase(usecase.BatchUseCaseConfig{
		HeaderRepo:  headerRepo,
		EntryRepo:   entryRepo,
		PostingRepo: postingRepo,
		MappingRepo: mappingRepo,
		AuditRepo:   auditRepo,
		OutboxRepo:  outboxRepo,
		IDGen:       idGen,
		Logger:      appLogger.Logger,
		Recorder:    metrics.NewRecorder(m),
	})
	headerUC := usecase.NewHeaderUseCase(headerRepo, entryRepo, postingRepo, cache, appLogger.Logger)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Initialize handlers
	batchHandler := handler.NewBatchHandler(batchUC, headerUC)
	entryHandler := handler.NewEntryHandler(batchUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BatchHandler:     batchHandler,
		EntryHandler:     entryHandler,
		LedgerHandler:    ledgerHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		Metrics:          m,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		RequestLogger:    middleware.NewRequestLogger(log.Logger),
	})

	// Start outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	if cfg.PublisherEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  eventpublisher.NewLogPublisher(appLogger.Logger),
			Retrier:    postgresRepo.NewRetrier(),
			Metrics:    m,
			Logger:     appLogger.Logger,
			BatchSize:  cfg.PublisherBatch,
			Interval:   cfg.PublisherInterval,
		})
		go func() {
			if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
