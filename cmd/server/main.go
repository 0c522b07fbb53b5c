package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	httpAdapter "github.com/soyRex-codes/mybank/internal/adapter/http"
	"github.com/soyRex-codes/mybank/internal/adapter/http/handler"
	postgresRepo "github.com/soyRex-codes/mybank/internal/adapter/repository/postgres"
	redisRepo "github.com/soyRex-codes/mybank/internal/adapter/repository/redis"
	"github.com/soyRex-codes/mybank/internal/infrastructure/auth"
	"github.com/soyRex-codes/mybank/internal/infrastructure/config"
	"github.com/soyRex-codes/mybank/internal/infrastructure/logger"
	"github.com/soyRex-codes/mybank/internal/infrastructure/metrics"
	"github.com/soyRex-codes/mybank/internal/infrastructure/postgres"
	"github.com/soyRex-codes/mybank/internal/infrastructure/redis"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New(prometheus.DefaultRegisterer)

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, transactionRepo, userRepo, outboxRepo, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transactionRepo, outboxRepo, idGen, retrier)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, cache)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}
	if cfg.AuthEnabled && jwtManager == nil {
		log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
	}

	router := httpAdapter.NewRouter(
		httpAdapter.RouterConfig{
			Logger:           log,
			Metrics:          m,
			IdempotencyStore: idempotencyStore,
			IdempotencyTTL:   cfg.IdempotencyTTL,
			JWTManager:       jwtManager,
			AuthEnabled:      cfg.AuthEnabled,
		},
		httpAdapter.Handlers{
			Account:     handler.NewAccountHandler(accountUC, m),
			Transfer:    handler.NewTransferHandler(transferUC, m),
			Transaction: handler.NewTransactionHandler(transactionUC),
			User:        handler.NewUserHandler(userUC, jwtManager),
			Ledger:      handler.NewLedgerHandler(ledgerUC),
			Health: handler.NewHealthHandler(
				pool,
				handler.PingerFunc(func(ctx context.Context) error {
					return redisClient.Ping(ctx).Err()
				}),
			),
		},
	)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
