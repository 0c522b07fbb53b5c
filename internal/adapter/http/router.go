package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/soyRex-codes/mybank/internal/adapter/http/handler"
	"github.com/soyRex-codes/mybank/internal/adapter/http/middleware"
	"github.com/soyRex-codes/mybank/internal/infrastructure/auth"
	"github.com/soyRex-codes/mybank/internal/infrastructure/metrics"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Account     *handler.AccountHandler
	Transfer    *handler.TransferHandler
	Transaction *handler.TransactionHandler
	User        *handler.UserHandler
	Ledger      *handler.LedgerHandler
	Health      *handler.HealthHandler
}

// RouterConfig carries the cross-cutting dependencies of the router.
// IdempotencyStore and JWTManager are optional; the corresponding
// middleware is skipped when they are nil.
type RouterConfig struct {
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
}

// NewRouter builds the route tree.
func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	r.Get("/health", h.Health.Liveness)
	r.Get("/ready", h.Health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	idempotent := func(next http.Handler) http.Handler { return next }
	if cfg.IdempotencyStore != nil {
		idempotent = middleware.Idempotency(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Metrics, cfg.Logger)
	}

	authenticated := func(next http.Handler) http.Handler { return next }
	if cfg.AuthEnabled && cfg.JWTManager != nil {
		authenticated = middleware.Auth(cfg.JWTManager)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", h.User.Register)
		r.Post("/auth/login", h.User.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Get("/users/{id}", h.User.Get)

			r.Get("/accounts", h.Account.List)
			r.Get("/accounts/{id}", h.Account.Get)
			r.Get("/accounts/number/{number}", h.Account.GetByNumber)
			r.Get("/accounts/{id}/transactions", h.Transaction.ListByAccount)
			r.Get("/transactions/{reference}", h.Transaction.GetByReference)
			r.Get("/ledger/consistency", h.Ledger.CheckConsistency)

			r.Group(func(r chi.Router) {
				r.Use(idempotent)

				r.Post("/accounts", h.Account.Open)
				r.Post("/accounts/{id}/deposits", h.Account.Deposit)
				r.Post("/accounts/{id}/withdrawals", h.Account.Withdraw)
				r.Post("/accounts/{id}/freeze", h.Account.Freeze)
				r.Post("/accounts/{id}/unfreeze", h.Account.Unfreeze)
				r.Post("/accounts/{id}/close", h.Account.Close)
				r.Post("/transfers", h.Transfer.Create)
			})
		})
	})

	return r
}
