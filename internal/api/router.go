package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/ethscan-backend/internal/api/handlers"
	"github.com/baharkarakas/ethscan-backend/internal/auth"
	"github.com/baharkarakas/ethscan-backend/internal/config"
	"github.com/baharkarakas/ethscan-backend/internal/metrics"
	"github.com/baharkarakas/ethscan-backend/internal/middleware"
	"github.com/baharkarakas/ethscan-backend/internal/services"
)

func NewRouter(cfg config.Config, as *services.AccountService, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
	r.Use(middleware.HTTPMetrics)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	eh := handlers.NewEthHandler(as)
	am := middleware.NewAuthMiddleware(tm)

	r.Route("/eth", func(r chi.Router) {
		r.Get("/account", eh.Account)
		r.Get("/transactions", eh.Transactions)

		// ledger is internal data
		r.Group(func(r chi.Router) {
			r.Use(am.Auth, middleware.RequireRole(auth.RoleAdmin))
			r.Get("/accounts", eh.Ledger)
			r.Get("/accounts/{address}", eh.LedgerEntry)
		})
	})

	return r
}
