package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/ethscan-backend/internal/api"
	"github.com/baharkarakas/ethscan-backend/internal/auth"
	"github.com/baharkarakas/ethscan-backend/internal/cache"
	"github.com/baharkarakas/ethscan-backend/internal/config"
	"github.com/baharkarakas/ethscan-backend/internal/db"
	"github.com/baharkarakas/ethscan-backend/internal/etherscan"
	"github.com/baharkarakas/ethscan-backend/internal/logger"
	"github.com/baharkarakas/ethscan-backend/internal/metrics"
	"github.com/baharkarakas/ethscan-backend/internal/repository/postgres"
	"github.com/baharkarakas/ethscan-backend/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, dbPool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
		Addr:     []string{cfg.RedisAddr()},
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Error("redis connect", "err", err, "addr", cfg.RedisAddr())
		os.Exit(1)
	}
	defer store.Close()

	if cfg.EtherscanAPIKey == "" {
		log.Warn("ETHERSCAN_API_KEY is not set; account lookups will fail until it is configured")
	}
	explorer := etherscan.New(etherscan.Config{
		BaseURL: cfg.EtherscanBaseURL,
		APIKey:  cfg.EtherscanAPIKey,
		ChainID: cfg.ChainID,
	}, &http.Client{Timeout: cfg.EtherscanTimeout})

	repos := postgres.NewRepositories(dbPool)
	accountSvc := services.NewAccountService(store, explorer, repos.Accounts, cfg.CacheTTL, log)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	metrics.Init()
	r := api.NewRouter(cfg, accountSvc, tm)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "chain_id", cfg.ChainID, "cache_ttl", cfg.CacheTTL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
