package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ncastellanos/tiendita-backend/api/routes"
	"github.com/ncastellanos/tiendita-backend/internal/cart"
	"github.com/ncastellanos/tiendita-backend/internal/catalog"
	"github.com/ncastellanos/tiendita-backend/pkg/chatwoot"
	"github.com/ncastellanos/tiendita-backend/pkg/config"
	"github.com/ncastellanos/tiendita-backend/pkg/db"
	"github.com/ncastellanos/tiendita-backend/pkg/logger"
	"github.com/ncastellanos/tiendita-backend/pkg/migrate"
	"github.com/ncastellanos/tiendita-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Config:   cfg,
		Logger:   logg,
		DBPinger: dbClient,
	}

	// Redis is optional: without it /call still works, just without
	// idempotency replay.
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		deps.RedisPinger = redisClient
		deps.IdempotencyDB = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency replay disabled")
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	deps.CatalogService = catalogService

	var tagger chatwoot.Tagger
	if cfg.Chatwoot.Configured() {
		tagger = chatwoot.NewClient(context.Background(), cfg.Chatwoot, logg)
	} else {
		logg.Warn(context.Background(), "chatwoot not configured, conversation labeling disabled")
	}

	cartService, err := cart.NewService(
		cart.NewStore(dbClient.DB()),
		cart.NewLedger(dbClient.DB()),
		cart.NewViewer(dbClient.DB()),
		catalogRepo,
		tagger,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	deps.CartService = cartService

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Registry = registry

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
