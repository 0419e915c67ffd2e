package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinite-experiment/crewcenter/internal/api"
	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/config"
	"infinite-experiment/crewcenter/internal/db"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/metrics"
	"infinite-experiment/crewcenter/internal/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := config.LoadDotEnv(".env", ".env.local"); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Crew center starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	dsn := cfg.Postgres.DSN()

	// Connect to DB with sqlx
	sqlxDB, err := db.InitPostgres(dsn)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	defer sqlxDB.Close()
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	gormDB, err := db.InitPostgresORM(dsn)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err.Error())
	}

	cache, err := newCache(cfg)
	if err != nil {
		logging.Fatal("Failed to initialize cache", "backend", cfg.CacheBackend, "error", err.Error())
	}
	defer cache.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsReg := metrics.NewMetricsRegistry(registry)

	deps, err := api.InitDependencies(cfg, gormDB, sqlxDB, cache, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, sqlxDB, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.Server.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logging.Info("Shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
}

func newCache(cfg config.Config) (common.CacheInterface, error) {
	if cfg.CacheBackend != "redis" {
		logging.Info("Using in-memory cache")
		return common.NewCacheService(int(cfg.SettingsTTL.Seconds()), 600), nil
	}

	client, err := common.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	return common.NewRedisCacheService(client), nil
}
