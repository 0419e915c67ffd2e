package routes

import (
	"net/http"
	"time"

	"infinite-experiment/crewcenter/internal/api"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// RegisterRoutes builds the router serving the HTML pages, the JSON API and the health check
func RegisterRoutes(deps *api.Dependencies, sqlxDB *sqlx.DB, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(
		sqlxDB,
		deps.Repo.Duplicate,
		deps.Services.Cache,
		deps.Metrics,
		upSince,
	))

	// 1 write/sec per IP, burst 5
	writeLimiter := middleware.NewRateLimiter(1, 5, "127.0.0.1")

	handlers := api.NewHandlers(deps)
	RegisterAPIRoutes(r, deps, handlers, writeLimiter)
	RegisterUIRoutes(r, deps, writeLimiter)

	return r
}
