package routes

import (
	"infinite-experiment/crewcenter/internal/api"
	"infinite-experiment/crewcenter/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers, writeLimiter *middleware.RateLimiter) {
	authMiddleware := middleware.AuthMiddleware(
		deps.Services.Tokens,
		deps.Repo.User,
		deps.Config.Auth.CookieName,
	)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.Config.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Location", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))
		v1.Use(authMiddleware) // all API routes must be authenticated

		v1.Route("/pireps", func(pireps chi.Router) {
			pireps.Get("/", handlers.ListPireps())
			pireps.Get("/fares", handlers.FaresForm())
			pireps.Get("/create", handlers.CreateForm())
			pireps.Get("/{id}", handlers.ShowPirep())
			pireps.Get("/{id}/edit", handlers.EditForm())

			pireps.Group(func(write chi.Router) {
				write.Use(writeLimiter.Middleware)
				write.Post("/", handlers.SubmitPirep())
				write.Put("/{id}", handlers.UpdatePirep())
				write.Patch("/{id}", handlers.UpdatePirep())
			})
		})
	})
}
