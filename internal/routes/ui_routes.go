package routes

import (
	"net/http"

	ui "infinite-experiment/crewcenter/frontend/ui"
	"infinite-experiment/crewcenter/internal/api"
	"infinite-experiment/crewcenter/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterUIRoutes registers the HTML pages for pilots
func RegisterUIRoutes(r chi.Router, deps *api.Dependencies, writeLimiter *middleware.RateLimiter) {
	uiHandler := ui.NewPirepUIHandler(
		deps.Services.Workflow,
		deps.Services.Settings,
		deps.Services.Flash,
	)

	authMiddleware := middleware.AuthMiddleware(
		deps.Services.Tokens,
		deps.Repo.User,
		deps.Config.Auth.CookieName,
	)

	// Default route - the pilot's report list
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pireps", http.StatusSeeOther)
	})

	r.Route("/pireps", func(pireps chi.Router) {
		pireps.Use(middleware.MethodOverride)
		pireps.Use(middleware.SessionMiddleware)
		pireps.Use(authMiddleware)

		pireps.Get("/", uiHandler.IndexHandler)
		pireps.Get("/fares", uiHandler.FaresHandler)
		pireps.Get("/create", uiHandler.CreateHandler)
		pireps.Get("/{id}", uiHandler.ShowHandler)
		pireps.Get("/{id}/edit", uiHandler.EditHandler)

		pireps.Group(func(write chi.Router) {
			write.Use(writeLimiter.Middleware)
			write.Post("/", uiHandler.StoreHandler)
			write.Put("/{id}", uiHandler.UpdateHandler)
			write.Patch("/{id}", uiHandler.UpdateHandler)
		})
	})
}
