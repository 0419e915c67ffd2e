package middleware

import (
	"net/http"

	"infinite-experiment/crewcenter/internal/auth"

	"github.com/google/uuid"
)

const SessionCookieName = "crewcenter_session"

// SessionMiddleware gives every browser a session id that flash messages are keyed on
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		cookie, err := r.Cookie(SessionCookieName)
		if err == nil {
			if _, perr := uuid.Parse(cookie.Value); perr == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := auth.SetSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
