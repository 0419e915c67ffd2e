package middleware

import (
	"net/http"
	"strings"
	"time"

	"infinite-experiment/crewcenter/internal/auth"
	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/logging"
)

// AuthMiddleware accepts a bearer token or the session cookie, loads the pilot
// and stores both claims and user in the request context
func AuthMiddleware(
	tokens *auth.TokenManager,
	userRepo *repositories.UserRepository,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")

			var raw, source string
			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				raw = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
				source = auth.SourceBearer

			default:
				if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
					raw = cookie.Value
					source = auth.SourceCookie
				}
			}

			if raw == "" {
				common.RespondError(w, initTime, constants.MsgUnauthorized+". Missing token", nil, http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(raw, source)
			if err != nil {
				common.RespondError(w, initTime, constants.MsgUnauthorized+". Invalid token", nil, http.StatusUnauthorized)
				return
			}

			user, err := userRepo.FindByID(r.Context(), claims.UserID())
			if err != nil {
				logging.Error("Auth: failed to load user", "user_id", claims.UserID(), "error", err.Error())
				common.RespondError(w, initTime, constants.MsgInternal, nil, http.StatusInternalServerError)
				return
			}
			if user == nil || !user.IsActive {
				common.RespondError(w, initTime, constants.MsgUnauthorized+". Unknown user", nil, http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			ctx = auth.SetUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
