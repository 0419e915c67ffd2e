package auth

import (
	"context"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
)

type contextKey string

var userClaimsKey contextKey = "user_claims"
var userKey contextKey = "user"
var sessionIDKey contextKey = "session_id"

func SetUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaims(ctx context.Context) UserClaims {
	val := ctx.Value(userClaimsKey)
	if claims, ok := val.(UserClaims); ok {
		return claims
	}
	return nil
}

// SetUser stores the loaded pilot for use by handlers
func SetUser(ctx context.Context, user *gormModels.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the pilot loaded by the auth middleware, or nil
func GetUser(ctx context.Context) *gormModels.User {
	if user, ok := ctx.Value(userKey).(*gormModels.User); ok {
		return user
	}
	return nil
}

// SetSessionID stores the browser session id that flash messages are keyed on
func SetSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// GetSessionID returns the browser session id, or ""
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
