package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims identifies the authenticated caller of a request
type UserClaims interface {
	UserID() string
	Source() string
}

// JWTClaims is the payload of a crew center access token. The subject is the user id.
type JWTClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims

	source string
}

func (c *JWTClaims) UserID() string { return c.Subject }

// Source reports whether the token came from the Authorization header or the session cookie
func (c *JWTClaims) Source() string {
	if c.source == "" {
		return SourceBearer
	}
	return c.source
}

const (
	SourceBearer = "JWT"
	SourceCookie = "COOKIE"
)
