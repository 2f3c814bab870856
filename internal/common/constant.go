// Package common contains shared constants and sentinel errors used across
// the service layers.
package common

import "time"

const (
	// TokenCookieName is the cookie carrying the session token.
	TokenCookieName = "token"

	// AuthorizationHeaderName carries "Bearer <token>" when no cookie is sent.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// TokenLifetime is the default session token lifetime; the cookie max-age
	// follows it.
	TokenLifetime = 24 * time.Hour

	// DefaultBcryptCost is the password hashing cost used unless configured.
	DefaultBcryptCost = 10

	// EnvProduction enables production-only behaviour such as secure cookies.
	EnvProduction = "production"
)
