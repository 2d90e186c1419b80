// Package common contains shared constants and sentinel errors used across
// Runnio client components.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer token.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the session token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates client requests with server logs.
	RequestIDHeaderName = "X-Request-ID"
)
