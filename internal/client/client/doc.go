// Package client is the Runnio REST API client.
//
// # Overview
//
// HTTPClient talks JSON to the Runnio backend under a configured base URL.
// It carries exactly one piece of mutable state: the bearer token set with
// SetAuthHeader. Every request issued while a token is set carries
// "Authorization: Bearer <token>"; after SetAuthHeader("") none does. The
// header is injected by an http.RoundTripper, so every endpoint helper gets
// it without threading the token through call sites.
//
// The client is an ordinary value: the auth service owns the instance it
// writes the token into, and every other consumer receives the same instance
// by injection.
//
// # Error Handling
//
// Transport failures (no response reached) wrap ErrUnavailable. Responses
// with a non-2xx status are returned as *APIError carrying the status code,
// the server's message and any field-level errors. errors.Is(err,
// ErrUnauthorized) matches 401/403 responses and errors.Is(err, ErrNotFound)
// matches 404.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honour cancellation.
package client
