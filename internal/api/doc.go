// Package api talks to the remote travel-blog REST API.
//
// # Overview
//
// The package provides:
//  1. A transport contract (the Client interface) covering authentication,
//     profile and permissions, articles, destinations, recommendations and
//     the admin endpoints.
//  2. The HTTP implementation (HTTPClient), which funnels every
//     authenticated request through a single path that injects the bearer
//     token, refreshes it via the token-refresh endpoint when expired or
//     rejected, and retries the original request once. Token persistence
//     stays out of this package: the OnTokensRefreshed hook hands new
//     pairs to whoever owns durable storage.
//
// # Error Handling
//
// Expected failures are sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound. Rejected
// input surfaces as *ValidationError (match the class with
// errors.Is(err, ErrValidation), the details with errors.As).
//
// All operations take a context.Context and honor cancellation; HTTPClient
// is safe for concurrent use.
package api
