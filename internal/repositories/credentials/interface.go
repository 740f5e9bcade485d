// Package credentials persists the session's bearer tokens in the local
// key-value table, surviving restarts. The session store is the only
// writer; everything else reads tokens through the session.
package credentials

import "context"

// Fixed keys under which the token pair is stored.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Repository is a durable string key-value store. Get returns "" for a
// missing key; Clear wipes every key at once (logout, failed restore).
// SetPair writes both tokens atomically: an access token must never be
// durable without its refresh token.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetPair(ctx context.Context, access, refresh string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
