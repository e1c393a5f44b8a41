package session

import "context"

// TokenKey is the storage key the bearer token lives under.
const TokenKey = "auth_token"

// TokenRepo persists the single bearer token held by the client.
// Only the Manager should read or write it.
type TokenRepo interface {
	// Get returns the stored token. found is false when nothing is stored.
	Get(ctx context.Context) (token string, found bool, err error)

	// Set replaces any stored token with the given one
	Set(ctx context.Context, token string) error

	// Delete removes the stored token. Deleting when nothing is stored is not an error.
	Delete(ctx context.Context) error

	// Close releases any resources held by the repo
	Close(ctx context.Context) error
}
