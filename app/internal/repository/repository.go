package repository

import "context"

// ItemTableKeyAccessToken is where the IDE keeps the signed-in access token.
const ItemTableKeyAccessToken = "cursorAuth/accessToken"

// Repository defines a keyed local store.
// This allows for different backends (e.g., the IDE's SQLite state file, in-memory).
type Repository interface {
	// Lookup returns the value for key or entities.ErrKeyNotFound.
	Lookup(ctx context.Context, key string) (string, error)
	// Close releases the underlying handle.
	Close() error
}
