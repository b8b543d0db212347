package entities

import "errors"

var (
	// ErrKeyNotFound is returned by a keyed store when the key has no value.
	ErrKeyNotFound = errors.New("key not found")
	// ErrTokenNotFound collapses every reason a session token could not be read.
	ErrTokenNotFound = errors.New("session token not found")
	// ErrDecode is returned when a JWT payload cannot be decoded.
	ErrDecode = errors.New("jwt decode failed")
	// ErrUnavailable is returned when the primary usage call fails.
	ErrUnavailable = errors.New("usage data unavailable")
	// ErrCacheMiss is returned when no fresh cache entry exists.
	ErrCacheMiss = errors.New("cache miss")
)
