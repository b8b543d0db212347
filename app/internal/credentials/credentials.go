package credentials

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
	"github.com/marketconnect/cursor-stats/app/internal/jwt"
	"github.com/marketconnect/cursor-stats/app/internal/repository"
)

// Opener opens the keyed store at path.
type Opener func(path string) (repository.Repository, error)

// OpenSQLite is the production Opener.
func OpenSQLite(path string) (repository.Repository, error) {
	return repository.NewSQLiteRepository(path)
}

// Reader extracts the session token from the IDE's local state store.
type Reader struct {
	paths  []string
	open   Opener
	logger *zap.Logger
}

// NewReader creates a Reader probing paths in order.
func NewReader(paths []string, open Opener, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{paths: paths, open: open, logger: logger}
}

// StorePath returns the first candidate path that exists.
func (r *Reader) StorePath() (string, bool) {
	for _, p := range r.paths {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// GetToken returns "<user_id>%3A%3A<access_token>". Every failure wraps
// entities.ErrTokenNotFound.
func (r *Reader) GetToken(ctx context.Context) (entities.SessionToken, error) {
	path, ok := r.StorePath()
	if !ok {
		return "", fmt.Errorf("%w: no state database in %v", entities.ErrTokenNotFound, r.paths)
	}

	raw, err := r.lookup(ctx, path)
	if err != nil {
		r.logger.Error("failed to read access token", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("%w: %v", entities.ErrTokenNotFound, err)
	}

	payload, err := jwt.DecodePayload(raw)
	if err != nil {
		r.logger.Error("failed to decode access token", zap.Error(err))
		return "", fmt.Errorf("%w: %v", entities.ErrTokenNotFound, err)
	}
	userID, err := jwt.Subject(payload)
	if err != nil {
		r.logger.Error("failed to read subject claim", zap.Error(err))
		return "", fmt.Errorf("%w: %v", entities.ErrTokenNotFound, err)
	}

	return entities.NewSessionToken(userID, raw), nil
}

func (r *Reader) lookup(ctx context.Context, path string) (string, error) {
	store, err := r.open(path)
	if err != nil {
		return "", err
	}
	defer store.Close()

	return store.Lookup(ctx, repository.ItemTableKeyAccessToken)
}
