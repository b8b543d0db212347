package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
)

// FileName is the cache file inside the data directory.
const FileName = "cache.json"

// entry is the on-disk shape: {"timestamp": <epoch seconds>, "data": <bundle>}.
type entry struct {
	Timestamp float64               `json:"timestamp"`
	Data      *entities.UsageBundle `json:"data"`
}

// Cache persists the last successful UsageBundle and serves it while it is
// no older than duration.
type Cache struct {
	path     string
	duration time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// New creates a Cache backed by path.
func New(path string, duration time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{path: path, duration: duration, now: time.Now, logger: logger}
}

// WithClock returns a copy of c that reads time from now.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	cp := *c
	cp.now = now
	return &cp
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// Duration returns the freshness window.
func (c *Cache) Duration() time.Duration {
	return c.duration
}

// Read returns the cached bundle, or entities.ErrCacheMiss when the file is
// absent, unparseable or older than the freshness window.
func (c *Cache) Read() (*entities.UsageBundle, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Error("failed to read cache", zap.String("path", c.path), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrCacheMiss, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Error("failed to parse cache", zap.String("path", c.path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", entities.ErrCacheMiss, err)
	}
	if e.Data == nil {
		return nil, fmt.Errorf("%w: no data", entities.ErrCacheMiss)
	}

	age := epochSeconds(c.now()) - e.Timestamp
	if age > c.duration.Seconds() {
		return nil, fmt.Errorf("%w: expired %.0fs ago", entities.ErrCacheMiss, age-c.duration.Seconds())
	}
	return e.Data, nil
}

// Write replaces the cache file with bundle stamped with the current time.
// The file is written to a temporary sibling and renamed into place.
func (c *Cache) Write(bundle *entities.UsageBundle) error {
	data, err := json.MarshalIndent(entry{Timestamp: epochSeconds(c.now()), Data: bundle}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}

// Invalidate removes the cache file. A missing file is not an error.
func (c *Cache) Invalidate() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache: %w", err)
	}
	return nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
