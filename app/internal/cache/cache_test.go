package cache_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
	"github.com/marketconnect/cursor-stats/app/internal/cache"
)

var t0 = time.Unix(1_700_000_000, 0)

func sampleBundle() *entities.UsageBundle {
	limit := 20.0
	return &entities.UsageBundle{
		Usage: entities.UsageSnapshot{
			Models:       map[string]entities.ModelUsage{"gpt-4": {NumRequests: 12}},
			StartOfMonth: "2024-02-01T00:00:00Z",
		},
		Limits: &entities.LimitSnapshot{HardLimit: &limit},
		Month:  2,
		Year:   2024,
	}
}

func newCacheAt(t *testing.T, d time.Duration, at *time.Time) *cache.Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sub", cache.FileName)
	return cache.New(path, d, nil).WithClock(func() time.Time { return *at })
}

func TestCache_WriteRead(t *testing.T) {
	now := t0
	c := newCacheAt(t, time.Minute, &now)

	if err := c.Write(sampleBundle()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := c.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Usage.Premium().NumRequests != 12 || got.Limits.Value() != 20 || got.Invoice != nil {
		t.Errorf("Read() = %+v", got)
	}
	if got.Usage.StartOfMonth != "2024-02-01T00:00:00Z" {
		t.Errorf("StartOfMonth = %q", got.Usage.StartOfMonth)
	}
}

func TestCache_FreshnessBoundary(t *testing.T) {
	tests := []struct {
		name      string
		duration  time.Duration
		age       time.Duration
		wantFresh bool
	}{
		{"zero duration zero age", 0, 0, true},
		{"zero duration aged", 0, time.Second, false},
		{"younger", 60 * time.Second, 30 * time.Second, true},
		{"exactly at duration", 60 * time.Second, 60 * time.Second, true},
		{"one second past", 60 * time.Second, 61 * time.Second, false},
		{"just past", 60 * time.Second, 60*time.Second + time.Millisecond, false},
		{"long duration", time.Hour, 59 * time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := t0
			c := newCacheAt(t, tt.duration, &now)
			if err := c.Write(sampleBundle()); err != nil {
				t.Fatalf("Write() error = %v", err)
			}

			now = t0.Add(tt.age)
			got, err := c.Read()
			if tt.wantFresh {
				if err != nil || got == nil {
					t.Errorf("Read() = (%v, %v), want fresh data", got, err)
				}
				return
			}
			if !errors.Is(err, entities.ErrCacheMiss) || got != nil {
				t.Errorf("Read() = (%v, %v), want ErrCacheMiss", got, err)
			}
		})
	}
}

func TestCache_MissCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"corrupt", `{"timestamp": 17`},
		{"no data", `{"timestamp": 1700000000}`},
		{"null data", `{"timestamp": 1700000000, "data": null}`},
		{"missing timestamp is epoch", `{"data": {"usage": {"startOfMonth": "2024-02-01"}, "month": 2, "year": 2024}}`},
		{"bad usage", `{"timestamp": 1700000000, "data": {"usage": [1]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := t0
			c := newCacheAt(t, time.Minute, &now)
			if err := os.MkdirAll(filepath.Dir(c.Path()), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(c.Path(), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := c.Read(); !errors.Is(err, entities.ErrCacheMiss) {
				t.Errorf("Read() error = %v, want ErrCacheMiss", err)
			}
		})
	}
}

func TestCache_ReadMissingFile(t *testing.T) {
	now := t0
	c := newCacheAt(t, time.Minute, &now)
	if _, err := c.Read(); !errors.Is(err, entities.ErrCacheMiss) {
		t.Errorf("Read() error = %v, want ErrCacheMiss", err)
	}
}

func TestCache_WriteOverwrites(t *testing.T) {
	now := t0
	c := newCacheAt(t, time.Minute, &now)
	if err := c.Write(sampleBundle()); err != nil {
		t.Fatal(err)
	}

	next := sampleBundle()
	next.Month = 3
	now = t0.Add(50 * time.Second)
	if err := c.Write(next); err != nil {
		t.Fatal(err)
	}

	// The second write restamps the entry, so it is fresh 100s after t0.
	now = t0.Add(100 * time.Second)
	got, err := c.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Month != 3 {
		t.Errorf("Month = %d, want 3", got.Month)
	}

	entries, err := os.ReadDir(filepath.Dir(c.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("cache dir has %d entries, want only %s", len(entries), cache.FileName)
	}
}

func TestCache_Invalidate(t *testing.T) {
	now := t0
	c := newCacheAt(t, time.Hour, &now)

	if err := c.Invalidate(); err != nil {
		t.Errorf("Invalidate() on missing file error = %v", err)
	}
	if err := c.Write(sampleBundle()); err != nil {
		t.Fatal(err)
	}
	if err := c.Invalidate(); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, err := c.Read(); !errors.Is(err, entities.ErrCacheMiss) {
		t.Errorf("Read() after Invalidate error = %v, want ErrCacheMiss", err)
	}
}
