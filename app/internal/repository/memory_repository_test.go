package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
	"github.com/marketconnect/cursor-stats/app/internal/repository"
)

func TestMemoryRepository_Lookup(t *testing.T) {
	repo := repository.NewMemoryRepository(map[string]string{
		repository.ItemTableKeyAccessToken: "tok",
	})
	defer repo.Close()

	got, err := repo.Lookup(context.Background(), repository.ItemTableKeyAccessToken)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != "tok" {
		t.Errorf("Lookup() = %q, want %q", got, "tok")
	}

	repo.Set("other", "v2")
	if got, _ := repo.Lookup(context.Background(), "other"); got != "v2" {
		t.Errorf("Lookup(other) after Set = %q, want v2", got)
	}
}

func TestMemoryRepository_LookupMissing(t *testing.T) {
	repo := repository.NewMemoryRepository(nil)
	_, err := repo.Lookup(context.Background(), "missing")
	if !errors.Is(err, entities.ErrKeyNotFound) {
		t.Errorf("Lookup() error = %v, want %v", err, entities.ErrKeyNotFound)
	}
}
