package credentials_test

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
	"github.com/marketconnect/cursor-stats/app/internal/credentials"
	"github.com/marketconnect/cursor-stats/app/internal/repository"
	_ "github.com/mattn/go-sqlite3"
)

func makeJWT(payload string) string {
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".c2ln"
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
}

// memoryOpener records which path was opened and serves items from memory.
func memoryOpener(items map[string]string, opened *string) credentials.Opener {
	return func(path string) (repository.Repository, error) {
		*opened = path
		return repository.NewMemoryRepository(items), nil
	}
}

func TestReader_GetToken(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "Cursor", "state.vscdb")
	fallback := filepath.Join(dir, "Code", "state.vscdb")
	touch(t, primary)
	touch(t, fallback)

	raw := makeJWT(`{"sub":"auth0|user_42","exp":1}`)
	var opened string
	r := credentials.NewReader([]string{primary, fallback},
		memoryOpener(map[string]string{repository.ItemTableKeyAccessToken: raw}, &opened), nil)

	tok, err := r.GetToken(context.Background())
	if err != nil {
		t.Fatalf("GetToken() error = %v", err)
	}
	if want := "user_42%3A%3A" + raw; tok.String() != want {
		t.Errorf("GetToken() = %q, want %q", tok, want)
	}
	if opened != primary {
		t.Errorf("opened %q, want first candidate %q", opened, primary)
	}
}

func TestReader_FallbackPath(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "Cursor", "state.vscdb")
	fallback := filepath.Join(dir, "Code", "state.vscdb")
	touch(t, fallback)

	var opened string
	r := credentials.NewReader([]string{primary, fallback},
		memoryOpener(map[string]string{repository.ItemTableKeyAccessToken: makeJWT(`{"sub":"a|b"}`)}, &opened), nil)

	if _, err := r.GetToken(context.Background()); err != nil {
		t.Fatalf("GetToken() error = %v", err)
	}
	if opened != fallback {
		t.Errorf("opened %q, want fallback %q", opened, fallback)
	}
}

func TestReader_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.vscdb")
	touch(t, path)

	tests := []struct {
		name  string
		paths []string
		open  credentials.Opener
	}{
		{
			name:  "no store",
			paths: []string{filepath.Join(dir, "missing.vscdb")},
			open: func(string) (repository.Repository, error) {
				t.Error("opener must not be called without an existing path")
				return nil, errors.New("unreachable")
			},
		},
		{
			name:  "open fails",
			paths: []string{path},
			open:  func(string) (repository.Repository, error) { return nil, errors.New("file is not a database") },
		},
		{
			name:  "missing key",
			paths: []string{path},
			open: func(string) (repository.Repository, error) {
				return repository.NewMemoryRepository(nil), nil
			},
		},
		{
			name:  "undecodable token",
			paths: []string{path},
			open: func(string) (repository.Repository, error) {
				return repository.NewMemoryRepository(map[string]string{repository.ItemTableKeyAccessToken: "not-a-jwt"}), nil
			},
		},
		{
			name:  "malformed subject",
			paths: []string{path},
			open: func(string) (repository.Repository, error) {
				return repository.NewMemoryRepository(map[string]string{repository.ItemTableKeyAccessToken: makeJWT(`{"sub":"nopipe"}`)}), nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := credentials.NewReader(tt.paths, tt.open, nil)
			tok, err := r.GetToken(context.Background())
			if !errors.Is(err, entities.ErrTokenNotFound) {
				t.Errorf("GetToken() error = %v, want ErrTokenNotFound", err)
			}
			if tok != "" {
				t.Errorf("GetToken() token = %q, want empty", tok)
			}
		})
	}
}

func TestReader_SQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.vscdb")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	raw := makeJWT(`{"sub":"auth0|user_sql"}`)
	if _, err := db.Exec(`CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB);`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO ItemTable (key, value) VALUES (?, ?);`, repository.ItemTableKeyAccessToken, raw); err != nil {
		t.Fatal(err)
	}
	db.Close()

	r := credentials.NewReader([]string{path}, credentials.OpenSQLite, nil)
	tok, err := r.GetToken(context.Background())
	if err != nil {
		t.Fatalf("GetToken() error = %v", err)
	}
	if tok.UserID() != "user_sql" {
		t.Errorf("UserID() = %q, want user_sql", tok.UserID())
	}
}
