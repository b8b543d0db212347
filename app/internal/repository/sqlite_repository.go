package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
)

// SQLiteRepository reads the IDE's global state database (state.vscdb), a
// SQLite file holding a single key/value table named ItemTable.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepository opens the database at path read-only.
// The driver "sqlite3" must be registered by the application importing this package,
// typically by a blank import like `_ "github.com/mattn/go-sqlite3"`.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &SQLiteRepository{db: db, path: path}, nil
}

// NewSQLiteRepositoryFromDB wraps an already opened handle.
func NewSQLiteRepositoryFromDB(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Lookup returns the value stored in ItemTable under key.
func (r *SQLiteRepository) Lookup(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM ItemTable WHERE key = ?;`
	row := r.db.QueryRowContext(ctx, query, key)

	var value sql.NullString
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", entities.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to lookup %q: %w", key, err)
	}
	if !value.Valid || value.String == "" {
		return "", entities.ErrKeyNotFound
	}
	return value.String, nil
}

// readOnlyDSN turns a filesystem path into a SQLite URI opened with mode=ro,
// so the IDE's live database is never written to.
func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	return u.String()
}
