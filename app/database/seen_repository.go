package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const driverName = "sqlite"

func dsn(path string) string {
	return path + "?_pragma=busy_timeout(5000)"
}

// SeenRepository keeps seen identifiers in the seen_posts table of a SQLite
// file. The file is opened per operation so no lock is held between items.
type SeenRepository struct {
	path string
}

var _ SeenStore = (*SeenRepository)(nil)

// NewSeenRepository prepares the database file at path and migrates it.
func NewSeenRepository(path string) (*SeenRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if _, _, err := RunMigrations(path); err != nil {
		return nil, err
	}

	return &SeenRepository{path: path}, nil
}

func (r *SeenRepository) Path() string {
	return r.path
}

func (r *SeenRepository) Has(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.withDB(func(db *sql.DB) error {
		return db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM seen_posts WHERE link = ?)`, id).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check seen post: %w", err)
	}
	return exists, nil
}

func (r *SeenRepository) Insert(ctx context.Context, id string) error {
	err := r.withDB(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO seen_posts (link) VALUES (?)`, id)
		return err
	})
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to insert seen post: %w", err)
	}
	return nil
}

func (r *SeenRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.withDB(func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_posts`).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count seen posts: %w", err)
	}
	return count, nil
}

// Close is a no-op; connections never outlive a single call.
func (r *SeenRepository) Close() error {
	return nil
}

func (r *SeenRepository) withDB(fn func(db *sql.DB) error) error {
	db, err := sql.Open(driverName, dsn(r.path))
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
