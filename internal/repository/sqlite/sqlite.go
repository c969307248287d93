package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"e911audit/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.DeviceStore over an astdb.sqlite3 file
type Repository struct {
	db *sql.DB
}

// New opens the astdb SQLite file read-only.
// The file must exist and hold the astdb table.
func New(dbPath string) (*Repository, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	dsn, err := readOnlyDSN(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// readOnlyDSN builds a file: URI for path. The path is escaped so that
// '#', '?' and '%' in directory names reach SQLite as part of the file name.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "mode=ro&_pragma=busy_timeout(5000)",
	}
	return u.String(), nil
}

var errNotAstDB = errors.New("no astdb table")

func checkSchema(db *sql.DB) error {
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'astdb'`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("not an astdb file: %w", errNotAstDB)
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	return nil
}

// Entries returns every key under /<family>/, ordered by key.
// The prefix match is exact and case-sensitive.
func (r *Repository) Entries(ctx context.Context, family string) ([]domain.DBEntry, error) {
	prefix := "/" + family + "/"

	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value
		FROM astdb
		WHERE substr(key, 1, length(?)) = ?
		ORDER BY key
	`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query astdb: %w", err)
	}
	defer rows.Close()

	var entries []domain.DBEntry
	for rows.Next() {
		var (
			key   string
			value sql.NullString
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan astdb row: %w", err)
		}
		entries = append(entries, domain.DBEntry{Key: key, Value: nullToString(value)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating astdb: %w", err)
	}

	return entries, nil
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
