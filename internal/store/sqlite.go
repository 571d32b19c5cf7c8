package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/aitorres/lancini/internal/palindrome"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps records in a SQLite table. Append runs in a single
// transaction, so a failed call stores nothing.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS palindromes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		candidate TEXT NOT NULL UNIQUE,
		phrase TEXT NOT NULL,
		length INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create palindromes table: %w", err)
	}

	// Tables from older layouts are missing columns the index needs.
	if _, err := runMigrations(s.db); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_palindromes_length ON palindromes(length)`); err != nil {
		return fmt.Errorf("failed to create palindromes index: %w", err)
	}

	if SchemaVersion(s.db) < CurrentSchemaVersion {
		return setSchemaVersion(s.db, CurrentSchemaVersion)
	}
	return nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.dbPath }

// Load returns every stored candidate.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT candidate FROM palindromes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query palindromes: %w", err)
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan palindrome: %w", err)
		}
		known[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read palindromes: %w", err)
	}
	return known, nil
}

// Append inserts records in order inside one transaction. Candidates that
// are already stored keep their original row.
func (s *SQLiteStore) Append(ctx context.Context, records []palindrome.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := validate(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO palindromes (candidate, phrase, length) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Candidate, r.Phrase, utf8.RuneCountInString(r.Candidate)); err != nil {
			return fmt.Errorf("failed to insert palindrome %q: %w", r.Candidate, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit palindromes: %w", err)
	}
	return nil
}

// Records returns every stored record in insertion order.
func (s *SQLiteStore) Records(ctx context.Context) ([]palindrome.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT candidate, phrase FROM palindromes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query palindromes: %w", err)
	}
	defer rows.Close()

	var out []palindrome.Record
	for rows.Next() {
		var r palindrome.Record
		if err := rows.Scan(&r.Candidate, &r.Phrase); err != nil {
			return nil, fmt.Errorf("failed to scan palindrome: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
