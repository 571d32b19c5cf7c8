package store

import (
	"database/sql"
	"fmt"
)

// Schema versions:
// v1: palindromes(id, candidate, phrase)
// v2: added length and created_at, plus the length index
const CurrentSchemaVersion = 2

// Migration adds a column to a table that predates it.
type Migration struct {
	Table    string
	Column   string
	Def      string
	Backfill string // optional statement run after the column is added
}

// pendingMigrations lists the columns older databases may be missing.
var pendingMigrations = []Migration{
	{
		Table:    "palindromes",
		Column:   "length",
		Def:      "INTEGER NOT NULL DEFAULT 0",
		Backfill: "UPDATE palindromes SET length = length(candidate) WHERE length = 0",
	},
	{Table: "palindromes", Column: "created_at", Def: "DATETIME"},
}

// runMigrations brings an existing palindromes table up to the current
// columns. It returns how many migrations were applied.
func runMigrations(db *sql.DB) (int, error) {
	applied := 0
	for _, m := range pendingMigrations {
		if !tableExists(db, m.Table) {
			continue
		}
		ok, err := columnExists(db, m.Table, m.Column)
		if err != nil {
			return applied, err
		}
		if ok {
			continue
		}

		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := db.Exec(query); err != nil {
			return applied, fmt.Errorf("migration %s.%s failed: %w", m.Table, m.Column, err)
		}
		if m.Backfill != "" {
			if _, err := db.Exec(m.Backfill); err != nil {
				return applied, fmt.Errorf("backfill %s.%s failed: %w", m.Table, m.Column, err)
			}
		}
		applied++
	}
	return applied, nil
}

// columnExists checks if a column exists in a table using PRAGMA table_info.
func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("failed to inspect %s: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// tableExists checks if a table exists in the database.
func tableExists(db *sql.DB, table string) bool {
	var count int
	query := "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?"
	if err := db.QueryRow(query, table).Scan(&count); err != nil {
		return false
	}
	return count > 0
}

// SchemaVersion returns the latest recorded schema version, or 0 when none
// has been recorded.
func SchemaVersion(db *sql.DB) int {
	if !tableExists(db, "schema_versions") {
		return 0
	}
	var version int
	query := "SELECT version FROM schema_versions ORDER BY id DESC LIMIT 1"
	if err := db.QueryRow(query).Scan(&version); err != nil {
		return 0
	}
	return version
}

// setSchemaVersion records a new schema version in the database.
func setSchemaVersion(db *sql.DB, version int) error {
	createTable := `
		CREATE TABLE IF NOT EXISTS schema_versions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version INTEGER NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)
	`
	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	desc := fmt.Sprintf("Migrated to schema version %d", version)
	if _, err := db.Exec(
		"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
		version, desc,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}
