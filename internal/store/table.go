package store

import (
	"database/sql"
	"fmt"
)

// migrations[i] brings the schema from version i to i+1. Applied versions
// are tracked in PRAGMA user_version; never edit a released step.
var migrations = [][]string{
	// v1: save journal and logo caches
	{
		`CREATE TABLE IF NOT EXISTS saves (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  saved_at TEXT NOT NULL,
  status TEXT NOT NULL,
  remote TEXT NOT NULL DEFAULT '',
  rows INTEGER NOT NULL DEFAULT 0,
  remote_error TEXT NOT NULL DEFAULT '',
  local_error TEXT NOT NULL DEFAULT ''
);`,
		`CREATE TABLE IF NOT EXISTS logos (
  key TEXT PRIMARY KEY,
  content_type TEXT NOT NULL,
  bytes BLOB NOT NULL,
  fetched_at TEXT NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS company_domains (
  company TEXT PRIMARY KEY,
  domain TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_saved_at ON saves(saved_at);`,
		`CREATE INDEX IF NOT EXISTS idx_company_domains_domain ON company_domains(domain);`,
	},
	// v2: remember how a company domain was found
	{
		`ALTER TABLE company_domains ADD COLUMN source TEXT NOT NULL DEFAULT '';`,
	},
}

// SchemaVersion is the user_version after Migrate.
var SchemaVersion = len(migrations)

// Migrate applies every pending step in one transaction.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v > SchemaVersion {
		return fmt.Errorf("database schema v%d is newer than this build (v%d)", v, SchemaVersion)
	}

	for ; v < SchemaVersion; v++ {
		for _, stmt := range migrations[v] {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("schema v%d: %w", v+1, err)
			}
		}
	}
	// PRAGMA does not take bind parameters
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, SchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
