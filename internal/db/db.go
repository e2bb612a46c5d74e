package db

import (
	"database/sql"
	"fmt"

	"frontiergen/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite run-history database.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	// Try to read current version
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS run_history (
				id              INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp       TEXT NOT NULL,
				csv_path        TEXT NOT NULL,
				tickers         TEXT NOT NULL,
				observations    INTEGER NOT NULL,
				raw_rows        INTEGER NOT NULL,
				grid_step       REAL NOT NULL,
				portfolios      INTEGER NOT NULL,
				frontier_points INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_run_history_ts ON run_history(timestamp);

			CREATE TABLE IF NOT EXISTS run_assets (
				run_id          INTEGER NOT NULL REFERENCES run_history(id),
				ticker          TEXT NOT NULL,
				expected_return REAL NOT NULL,
				risk            REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_run_assets_run ON run_assets(run_id);

			CREATE TABLE IF NOT EXISTS run_frontier (
				run_id          INTEGER NOT NULL REFERENCES run_history(id),
				position        INTEGER NOT NULL,
				risk            REAL NOT NULL,
				expected_return REAL NOT NULL,
				weights         TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_run_frontier_run ON run_frontier(run_id);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		if _, err := d.sql.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (1)"); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	}
	return nil
}
