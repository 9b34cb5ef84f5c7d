package db

import (
	"database/sql"
	"fmt"

	"drifter-tracker/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
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
		sqlDB.Close()
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
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS scans (
				id          TEXT PRIMARY KEY,
				region_id   INTEGER NOT NULL DEFAULT 0,
				region_name TEXT NOT NULL DEFAULT '',
				system_id   INTEGER NOT NULL,
				system_name TEXT NOT NULL,
				hole_type   TEXT NOT NULL,
				life_status TEXT NOT NULL,
				mass_status TEXT NOT NULL,
				role_id     TEXT NOT NULL DEFAULT '',
				raw_info    TEXT NOT NULL DEFAULT '',
				spawned_at  TEXT NOT NULL DEFAULT '',
				created_at  TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_scans_system ON scans(system_id);
			CREATE INDEX IF NOT EXISTS idx_scans_created ON scans(created_at);

			CREATE TABLE IF NOT EXISTS settings (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	if version < 2 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS route_history (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp   TEXT NOT NULL,
				origin      TEXT NOT NULL,
				destination TEXT NOT NULL,
				kind        TEXT NOT NULL,
				candidates  INTEGER NOT NULL DEFAULT 0,
				best_score  INTEGER,
				total_gates INTEGER,
				duration_ms INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_route_history_ts ON route_history(timestamp);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
		logger.Info("DB", "Applied migration v2 (route history)")
	}

	if version < 3 {
		bump := `INSERT INTO settings (key, value) VALUES ('` + SettingScanRevision + `', '1')
				ON CONFLICT(key) DO UPDATE SET value = CAST(value AS INTEGER) + 1;`
		_, err := d.sql.Exec(`
			CREATE TRIGGER IF NOT EXISTS scans_revision_insert AFTER INSERT ON scans BEGIN ` + bump + ` END;
			CREATE TRIGGER IF NOT EXISTS scans_revision_update AFTER UPDATE ON scans BEGIN ` + bump + ` END;
			CREATE TRIGGER IF NOT EXISTS scans_revision_delete AFTER DELETE ON scans BEGIN ` + bump + ` END;

			INSERT OR IGNORE INTO schema_version (version) VALUES (3);
		`)
		if err != nil {
			return fmt.Errorf("migration v3: %w", err)
		}
		logger.Info("DB", "Applied migration v3 (scan revision)")
	}

	return nil
}
