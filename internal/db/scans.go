package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"drifter-tracker/internal/logger"
	"drifter-tracker/internal/wormhole"
)

// ErrScanNotFound is returned when a scan ID does not exist.
var ErrScanNotFound = errors.New("scan not found")

// createdLayout is fixed-width so created_at sorts as text.
const createdLayout = "2006-01-02T15:04:05.000000000Z"

const scanColumns = `id, region_id, region_name, system_id, system_name, hole_type,
	life_status, mass_status, role_id, raw_info, spawned_at`

// AddScan stores a holed scan, assigning a time-ordered ID when s.ID is empty.
// Several holes may coexist in one system; an earlier empty-system marker for
// the system is dropped.
func (d *DB) AddScan(s wormhole.Scan) (wormhole.Scan, error) {
	if !s.HasHole() {
		return s, fmt.Errorf("add scan: %w", wormhole.ErrInvalidHoleType)
	}
	if err := assignID(&s); err != nil {
		return s, err
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return s, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM scans WHERE system_id = ? AND hole_type = ?", s.SystemID, string(wormhole.NoHole)); err != nil {
		return s, fmt.Errorf("clear marker: %w", err)
	}
	if err := insertScan(tx, s); err != nil {
		return s, err
	}
	if err := tx.Commit(); err != nil {
		return s, fmt.Errorf("commit: %w", err)
	}
	return s, nil
}

// MarkNoHole records that a system was scanned empty. Every earlier scan of
// the system is removed in the same transaction.
func (d *DB) MarkNoHole(s wormhole.Scan, at time.Time) (wormhole.Scan, int, error) {
	s.HoleType = wormhole.NoHole
	s.LifeStatus = wormhole.LifeUnknown
	s.MassStatus = wormhole.MassUnknown
	s.SpawnedAt = at
	if err := assignID(&s); err != nil {
		return s, 0, err
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return s, 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM scans WHERE system_id = ?", s.SystemID)
	if err != nil {
		return s, 0, fmt.Errorf("clear system: %w", err)
	}
	removed, _ := res.RowsAffected()
	if err := insertScan(tx, s); err != nil {
		return s, 0, err
	}
	if err := tx.Commit(); err != nil {
		return s, 0, fmt.Errorf("commit: %w", err)
	}
	return s, int(removed), nil
}

// ListScans returns every stored scan, newest first.
func (d *DB) ListScans() ([]wormhole.Scan, error) {
	return d.queryScans(`SELECT ` + scanColumns + ` FROM scans ORDER BY created_at DESC, id DESC`)
}

// ScansInSystem returns the scans of one system, newest first.
func (d *DB) ScansInSystem(systemID int32) ([]wormhole.Scan, error) {
	return d.queryScans(`SELECT `+scanColumns+` FROM scans WHERE system_id = ? ORDER BY created_at DESC, id DESC`, systemID)
}

// GetScan returns a single scan by ID.
func (d *DB) GetScan(id string) (wormhole.Scan, error) {
	scans, err := d.queryScans(`SELECT `+scanColumns+` FROM scans WHERE id = ?`, id)
	if err != nil {
		return wormhole.Scan{}, err
	}
	if len(scans) == 0 {
		return wormhole.Scan{}, ErrScanNotFound
	}
	return scans[0], nil
}

// ScanRevision changes whenever a scan is added, removed or edited, by this
// process or any other writer of the database.
func (d *DB) ScanRevision() string {
	return d.GetSetting(SettingScanRevision, "0")
}

// DeleteScan removes a scan by ID.
func (d *DB) DeleteScan(id string) error {
	res, err := d.sql.Exec("DELETE FROM scans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete scan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScanNotFound
	}
	return nil
}

// ClearScans removes every scan and returns how many were deleted.
func (d *DB) ClearScans() (int, error) {
	res, err := d.sql.Exec("DELETE FROM scans")
	if err != nil {
		return 0, fmt.Errorf("clear scans: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// CleanupExpired deletes holed scans past their lifetime at now. Empty-system
// markers and scans with an unknown spawn time are kept.
func (d *DB) CleanupExpired(now time.Time) (int, error) {
	scans, err := d.ListScans()
	if err != nil {
		return 0, err
	}
	expired := wormhole.ExpiredScans(scans, now)
	if len(expired) == 0 {
		return 0, nil
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.Prepare("DELETE FROM scans WHERE id = ?")
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, s := range expired {
		if _, err := stmt.Exec(s.ID); err != nil {
			return 0, fmt.Errorf("delete %s: %w", s.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(expired), nil
}

func (d *DB) queryScans(query string, args ...interface{}) ([]wormhole.Scan, error) {
	rows, err := d.sql.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	scans := []wormhole.Scan{}
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

func scanRow(rows *sql.Rows) (wormhole.Scan, error) {
	var s wormhole.Scan
	var hole, life, mass, spawned string
	err := rows.Scan(&s.ID, &s.RegionID, &s.RegionName, &s.SystemID, &s.SystemName,
		&hole, &life, &mass, &s.RoleID, &s.RawInfo, &spawned)
	if err != nil {
		return s, fmt.Errorf("scan row: %w", err)
	}
	s.HoleType = wormhole.HoleType(hole)
	s.LifeStatus = wormhole.LifeStatus(life)
	s.MassStatus = wormhole.MassStatus(mass)
	if spawned != "" {
		t, err := time.Parse(time.RFC3339Nano, spawned)
		if err != nil {
			logger.Warn("DB", fmt.Sprintf("Scan %s has malformed spawn time %q", s.ID, spawned))
		} else {
			s.SpawnedAt = t
		}
	}
	return s, nil
}

func assignID(s *wormhole.Scan) error {
	if s.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("scan id: %w", err)
	}
	s.ID = id.String()
	return nil
}

func insertScan(tx *sql.Tx, s wormhole.Scan) error {
	_, err := tx.Exec(
		`INSERT INTO scans (`+scanColumns+`, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.RegionID, s.RegionName, s.SystemID, s.SystemName, string(s.HoleType),
		string(s.LifeStatus), string(s.MassStatus), s.RoleID, s.RawInfo,
		formatTime(s.SpawnedAt), time.Now().UTC().Format(createdLayout),
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
