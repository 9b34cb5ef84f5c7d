package db

import (
	"database/sql"
	"time"
)

// RouteRecord is one answered routing request.
type RouteRecord struct {
	ID          int64  `json:"id"`
	Timestamp   string `json:"timestamp"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Kind        string `json:"kind"`
	Candidates  int    `json:"candidates"`
	BestScore   *int   `json:"best_score,omitempty"`
	TotalGates  *int   `json:"total_gates,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

// InsertRouteHistory records a routing request and returns its ID (0 on failure).
// bestScore and totalGates are nil when no wormhole route was found.
func (d *DB) InsertRouteHistory(origin, destination, kind string, candidates int, bestScore, totalGates *int, duration time.Duration) int64 {
	result, err := d.sql.Exec(
		`INSERT INTO route_history (timestamp, origin, destination, kind, candidates, best_score, total_gates, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), origin, destination, kind, candidates,
		nullInt(bestScore), nullInt(totalGates), duration.Milliseconds(),
	)
	if err != nil {
		return 0
	}
	id, _ := result.LastInsertId()
	return id
}

// GetRouteHistory returns the last N routing requests (newest first).
func (d *DB) GetRouteHistory(limit int) []RouteRecord {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.Query(
		`SELECT id, timestamp, origin, destination, kind, candidates, best_score, total_gates, duration_ms
		 FROM route_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return []RouteRecord{}
	}
	defer rows.Close()

	records := []RouteRecord{}
	for rows.Next() {
		var r RouteRecord
		var best, gates sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Origin, &r.Destination, &r.Kind,
			&r.Candidates, &best, &gates, &r.DurationMs); err != nil {
			continue
		}
		r.BestScore = intPtr(best)
		r.TotalGates = intPtr(gates)
		records = append(records, r)
	}
	return records
}

// ClearRouteHistory deletes all routing history.
func (d *DB) ClearRouteHistory() error {
	_, err := d.sql.Exec("DELETE FROM route_history")
	return err
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
