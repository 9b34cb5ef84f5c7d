package wormhole

import (
	"fmt"
	"sort"
	"time"

	"drifter-tracker/internal/logger"
)

// Link is one directed wormhole edge: the exit system and the scan found there.
type Link struct {
	SystemID int32
	Scan     Scan
}

// Connections maps an entry system to every system reachable through a hole in it.
type Connections map[int32][]Link

// BuildConnections turns the scans active at now into the same-type network:
// every pair of distinct active scans sharing a hole type is linked in both
// directions. Empty-system markers and expired scans contribute nothing.
func BuildConnections(scans []Scan, now time.Time) Connections {
	active := make([]Scan, 0, len(scans))
	unknownSpawn := 0
	for _, s := range scans {
		if !s.HasHole() {
			continue
		}
		if s.SpawnedAt.IsZero() {
			unknownSpawn++
		} else if !s.Active(now) {
			continue
		}
		active = append(active, s)
	}
	if unknownSpawn > 0 {
		logger.Warn("Holes", fmt.Sprintf("%d scan(s) without a valid spawn time kept as active", unknownSpawn))
	}

	conns := make(Connections)
	for i, a := range active {
		for j, b := range active {
			if i == j || a.HoleType != b.HoleType {
				continue
			}
			conns[a.SystemID] = append(conns[a.SystemID], Link{SystemID: b.SystemID, Scan: b})
		}
	}
	return conns
}

// Systems returns the entry systems in ascending ID order.
func (c Connections) Systems() []int32 {
	ids := make([]int32, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgeCount returns the number of directed edges.
func (c Connections) EdgeCount() int {
	n := 0
	for _, links := range c {
		n += len(links)
	}
	return n
}

// ActiveScans returns the holed scans usable at now, preserving input order.
func ActiveScans(scans []Scan, now time.Time) []Scan {
	var out []Scan
	for _, s := range scans {
		if s.HasHole() && s.Active(now) {
			out = append(out, s)
		}
	}
	return out
}

// ExpiredScans returns the holed scans past their lifetime at now.
func ExpiredScans(scans []Scan, now time.Time) []Scan {
	var out []Scan
	for _, s := range scans {
		if s.HasHole() && !s.Active(now) {
			out = append(out, s)
		}
	}
	return out
}
