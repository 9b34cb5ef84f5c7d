package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drifter-tracker/internal/api"
	"drifter-tracker/internal/db"
	"drifter-tracker/internal/engine"
	"drifter-tracker/internal/wormhole"
)

func TestParseFleetArgs(t *testing.T) {
	ships, err := parseFleetArgs([]string{"Stratios=4", "Vexor Navy Issue=2", "Loki", "Stratios=1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Stratios": 5, "Vexor Navy Issue": 2, "Loki": 1}, ships)

	for _, bad := range []string{"Stratios=0", "Stratios=x", "=3", " "} {
		_, err := parseFleetArgs([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestPrintFleet(t *testing.T) {
	lookup := func(name string) (string, int64, bool) {
		if name == "Stratios" {
			return name, 13_400_000, true
		}
		return "", 0, false
	}
	var buf bytes.Buffer
	printFleet(&buf, api.CheckFleet(lookup, map[string]int{"Stratios": 2, "Ghost": 1}))
	out := buf.String()
	assert.Contains(t, out, "13,400,000 kg")
	assert.Contains(t, out, "3 ships, 26,800,000 kg total")
	assert.Contains(t, out, "Unknown hulls, counted as weightless: Ghost")
	assert.Contains(t, out, "full passes")
}

func TestPrintOutcome(t *testing.T) {
	now := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	expires := now.Add(3 * time.Hour)
	out := engine.Outcome{
		Kind:        engine.OutcomeRoutes,
		Candidates:  3,
		ActiveHoles: 2,
		ComputedAt:  now,
		Routes: []engine.Route{{
			Origin: "Tanoo", Destination: "4-43BW",
			EntryPath: []string{"Tanoo"}, ExitPath: []string{"5E-CMA", "4-43BW"},
			ExitGates: 1, TotalGates: 1, HopCount: 1, Score: -4, Band: engine.BandOK,
			Hops: []engine.Hop{{
				EntrySystem: "Tanoo", ExitSystem: "5E-CMA",
				HoleType: wormhole.Barbican, LifeStatus: wormhole.Fresh, MassStatus: wormhole.MassHealthy,
				ExpiresAt: &expires,
			}},
		}},
	}
	var buf bytes.Buffer
	printOutcome(&buf, out, "Tanoo", "4-43BW")
	s := buf.String()
	assert.Contains(t, s, "1 of 3 routes")
	assert.Contains(t, s, "[OK] score -4")
	assert.Contains(t, s, "Tanoo => 5E-CMA  Barbican Fresh")
	assert.Contains(t, s, "3 hours left")
	assert.Contains(t, s, "5E-CMA > 4-43BW (1)")

	buf.Reset()
	printOutcome(&buf, engine.Outcome{Kind: engine.OutcomeDirect, Direct: &engine.DirectRoute{
		Path: []string{"Tanoo", "Lashesih"}, Gates: 1,
	}}, "Tanoo", "Lashesih")
	assert.Contains(t, buf.String(), "Direct route: 1 gates")

	buf.Reset()
	printOutcome(&buf, engine.Outcome{Kind: engine.OutcomeNoRoute}, "Tanoo", "5E-CMA")
	assert.Equal(t, "No route from Tanoo to 5E-CMA.\n", buf.String())
}

func TestMatchScanID(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	defer database.Close()

	sc, err := database.AddScan(wormhole.Scan{
		SystemID: 30000001, SystemName: "Tanoo",
		HoleType: wormhole.Vidette, LifeStatus: wormhole.Fresh, MassStatus: wormhole.MassHealthy,
	})
	require.NoError(t, err)

	id, err := matchScanID(database, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, sc.ID, id)

	id, err = matchScanID(database, shortID(sc.ID))
	require.NoError(t, err)
	assert.Equal(t, sc.ID, id)

	_, err = matchScanID(database, "zzzzzzzz")
	assert.ErrorIs(t, err, db.ErrScanNotFound)
}
