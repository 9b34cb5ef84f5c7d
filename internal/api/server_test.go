package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drifter-tracker/internal/config"
	"drifter-tracker/internal/db"
	"drifter-tracker/internal/engine"
	"drifter-tracker/internal/sde"
	"drifter-tracker/internal/wormhole"
)

var testNow = time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)

// testUniverse is a six-system chain in Derelik and a disconnected pair in
// Scalding Pass.
func testUniverse(t *testing.T) *sde.Data {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"regions.csv": "region_id,region_name\n10000001,Derelik\n10001000,Scalding Pass\n",
		"systems_processed.csv": "system_id,system_name,region_id,security\n" +
			"30000001,Tanoo,10000001,0.86\n" +
			"30000002,Lashesih,10000001,0.75\n" +
			"30000003,Akpivem,10000001,0.85\n" +
			"30000004,Jarizza,10000001,0.46\n" +
			"30000005,Sasta,10000001,0.3\n" +
			"30000006,Nakri,10000001,0.1\n" +
			"30001000,5E-CMA,10001000,-0.38\n" +
			"30001001,4-43BW,10001000,-0.2\n",
		"jumps_processed.csv": "from_system,to_system\n" +
			"30000001,30000002\n30000002,30000001\n" +
			"30000002,30000003\n30000003,30000002\n" +
			"30000003,30000004\n30000004,30000003\n" +
			"30000004,30000005\n30000005,30000004\n" +
			"30000005,30000006\n30000006,30000005\n" +
			"30001000,30001001\n30001001,30001000\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	data, err := sde.Load(dir, sde.Options{})
	require.NoError(t, err)
	return data
}

func newTestServer(t *testing.T, loaded bool) *Server {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	srv := NewServer(config.Default(), database)
	srv.now = func() time.Time { return testNow }
	if loaded {
		srv.SetSDE(testUniverse(t))
	}
	return srv
}

func do(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func addBarbican(t *testing.T, srv *Server, system string) ScanView {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/scans", ScanInput{
		System:     system,
		HoleType:   "barbican",
		LifeStatus: "Fresh",
		MassStatus: "100% > 50%",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var v ScanView
	decode(t, rec, &v)
	return v
}

func TestNotReady_Returns503(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, http.MethodPost, "/api/route/hybrid", hybridRequest{Origin: "Tanoo", Destination: "Nakri"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/scans", ScanInput{System: "Tanoo"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]interface{}
	decode(t, rec, &status)
	assert.Equal(t, false, status["sde_loaded"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, false)
	rec := do(t, srv, http.MethodOptions, "/api/scans", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAutocomplete(t *testing.T) {
	srv := newTestServer(t, true)
	rec := do(t, srv, http.MethodGet, "/api/systems/autocomplete?q=ta", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string][]string
	decode(t, rec, &out)
	// prefix match first, then substring
	assert.Equal(t, []string{"Tanoo", "Sasta"}, out["systems"])
}

func TestAddScan_ResolvesAndBackdates(t *testing.T) {
	srv := newTestServer(t, true)
	rec := do(t, srv, http.MethodPost, "/api/scans", ScanInput{
		System: "5e-cma",
		Probe:  "Barbican. This wormhole's stability has been reduced, but it is not yet critical.",
		RoleID: "42",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var v ScanView
	decode(t, rec, &v)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "5E-CMA", v.SystemName)
	assert.Equal(t, "Scalding Pass", v.RegionName)
	assert.Equal(t, wormhole.Barbican, v.HoleType)
	assert.Equal(t, wormhole.Destabilizing, v.LifeStatus)
	assert.Equal(t, wormhole.MassHealthy, v.MassStatus)
	assert.True(t, testNow.Add(-4*time.Hour).Equal(v.SpawnedAt))
	assert.True(t, v.Active)

	// explicit role becomes the remembered default
	next := addBarbican(t, srv, "Tanoo")
	assert.Equal(t, "42", next.RoleID)
}

func TestAddScan_Errors(t *testing.T) {
	srv := newTestServer(t, true)

	rec := do(t, srv, http.MethodPost, "/api/scans", ScanInput{System: "anoo", HoleType: "Vidette"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	var body struct {
		Unresolved  string   `json:"unresolved"`
		Suggestions []string `json:"suggestions"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "anoo", body.Unresolved)
	assert.Equal(t, []string{"Tanoo"}, body.Suggestions)

	rec = do(t, srv, http.MethodPost, "/api/scans", ScanInput{System: "Tanoo", HoleType: "Wobbly"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/scans", ScanInput{System: "Tanoo", HoleType: "None"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/scans", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScanLifecycle(t *testing.T) {
	srv := newTestServer(t, true)
	first := addBarbican(t, srv, "Tanoo")
	addBarbican(t, srv, "Tanoo")

	rec := do(t, srv, http.MethodPost, "/api/scans/none", map[string]string{"system": "Tanoo"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var marked struct {
		Scan    ScanView `json:"scan"`
		Removed int      `json:"removed"`
	}
	decode(t, rec, &marked)
	assert.Equal(t, 2, marked.Removed)
	assert.Equal(t, wormhole.NoHole, marked.Scan.HoleType)

	rec = do(t, srv, http.MethodDelete, "/api/scans/"+first.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/api/scans/"+marked.Scan.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/scans", nil)
	var scans []ScanView
	decode(t, rec, &scans)
	assert.Empty(t, scans)
}

func TestListScans_ActiveFilterAndCleanup(t *testing.T) {
	srv := newTestServer(t, true)
	addBarbican(t, srv, "Tanoo")
	rec := do(t, srv, http.MethodPost, "/api/scans", ScanInput{
		System:     "Nakri",
		HoleType:   "Vidette",
		LifeStatus: "Destabilizing",
		ScannedAt:  testNow.Add(-2 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/scans?active=true", nil)
	var active []ScanView
	decode(t, rec, &active)
	require.Len(t, active, 1)
	assert.Equal(t, "Tanoo", active[0].SystemName)
	assert.Contains(t, active[0].Remaining, "left")

	rec = do(t, srv, http.MethodGet, "/api/scans?system=nakri", nil)
	var inSystem []ScanView
	decode(t, rec, &inSystem)
	require.Len(t, inSystem, 1)
	assert.Equal(t, "Nakri", inSystem[0].SystemName)

	rec = do(t, srv, http.MethodPost, "/api/scans/cleanup", nil)
	var cleaned map[string]int
	decode(t, rec, &cleaned)
	assert.Equal(t, 1, cleaned["removed"])
}

func TestRouteHybrid(t *testing.T) {
	srv := newTestServer(t, true)

	rec := do(t, srv, http.MethodPost, "/api/route/hybrid", hybridRequest{Origin: "Tanoo", Destination: "4-43BW"})
	require.Equal(t, http.StatusOK, rec.Code)
	var out engine.Outcome
	decode(t, rec, &out)
	assert.Equal(t, engine.OutcomeNoRoute, out.Kind)

	addBarbican(t, srv, "Tanoo")
	addBarbican(t, srv, "5E-CMA")

	rec = do(t, srv, http.MethodPost, "/api/route/hybrid", hybridRequest{Origin: "tanoo", Destination: "4-43"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out = engine.Outcome{}
	decode(t, rec, &out)
	require.Equal(t, engine.OutcomeRoutes, out.Kind)
	require.Len(t, out.Routes, 1)
	route := out.Routes[0]
	assert.Equal(t, "Tanoo", route.Origin)
	assert.Equal(t, "4-43BW", route.Destination)
	assert.Equal(t, []string{"5E-CMA", "4-43BW"}, route.ExitPath)
	assert.Equal(t, 1, route.TotalGates)
	assert.Equal(t, -4, route.Score)
	assert.Equal(t, engine.BandOK, route.Band)

	rec = do(t, srv, http.MethodPost, "/api/route/hybrid", hybridRequest{Origin: "Tanoo", Destination: "Nakri"})
	out = engine.Outcome{}
	decode(t, rec, &out)
	require.Equal(t, engine.OutcomeDirect, out.Kind)
	assert.Equal(t, 5, out.Direct.Gates)

	rec = do(t, srv, http.MethodPost, "/api/route/hybrid", hybridRequest{Origin: "Tanoo", Destination: "Nowhere"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/history?limit=10", nil)
	var history []db.RouteRecord
	decode(t, rec, &history)
	require.Len(t, history, 3)
	assert.Equal(t, "direct", history[0].Kind)
	require.NotNil(t, history[1].BestScore)
	assert.Equal(t, -4, *history[1].BestScore)
	assert.Equal(t, "no_route", history[2].Kind)

	rec = do(t, srv, http.MethodDelete, "/api/history", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteRegions(t *testing.T) {
	srv := newTestServer(t, true)
	addBarbican(t, srv, "Lashesih")
	addBarbican(t, srv, "4-43BW")

	rec := do(t, srv, http.MethodPost, "/api/route/regions", map[string]interface{}{
		"target_region": "scalding pass",
		"home_regions":  []string{"Derelik"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Target  string         `json:"target_region"`
		Results []regionResult `json:"results"`
	}
	decode(t, rec, &out)
	assert.Equal(t, "Scalding Pass", out.Target)
	require.Len(t, out.Results, 1)
	require.Len(t, out.Results[0].Routes, 1)
	r := out.Results[0].Routes[0]
	assert.Equal(t, "Lashesih", r.EntrySystem)
	assert.Equal(t, "4-43BW", r.ExitSystem)
	assert.Equal(t, -5, r.Score)

	rec = do(t, srv, http.MethodPost, "/api/route/regions", map[string]interface{}{"target_region": "Nowhere"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/regions/active", nil)
	var active map[string][]string
	decode(t, rec, &active)
	assert.Equal(t, []string{"Derelik", "Scalding Pass"}, active["regions"])
}

func TestPath(t *testing.T) {
	srv := newTestServer(t, true)

	rec := do(t, srv, http.MethodGet, "/api/path?from=Tanoo&to=Sasta", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var direct engine.DirectRoute
	decode(t, rec, &direct)
	assert.Equal(t, []string{"Tanoo", "Lashesih", "Akpivem", "Jarizza", "Sasta"}, direct.Path)
	assert.Equal(t, 4, direct.Gates)

	rec = do(t, srv, http.MethodGet, "/api/path?from=Tanoo&to=Sasta&max=1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/path?from=Tanoo&to=5E-CMA", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/path?from=Tanoo&to=Sasta&max=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFleetCheck(t *testing.T) {
	srv := newTestServer(t, true)
	rec := do(t, srv, http.MethodPost, "/api/fleet/check", map[string]interface{}{
		"ships": map[string]int{"stratios": 2, "Stratios": 1, "Mystery Hull": 1},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out FleetCheck
	decode(t, rec, &out)
	assert.Equal(t, 4, out.TotalShips)
	assert.Equal(t, int64(3*13_400_000), out.TotalMass)
	assert.Equal(t, "40,200,000 kg", out.TotalMassText)
	assert.Equal(t, []string{"Mystery Hull"}, out.UnknownShip)
	require.Len(t, out.Stages, 3)
	assert.Equal(t, engine.FleetOK, out.Stages[0].Verdict)

	rec = do(t, srv, http.MethodPost, "/api/fleet/check", map[string]interface{}{"ships": map[string]int{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckFleet_HeavyHull(t *testing.T) {
	lookup := func(name string) (string, int64, bool) {
		if name == "Rorqual" {
			return name, 1_400_000_000, true
		}
		return "", 0, false
	}
	out := CheckFleet(lookup, map[string]int{"Rorqual": 1})
	assert.Equal(t, []string{"Rorqual"}, out.HeavyShips)
	for _, st := range out.Stages {
		assert.Equal(t, engine.FleetShipTooHeavy, st.Verdict)
	}
}

func TestCleanupOnce(t *testing.T) {
	srv := newTestServer(t, true)
	rec := do(t, srv, http.MethodPost, "/api/scans", ScanInput{
		System:     "Tanoo",
		HoleType:   "Conflux",
		LifeStatus: "Fresh",
		ScannedAt:  testNow.Add(-25 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, srv.cleanupOnce())
	assert.Equal(t, 0, srv.cleanupOnce())
}

func TestNewScanView_ExpiryOnlyWhenKnown(t *testing.T) {
	sc := wormhole.Scan{
		ID: "a", SystemID: 30000001, SystemName: "Tanoo",
		HoleType: wormhole.Sentinel, LifeStatus: wormhole.Fresh, MassStatus: wormhole.MassHealthy,
		SpawnedAt: testNow.Add(-time.Hour),
	}
	v := NewScanView(sc, testNow)
	require.NotNil(t, v.ExpiresAt)
	assert.True(t, v.ExpiresAt.Equal(testNow.Add(23*time.Hour)))

	sc.SpawnedAt = time.Time{}
	v = NewScanView(sc, testNow)
	assert.Nil(t, v.ExpiresAt)
	body, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "expires_at")
}

func TestRouteKey_FollowsScanStore(t *testing.T) {
	srv := newTestServer(t, true)
	req := hybridRequest{MaxGatesPerLeg: 15, MaxResults: 5}
	before := srv.routeKey("Tanoo", "4-43BW", req)
	assert.Equal(t, before, srv.routeKey("Tanoo", "4-43BW", req))

	addBarbican(t, srv, "Tanoo")
	after := srv.routeKey("Tanoo", "4-43BW", req)
	assert.NotEqual(t, before, after)

	req.MaxResults = 3
	assert.NotEqual(t, after, srv.routeKey("Tanoo", "4-43BW", req))
}
