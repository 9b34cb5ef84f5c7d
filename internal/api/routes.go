package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"drifter-tracker/internal/db"
	"drifter-tracker/internal/engine"
	"drifter-tracker/internal/logger"
	"drifter-tracker/internal/wormhole"
)

// hybridRequest is the body of POST /api/route/hybrid. Zero limits take the
// configured defaults.
type hybridRequest struct {
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	MaxGatesPerLeg int    `json:"max_gates_per_leg"`
	MaxResults     int    `json:"max_results"`
}

func (s *Server) handleRouteHybrid(w http.ResponseWriter, r *http.Request) {
	var req hybridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	data, router, ready := s.snapshot()
	if !ready {
		writeError(w, 503, "SDE not loaded yet")
		return
	}
	origin, err := ResolveSystem(data, req.Origin)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	destination, err := ResolveSystem(data, req.Destination)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	if req.MaxGatesPerLeg <= 0 {
		req.MaxGatesPerLeg = s.cfg.MaxGatesPerLeg
	}
	if req.MaxGatesPerLeg > 100 {
		req.MaxGatesPerLeg = 100
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.cfg.MaxResults
	}

	v, err, shared := s.routeGroup.Do(s.routeKey(origin, destination, req), func() (interface{}, error) {
		scans, err := s.db.ListScans()
		if err != nil {
			return nil, err
		}
		start := time.Now()
		out := router.Plan(engine.RouteParams{
			Origin:         origin,
			Destination:    destination,
			MaxGatesPerLeg: req.MaxGatesPerLeg,
			DirectMaxJumps: s.cfg.DirectMaxJumps,
			MaxResults:     req.MaxResults,
			Now:            s.now(),
		}, scans)
		RecordRoute(s.db, origin, destination, out, time.Since(start))
		return out, nil
	})
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if shared {
		logger.Debug("API", fmt.Sprintf("Route %s -> %s shared with a concurrent request", origin, destination))
	}
	writeJSON(w, v.(engine.Outcome))
}

// routeKey identifies a hybrid request for sharing. Only requests that see the
// same scan store share a computation.
func (s *Server) routeKey(origin, destination string, req hybridRequest) string {
	return fmt.Sprintf("%s|%s|%d|%d|%s", origin, destination, req.MaxGatesPerLeg, req.MaxResults, s.db.ScanRevision())
}

// RecordRoute appends an answered routing request to the route history.
func RecordRoute(database *db.DB, origin, destination string, out engine.Outcome, d time.Duration) {
	var bestScore, totalGates *int
	if len(out.Routes) > 0 {
		score, gates := out.Routes[0].Score, out.Routes[0].TotalGates
		bestScore, totalGates = &score, &gates
	} else if out.Direct != nil {
		gates := out.Direct.Gates
		totalGates = &gates
	}
	database.InsertRouteHistory(origin, destination, string(out.Kind), out.Candidates, bestScore, totalGates, d)
	logger.Info("API", fmt.Sprintf("Route %s -> %s: %s, %d candidates in %dms",
		origin, destination, out.Kind, out.Candidates, d.Milliseconds()))
}

// regionResult groups the region routes found from one home region.
type regionResult struct {
	HomeRegion string               `json:"home_region"`
	Routes     []engine.RegionRoute `json:"routes"`
}

func (s *Server) handleRouteRegions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target      string   `json:"target_region"`
		HomeRegions []string `json:"home_regions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	data, router, ready := s.snapshot()
	if !ready {
		writeError(w, 503, "SDE not loaded yet")
		return
	}
	target, ok := data.ResolveRegion(req.Target)
	if !ok {
		writeError(w, 404, fmt.Sprintf("unknown region %q", req.Target))
		return
	}
	homes := req.HomeRegions
	if len(homes) == 0 {
		homes = s.cfg.HomeRegions
	}
	resolved := make([]string, 0, len(homes))
	for _, h := range homes {
		name, ok := data.ResolveRegion(h)
		if !ok {
			writeError(w, 404, fmt.Sprintf("unknown region %q", h))
			return
		}
		resolved = append(resolved, name)
	}

	scans, err := s.db.ListScans()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	conns := wormhole.BuildConnections(scans, s.now())

	results := make([]regionResult, len(resolved))
	var g errgroup.Group
	for i, home := range resolved {
		i, home := i, home
		g.Go(func() error {
			routes, err := router.FindRegionRoutes(home, target, conns)
			if err != nil {
				return err
			}
			if routes == nil {
				routes = []engine.RegionRoute{}
			}
			results[i] = regionResult{HomeRegion: home, Routes: routes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, 500, err.Error())
		return
	}

	total := 0
	for _, res := range results {
		total += len(res.Routes)
	}
	logger.Info("API", fmt.Sprintf("Region routes into %s: %d across %d home regions", target, total, len(resolved)))
	writeJSON(w, map[string]interface{}{
		"target_region": target,
		"results":       results,
		"active_holes":  len(conns),
	})
}

func (s *Server) handleActiveRegions(w http.ResponseWriter, r *http.Request) {
	_, router, ready := s.snapshot()
	if !ready {
		writeError(w, 503, "SDE not loaded yet")
		return
	}
	scans, err := s.db.ListScans()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	conns := wormhole.BuildConnections(scans, s.now())
	writeJSON(w, map[string][]string{"regions": router.RegionsWithActiveHoles(conns)})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		writeError(w, 503, "SDE not loaded yet")
		return
	}
	data, router, _ := s.snapshot()
	q := r.URL.Query()
	from, err := ResolveSystem(data, q.Get("from"))
	if err != nil {
		writeResolveError(w, err)
		return
	}
	to, err := ResolveSystem(data, q.Get("to"))
	if err != nil {
		writeResolveError(w, err)
		return
	}
	maxJumps := s.cfg.DirectMaxJumps
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, 400, "max must be an integer")
			return
		}
		maxJumps = n
	}
	if maxJumps < 1 {
		maxJumps = 1
	} else if maxJumps > 100 {
		maxJumps = 100
	}

	fromID, _ := data.Universe.SystemID(from)
	toID, _ := data.Universe.SystemID(to)
	direct, ok := router.Direct(fromID, toID, maxJumps)
	if !ok {
		writeError(w, 404, fmt.Sprintf("no path from %s to %s within %d jumps", from, to, maxJumps))
		return
	}
	writeJSON(w, direct)
}

// FleetCheck is a fleet report with hull names resolved and masses rendered.
type FleetCheck struct {
	engine.FleetReport
	TotalMassText string `json:"total_mass_text"`
}

func (s *Server) handleFleetCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ships map[string]int `json:"ships"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	if len(req.Ships) == 0 {
		writeError(w, 400, "no ships")
		return
	}
	data, _, ready := s.snapshot()
	if !ready {
		writeError(w, 503, "SDE not loaded yet")
		return
	}
	writeJSON(w, CheckFleet(data.ShipMass, req.Ships))
}

// CheckFleet resolves hull names through lookup and weighs the fleet.
// Quantities for names that resolve to the same hull are summed.
func CheckFleet(lookup func(string) (string, int64, bool), ships map[string]int) FleetCheck {
	fleet := make(map[string]int, len(ships))
	masses := make(map[string]int64, len(ships))
	for name, qty := range ships {
		name = strings.TrimSpace(name)
		if canonical, mass, ok := lookup(name); ok {
			fleet[canonical] += qty
			masses[canonical] = mass
			continue
		}
		fleet[name] += qty
	}
	rep := engine.CheckFleetMass(fleet, masses)
	return FleetCheck{
		FleetReport:   rep,
		TotalMassText: humanize.Comma(rep.TotalMass) + " kg",
	}
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	writeJSON(w, s.db.GetRouteHistory(limit))
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.db.ClearRouteHistory(); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, map[string]string{"status": "cleared"})
}
