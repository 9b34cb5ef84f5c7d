package engine

import (
	"fmt"
	"time"

	"drifter-tracker/internal/graph"
	"drifter-tracker/internal/logger"
	"drifter-tracker/internal/wormhole"
)

const (
	// DefaultMaxGatesPerLeg bounds each static leg of a hybrid route.
	DefaultMaxGatesPerLeg = 15
	// DefaultDirectMaxJumps bounds the gates-only fallback route.
	DefaultDirectMaxJumps = 50
	// DefaultMaxResults is how many ranked routes a request returns.
	DefaultMaxResults = 5

	// A two-hop route must not cost more than this many gates over the
	// single-hop route through its middle system.
	multiHopGateCutoff = 10
	// Gate count used for the middle system when it has no path to the destination.
	unreachableGates = 999
)

// Router composes hybrid gate + wormhole routes over a static universe.
type Router struct {
	U              *graph.Universe
	UseJumpbridges bool
}

// NewRouter creates a router that uses jumpbridges in static legs.
func NewRouter(u *graph.Universe) *Router {
	return &Router{U: u, UseJumpbridges: true}
}

type legKey struct {
	from, to int32
}

type leg struct {
	path []int32
	ok   bool
}

// legFinder memoizes static legs within one request. The universe is read-only
// so identical queries always return identical paths.
type legFinder struct {
	u          *graph.Universe
	maxJumps   int
	useBridges bool
	cache      map[legKey]leg
}

func (r *Router) newLegFinder(maxJumps int) *legFinder {
	return &legFinder{
		u:          r.U,
		maxJumps:   maxJumps,
		useBridges: r.UseJumpbridges,
		cache:      make(map[legKey]leg),
	}
}

func (f *legFinder) find(from, to int32) ([]int32, bool) {
	k := legKey{from, to}
	if l, ok := f.cache[k]; ok {
		return l.path, l.ok
	}
	path, _, ok := f.u.FindPathIDs(from, to, f.maxJumps, f.useBridges)
	f.cache[k] = leg{path: path, ok: ok}
	return path, ok
}

// FindRoutes enumerates every single-hop route and every two-hop route whose
// holes differ in type, ranked by ascending score. Each static leg is limited
// to maxGatesPerLeg; legs that cannot be built drop the candidate silently.
// An empty result is not an error.
func (r *Router) FindRoutes(origin, destination int32, conns wormhole.Connections, maxGatesPerLeg int) []Route {
	if maxGatesPerLeg <= 0 {
		maxGatesPerLeg = DefaultMaxGatesPerLeg
	}
	legs := r.newLegFinder(maxGatesPerLeg)
	entries := conns.Systems()

	var routes []Route
	multi := 0
	for _, entry := range entries {
		entryPath, ok := legs.find(origin, entry)
		if !ok {
			continue
		}
		entryGates := len(entryPath) - 1

		for _, link := range conns[entry] {
			exitPath, ok := legs.find(link.SystemID, destination)
			if !ok {
				continue
			}
			hops := []Hop{r.hop(entry, link)}
			route := r.assemble(origin, destination, entryPath, hops, exitPath)
			route.Score = ScoreSingle(route.TotalGates, link.Scan)
			route.Band = BandFor(route.Score)
			routes = append(routes, route)
		}

		for _, first := range conns[entry] {
			mid := first.SystemID
			onward, ok := conns[mid]
			if !ok {
				continue
			}
			viaMid := unreachableGates
			if midPath, ok := legs.find(mid, destination); ok {
				viaMid = len(midPath) - 1
			}
			for _, second := range onward {
				if second.SystemID == entry || second.Scan.HoleType == first.Scan.HoleType {
					continue
				}
				exitPath, ok := legs.find(second.SystemID, destination)
				if !ok {
					continue
				}
				total := entryGates + len(exitPath) - 1
				if total > entryGates+viaMid+multiHopGateCutoff {
					continue
				}
				hops := []Hop{r.hop(entry, first), r.hop(mid, second)}
				route := r.assemble(origin, destination, entryPath, hops, exitPath)
				route.Score = ScoreMultiHop(route.TotalGates, first.Scan, second.Scan)
				route.Band = BandFor(route.Score)
				routes = append(routes, route)
				multi++
			}
		}
	}

	rankRoutes(routes)
	logger.Info("Route", fmt.Sprintf("%s -> %s: %d candidates (%d multi-hop) via %d wormhole systems",
		r.name(origin), r.name(destination), len(routes), multi, len(entries)))
	return routes
}

// Plan answers a full routing request by name: it resolves both endpoints,
// builds the connection network from scans at a single instant, and falls
// back to a direct static route when no wormhole route exists.
func (r *Router) Plan(params RouteParams, scans []wormhole.Scan) Outcome {
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	out := Outcome{ComputedAt: now}

	origin, ok := r.U.SystemID(params.Origin)
	if !ok {
		out.Kind = OutcomeUnresolved
		out.Unresolved = params.Origin
		return out
	}
	destination, ok := r.U.SystemID(params.Destination)
	if !ok {
		out.Kind = OutcomeUnresolved
		out.Unresolved = params.Destination
		return out
	}

	conns := wormhole.BuildConnections(scans, now)
	out.ActiveHoles = len(conns)

	var routes []Route
	if len(conns) > 0 {
		routes = r.FindRoutes(origin, destination, conns, params.MaxGatesPerLeg)
	}
	out.Candidates = len(routes)
	if len(routes) > 0 {
		limit := params.MaxResults
		if limit <= 0 {
			limit = DefaultMaxResults
		}
		if len(routes) > limit {
			routes = routes[:limit]
		}
		out.Kind = OutcomeRoutes
		out.Routes = routes
		return out
	}

	direct, ok := r.Direct(origin, destination, params.DirectMaxJumps)
	if !ok {
		out.Kind = OutcomeNoRoute
		return out
	}
	out.Kind = OutcomeDirect
	out.Direct = direct
	return out
}

// Direct returns the static route between two systems, or false when the
// universe has no path within maxJumps.
func (r *Router) Direct(origin, destination int32, maxJumps int) (*DirectRoute, bool) {
	if maxJumps <= 0 {
		maxJumps = DefaultDirectMaxJumps
	}
	path, cost, ok := r.U.FindPathIDs(origin, destination, maxJumps, r.UseJumpbridges)
	if !ok {
		return nil, false
	}
	return &DirectRoute{
		Origin:      r.name(origin),
		Destination: r.name(destination),
		Path:        r.names(path),
		Gates:       len(path) - 1,
		Jumpbridges: JumpbridgesInPath(r.U, path, r.UseJumpbridges),
		Cost:        cost,
	}, true
}

func (r *Router) hop(entry int32, link wormhole.Link) Hop {
	h := Hop{
		EntrySystem: r.name(entry),
		ExitSystem:  r.name(link.SystemID),
		EntryID:     entry,
		ExitID:      link.SystemID,
		ScanID:      link.Scan.ID,
		HoleType:    link.Scan.HoleType,
		LifeStatus:  link.Scan.LifeStatus,
		MassStatus:  link.Scan.MassStatus,
	}
	if !link.Scan.SpawnedAt.IsZero() {
		exp := link.Scan.ExpiresAt()
		h.ExpiresAt = &exp
	}
	return h
}

func (r *Router) assemble(origin, destination int32, entryPath []int32, hops []Hop, exitPath []int32) Route {
	entryGates := len(entryPath) - 1
	exitGates := len(exitPath) - 1
	return Route{
		Origin:      r.name(origin),
		Destination: r.name(destination),
		EntryPath:   r.names(entryPath),
		Hops:        hops,
		ExitPath:    r.names(exitPath),
		EntryGates:  entryGates,
		ExitGates:   exitGates,
		TotalGates:  entryGates + exitGates,
		HopCount:    len(hops),
		Jumpbridges: JumpbridgesInPath(r.U, entryPath, r.UseJumpbridges) + JumpbridgesInPath(r.U, exitPath, r.UseJumpbridges),
	}
}

func (r *Router) name(id int32) string {
	if n, ok := r.U.SystemName[id]; ok {
		return n
	}
	return fmt.Sprintf("System %d", id)
}

func (r *Router) names(ids []int32) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = r.name(id)
	}
	return out
}

// JumpbridgesInPath counts the consecutive pairs of path joined by a jumpbridge.
// A path found with bridges disabled travels by gate only and counts none.
func JumpbridgesInPath(u *graph.Universe, path []int32, useBridges bool) int {
	if !useBridges {
		return 0
	}
	n := 0
	for i := 1; i < len(path); i++ {
		if u.IsJumpbridge(path[i-1], path[i]) {
			n++
		}
	}
	return n
}
