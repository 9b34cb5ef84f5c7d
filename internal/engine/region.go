package engine

import (
	"errors"
	"fmt"
	"sort"

	"drifter-tracker/internal/wormhole"
)

// ErrUnknownRegion is returned when a region name does not match the universe.
var ErrUnknownRegion = errors.New("unknown region")

// MaxRoutesPerHomeRegion caps region-to-region results for one home region.
const MaxRoutesPerHomeRegion = 3

// DefaultHomeRegions are the drifter regions routes start from.
var DefaultHomeRegions = []string{"Scalding Pass", "Wicked Creek", "Insmother"}

// FindRegionRoutes lists single-hop links from any system in the home region
// straight into the target region, ranked by hole condition. Region routing
// never chains wormholes.
func (r *Router) FindRegionRoutes(home, target string, conns wormhole.Connections) ([]RegionRoute, error) {
	homeID, ok := r.U.RegionByName[home]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, home)
	}
	targetID, ok := r.U.RegionByName[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, target)
	}

	var routes []RegionRoute
	for _, entry := range conns.Systems() {
		if r.U.SystemRegion[entry] != homeID {
			continue
		}
		for _, link := range conns[entry] {
			if r.U.SystemRegion[link.SystemID] != targetID {
				continue
			}
			score := ScoreSingle(0, link.Scan)
			routes = append(routes, RegionRoute{
				HomeRegion:   home,
				TargetRegion: target,
				EntrySystem:  r.name(entry),
				ExitSystem:   r.name(link.SystemID),
				Hop:          r.hop(entry, link),
				Score:        score,
				Band:         BandFor(score),
				Warnings:     holeWarnings(link.Scan),
			})
		}
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Score < routes[j].Score
	})
	if len(routes) > MaxRoutesPerHomeRegion {
		routes = routes[:MaxRoutesPerHomeRegion]
	}
	return routes, nil
}

// RegionsWithActiveHoles returns the names of regions holding at least one
// connected system, sorted by name.
func (r *Router) RegionsWithActiveHoles(conns wormhole.Connections) []string {
	seen := make(map[string]bool)
	for _, sys := range conns.Systems() {
		if name := r.U.RegionOfSystem(sys); name != "" {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
