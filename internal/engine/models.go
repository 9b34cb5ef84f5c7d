package engine

import (
	"time"

	"drifter-tracker/internal/wormhole"
)

// Band is the display label for a route score.
type Band string

const (
	BandOK      Band = "OK"
	BandCaution Band = "Caution"
	BandWarning Band = "Warning"
)

// Hop is one wormhole transition within a hybrid route. The hole data is that of
// the scan at the exit side, which is what the pilot lands next to.
type Hop struct {
	EntrySystem string              `json:"entry_system"`
	ExitSystem  string              `json:"exit_system"`
	EntryID     int32               `json:"-"`
	ExitID      int32               `json:"-"`
	ScanID      string              `json:"scan_id"`
	HoleType    wormhole.HoleType   `json:"hole_type"`
	LifeStatus  wormhole.LifeStatus `json:"life_status"`
	MassStatus  wormhole.MassStatus `json:"mass_status"`
	ExpiresAt   *time.Time          `json:"expires_at,omitempty"`
}

// Route is a ranked hybrid route candidate: a static leg to the first hole, one
// or two wormhole hops, and a static leg to the destination.
type Route struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	EntryPath   []string `json:"entry_path"`
	Hops        []Hop    `json:"hops"`
	ExitPath    []string `json:"exit_path"`
	EntryGates  int      `json:"entry_gates"`
	ExitGates   int      `json:"exit_gates"`
	TotalGates  int      `json:"total_gates"`
	HopCount    int      `json:"hop_count"`
	Jumpbridges int      `json:"jumpbridges"` // bridge jumps across both static legs
	Score       int      `json:"score"`
	Band        Band     `json:"band"`
}

// DirectRoute is a gates-and-jumpbridges-only route.
type DirectRoute struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Path        []string `json:"path"`
	Gates       int      `json:"gates"`
	Jumpbridges int      `json:"jumpbridges"`
	// Cost is the weighted path cost, a jumpbridge counting 0.3 of a gate.
	Cost        float64  `json:"cost"`
}

// OutcomeKind tells the caller which kind of answer a routing request produced.
type OutcomeKind string

const (
	// OutcomeRoutes means at least one wormhole route was found.
	OutcomeRoutes OutcomeKind = "routes"
	// OutcomeDirect means no wormhole helps; Direct holds the static route.
	OutcomeDirect OutcomeKind = "direct"
	// OutcomeNoRoute means origin and destination are not connected at all.
	OutcomeNoRoute OutcomeKind = "no_route"
	// OutcomeUnresolved means Unresolved names an endpoint that is not a known system.
	OutcomeUnresolved OutcomeKind = "unresolved"
)

// Outcome is the full answer to a hybrid routing request.
type Outcome struct {
	Kind       OutcomeKind  `json:"kind"`
	Routes     []Route      `json:"routes,omitempty"`
	Direct     *DirectRoute `json:"direct,omitempty"`
	Unresolved string       `json:"unresolved,omitempty"`
	// ActiveHoles is the number of connected systems considered.
	ActiveHoles int       `json:"active_holes"`
	Candidates  int       `json:"candidates"`
	ComputedAt  time.Time `json:"computed_at"`
}

// RouteParams holds the input parameters for a hybrid route request.
type RouteParams struct {
	Origin         string
	Destination    string
	MaxGatesPerLeg int       // 0 = DefaultMaxGatesPerLeg
	DirectMaxJumps int       // 0 = DefaultDirectMaxJumps
	MaxResults     int       // 0 = DefaultMaxResults
	Now            time.Time // expiry cutoff for the whole request; zero = time.Now()
}

// RegionRoute is a single-hop wormhole link from a home region into a target region.
type RegionRoute struct {
	HomeRegion   string   `json:"home_region"`
	TargetRegion string   `json:"target_region"`
	EntrySystem  string   `json:"entry_system"`
	ExitSystem   string   `json:"exit_system"`
	Hop          Hop      `json:"hop"`
	Score        int      `json:"score"`
	Band         Band     `json:"band"`
	Warnings     []string `json:"warnings,omitempty"`
}
