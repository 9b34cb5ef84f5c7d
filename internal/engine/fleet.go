package engine

import (
	"sort"

	"drifter-tracker/internal/wormhole"
)

// IndividualMassLimit is the heaviest ship (kg) a drifter hole will pass.
const IndividualMassLimit = 375_000_000

// riskyCapacityRatio marks a fleet as risky once it uses this share of a hole.
const riskyCapacityRatio = 0.8

// MassLimits is the remaining capacity of a drifter hole at one life stage.
type MassLimits struct {
	TotalMass      int64 `json:"total_mass"`
	IndividualMass int64 `json:"individual_mass"`
}

// DrifterMassLimits is indexed by life stage.
var DrifterMassLimits = map[wormhole.LifeStatus]MassLimits{
	wormhole.Fresh:         {TotalMass: 750_000_000, IndividualMass: IndividualMassLimit},
	wormhole.Destabilizing: {TotalMass: 375_000_000, IndividualMass: IndividualMassLimit},
	wormhole.Critical:      {TotalMass: 75_000_000, IndividualMass: IndividualMassLimit},
}

// FleetVerdict is the fit of a fleet through a hole at one life stage.
type FleetVerdict string

const (
	FleetOK           FleetVerdict = "ok"
	FleetRisky        FleetVerdict = "risky"
	FleetOverTotal    FleetVerdict = "exceeds_total"
	FleetShipTooHeavy FleetVerdict = "ship_too_heavy"
)

// StageCheck is the verdict for one life stage.
type StageCheck struct {
	Life        wormhole.LifeStatus `json:"life"`
	Capacity    int64               `json:"capacity"`
	Verdict     FleetVerdict        `json:"verdict"`
	UsedPercent float64             `json:"used_percent"`
	FullJumps   int                 `json:"full_jumps"` // whole-fleet passes before collapse, OK only
}

// FleetEntry is one ship line of a fleet composition.
type FleetEntry struct {
	Ship     string `json:"ship"`
	Quantity int    `json:"quantity"`
	Mass     int64  `json:"mass"` // per ship, kg
}

// FleetReport is the result of CheckFleetMass.
type FleetReport struct {
	Ships       []FleetEntry `json:"ships"`
	TotalShips  int          `json:"total_ships"`
	TotalMass   int64        `json:"total_mass"`
	HeavyShips  []string     `json:"heavy_ships,omitempty"`
	UnknownShip []string     `json:"unknown_ships,omitempty"`
	Stages      []StageCheck `json:"stages"`
}

// CheckFleetMass weighs a fleet composition (ship name -> quantity) against
// drifter hole capacity at every life stage. Ships missing from masses are
// reported and counted as weightless.
func CheckFleetMass(fleet map[string]int, masses map[string]int64) FleetReport {
	names := make([]string, 0, len(fleet))
	for name, qty := range fleet {
		if qty > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var rep FleetReport
	for _, name := range names {
		qty := fleet[name]
		mass, ok := masses[name]
		if !ok {
			rep.UnknownShip = append(rep.UnknownShip, name)
		}
		if mass > IndividualMassLimit {
			rep.HeavyShips = append(rep.HeavyShips, name)
		}
		rep.Ships = append(rep.Ships, FleetEntry{Ship: name, Quantity: qty, Mass: mass})
		rep.TotalShips += qty
		rep.TotalMass += mass * int64(qty)
	}

	for _, life := range []wormhole.LifeStatus{wormhole.Fresh, wormhole.Destabilizing, wormhole.Critical} {
		capacity := DrifterMassLimits[life].TotalMass
		check := StageCheck{Life: life, Capacity: capacity}
		check.UsedPercent = float64(rep.TotalMass) / float64(capacity) * 100
		switch {
		case len(rep.HeavyShips) > 0:
			check.Verdict = FleetShipTooHeavy
		case rep.TotalMass > capacity:
			check.Verdict = FleetOverTotal
		case float64(rep.TotalMass) > float64(capacity)*riskyCapacityRatio:
			check.Verdict = FleetRisky
		default:
			check.Verdict = FleetOK
			if rep.TotalMass > 0 {
				check.FullJumps = int(capacity / rep.TotalMass)
			}
		}
		rep.Stages = append(rep.Stages, check)
	}
	return rep
}
