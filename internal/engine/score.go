package engine

import (
	"sort"

	"drifter-tracker/internal/wormhole"
)

// Single-hop penalties.
const (
	criticalLifePenalty      = 60
	destabilizingLifePenalty = 25
	criticalMassPenalty      = 50
	reducedMassPenalty       = 20
	longRoutePenalty         = 10
	longRouteGates           = 15
	idealRouteBonus          = 5
	idealRouteMaxGates       = 10
)

// Two-hop penalties. The fixed overhead covers burning to the second hole, NPC
// exposure in the middle system, and the extra transition.
const (
	burnTimePenalty   = 15
	npcDangerPenalty  = 10
	complexityPenalty = 5
	multiHopOverhead  = burnTimePenalty + npcDangerPenalty + complexityPenalty

	multiCriticalLifePenalty      = 50
	multiDestabilizingLifePenalty = 20
	multiCriticalMassPenalty      = 45
	multiReducedMassPenalty       = 18
	perfectChainBonus             = 5
)

// Band thresholds.
const (
	cautionScore = 20
	warningScore = 40
)

// ScoreSingle scores a one-wormhole route; lower is better.
func ScoreSingle(totalGates int, hole wormhole.Scan) int {
	score := totalGates
	switch hole.LifeStatus {
	case wormhole.Critical:
		score += criticalLifePenalty
	case wormhole.Destabilizing:
		score += destabilizingLifePenalty
	}
	switch hole.MassStatus {
	case wormhole.MassCritical:
		score += criticalMassPenalty
	case wormhole.MassReduced:
		score += reducedMassPenalty
	}
	if totalGates > longRouteGates {
		score += longRoutePenalty
	}
	if totalGates < idealRouteMaxGates && isPristine(hole) {
		score -= idealRouteBonus
	}
	return score
}

// ScoreMultiHop scores a two-wormhole route; lower is better.
func ScoreMultiHop(totalGates int, first, second wormhole.Scan) int {
	score := totalGates + multiHopOverhead
	for _, hole := range []wormhole.Scan{first, second} {
		switch hole.LifeStatus {
		case wormhole.Critical:
			score += multiCriticalLifePenalty
		case wormhole.Destabilizing:
			score += multiDestabilizingLifePenalty
		}
		switch hole.MassStatus {
		case wormhole.MassCritical:
			score += multiCriticalMassPenalty
		case wormhole.MassReduced:
			score += multiReducedMassPenalty
		}
	}
	if isPristine(first) && isPristine(second) {
		score -= perfectChainBonus
	}
	return score
}

func isPristine(hole wormhole.Scan) bool {
	return hole.LifeStatus == wormhole.Fresh && hole.MassStatus == wormhole.MassHealthy
}

// BandFor maps a score to its display band.
func BandFor(score int) Band {
	switch {
	case score < cautionScore:
		return BandOK
	case score < warningScore:
		return BandCaution
	default:
		return BandWarning
	}
}

// rankRoutes sorts routes by ascending score. Equal scores keep enumeration
// order so repeated requests return identical lists.
func rankRoutes(routes []Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Score < routes[j].Score
	})
}

// holeWarnings lists the risk flags of a hole for display.
func holeWarnings(hole wormhole.Scan) []string {
	var out []string
	switch hole.LifeStatus {
	case wormhole.Critical:
		out = append(out, "CRITICAL")
	case wormhole.Destabilizing:
		out = append(out, "Destabilizing")
	}
	if hole.MassStatus == wormhole.MassCritical {
		out = append(out, "Low Mass")
	}
	return out
}
