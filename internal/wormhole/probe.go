package wormhole

import "strings"

// ParseProbeInfo reads the type, life and mass of a hole from text copied out of
// the in-game info window. Anything it cannot recognize falls back to an
// Unidentified, Fresh, 100% > 50% hole.
func ParseProbeInfo(text string) (HoleType, LifeStatus, MassStatus) {
	t := strings.ToLower(text)
	has := func(words ...string) bool {
		for _, w := range words {
			if !strings.Contains(t, w) {
				return false
			}
		}
		return true
	}

	hole := Unidentified
	switch {
	case has("vidette"):
		hole = Vidette
	case has("redoubt"):
		hole = Redoubt
	case has("sentinel"):
		hole = Sentinel
	case has("barbican"):
		hole = Barbican
	case has("conflux"):
		hole = Conflux
	}

	life := Fresh
	switch {
	case has("not yet", "stability", "disrupted"), has("beginning of", "natural lifetime"):
		life = Fresh
	case has("stability", "reduced", "not yet", "critical"):
		life = Destabilizing
	case has("verge of dissipating"), has("reaching", "end", "natural lifetime"):
		life = Critical
	}

	mass := MassHealthy
	switch {
	case has("not yet", "mass", "significantly disrupted"):
		mass = MassHealthy
	case has("mass", "reduced", "not yet", "critical"):
		mass = MassReduced
	case has("verge of collapse"), has("mass", "critical"):
		mass = MassCritical
	}
	return hole, life, mass
}
