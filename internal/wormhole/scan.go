// Package wormhole models drifter wormhole scans, their decay, and the same-type
// connection network they form.
package wormhole

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// HoleType is the drifter wormhole category. Only holes of the same type connect.
type HoleType string

const (
	Vidette      HoleType = "Vidette"
	Redoubt      HoleType = "Redoubt"
	Sentinel     HoleType = "Sentinel"
	Barbican     HoleType = "Barbican"
	Conflux      HoleType = "Conflux"
	Unidentified HoleType = "Unidentified"
	// NoHole marks a system confirmed empty. It never expires and links nowhere.
	NoHole HoleType = "None"
)

// HoleTypes lists the real hole types in display order.
var HoleTypes = []HoleType{Vidette, Redoubt, Sentinel, Barbican, Conflux, Unidentified}

// LifeStatus is the decay stage reported by the ship's info window.
type LifeStatus string

const (
	Fresh         LifeStatus = "Fresh"
	Destabilizing LifeStatus = "Destabilizing"
	Critical      LifeStatus = "Critical"
	LifeUnknown   LifeStatus = "N/A"
)

// MassStatus is the remaining-mass band.
type MassStatus string

const (
	MassHealthy  MassStatus = "100% > 50%"
	MassReduced  MassStatus = "50% > 10%"
	MassCritical MassStatus = "< 10%"
	MassUnknown  MassStatus = "N/A"
)

var (
	ErrInvalidHoleType   = errors.New("invalid hole type")
	ErrInvalidLifeStatus = errors.New("invalid life status")
	ErrInvalidMassStatus = errors.New("invalid mass status")
)

// ParseHoleType accepts a hole type name case-insensitively ("None" included).
func ParseHoleType(s string) (HoleType, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(NoHole)) {
		return NoHole, nil
	}
	for _, t := range HoleTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidHoleType, s)
}

// ParseLifeStatus accepts a life status case-insensitively.
func ParseLifeStatus(s string) (LifeStatus, error) {
	s = strings.TrimSpace(s)
	for _, l := range []LifeStatus{Fresh, Destabilizing, Critical, LifeUnknown} {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLifeStatus, s)
}

// ParseMassStatus accepts the mass band labels, ignoring surrounding whitespace.
func ParseMassStatus(s string) (MassStatus, error) {
	s = strings.TrimSpace(s)
	for _, m := range []MassStatus{MassHealthy, MassReduced, MassCritical, MassUnknown} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMassStatus, s)
}

// Lifetime is how long a hole stays usable after its estimated spawn time.
func Lifetime(life LifeStatus) time.Duration {
	switch life {
	case Destabilizing:
		return 4 * time.Hour
	case Critical:
		return 15 * time.Minute
	default:
		return 24 * time.Hour
	}
}

// SpawnTime backdates a scan time to the estimated spawn of the hole. The
// estimate is the latest spawn consistent with the observed status, which gives
// the longest remaining lifetime.
func SpawnTime(life LifeStatus, scannedAt time.Time) time.Time {
	switch life {
	case Destabilizing:
		return scannedAt.Add(-4 * time.Hour)
	case Critical:
		return scannedAt.Add(-24 * time.Hour)
	default:
		return scannedAt
	}
}

// Scan is a single wormhole sighting (or a confirmed-empty marker).
type Scan struct {
	ID         string     `json:"id"`
	RegionID   int32      `json:"region_id"`
	RegionName string     `json:"region"`
	SystemID   int32      `json:"system_id"`
	SystemName string     `json:"system"`
	HoleType   HoleType   `json:"hole_type"`
	LifeStatus LifeStatus `json:"life_status"`
	MassStatus MassStatus `json:"mass_status"`
	RoleID     string     `json:"role_id,omitempty"`
	// SpawnedAt is the estimated spawn time. Zero means unknown (bad source data).
	SpawnedAt time.Time `json:"spawned_at"`
	RawInfo   string    `json:"raw_info,omitempty"`
}

// HasHole reports whether the scan records an actual wormhole.
func (s Scan) HasHole() bool {
	return s.HoleType != NoHole && s.HoleType != ""
}

// Active reports whether the hole can still be used at now. Empty-system markers
// never expire, and scans with an unknown spawn time are kept active.
func (s Scan) Active(now time.Time) bool {
	if !s.HasHole() || s.SpawnedAt.IsZero() {
		return true
	}
	return now.Sub(s.SpawnedAt) <= Lifetime(s.LifeStatus)
}

// ExpiresAt returns the moment the hole stops being usable, or zero if it never
// expires or its spawn time is unknown.
func (s Scan) ExpiresAt() time.Time {
	if !s.HasHole() || s.SpawnedAt.IsZero() {
		return time.Time{}
	}
	return s.SpawnedAt.Add(Lifetime(s.LifeStatus))
}

// Remaining returns the usable time left at now (never negative).
func (s Scan) Remaining(now time.Time) time.Duration {
	exp := s.ExpiresAt()
	if exp.IsZero() {
		return 0
	}
	if d := exp.Sub(now); d > 0 {
		return d
	}
	return 0
}
