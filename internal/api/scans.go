package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"drifter-tracker/internal/db"
	"drifter-tracker/internal/logger"
	"drifter-tracker/internal/sde"
	"drifter-tracker/internal/wormhole"
)

// ScanInput is a scan report as typed by a pilot. Probe is text pasted from the
// info window; explicit fields override what it yields.
type ScanInput struct {
	System     string    `json:"system"`
	HoleType   string    `json:"hole_type"`
	LifeStatus string    `json:"life_status"`
	MassStatus string    `json:"mass_status"`
	Probe      string    `json:"probe_info"`
	RoleID     string    `json:"role_id"`
	ScannedAt  time.Time `json:"scanned_at"`
}

// Build validates the input against the universe and returns a scan with its
// spawn time backdated from the scan time (now when ScannedAt is zero).
func (in ScanInput) Build(data *sde.Data, now time.Time) (wormhole.Scan, error) {
	name, err := ResolveSystem(data, in.System)
	if err != nil {
		return wormhole.Scan{}, err
	}
	id, _ := data.Universe.SystemID(name)
	regionID := data.Systems[id].RegionID

	hole, life, mass := wormhole.Unidentified, wormhole.Fresh, wormhole.MassHealthy
	if strings.TrimSpace(in.Probe) != "" {
		hole, life, mass = wormhole.ParseProbeInfo(in.Probe)
	}
	if in.HoleType != "" {
		if hole, err = wormhole.ParseHoleType(in.HoleType); err != nil {
			return wormhole.Scan{}, err
		}
	}
	if in.LifeStatus != "" {
		if life, err = wormhole.ParseLifeStatus(in.LifeStatus); err != nil {
			return wormhole.Scan{}, err
		}
	}
	if in.MassStatus != "" {
		if mass, err = wormhole.ParseMassStatus(in.MassStatus); err != nil {
			return wormhole.Scan{}, err
		}
	}
	if hole == wormhole.NoHole {
		return wormhole.Scan{}, fmt.Errorf("%w: use the empty-system report for %s", wormhole.ErrInvalidHoleType, name)
	}

	scannedAt := in.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = now
	}
	return wormhole.Scan{
		RegionID:   regionID,
		RegionName: data.RegionOf(name),
		SystemID:   id,
		SystemName: name,
		HoleType:   hole,
		LifeStatus: life,
		MassStatus: mass,
		RoleID:     strings.TrimSpace(in.RoleID),
		SpawnedAt:  wormhole.SpawnTime(life, scannedAt),
		RawInfo:    strings.TrimSpace(in.Probe),
	}, nil
}

// ScanView is a stored scan with its lifetime rendered for display.
type ScanView struct {
	wormhole.Scan
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Remaining string     `json:"remaining,omitempty"`
}

// NewScanView renders a scan as seen at now.
func NewScanView(sc wormhole.Scan, now time.Time) ScanView {
	v := ScanView{Scan: sc, Active: sc.Active(now)}
	if exp := sc.ExpiresAt(); !exp.IsZero() {
		v.ExpiresAt = &exp
		if v.Active {
			v.Remaining = humanize.RelTime(now, exp, "left", "ago")
		} else {
			v.Remaining = "expired " + humanize.RelTime(exp, now, "ago", "")
		}
	}
	return v
}

// roleID picks the role to tag a scan with and remembers an explicit one as
// the new default.
func (s *Server) roleID(explicit string) string {
	if explicit != "" {
		if err := s.db.SetSetting(db.SettingDefaultRoleID, explicit); err != nil {
			logger.Warn("API", fmt.Sprintf("Remember role %s: %v", explicit, err))
		}
		return explicit
	}
	return s.db.GetSetting(db.SettingDefaultRoleID, s.cfg.DefaultRoleID)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	var scans []wormhole.Scan
	var err error
	if q := r.URL.Query().Get("system"); q != "" {
		data, _, ready := s.snapshot()
		if !ready {
			writeError(w, 503, "SDE not loaded yet")
			return
		}
		name, rerr := ResolveSystem(data, q)
		if rerr != nil {
			writeResolveError(w, rerr)
			return
		}
		id, _ := data.Universe.SystemID(name)
		scans, err = s.db.ScansInSystem(id)
	} else {
		scans, err = s.db.ListScans()
	}
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	now := s.now()
	views := make([]ScanView, 0, len(scans))
	for _, sc := range scans {
		if activeOnly && !(sc.HasHole() && sc.Active(now)) {
			continue
		}
		views = append(views, NewScanView(sc, now))
	}
	writeJSON(w, views)
}

func (s *Server) handleAddScan(w http.ResponseWriter, r *http.Request) {
	var in ScanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	data, _, ready := s.snapshot()
	if !ready {
		writeError(w, 503, "SDE not loaded yet")
		return
	}
	now := s.now()
	sc, err := in.Build(data, now)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	sc.RoleID = s.roleID(sc.RoleID)

	saved, err := s.db.AddScan(sc)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	logger.Info("API", fmt.Sprintf("Scan %s: %s %s %s in %s", saved.ID, saved.HoleType, saved.LifeStatus, saved.MassStatus, saved.SystemName))
	writeJSONStatus(w, http.StatusCreated, NewScanView(saved, now))
}

func (s *Server) handleMarkNoHole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		System string `json:"system"`
		RoleID string `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	data, _, ready := s.snapshot()
	if !ready {
		writeError(w, 503, "SDE not loaded yet")
		return
	}
	name, err := ResolveSystem(data, req.System)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	id, _ := data.Universe.SystemID(name)
	marker := wormhole.Scan{
		RegionID:   data.Systems[id].RegionID,
		RegionName: data.RegionOf(name),
		SystemID:   id,
		SystemName: name,
		RoleID:     s.roleID(strings.TrimSpace(req.RoleID)),
	}
	now := s.now()
	saved, removed, err := s.db.MarkNoHole(marker, now)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	logger.Info("API", fmt.Sprintf("%s marked empty, %d earlier scans removed", name, removed))
	writeJSON(w, map[string]interface{}{
		"scan":    NewScanView(saved, now),
		"removed": removed,
	})
}

func (s *Server) handleDeleteScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.db.DeleteScan(id); err != nil {
		if errors.Is(err, db.ErrScanNotFound) {
			writeError(w, 404, "scan not found")
			return
		}
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	n, err := s.db.CleanupExpired(s.now())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, map[string]int{"removed": n})
}
