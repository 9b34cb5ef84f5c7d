package sde

import "strings"

// ResolveSystem matches a user-typed system name: exact (case-insensitive)
// first, then the alphabetically first name starting with query.
func (d *Data) ResolveSystem(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	if id, ok := d.systemByLower[q]; ok {
		return d.Systems[id].Name, true
	}
	for _, name := range d.SystemNames {
		if strings.HasPrefix(strings.ToLower(name), q) {
			return name, true
		}
	}
	return "", false
}

// SuggestSystems returns up to limit system names containing query, prefix
// matches first.
func (d *Data) SuggestSystems(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	var prefix, inner []string
	for _, name := range d.SystemNames {
		lower := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lower, q):
			prefix = append(prefix, name)
		case strings.Contains(lower, q):
			inner = append(inner, name)
		}
		if len(prefix) >= limit {
			break
		}
	}
	out := append(prefix, inner...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ResolveRegion matches a region name case-insensitively.
func (d *Data) ResolveRegion(query string) (string, bool) {
	id, ok := d.regionByLower[strings.ToLower(strings.TrimSpace(query))]
	if !ok {
		return "", false
	}
	return d.Regions[id].Name, true
}

// RegionOf returns the region name of a system, or "Unknown".
func (d *Data) RegionOf(system string) string {
	id, ok := d.systemByLower[strings.ToLower(system)]
	if !ok {
		return "Unknown"
	}
	if r, ok := d.Regions[d.Systems[id].RegionID]; ok {
		return r.Name
	}
	return "Unknown"
}

// SystemRegionID returns the region of a system by exact name.
func (d *Data) SystemRegionID(system string) (int32, bool) {
	id, ok := d.Universe.SystemID(system)
	if !ok {
		return 0, false
	}
	return d.Systems[id].RegionID, true
}
