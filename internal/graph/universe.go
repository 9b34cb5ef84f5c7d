package graph

// Edge costs used by the weighted pathfinder.
const (
	GateCost       = 1.0
	JumpbridgeCost = 0.3
)

// Universe holds the static travel graph: directed stargate edges, bidirectional
// jumpbridge edges, and the system/region lookups needed to resolve names.
// It is built once at load time and only read afterwards.
type Universe struct {
	// Adj maps systemID -> gate neighbors, exactly as present in the dataset.
	Adj map[int32][]int32
	// Bridges maps systemID -> jumpbridge neighbors (always symmetric).
	Bridges map[int32][]int32
	// SystemRegion maps systemID -> regionID
	SystemRegion map[int32]int32
	// SystemSecurity maps systemID -> security (-1.0 to 1.0)
	SystemSecurity map[int32]float64

	SystemName   map[int32]string
	SystemByName map[string]int32 // exact name -> systemID
	RegionName   map[int32]string
	RegionByName map[string]int32 // exact name -> regionID
}

// NewUniverse creates an empty Universe with initialized maps.
func NewUniverse() *Universe {
	return &Universe{
		Adj:            make(map[int32][]int32),
		Bridges:        make(map[int32][]int32),
		SystemRegion:   make(map[int32]int32),
		SystemSecurity: make(map[int32]float64),
		SystemName:     make(map[int32]string),
		SystemByName:   make(map[string]int32),
		RegionName:     make(map[int32]string),
		RegionByName:   make(map[string]int32),
	}
}

// AddSystem registers a solar system with its region and security.
func (u *Universe) AddSystem(id int32, name string, regionID int32, security float64) {
	u.SystemName[id] = name
	u.SystemByName[name] = id
	u.SetRegion(id, regionID)
	u.SetSecurity(id, security)
}

// AddRegion registers a region name.
func (u *Universe) AddRegion(id int32, name string) {
	u.RegionName[id] = name
	u.RegionByName[name] = id
}

// AddGate adds a directed stargate edge. The reverse edge is only present if the
// dataset lists it too.
func (u *Universe) AddGate(fromSystem, toSystem int32) {
	u.Adj[fromSystem] = append(u.Adj[fromSystem], toSystem)
}

// AddJumpbridge links two systems in both directions. Duplicate links are ignored.
// Returns false when the pair was already present.
func (u *Universe) AddJumpbridge(a, b int32) bool {
	if a == b || contains(u.Bridges[a], b) {
		return false
	}
	u.Bridges[a] = append(u.Bridges[a], b)
	if !contains(u.Bridges[b], a) {
		u.Bridges[b] = append(u.Bridges[b], a)
	}
	return true
}

// SetRegion associates a system with a region.
func (u *Universe) SetRegion(systemID, regionID int32) {
	u.SystemRegion[systemID] = regionID
}

// SetSecurity sets the security level for a system (-1.0–1.0).
func (u *Universe) SetSecurity(systemID int32, security float64) {
	u.SystemSecurity[systemID] = security
}

// SystemID resolves an exact system name.
func (u *Universe) SystemID(name string) (int32, bool) {
	id, ok := u.SystemByName[name]
	return id, ok
}

// RegionOfSystem returns the region name of a system, or "" if unknown.
func (u *Universe) RegionOfSystem(systemID int32) string {
	regionID, ok := u.SystemRegion[systemID]
	if !ok {
		return ""
	}
	return u.RegionName[regionID]
}

// IsJumpbridge reports whether a->b is a jumpbridge link.
func (u *Universe) IsJumpbridge(a, b int32) bool {
	return contains(u.Bridges[a], b)
}

// JumpbridgeCount returns the number of distinct jumpbridge links.
func (u *Universe) JumpbridgeCount() int {
	n := 0
	for _, nbrs := range u.Bridges {
		n += len(nbrs)
	}
	return n / 2
}

func contains(list []int32, v int32) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
