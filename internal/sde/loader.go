package sde

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"drifter-tracker/internal/graph"
	"drifter-tracker/internal/logger"
)

const dumpURL = "https://www.fuzzwork.co.uk/dump/latest/"

const (
	systemsFile = "systems_processed.csv"
	regionsFile = "regions.csv"
	jumpsFile   = "jumps_processed.csv"

	rawSystemsFile = "mapSolarSystems.csv"
	rawRegionsFile = "mapRegions.csv"
	rawJumpsFile   = "mapSolarSystemJumps.csv"
	rawTypesFile   = "invTypes.csv"
	rawGroupsFile  = "invGroups.csv"
)

// rawFiles are fetched from the dump when the processed files are missing.
var rawFiles = []string{rawSystemsFile, rawRegionsFile, rawJumpsFile, rawTypesFile, rawGroupsFile}

const (
	minSystemID = 30000000
	maxSystemID = 33000000
	minRegionID = 10000000
	maxRegionID = 11000000
)

// Data holds the parsed static universe.
type Data struct {
	Systems     map[int32]*SolarSystem // systemID -> system
	Regions     map[int32]*Region      // regionID -> region
	SystemNames []string               // all system names, sorted, for autocomplete
	RegionNames []string               // all region names, sorted
	ShipMasses  map[string]int64       // hull name -> mass in kg
	Universe    *graph.Universe

	// JumpbridgeLinks is the number of bridges wired into Universe and
	// JumpbridgesSkipped the number whose systems are unknown.
	JumpbridgeLinks    int
	JumpbridgesSkipped int

	systemByLower map[string]int32
	regionByLower map[string]int32
}

// Region represents an EVE region.
type Region struct {
	ID   int32
	Name string
}

// SolarSystem represents an EVE solar system.
type SolarSystem struct {
	ID       int32
	Name     string
	RegionID int32
	Security float64 // -1.0 to 1.0
}

// Options controls Load.
type Options struct {
	// Download fetches missing raw CSVs from the public dump.
	Download bool
	// Jumpbridges wires the built-in bridge table into the universe.
	Jumpbridges bool
}

// Load reads the processed universe from dataDir, building the processed files
// from the raw dump first when needed.
func Load(dataDir string, opts Options) (*Data, error) {
	if !exists(filepath.Join(dataDir, systemsFile)) || !exists(filepath.Join(dataDir, jumpsFile)) {
		if opts.Download {
			if err := Download(dataDir); err != nil {
				return nil, fmt.Errorf("download SDE: %w", err)
			}
		}
		logger.Info("SDE", "Processing raw data...")
		if err := Process(dataDir); err != nil {
			return nil, fmt.Errorf("process SDE: %w", err)
		}
	}

	data := newData()

	logger.Info("SDE", "Loading regions...")
	if err := data.loadRegions(dataDir); err != nil {
		return nil, err
	}
	logger.Info("SDE", "Loading solar systems...")
	if err := data.loadSystems(filepath.Join(dataDir, systemsFile)); err != nil {
		return nil, fmt.Errorf("load systems: %w", err)
	}
	logger.Info("SDE", "Loading stargates...")
	if err := data.loadJumps(filepath.Join(dataDir, jumpsFile)); err != nil {
		return nil, fmt.Errorf("load jumps: %w", err)
	}
	if len(data.Systems) == 0 {
		return nil, fmt.Errorf("load systems: no valid systems in %s", dataDir)
	}
	logger.Info("SDE", "Loading ship masses...")
	data.loadShipMasses(dataDir)
	if opts.Jumpbridges {
		data.loadJumpbridges(Jumpbridges)
	}
	data.finish()

	logger.Section("SDE Statistics")
	logger.Stats("Regions", len(data.Regions))
	logger.Stats("Systems", len(data.Systems))
	logger.Stats("Ship types", len(data.ShipMasses))
	logger.Stats("Jumpbridges", data.JumpbridgeLinks)
	return data, nil
}

func newData() *Data {
	return &Data{
		Systems:       make(map[int32]*SolarSystem),
		Regions:       make(map[int32]*Region),
		ShipMasses:    make(map[string]int64),
		Universe:      graph.NewUniverse(),
		systemByLower: make(map[string]int32),
		regionByLower: make(map[string]int32),
	}
}

// finish sorts the name lists once all systems and regions are in.
func (d *Data) finish() {
	d.SystemNames = d.SystemNames[:0]
	for _, s := range d.Systems {
		d.SystemNames = append(d.SystemNames, s.Name)
	}
	sort.Strings(d.SystemNames)
	d.RegionNames = d.RegionNames[:0]
	for _, r := range d.Regions {
		d.RegionNames = append(d.RegionNames, r.Name)
	}
	sort.Strings(d.RegionNames)
}

func (d *Data) addRegion(id int32, name string) {
	d.Regions[id] = &Region{ID: id, Name: name}
	d.regionByLower[strings.ToLower(name)] = id
	d.Universe.AddRegion(id, name)
}

func (d *Data) addSystem(id int32, name string, regionID int32, sec float64) {
	d.Systems[id] = &SolarSystem{ID: id, Name: name, RegionID: regionID, Security: sec}
	d.systemByLower[strings.ToLower(name)] = id
	d.Universe.AddSystem(id, name, regionID, sec)
}

func (d *Data) loadRegions(dir string) error {
	path := filepath.Join(dir, regionsFile)
	idCol, nameCol := "region_id", "region_name"
	if !exists(path) {
		path = filepath.Join(dir, rawRegionsFile)
		idCol, nameCol = "regionID", "regionName"
	}
	if !exists(path) {
		logger.Warn("SDE", "No region names found, region routing disabled")
		return nil
	}
	return readCSV(path, func(row csvRow) error {
		id, ok := row.intInRange(idCol, minRegionID, maxRegionID)
		if !ok {
			return errSkip
		}
		name, ok := validName(row.get(nameCol))
		if !ok {
			return errSkip
		}
		d.addRegion(id, name)
		return nil
	})
}

func (d *Data) loadSystems(path string) error {
	return readCSV(path, func(row csvRow) error {
		id, ok := row.intInRange("system_id", minSystemID, maxSystemID)
		if !ok {
			return errSkip
		}
		name, ok := validName(row.get("system_name"))
		if !ok {
			return errSkip
		}
		regionID, ok := row.intInRange("region_id", minRegionID, maxRegionID)
		if !ok {
			return errSkip
		}
		d.addSystem(id, name, regionID, row.security("security"))
		return nil
	})
}

func (d *Data) loadJumps(path string) error {
	return readCSV(path, func(row csvRow) error {
		from, ok := row.intInRange("from_system", minSystemID, maxSystemID)
		if !ok {
			return errSkip
		}
		to, ok := row.intInRange("to_system", minSystemID, maxSystemID)
		if !ok {
			return errSkip
		}
		d.Universe.AddGate(from, to)
		return nil
	})
}

// loadJumpbridges wires bridges whose endpoints both resolve by exact name.
func (d *Data) loadJumpbridges(bridges []Jumpbridge) {
	for _, jb := range bridges {
		a, okA := d.Universe.SystemID(jb.A)
		b, okB := d.Universe.SystemID(jb.B)
		if !okA || !okB {
			d.JumpbridgesSkipped++
			if d.JumpbridgesSkipped <= 3 {
				logger.Warn("SDE", fmt.Sprintf("Jumpbridge %s <-> %s: system not found", jb.A, jb.B))
			}
			continue
		}
		d.Universe.AddJumpbridge(a, b)
	}
	d.JumpbridgeLinks = d.Universe.JumpbridgeCount()
	if d.JumpbridgesSkipped > 0 {
		logger.Info("SDE", fmt.Sprintf("Skipped %d jumpbridges with unknown systems", d.JumpbridgesSkipped))
	}
}

// Process converts the raw dump CSVs in dir into the processed files Load reads.
// The three inputs are parsed concurrently.
func Process(dir string) error {
	var regions, systems, jumps [][]string
	var g errgroup.Group
	g.Go(func() error {
		var err error
		regions, err = collect(filepath.Join(dir, rawRegionsFile), func(row csvRow) []string {
			id := row.int("regionID")
			name, ok := validName(row.get("regionName"))
			if id <= 0 || !ok {
				return nil
			}
			return []string{strconv.FormatInt(id, 10), name}
		})
		return err
	})
	g.Go(func() error {
		var err error
		systems, err = collect(filepath.Join(dir, rawSystemsFile), func(row csvRow) []string {
			id, regionID := row.int("solarSystemID"), row.int("regionID")
			name, ok := validName(row.get("solarSystemName"))
			if id <= 0 || regionID <= 0 || !ok {
				return nil
			}
			sec := strconv.FormatFloat(row.security("security"), 'f', -1, 64)
			return []string{strconv.FormatInt(id, 10), name, strconv.FormatInt(regionID, 10), sec}
		})
		return err
	})
	g.Go(func() error {
		var err error
		jumps, err = collect(filepath.Join(dir, rawJumpsFile), func(row csvRow) []string {
			from, to := row.int("fromSolarSystemID"), row.int("toSolarSystemID")
			if from <= 0 || to <= 0 {
				return nil
			}
			return []string{strconv.FormatInt(from, 10), strconv.FormatInt(to, 10)}
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeCSV(filepath.Join(dir, regionsFile), []string{"region_id", "region_name"}, regions); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, systemsFile), []string{"system_id", "system_name", "region_id", "security"}, systems); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, jumpsFile), []string{"from_system", "to_system"}, jumps); err != nil {
		return err
	}
	logger.Success("SDE", fmt.Sprintf("Processed %d systems, %d stargate connections", len(systems), len(jumps)))
	return nil
}

func collect(path string, conv func(csvRow) []string) ([][]string, error) {
	var out [][]string
	err := readCSV(path, func(row csvRow) error {
		rec := conv(row)
		if rec == nil {
			return errSkip
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// Download fetches the raw dump files missing from dataDir.
func Download(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	for _, name := range rawFiles {
		dst := filepath.Join(dataDir, name)
		if exists(dst) {
			continue
		}
		logger.Info("SDE", fmt.Sprintf("Downloading %s...", name))
		if err := downloadFile(dst, dumpURL+name); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func downloadFile(dst, url string) error {
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	tmp := dst + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
