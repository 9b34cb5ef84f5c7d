package sde

import (
	"fmt"
	"path/filepath"
	"strings"

	"drifter-tracker/internal/logger"
)

const (
	shipCategoryID = 6
	// Capitals cannot use drifter holes and are left out of the mass table.
	maxShipMass = 1_000_000_000
)

// specialShips are hulls missing from or mis-massed in the CSV dump, in kg.
var specialShips = map[string]int64{
	// Alliance Tournament Frigates
	"Cambion":   1_180_000,
	"Malice":    1_180_000,
	"Cruor":     1_320_000,
	"Succubus":  1_120_000,
	"Dramiel":   1_080_000,
	"Daredevil": 1_180_000,
	"Imp":       1_080_000,
	"Fiend":     1_180_000,
	"Rabisu":    1_180_000,

	// Alliance Tournament Cruisers
	"Chameleon": 11_180_000,
	"Adrestia":  11_760_000,
	"Moracha":   11_400_000,
	"Phantasm":  11_400_000,
	"Cynabal":   12_400_000,
	"Garmur":    11_180_000,
	"Orthrus":   11_500_000,
	"Whiptail":  12_000_000,
	"Laelaps":   11_400_000,
	"Hydra":     12_200_000,
	"Zarmazd":   12_000_000,
	"Pacifier":  2_500_000,

	// Alliance Tournament Battleships/Cruisers
	"Metamorphosis": 1_000_000,
	"Etana":         16_800_000,
	"Vangel":        13_400_000,
	"Chremoas":      1_180_000,
	"Virtuoso":      12_800_000,
	"Victor":        13_400_000,
	"Tiamat":        112_000_000,

	// Pirate Faction (might be missing from basic SDE)
	"Worm":     1_360_000,
	"Stratios": 13_400_000,
	"Astero":   1_360_000,
	"Nestor":   100_000_000,

	// Limited Edition
	"Gold Magnate":              1_180_000,
	"Silver Magnate":            1_180_000,
	"Guardian-Vexor":            10_200_000,
	"Megathron Federate Issue":  110_000_000,
	"Raven State Issue":         112_000_000,
	"Tempest Tribal Issue":      125_000_000,
	"Apocalypse Imperial Issue": 120_000_000,
	"Armageddon Imperial Issue": 120_000_000,

	// Other Special Ships
	"Echelon":          2_500_000,
	"Violator":         1_180_000,
	"Sunesis":          1_400_000,
	"Gnosis":           12_000_000,
	"Praxis":           100_000_000,
	"Leopard":          960_000,
	"InterBus Shuttle": 1_000,
	"Zephyr":           5_000_000,
}

// loadShipMasses fills d.ShipMasses from invGroups.csv and invTypes.csv, then
// layers the special hulls on top. Missing files only leave the table short.
func (d *Data) loadShipMasses(dir string) {
	shipGroups := make(map[int64]bool)
	err := readCSV(filepath.Join(dir, rawGroupsFile), func(row csvRow) error {
		if row.int("categoryID") == shipCategoryID {
			if id := row.int("groupID"); id > 0 {
				shipGroups[id] = true
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("SDE", fmt.Sprintf("Ship groups unavailable: %v", err))
	} else {
		err = readCSV(filepath.Join(dir, rawTypesFile), func(row csvRow) error {
			if !shipGroups[row.int("groupID")] {
				return nil
			}
			mass, ok := row.float("mass")
			if !ok || mass <= 0 || mass >= maxShipMass {
				return nil
			}
			name := strings.TrimSpace(row.get("typeName"))
			if name == "" || len(name) > 100 {
				return nil
			}
			d.ShipMasses[name] = int64(mass)
			return nil
		})
		if err != nil {
			logger.Warn("SDE", fmt.Sprintf("Ship types unavailable: %v", err))
		}
	}

	for name, mass := range specialShips {
		if mass < maxShipMass {
			d.ShipMasses[name] = mass
		}
	}
}

// ShipMass returns the mass of a hull by case-insensitive name.
func (d *Data) ShipMass(name string) (string, int64, bool) {
	if m, ok := d.ShipMasses[name]; ok {
		return name, m, true
	}
	for n, m := range d.ShipMasses {
		if strings.EqualFold(n, name) {
			return n, m, true
		}
	}
	return "", 0, false
}
