package sde

import (
	"reflect"
	"testing"
)

func resolveData() *Data {
	d := newData()
	d.addRegion(10000002, "The Forge")
	d.addRegion(10001000, "Scalding Pass")
	d.addSystem(30000142, "Jita", 10000002, 0.9)
	d.addSystem(30000144, "Perimeter", 10000002, 0.9)
	d.addSystem(30000145, "New Caldari", 10000002, 1.0)
	d.addSystem(30000146, "Jatate", 10000002, 0.7)
	d.addSystem(30001000, "5E-CMA", 10001000, -0.4)
	d.finish()
	return d
}

func TestResolveSystem(t *testing.T) {
	d := resolveData()
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Jita", "Jita", true},
		{"jita", "Jita", true},
		{"  JITA ", "Jita", true},
		{"ja", "Jatate", true},
		{"5e", "5E-CMA", true},
		{"new c", "New Caldari", true},
		{"rimeter", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := d.ResolveSystem(tt.query)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ResolveSystem(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSuggestSystems(t *testing.T) {
	d := resolveData()
	got := d.SuggestSystems("ja", 10)
	if !reflect.DeepEqual(got, []string{"Jatate"}) {
		t.Errorf("SuggestSystems(ja) = %v", got)
	}
	got = d.SuggestSystems("e", 10)
	// "5E-CMA" has no prefix e; contains e: 5E-CMA, Jatate, New Caldari, Perimeter
	if len(got) != 4 {
		t.Errorf("SuggestSystems(e) = %v", got)
	}
	if got := d.SuggestSystems("e", 2); len(got) != 2 {
		t.Errorf("limit ignored: %v", got)
	}
	if got := d.SuggestSystems("", 5); got != nil {
		t.Errorf("empty query = %v", got)
	}
}

func TestResolveRegionAndRegionOf(t *testing.T) {
	d := resolveData()
	if got, ok := d.ResolveRegion("scalding pass"); !ok || got != "Scalding Pass" {
		t.Errorf("ResolveRegion = %q, %v", got, ok)
	}
	if _, ok := d.ResolveRegion("Nowhere"); ok {
		t.Error("unknown region resolved")
	}
	if got := d.RegionOf("5e-cma"); got != "Scalding Pass" {
		t.Errorf("RegionOf = %q", got)
	}
	if got := d.RegionOf("Nowhere"); got != "Unknown" {
		t.Errorf("RegionOf(unknown) = %q", got)
	}
	if id, ok := d.SystemRegionID("Jita"); !ok || id != 10000002 {
		t.Errorf("SystemRegionID = %d, %v", id, ok)
	}
}

func TestShipMass(t *testing.T) {
	d := newData()
	d.ShipMasses["Stratios"] = 13_400_000
	name, m, ok := d.ShipMass("stratios")
	if !ok || name != "Stratios" || m != 13_400_000 {
		t.Errorf("ShipMass = %q %d %v", name, m, ok)
	}
	if _, _, ok := d.ShipMass("Titanic"); ok {
		t.Error("unknown hull found")
	}
}
