package graph

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// lineUniverse builds a chain A-B-C-D-E of two-way gates.
func lineUniverse() *Universe {
	u := NewUniverse()
	u.AddRegion(10000001, "Alpha Region")
	names := []string{"A", "B", "C", "D", "E"}
	for i, n := range names {
		u.AddSystem(int32(30000001+i), n, 10000001, 0.5)
	}
	for i := 0; i < len(names)-1; i++ {
		a, b := int32(30000001+i), int32(30000002+i)
		u.AddGate(a, b)
		u.AddGate(b, a)
	}
	return u
}

func TestFindPath_SameSystem(t *testing.T) {
	u := lineUniverse()
	got, err := u.FindPath("C", "C", 10)
	if err != nil {
		t.Fatalf("FindPath(C, C) error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("FindPath(C, C) = %v, want [C]", got)
	}
}

func TestFindPath_GatesOnly(t *testing.T) {
	u := lineUniverse()
	got, err := u.FindPath("A", "E", 10)
	if err != nil {
		t.Fatalf("FindPath error: %v", err)
	}
	want := []string{"A", "B", "C", "D", "E"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPath(A, E) = %v, want %v", got, want)
	}
}

func TestFindPath_PrefersJumpbridge(t *testing.T) {
	u := lineUniverse()
	// A <-> D bridge: A-D(0.3) + D-E(1.0) = 1.3 beats 4 gates.
	u.AddJumpbridge(30000001, 30000004)

	ids, cost, ok := u.FindPathIDs(30000001, 30000005, 10, true)
	if !ok {
		t.Fatal("expected a path")
	}
	want := []int32{30000001, 30000004, 30000005}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("path = %v, want %v", ids, want)
	}
	if math.Abs(cost-1.3) > 1e-9 {
		t.Errorf("cost = %v, want 1.3", cost)
	}

	// Without bridges the gate route is used.
	ids, cost, ok = u.FindPathIDs(30000001, 30000005, 10, false)
	if !ok || len(ids) != 5 || cost != 4 {
		t.Errorf("gates-only path = %v cost %v ok %v, want 5 systems cost 4", ids, cost, ok)
	}
}

func TestFindPath_KnownOptimalCost(t *testing.T) {
	// Diamond: S->X->T costs 2 gates; S=>Y=>Z=>T three bridges costs 0.9.
	u := NewUniverse()
	for i, n := range []string{"S", "X", "Y", "Z", "T"} {
		u.AddSystem(int32(30000100+i), n, 10000001, 0)
	}
	u.AddGate(30000100, 30000101)
	u.AddGate(30000101, 30000104)
	u.AddJumpbridge(30000100, 30000102)
	u.AddJumpbridge(30000102, 30000103)
	u.AddJumpbridge(30000103, 30000104)

	got, err := u.FindPath("S", "T", 5)
	if err != nil {
		t.Fatalf("FindPath error: %v", err)
	}
	want := []string{"S", "Y", "Z", "T"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPath(S, T) = %v, want %v", got, want)
	}
}

func TestFindPath_DirectedGates(t *testing.T) {
	u := NewUniverse()
	u.AddSystem(30000001, "A", 10000001, 0)
	u.AddSystem(30000002, "B", 10000001, 0)
	u.AddGate(30000001, 30000002)

	if _, err := u.FindPath("A", "B", 5); err != nil {
		t.Fatalf("A->B: %v", err)
	}
	if _, err := u.FindPath("B", "A", 5); !errors.Is(err, ErrNoPath) {
		t.Errorf("B->A err = %v, want ErrNoPath (no reverse gate)", err)
	}
}

func TestFindPath_Disconnected(t *testing.T) {
	u := lineUniverse()
	u.AddSystem(30000099, "Island", 10000001, -0.4)

	for i := 0; i < 3; i++ {
		if _, err := u.FindPath("A", "Island", 50); !errors.Is(err, ErrNoPath) {
			t.Fatalf("run %d: err = %v, want ErrNoPath", i, err)
		}
	}
}

func TestFindPath_UnknownName(t *testing.T) {
	u := lineUniverse()
	if _, err := u.FindPath("a", "E", 5); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("lowercase name err = %v, want ErrUnknownSystem", err)
	}
	if _, err := u.FindPath("A", "Nowhere", 5); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("unknown dest err = %v, want ErrUnknownSystem", err)
	}
}

func TestFindPath_EdgeBudgetIsTwiceMaxJumps(t *testing.T) {
	u := lineUniverse()
	// A->E is 4 edges: allowed with maxJumps=2 (4 edges), not with maxJumps=1 (2 edges).
	if _, err := u.FindPath("A", "E", 2); err != nil {
		t.Errorf("maxJumps=2: %v, want path", err)
	}
	if _, err := u.FindPath("A", "E", 1); !errors.Is(err, ErrNoPath) {
		t.Errorf("maxJumps=1: err = %v, want ErrNoPath", err)
	}
	if _, err := u.FindPath("A", "C", 1); err != nil {
		t.Errorf("A->C with maxJumps=1: %v, want path", err)
	}
}

func TestFindPath_FirstPopFinalizesUnderBudget(t *testing.T) {
	// S=>A=>X (0.6, 2 edges) finalizes X before S->X (1.0, 1 edge), so with
	// a 2-edge budget X cannot continue to D even though S->X->D fits.
	u := NewUniverse()
	for i, n := range []string{"S", "A", "X", "D"} {
		u.AddSystem(int32(30000300+i), n, 10000001, 0)
	}
	u.AddJumpbridge(30000300, 30000301)
	u.AddJumpbridge(30000301, 30000302)
	u.AddGate(30000300, 30000302)
	u.AddGate(30000302, 30000303)

	if _, err := u.FindPath("S", "D", 1); !errors.Is(err, ErrNoPath) {
		t.Errorf("maxJumps=1: err = %v, want ErrNoPath", err)
	}
	path, err := u.FindPath("S", "D", 2)
	if err != nil {
		t.Fatalf("maxJumps=2: %v", err)
	}
	if want := []string{"S", "A", "X", "D"}; !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestFindPath_DeterministicTieBreak(t *testing.T) {
	// Two equal-cost routes S->P->T and S->Q->T; P is discovered first.
	u := NewUniverse()
	for i, n := range []string{"S", "P", "Q", "T"} {
		u.AddSystem(int32(30000200+i), n, 10000001, 0)
	}
	u.AddGate(30000200, 30000201)
	u.AddGate(30000200, 30000202)
	u.AddGate(30000201, 30000203)
	u.AddGate(30000202, 30000203)

	first, _ := u.FindPath("S", "T", 5)
	for i := 0; i < 20; i++ {
		got, _ := u.FindPath("S", "T", 5)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: path = %v, want %v", i, got, first)
		}
	}
	if first[1] != "P" {
		t.Errorf("tie broken towards %s, want first-discovered P", first[1])
	}
}

func TestAddJumpbridge_Bidirectional(t *testing.T) {
	u := NewUniverse()
	if !u.AddJumpbridge(1, 2) {
		t.Fatal("first AddJumpbridge returned false")
	}
	if u.AddJumpbridge(2, 1) {
		t.Error("reverse duplicate AddJumpbridge returned true")
	}
	if !u.IsJumpbridge(1, 2) || !u.IsJumpbridge(2, 1) {
		t.Error("bridge should be traversable both ways")
	}
	if u.JumpbridgeCount() != 1 {
		t.Errorf("JumpbridgeCount = %d, want 1", u.JumpbridgeCount())
	}
}

func TestRegionLookups(t *testing.T) {
	u := lineUniverse()
	if r := u.RegionOfSystem(30000002); r != "Alpha Region" {
		t.Errorf("RegionOfSystem = %q, want Alpha Region", r)
	}
	if r := u.RegionOfSystem(99999999); r != "" {
		t.Errorf("RegionOfSystem(unknown) = %q, want empty", r)
	}
}
