package solver

import (
	"testing"

	"github.com/san-kum/circsim/internal/circuit"
)

func TestTopologyMergesWiredTerminals(t *testing.T) {
	g := circuit.New(&circuit.CounterSource{})
	var comps []*circuit.Component
	for i := 0; i < 4; i++ {
		c := circuit.NewResistor(g.NewID(), 10, 1)
		comps = append(comps, c)
		if err := g.Add(c); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	// Chain c1.1 - c2.0 - c3.0, plus a redundant wire closing the same
	// group again.
	mustConnect(t, g, comps[0].ID, 1, comps[1].ID, 0)
	mustConnect(t, g, comps[1].ID, 0, comps[2].ID, 0)
	mustConnect(t, g, comps[2].ID, 0, comps[0].ID, 1)

	topo := buildTopology(g.Components(), g.Wires())

	root := topo.find(comps[0].ID, 1)
	for _, tc := range []struct {
		id       string
		terminal int
	}{
		{comps[1].ID, 0},
		{comps[2].ID, 0},
	} {
		if got := topo.find(tc.id, tc.terminal); got != root {
			t.Errorf("find(%s,%d) = %d, want %d", tc.id, tc.terminal, got, root)
		}
	}

	// Unwired terminals stay singleton classes.
	seen := map[int]bool{root: true}
	for _, tc := range []struct {
		id       string
		terminal int
	}{
		{comps[0].ID, 0},
		{comps[1].ID, 1},
		{comps[2].ID, 1},
		{comps[3].ID, 0},
		{comps[3].ID, 1},
	} {
		r := topo.find(tc.id, tc.terminal)
		if seen[r] {
			t.Errorf("terminal (%s,%d) merged unexpectedly into root %d", tc.id, tc.terminal, r)
		}
		seen[r] = true
	}
}

func TestTopologyIgnoresStaleWires(t *testing.T) {
	g := circuit.New(&circuit.CounterSource{})
	a := circuit.NewResistor(g.NewID(), 10, 1)
	b := circuit.NewResistor(g.NewID(), 10, 1)
	for _, c := range []*circuit.Component{a, b} {
		if err := g.Add(c); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	mustConnect(t, g, a.ID, 1, b.ID, 0)

	// A wire referring to a component the topology pass does not know
	// about contributes nothing instead of panicking.
	wires := append([]circuit.Wire{}, g.Wires()...)
	wires = append(wires, circuit.Wire{
		A: circuit.Terminal{ComponentID: "ghost", Index: 0},
		B: circuit.Terminal{ComponentID: a.ID, Index: 0},
	})

	topo := buildTopology(g.Components(), wires)
	if topo.find(a.ID, 1) != topo.find(b.ID, 0) {
		t.Error("wired terminals not merged")
	}
	if topo.find(a.ID, 0) == topo.find(a.ID, 1) {
		t.Error("stale wire merged unrelated terminals")
	}
}

func TestNodeIndexGroundSelection(t *testing.T) {
	g, bat, res := seriesLoop(t)
	topo := buildTopology(g.Components(), g.Wires())
	ni := buildNodeIndex(g.Components(), topo)

	if ni.free() != 1 {
		t.Fatalf("free nodes = %d, want 1", ni.free())
	}
	if ni.at(topo.find(bat.ID, 0)) != circuit.GroundNode {
		t.Error("battery terminal 0 is not ground")
	}
	if ni.at(topo.find(res.ID, 0)) != 0 {
		t.Errorf("free node index = %d, want 0", ni.at(topo.find(res.ID, 0)))
	}
}

func TestNodeIndexNoBatteryFallback(t *testing.T) {
	g := circuit.New(&circuit.CounterSource{})
	a := circuit.NewResistor(g.NewID(), 10, 1)
	b := circuit.NewResistor(g.NewID(), 20, 1)
	for _, c := range []*circuit.Component{a, b} {
		if err := g.Add(c); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	mustConnect(t, g, a.ID, 1, b.ID, 0)

	topo := buildTopology(g.Components(), g.Wires())
	ni := buildNodeIndex(g.Components(), topo)

	// Ground falls back to the first root in stored component order:
	// terminal 0 of the first resistor. The remaining roots are the merged
	// middle node and terminal 1 of the second resistor.
	if ni.at(topo.find(a.ID, 0)) != circuit.GroundNode {
		t.Error("fallback ground is not the first encountered root")
	}
	if ni.free() != 2 {
		t.Errorf("free nodes = %d, want 2", ni.free())
	}
	if ni.at(topo.find(a.ID, 1)) != ni.at(topo.find(b.ID, 0)) {
		t.Error("wired terminals resolve to different nodes")
	}
}
