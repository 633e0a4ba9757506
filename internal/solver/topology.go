package solver

import "github.com/san-kum/circsim/internal/circuit"

// topology merges the terminal universe (two slots per component) into
// electrical nodes: every wire unions its two endpoints. After building,
// find returns a canonical root per (component, terminal) pair.
type topology struct {
	slot   map[string]int // component id -> base slot (terminal 0)
	parent []int
	rank   []int
}

func buildTopology(comps []*circuit.Component, wires []circuit.Wire) *topology {
	t := &topology{
		slot:   make(map[string]int, len(comps)),
		parent: make([]int, 2*len(comps)),
		rank:   make([]int, 2*len(comps)),
	}
	for i, c := range comps {
		t.slot[c.ID] = 2 * i
		t.parent[2*i] = 2 * i
		t.parent[2*i+1] = 2*i + 1
	}
	for _, w := range wires {
		a, ok := t.terminalSlot(w.A)
		if !ok {
			continue
		}
		b, ok := t.terminalSlot(w.B)
		if !ok {
			continue
		}
		t.union(a, b)
	}
	return t
}

func (t *topology) terminalSlot(term circuit.Terminal) (int, bool) {
	base, ok := t.slot[term.ComponentID]
	if !ok || (term.Index != 0 && term.Index != 1) {
		// Stale wire (component deleted) or corrupt terminal index;
		// contributes no connectivity.
		return 0, false
	}
	return base + term.Index, true
}

// find returns the canonical root of a component terminal, with path
// compression.
func (t *topology) find(id string, terminal int) int {
	return t.root(t.slot[id] + terminal)
}

func (t *topology) root(x int) int {
	for t.parent[x] != x {
		t.parent[x] = t.parent[t.parent[x]]
		x = t.parent[x]
	}
	return x
}

func (t *topology) union(a, b int) {
	ra, rb := t.root(a), t.root(b)
	if ra == rb {
		return
	}
	if t.rank[ra] < t.rank[rb] {
		ra, rb = rb, ra
	}
	t.parent[rb] = ra
	if t.rank[ra] == t.rank[rb] {
		t.rank[ra]++
	}
}
