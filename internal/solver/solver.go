package solver

import "github.com/san-kum/circsim/internal/circuit"

// Solve recomputes the electrical state of every component in the graph.
// Single-threaded, run-to-completion: no partially updated state is
// observable outside the call. The graph must not be structurally edited
// while Solve runs; property edits become visible on the next call.
func Solve(g *circuit.Graph) {
	comps := g.Components()
	if len(comps) == 0 {
		return
	}

	topo := buildTopology(comps, g.Wires())
	ni := buildNodeIndex(comps, topo)
	if ni.free() == 0 {
		zeroState(comps)
		return
	}

	sys, branches := assemble(comps, topo, ni)
	x := gaussianSolve(sys.a, sys.b)
	updateState(comps, topo, ni, x, branches)
}
