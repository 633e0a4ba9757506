package solver

import "github.com/san-kum/circsim/internal/circuit"

// overloadFactor scales the power rating before the burnout comparison.
const overloadFactor = 1.5

// nodeVoltage reads a solved node voltage; ground is exactly 0.
func nodeVoltage(x []float64, n int) float64 {
	if n == circuit.GroundNode {
		return 0
	}
	return x[n]
}

// updateState maps the solution vector back onto component state and applies
// the overload transition. Burnt components read zero current and power with
// their voltage drop frozen at failure time.
func updateState(comps []*circuit.Component, topo *topology, ni *nodeIndex, x []float64, branches map[string]int) {
	for _, c := range comps {
		n1 := ni.at(topo.find(c.ID, 0))
		n2 := ni.at(topo.find(c.ID, 1))
		c.State.Nodes = [2]int{n1, n2}

		if c.State.Burnt {
			c.State.Current = 0
			c.State.Power = 0
			continue
		}

		drop := nodeVoltage(x, n2) - nodeVoltage(x, n1)
		if p, ok := c.Props.(circuit.Battery); ok {
			i := x[branches[c.ID]]
			c.State.Current = i
			c.State.VoltageDrop = drop
			c.State.Power = i * i * p.InternalResistance
			continue
		}

		// Resistance must be the one assembly stamped, so the diode leg
		// is read before the new drop overwrites the stored one. Writing
		// the drop afterwards is what feeds the hysteresis into the next
		// solve.
		r, ok := passiveResistance(c)
		c.State.VoltageDrop = drop
		if !ok {
			c.State.Current = 0
			c.State.Power = 0
			continue
		}
		i := drop / r
		c.State.Current = i
		c.State.Power = i * i * r

		if p, ok := c.Props.(circuit.Load); ok && c.State.Power > overloadFactor*p.PowerRating {
			c.State.Burnt = true
		}
	}
}

// zeroState handles the no-free-node topologies (empty loop, single node):
// every component reads zero current and voltage drop, a valid terminal
// state rather than an error.
func zeroState(comps []*circuit.Component) {
	for _, c := range comps {
		c.State.Current = 0
		c.State.VoltageDrop = 0
		c.State.Power = 0
		c.State.Nodes = [2]int{circuit.GroundNode, circuit.GroundNode}
	}
}
