package solver

import "github.com/san-kum/circsim/internal/circuit"

const (
	// leakage is a small conductance added to every free node's diagonal
	// so that floating nodes never make the matrix singular.
	leakage = 1e-9

	// minResistance clamps configured resistances before inverting.
	// A configured value of exactly zero would otherwise divide by zero
	// in both assembly and update.
	minResistance = 1e-6

	// openSwitchResistance stands in for an open contact. The open branch
	// leaks through this resistance and through the node leakage, so the
	// value must keep the combined 9 V loop current under 1e-8 A.
	openSwitchResistance = 1e10

	// diodeOnResistance and diodeOffResistance are the two legs of the
	// diode's cross-solve linearization.
	diodeOnResistance  = 1.0
	diodeOffResistance = 1e9
)

// system is the dense MNA system: a*x = b, unknowns are the free node
// voltages followed by the branch currents of non-burnt batteries.
type system struct {
	n int
	a [][]float64
	b []float64
}

func newSystem(n int) *system {
	s := &system{n: n, a: make([][]float64, n), b: make([]float64, n)}
	for i := range s.a {
		s.a[i] = make([]float64, n)
	}
	return s
}

// add accumulates into a[i][j]; ground indices (negative) are omitted,
// their voltage is fixed at 0.
func (s *system) add(i, j int, v float64) {
	if i < 0 || j < 0 {
		return
	}
	s.a[i][j] += v
}

func (s *system) addRHS(i int, v float64) {
	if i < 0 {
		return
	}
	s.b[i] += v
}

// stampConductance is the passive two-terminal stamp: G on both diagonals,
// -G on both off-diagonals.
func (s *system) stampConductance(n1, n2 int, g float64) {
	s.add(n1, n1, g)
	s.add(n2, n2, g)
	s.add(n1, n2, -g)
	s.add(n2, n1, -g)
}

// stampSource stamps a voltage source with internal resistance between n1
// (negative) and n2 (positive), with its branch current unknown at row
// branch. The branch row encodes V(n2) - V(n1) + I*internal = volts, with I
// flowing from terminal 0 toward terminal 1 inside the source; the node
// rows book that current as leaving n1 and entering n2.
func (s *system) stampSource(n1, n2, branch int, volts, internal float64) {
	s.add(branch, n1, -1)
	s.add(branch, n2, 1)
	s.add(n1, branch, 1)
	s.add(n2, branch, -1)
	s.add(branch, branch, internal)
	s.addRHS(branch, volts)
}

func clampResistance(r float64) float64 {
	if r < minResistance {
		return minResistance
	}
	return r
}

// passiveResistance returns the assembly-time resistance for the passive
// kinds. The diode leg depends on the voltage drop stored by the previous
// update: correctness as a diode emerges across repeated solves, not within
// one. Returns ok=false for batteries and unrecognized kinds, which carry
// no conductance stamp.
func passiveResistance(c *circuit.Component) (float64, bool) {
	switch p := c.Props.(type) {
	case circuit.Load:
		return clampResistance(p.Resistance), true
	case circuit.Switch:
		if p.Closed {
			return clampResistance(p.Resistance), true
		}
		return openSwitchResistance, true
	case circuit.Diode:
		if c.State.VoltageDrop > p.ForwardVoltage {
			return diodeOnResistance, true
		}
		return diodeOffResistance, true
	default:
		return 0, false
	}
}

// assemble builds the MNA system for the indexed topology and returns it
// together with the branch row assigned to each non-burnt battery, keyed by
// component id. Burnt components stamp nothing.
func assemble(comps []*circuit.Component, topo *topology, ni *nodeIndex) (*system, map[string]int) {
	branches := make(map[string]int)
	next := ni.free()
	for _, c := range comps {
		if c.Kind == circuit.KindBattery && !c.State.Burnt {
			branches[c.ID] = next
			next++
		}
	}

	s := newSystem(next)
	for i := 0; i < ni.free(); i++ {
		s.a[i][i] += leakage
	}

	for _, c := range comps {
		if c.State.Burnt {
			continue
		}
		n1 := ni.at(topo.find(c.ID, 0))
		n2 := ni.at(topo.find(c.ID, 1))
		if p, ok := c.Props.(circuit.Battery); ok {
			s.stampSource(n1, n2, branches[c.ID], p.Voltage, p.InternalResistance)
			continue
		}
		if r, ok := passiveResistance(c); ok {
			s.stampConductance(n1, n2, 1/r)
		}
	}
	return s, branches
}
