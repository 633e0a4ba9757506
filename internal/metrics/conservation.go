// Package metrics provides run-level diagnostics computed from solved
// component state: Kirchhoff residuals, dissipated power, burnout counts.
package metrics

import (
	"math"

	"github.com/san-kum/circsim/internal/circuit"
)

// Conservation tracks the worst nodal current residual seen across the run.
// For a healthy solve the signed currents incident on every non-ground node
// sum to ~0; a growing residual points at a degenerate (skipped-pivot)
// solve.
type Conservation struct {
	worst float64
}

func NewConservation() *Conservation { return &Conservation{} }

func (m *Conservation) Name() string { return "max_current_residual" }

func (m *Conservation) Observe(g *circuit.Graph, frame int) {
	if r := Residual(g); r > m.worst {
		m.worst = r
	}
}

func (m *Conservation) Value() float64 { return m.worst }
func (m *Conservation) Reset()         { m.worst = 0 }

// Residual computes the largest absolute nodal current sum for the graph's
// last solved state. Ground is excluded; it absorbs the reference current.
func Residual(g *circuit.Graph) float64 {
	sums := make(map[int]float64)
	for _, c := range g.Components() {
		if c.State.Burnt {
			continue
		}
		for terminal := 0; terminal < 2; terminal++ {
			node := c.State.Nodes[terminal]
			if node == circuit.GroundNode {
				continue
			}
			sums[node] += leaving(c, terminal)
		}
	}
	worst := 0.0
	for _, sum := range sums {
		if r := math.Abs(sum); r > worst {
			worst = r
		}
	}
	return worst
}

// leaving is the current flowing out of the node attached to the given
// terminal. A battery's branch current runs terminal 0 to terminal 1 inside
// the source; a passive's positive current corresponds to a positive drop,
// entering at terminal 1.
func leaving(c *circuit.Component, terminal int) float64 {
	sign := 1.0
	if c.Kind == circuit.KindBattery {
		if terminal == 1 {
			sign = -1
		}
	} else if terminal == 0 {
		sign = -1
	}
	return sign * c.State.Current
}
