package metrics

import "github.com/san-kum/circsim/internal/circuit"

// Dissipation reports the total power dissipated across all components on
// the most recent frame.
type Dissipation struct {
	latest float64
}

func NewDissipation() *Dissipation { return &Dissipation{} }

func (m *Dissipation) Name() string { return "dissipated_power" }

func (m *Dissipation) Observe(g *circuit.Graph, frame int) {
	total := 0.0
	for _, c := range g.Components() {
		total += c.State.Power
	}
	m.latest = total
}

func (m *Dissipation) Value() float64 { return m.latest }
func (m *Dissipation) Reset()         { m.latest = 0 }

// Burnouts counts components currently burnt.
type Burnouts struct {
	count int
}

func NewBurnouts() *Burnouts { return &Burnouts{} }

func (m *Burnouts) Name() string { return "burnt_components" }

func (m *Burnouts) Observe(g *circuit.Graph, frame int) {
	n := 0
	for _, c := range g.Components() {
		if c.State.Burnt {
			n++
		}
	}
	m.count = n
}

func (m *Burnouts) Value() float64 { return float64(m.count) }
func (m *Burnouts) Reset()         { m.count = 0 }
