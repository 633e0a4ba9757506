// Package netlist reads and writes circuit files. The on-disk form carries
// visual fields (position, rotation) for editor use; building a graph from
// it only consumes id, type, properties and terminal references.
package netlist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circsim/internal/circuit"
)

// File is the persisted circuit.
type File struct {
	Name       string      `yaml:"name,omitempty"`
	Components []Component `yaml:"components"`
	Wires      []Wire      `yaml:"wires"`
}

// Component is one persisted component. Property fields are flat; which
// ones apply depends on Type. Position and Rotation belong to the editor
// and are ignored when building a graph.
type Component struct {
	ID       string     `yaml:"id,omitempty"`
	Type     string     `yaml:"type"`
	Position [2]float64 `yaml:"position,omitempty"`
	Rotation float64    `yaml:"rotation,omitempty"`

	Voltage            float64 `yaml:"voltage,omitempty"`
	InternalResistance float64 `yaml:"internalResistance,omitempty"`
	Resistance         float64 `yaml:"resistance,omitempty"`
	PowerRating        float64 `yaml:"powerRating,omitempty"`
	Closed             bool    `yaml:"closed,omitempty"`
	ForwardVoltage     float64 `yaml:"forwardVoltage,omitempty"`

	Burnt bool `yaml:"burnt,omitempty"`
}

// Wire joins two (component id, terminal) pairs.
type Wire struct {
	StartComponentID string `yaml:"startComponentId"`
	StartTerminal    int    `yaml:"startTerminal"`
	EndComponentID   string `yaml:"endComponentId"`
	EndTerminal      int    `yaml:"endTerminal"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("netlist %s: %w", path, err)
	}
	return &f, nil
}

func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs a solvable graph from the file. Components without an id
// get one from the source; wires must reference declared components.
func Build(f *File, ids circuit.IDSource) (*circuit.Graph, error) {
	g := circuit.New(ids)
	for i := range f.Components {
		spec := &f.Components[i]
		if spec.ID == "" {
			spec.ID = g.NewID()
		}
		c, err := buildComponent(spec)
		if err != nil {
			return nil, err
		}
		c.State.Burnt = spec.Burnt
		if err := g.Add(c); err != nil {
			return nil, err
		}
	}
	for _, w := range f.Wires {
		err := g.Connect(
			circuit.Terminal{ComponentID: w.StartComponentID, Index: w.StartTerminal},
			circuit.Terminal{ComponentID: w.EndComponentID, Index: w.EndTerminal},
		)
		if err != nil {
			return nil, fmt.Errorf("netlist wire %s.%d - %s.%d: %w",
				w.StartComponentID, w.StartTerminal, w.EndComponentID, w.EndTerminal, err)
		}
	}
	return g, nil
}

func buildComponent(spec *Component) (*circuit.Component, error) {
	kind, err := circuit.ParseKind(spec.Type)
	if err != nil {
		return nil, fmt.Errorf("netlist component %q: %w", spec.ID, err)
	}
	switch kind {
	case circuit.KindBattery:
		return circuit.NewBattery(spec.ID, spec.Voltage, spec.InternalResistance)
	case circuit.KindResistor:
		return circuit.NewResistor(spec.ID, spec.Resistance, spec.PowerRating), nil
	case circuit.KindLight:
		return circuit.NewLight(spec.ID, spec.Resistance, spec.PowerRating), nil
	case circuit.KindFan:
		return circuit.NewFan(spec.ID, spec.Resistance, spec.PowerRating), nil
	case circuit.KindSwitch:
		return circuit.NewSwitch(spec.ID, spec.Closed, spec.Resistance), nil
	case circuit.KindDiode:
		return circuit.NewDiode(spec.ID, spec.ForwardVoltage), nil
	default:
		return nil, fmt.Errorf("netlist component %q: %w: %v", spec.ID, circuit.ErrUnknownKind, kind)
	}
}

// FromGraph snapshots a graph back into file form. Editor fields (position,
// rotation) are zero; round-tripping a loaded file loses them by design,
// the solver side never tracks them.
func FromGraph(g *circuit.Graph, name string) *File {
	f := &File{Name: name}
	for _, c := range g.Components() {
		spec := Component{ID: c.ID, Type: c.Kind.String(), Burnt: c.State.Burnt}
		switch p := c.Props.(type) {
		case circuit.Battery:
			spec.Voltage = p.Voltage
			spec.InternalResistance = p.InternalResistance
		case circuit.Load:
			spec.Resistance = p.Resistance
			spec.PowerRating = p.PowerRating
		case circuit.Switch:
			spec.Closed = p.Closed
			spec.Resistance = p.Resistance
		case circuit.Diode:
			spec.ForwardVoltage = p.ForwardVoltage
		}
		f.Components = append(f.Components, spec)
	}
	for _, w := range g.Wires() {
		f.Wires = append(f.Wires, Wire{
			StartComponentID: w.A.ComponentID,
			StartTerminal:    w.A.Index,
			EndComponentID:   w.B.ComponentID,
			EndTerminal:      w.B.Index,
		})
	}
	return f
}

// Example returns a small demonstration circuit: a battery driving a lamp
// through a switch, with a diode branch in parallel.
func Example() *File {
	return &File{
		Name: "demo",
		Components: []Component{
			{ID: "bat", Type: "battery", Voltage: 9, InternalResistance: 1.5},
			{ID: "sw", Type: "switch", Closed: true, Resistance: 0.1},
			{ID: "lamp", Type: "light", Resistance: 100, PowerRating: 1},
			{ID: "dio", Type: "diode", ForwardVoltage: 0.7},
			{ID: "fan", Type: "fan", Resistance: 5, PowerRating: 10},
		},
		Wires: []Wire{
			{StartComponentID: "bat", StartTerminal: 1, EndComponentID: "sw", EndTerminal: 0},
			{StartComponentID: "sw", StartTerminal: 1, EndComponentID: "lamp", EndTerminal: 0},
			{StartComponentID: "lamp", StartTerminal: 1, EndComponentID: "bat", EndTerminal: 0},
			{StartComponentID: "sw", StartTerminal: 1, EndComponentID: "dio", EndTerminal: 1},
			{StartComponentID: "dio", StartTerminal: 0, EndComponentID: "fan", EndTerminal: 0},
			{StartComponentID: "fan", StartTerminal: 1, EndComponentID: "bat", EndTerminal: 0},
		},
	}
}
