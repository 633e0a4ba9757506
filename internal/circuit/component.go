package circuit

import "fmt"

// Kind tags the component variant. Each kind has a fixed property struct;
// the solver dispatches on the tag when stamping and updating.
type Kind int

const (
	KindBattery Kind = iota
	KindResistor
	KindLight
	KindSwitch
	KindFan
	KindDiode
)

var kindNames = map[Kind]string{
	KindBattery:  "battery",
	KindResistor: "resistor",
	KindLight:    "light",
	KindSwitch:   "switch",
	KindFan:      "fan",
	KindDiode:    "diode",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a type name from a netlist file to its tag.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Props is the per-kind property record. Concrete types are fixed structs;
// consumers type-switch on them.
type Props interface{ isProps() }

// Battery is an ideal voltage source in series with an internal resistance.
// Terminal 0 is the negative pole, terminal 1 the positive pole.
type Battery struct {
	Voltage            float64
	InternalResistance float64
}

// Load covers the three plain resistive kinds (resistor, light, fan):
// a resistance plus the power rating the overload check compares against.
type Load struct {
	Resistance  float64
	PowerRating float64
}

// Switch is an ideal switch approximated by a stiff linear resistor:
// Resistance when closed, a very large constant when open.
type Switch struct {
	Closed     bool
	Resistance float64
}

// Diode conducts once the voltage drop across it exceeds ForwardVoltage.
type Diode struct {
	ForwardVoltage float64
}

func (Battery) isProps() {}
func (Load) isProps()    {}
func (Switch) isProps()  {}
func (Diode) isProps()   {}

// GroundNode is the node index reported for terminals on the ground node,
// which has no matrix row.
const GroundNode = -1

// State is the mutable electrical state written by the solver after every
// solve. Current is signed; for a battery positive current flows from
// terminal 0 to terminal 1 inside the source, for passive kinds positive
// current corresponds to a positive VoltageDrop (terminal 1 above terminal 0).
type State struct {
	Current     float64
	VoltageDrop float64
	Power       float64
	Burnt       bool
	// Nodes holds the two solved node indices from the last solve,
	// GroundNode for the ground node. Diagnostic only.
	Nodes [2]int
}

// Component is a two-terminal element of the graph. Terminal indices are
// local and fixed: 0 and 1.
type Component struct {
	ID    string
	Kind  Kind
	Props Props
	State State
}

func newComponent(id string, kind Kind, props Props) *Component {
	return &Component{
		ID:    id,
		Kind:  kind,
		Props: props,
		State: State{Nodes: [2]int{GroundNode, GroundNode}},
	}
}

// NewBattery validates the polarity convention: the source voltage must be
// non-negative, with terminal 0 as the negative pole.
func NewBattery(id string, voltage, internalResistance float64) (*Component, error) {
	if voltage < 0 {
		return nil, fmt.Errorf("%w: %g V", ErrReversedPolarity, voltage)
	}
	return newComponent(id, KindBattery, Battery{
		Voltage:            voltage,
		InternalResistance: internalResistance,
	}), nil
}

func NewResistor(id string, resistance, powerRating float64) *Component {
	return newComponent(id, KindResistor, Load{Resistance: resistance, PowerRating: powerRating})
}

func NewLight(id string, resistance, powerRating float64) *Component {
	return newComponent(id, KindLight, Load{Resistance: resistance, PowerRating: powerRating})
}

func NewFan(id string, resistance, powerRating float64) *Component {
	return newComponent(id, KindFan, Load{Resistance: resistance, PowerRating: powerRating})
}

func NewSwitch(id string, closed bool, resistance float64) *Component {
	return newComponent(id, KindSwitch, Switch{Closed: closed, Resistance: resistance})
}

func NewDiode(id string, forwardVoltage float64) *Component {
	return newComponent(id, KindDiode, Diode{ForwardVoltage: forwardVoltage})
}
