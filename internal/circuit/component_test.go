package circuit

import (
	"errors"
	"testing"
)

func TestNewBatteryPolarity(t *testing.T) {
	if _, err := NewBattery("b1", 9, 1.5); err != nil {
		t.Fatalf("valid battery rejected: %v", err)
	}
	if _, err := NewBattery("b2", -9, 1.5); !errors.Is(err, ErrReversedPolarity) {
		t.Errorf("negative voltage error = %v, want ErrReversedPolarity", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"battery", KindBattery},
		{"resistor", KindResistor},
		{"light", KindLight},
		{"switch", KindSwitch},
		{"fan", KindFan},
		{"diode", KindDiode},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		if err != nil {
			t.Errorf("ParseKind(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
		if got.String() != tt.name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.name)
		}
	}

	if _, err := ParseKind("capacitor"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind error = %v, want ErrUnknownKind", err)
	}
}

func TestConstructorsCarryProps(t *testing.T) {
	fan := NewFan("f1", 40, 2)
	if fan.Kind != KindFan {
		t.Errorf("fan kind = %v", fan.Kind)
	}
	if p, ok := fan.Props.(Load); !ok || p.Resistance != 40 || p.PowerRating != 2 {
		t.Errorf("fan props = %+v", fan.Props)
	}

	sw := NewSwitch("s1", true, 0.5)
	if p, ok := sw.Props.(Switch); !ok || !p.Closed || p.Resistance != 0.5 {
		t.Errorf("switch props = %+v", sw.Props)
	}

	dio := NewDiode("d1", 0.7)
	if p, ok := dio.Props.(Diode); !ok || p.ForwardVoltage != 0.7 {
		t.Errorf("diode props = %+v", dio.Props)
	}
	if dio.State.Nodes != [2]int{GroundNode, GroundNode} {
		t.Errorf("initial nodes = %v", dio.State.Nodes)
	}
}
