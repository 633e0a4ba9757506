package sim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/circsim/internal/circuit"
)

func overloadLoop(t *testing.T) (*circuit.Graph, *circuit.Component) {
	t.Helper()
	g := circuit.New(&circuit.CounterSource{})
	bat, err := circuit.NewBattery(g.NewID(), 9, 1.5)
	if err != nil {
		t.Fatalf("battery: %v", err)
	}
	res := circuit.NewResistor(g.NewID(), 100, 0.5)
	for _, c := range []*circuit.Component{bat, res} {
		if err := g.Add(c); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	connect := func(a circuit.Terminal, b circuit.Terminal) {
		if err := g.Connect(a, b); err != nil {
			t.Fatalf("connect: %v", err)
		}
	}
	// Terminal 1 of the resistor faces the positive pole so the recorded
	// current is positive.
	connect(circuit.Terminal{ComponentID: bat.ID, Index: 1}, circuit.Terminal{ComponentID: res.ID, Index: 1})
	connect(circuit.Terminal{ComponentID: res.ID, Index: 0}, circuit.Terminal{ComponentID: bat.ID, Index: 0})
	return g, res
}

type countingMetric struct {
	frames int
}

func (m *countingMetric) Name() string                        { return "frames_seen" }
func (m *countingMetric) Observe(g *circuit.Graph, frame int) { m.frames++ }
func (m *countingMetric) Value() float64                      { return float64(m.frames) }
func (m *countingMetric) Reset()                              { m.frames = 0 }

type frameCollector struct {
	currents []float64
	id       string
}

func (f *frameCollector) OnFrame(g *circuit.Graph, frame int) {
	c, _ := g.Component(f.id)
	f.currents = append(f.currents, c.State.Current)
}

func TestRunnerFrames(t *testing.T) {
	g, res := overloadLoop(t)
	r := New(nil)
	metric := &countingMetric{}
	collector := &frameCollector{id: res.ID}
	r.AddMetric(metric)
	r.AddObserver(collector)

	result, err := r.Run(context.Background(), g, Config{Frames: 5})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.FramesRun != 5 {
		t.Errorf("frames run = %d, want 5", result.FramesRun)
	}
	if result.Metrics["frames_seen"] != 5 {
		t.Errorf("metric = %g, want 5", result.Metrics["frames_seen"])
	}
	if len(collector.currents) != 5 {
		t.Fatalf("observer saw %d frames", len(collector.currents))
	}

	// The overloaded resistor burns on frame 0, so every later frame
	// reads zero current.
	if math.Abs(collector.currents[0]-9.0/101.5) > 1e-6 {
		t.Errorf("frame 0 current = %.6f", collector.currents[0])
	}
	for i, cur := range collector.currents[1:] {
		if cur != 0 {
			t.Errorf("frame %d current = %g after burnout", i+1, cur)
		}
	}
	if len(result.Burnouts) != 1 || result.Burnouts[0] != res.ID {
		t.Errorf("burnouts = %v, want [%s]", result.Burnouts, res.ID)
	}
}

func TestRunnerStopOnBurnout(t *testing.T) {
	g, _ := overloadLoop(t)
	r := New(nil)

	result, err := r.Run(context.Background(), g, Config{Frames: 50, StopOnBurnout: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.FramesRun != 1 {
		t.Errorf("frames run = %d, want 1", result.FramesRun)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	g, _ := overloadLoop(t)
	r := New(nil)
	for _, frames := range []int{0, -3} {
		if _, err := r.Run(context.Background(), g, Config{Frames: frames}); err == nil {
			t.Errorf("frames=%d: expected error", frames)
		}
	}
}

func TestRunnerCancellation(t *testing.T) {
	g, _ := overloadLoop(t)
	r := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, g, Config{Frames: 10})
	if err == nil {
		t.Fatal("expected context error")
	}
	if result.FramesRun != 0 {
		t.Errorf("frames run after immediate cancel = %d", result.FramesRun)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	g, _ := overloadLoop(t)
	r := New(nil)

	frames := 0
	err := r.RunWithCallback(context.Background(), g, Config{Frames: 10}, func(g *circuit.Graph, frame int) bool {
		frames++
		return frames < 3
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if frames != 3 {
		t.Errorf("callback ran %d times, want 3", frames)
	}
}
