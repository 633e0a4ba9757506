package sim

import "github.com/san-kum/circsim/internal/circuit"

// Metric accumulates a scalar over the run; observed after every solve.
type Metric interface {
	Name() string
	Observe(g *circuit.Graph, frame int)
	Value() float64
	Reset()
}

// Observer is notified after every solved frame.
type Observer interface {
	OnFrame(g *circuit.Graph, frame int)
}

// Config controls one run.
type Config struct {
	// Frames is the number of solve steps to execute.
	Frames int
	// StopOnBurnout ends the run early once any component burns.
	StopOnBurnout bool
}

func DefaultConfig() Config {
	return Config{Frames: 100}
}

// Result summarizes a completed run.
type Result struct {
	FramesRun int
	Burnouts  []string // ids of components burnt during the run
	Metrics   map[string]float64
}
