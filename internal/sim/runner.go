// Package sim drives the solver over a sequence of frames, the cadence the
// surrounding application would otherwise own, and fans solved state out to
// metrics and observers between solves.
package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/circsim/internal/circuit"
	"github.com/san-kum/circsim/internal/solver"
)

type Runner struct {
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{log: log}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run solves the graph cfg.Frames times. Each solve runs to completion;
// cancellation is only honored between frames, so observers never see a
// partially updated graph.
func (r *Runner) Run(ctx context.Context, g *circuit.Graph, cfg Config) (*Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("sim: frames must be positive, got %d", cfg.Frames)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	burnt := make(map[string]bool)
	for _, c := range g.Components() {
		burnt[c.ID] = c.State.Burnt
	}

	result := &Result{Metrics: make(map[string]float64)}
	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		solver.Solve(g)
		result.FramesRun++

		for _, m := range r.metrics {
			m.Observe(g, frame)
		}
		for _, obs := range r.observers {
			obs.OnFrame(g, frame)
		}

		newBurnout := false
		for _, c := range g.Components() {
			if c.State.Burnt && !burnt[c.ID] {
				burnt[c.ID] = true
				newBurnout = true
				result.Burnouts = append(result.Burnouts, c.ID)
				r.log.Warn("component burnt out",
					"id", c.ID,
					"kind", c.Kind.String(),
					"power", c.State.Power,
					"frame", frame)
			}
		}
		if newBurnout && cfg.StopOnBurnout {
			break
		}
	}

	r.finish(result)
	return result, nil
}

// RunWithCallback solves frame by frame until the callback returns false or
// the context is canceled. Used by the live view.
func (r *Runner) RunWithCallback(ctx context.Context, g *circuit.Graph, cfg Config, callback func(g *circuit.Graph, frame int) bool) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("sim: frames must be positive, got %d", cfg.Frames)
	}
	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		solver.Solve(g)
		if !callback(g, frame) {
			return nil
		}
	}
	return nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
