// Package trace records per-component electrical state across frames and
// renders the series as terminal plots, CSV, or JSON.
package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/circsim/internal/circuit"
)

// Field selects which state series to read.
type Field string

const (
	FieldCurrent Field = "current"
	FieldVoltage Field = "voltage"
	FieldPower   Field = "power"
)

// Series holds one component's recorded state, one sample per frame.
type Series struct {
	Current []float64 `json:"current"`
	Voltage []float64 `json:"voltage"`
	Power   []float64 `json:"power"`
	Burnt   []bool    `json:"burnt"`
}

func (s *Series) field(f Field) []float64 {
	switch f {
	case FieldVoltage:
		return s.Voltage
	case FieldPower:
		return s.Power
	default:
		return s.Current
	}
}

// Recorder is a sim.Observer that samples component state every frame.
// With no ids given it records every component present at the first frame.
type Recorder struct {
	ids    []string
	all    bool
	series map[string]*Series
	frames int
}

func NewRecorder(ids ...string) *Recorder {
	return &Recorder{
		ids:    ids,
		all:    len(ids) == 0,
		series: make(map[string]*Series),
	}
}

func (r *Recorder) OnFrame(g *circuit.Graph, frame int) {
	if r.all && r.frames == 0 {
		for _, c := range g.Components() {
			r.ids = append(r.ids, c.ID)
		}
	}
	for _, id := range r.ids {
		c, ok := g.Component(id)
		if !ok {
			continue
		}
		s := r.series[id]
		if s == nil {
			s = &Series{}
			r.series[id] = s
		}
		s.Current = append(s.Current, c.State.Current)
		s.Voltage = append(s.Voltage, c.State.VoltageDrop)
		s.Power = append(s.Power, c.State.Power)
		s.Burnt = append(s.Burnt, c.State.Burnt)
	}
	r.frames++
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int { return r.frames }

// IDs returns the recorded component ids in recording order.
func (r *Recorder) IDs() []string { return r.ids }

// Series returns the recorded series for a component id.
func (r *Recorder) Series(id string) (*Series, bool) {
	s, ok := r.series[id]
	return s, ok
}

// Plot renders one component's series as an ASCII graph.
func (r *Recorder) Plot(id string, field Field, height int) (string, error) {
	s, ok := r.series[id]
	if !ok {
		return "", fmt.Errorf("trace: no series recorded for %q", id)
	}
	data := s.field(field)
	if len(data) < 2 {
		return "", fmt.Errorf("trace: series for %q too short to plot", id)
	}
	caption := fmt.Sprintf("%s %s over %d frames", id, field, len(data))
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	), nil
}

// WriteCSV writes all recorded series in long form:
// frame,component,current,voltage,power,burnt.
func (r *Recorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frame", "component", "current", "voltage", "power", "burnt"}); err != nil {
		return err
	}
	for frame := 0; frame < r.frames; frame++ {
		for _, id := range r.ids {
			s := r.series[id]
			if s == nil || frame >= len(s.Current) {
				continue
			}
			record := []string{
				strconv.Itoa(frame),
				id,
				strconv.FormatFloat(s.Current[frame], 'g', -1, 64),
				strconv.FormatFloat(s.Voltage[frame], 'g', -1, 64),
				strconv.FormatFloat(s.Power[frame], 'g', -1, 64),
				strconv.FormatBool(s.Burnt[frame]),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportData is the JSON shape written by WriteJSON.
type ExportData struct {
	Frames int                `json:"frames"`
	Series map[string]*Series `json:"series"`
}

// WriteJSON writes all recorded series keyed by component id.
func (r *Recorder) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Frames: r.frames, Series: r.series})
}
