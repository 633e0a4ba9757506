// Package storage archives simulation runs on disk: one directory per run
// holding metadata, the netlist snapshot, and the recorded traces.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/circsim/internal/netlist"
	"github.com/san-kum/circsim/internal/sim"
	"github.com/san-kum/circsim/internal/trace"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Netlist   string             `json:"netlist"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Burnouts  []string           `json:"burnouts,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save archives one run and returns its id.
func (s *Store) Save(name string, circuitFile *netlist.File, result *sim.Result, rec *trace.Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Netlist:   name,
		Timestamp: time.Now(),
		Frames:    result.FramesRun,
		Burnouts:  result.Burnouts,
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if circuitFile != nil {
		if err := netlist.Save(filepath.Join(runDir, "circuit.yaml"), circuitFile); err != nil {
			return "", err
		}
	}

	if rec != nil {
		f, err := os.Create(filepath.Join(runDir, "traces.csv"))
		if err != nil {
			return "", err
		}
		defer f.Close()
		if err := rec.WriteCSV(f); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// Load reads a run's metadata back.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &meta, nil
}

// List returns metadata for all archived runs, in directory order.
func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []*RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // partial or foreign directory
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
