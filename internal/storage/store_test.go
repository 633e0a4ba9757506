package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/circsim/internal/circuit"
	"github.com/san-kum/circsim/internal/netlist"
	"github.com/san-kum/circsim/internal/sim"
	"github.com/san-kum/circsim/internal/trace"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	file := netlist.Example()
	g, err := netlist.Build(file, &circuit.CounterSource{})
	require.NoError(t, err)

	rec := trace.NewRecorder()
	runner := sim.New(nil)
	runner.AddObserver(rec)
	result, err := runner.Run(context.Background(), g, sim.Config{Frames: 3})
	require.NoError(t, err)

	runID, err := st.Save("demo", file, result, rec)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "demo", meta.Netlist)
	assert.Equal(t, 3, meta.Frames)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}

func TestStoreSavesArtifacts(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	file := netlist.Example()
	g, err := netlist.Build(file, &circuit.CounterSource{})
	require.NoError(t, err)

	rec := trace.NewRecorder()
	runner := sim.New(nil)
	runner.AddObserver(rec)
	result, err := runner.Run(context.Background(), g, sim.Config{Frames: 2})
	require.NoError(t, err)

	runID, err := st.Save("demo", file, result, rec)
	require.NoError(t, err)

	for _, name := range []string{"metadata.json", "circuit.yaml", "traces.csv"} {
		_, err := os.Stat(filepath.Join(dir, runID, name))
		assert.NoError(t, err, name)
	}
}

func TestListEmpty(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
