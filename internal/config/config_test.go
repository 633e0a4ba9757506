package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Frames = 250
	cfg.Trace = []string{"lamp", "bat"}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "netlist: x.yaml\nframes: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	// Unset fields fall back to defaults from DefaultConfig.
	assert.Equal(t, DefaultDataDir, got.DataDir)
	assert.Equal(t, DefaultFrameRate, got.FrameRate)
	assert.Equal(t, 10, got.Frames)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"zero frames", func(c *Config) { c.Frames = 0 }, true},
		{"negative frame rate", func(c *Config) { c.FrameRate = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
