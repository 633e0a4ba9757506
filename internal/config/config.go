package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames    = 100
	DefaultFrameRate = 30
	DefaultDataDir   = ".circsim"
)

// Config carries run parameters shared by the CLI commands.
type Config struct {
	Netlist       string   `yaml:"netlist"`
	Frames        int      `yaml:"frames"`
	FrameRate     int      `yaml:"frame_rate"`
	DataDir       string   `yaml:"data_dir"`
	StopOnBurnout bool     `yaml:"stop_on_burnout"`
	Trace         []string `yaml:"trace,omitempty"` // component ids, empty = all
}

func DefaultConfig() *Config {
	return &Config{
		Netlist:   "circuit.yaml",
		Frames:    DefaultFrames,
		FrameRate: DefaultFrameRate,
		DataDir:   DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("config: frames must be positive, got %d", c.Frames)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.FrameRate)
	}
	return nil
}
