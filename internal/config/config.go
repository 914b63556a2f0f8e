// Package config loads the engine's resource-capacity and driver
// settings from YAML, matching the teacher's config-from-file style
// (ambient stack, per SPEC_FULL.md).
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cbegin/resonance/internal/backend"
)

// Driver names the playback binding to construct.
type Driver string

const (
	DriverEbiten    Driver = "ebiten"
	DriverPortAudio Driver = "portaudio"
	DriverNone      Driver = "none" // offline rendering only, no live output
)

// Config is the top-level YAML document shape.
type Config struct {
	SampleRate uint32         `yaml:"sample_rate"`
	Driver     Driver         `yaml:"driver"`
	Resources  ResourceConfig `yaml:"resources"`
}

// ResourceConfig mirrors backend.Settings field for field so it can be
// overridden piecemeal from YAML; zero fields fall back to
// backend.DefaultSettings() values in Load.
type ResourceConfig struct {
	NumSounds     int `yaml:"num_sounds"`
	NumInstances  int `yaml:"num_instances"`
	NumSequences  int `yaml:"num_sequences"`
	NumParameters int `yaml:"num_parameters"`
	NumMetronomes int `yaml:"num_metronomes"`
	NumCommands   int `yaml:"num_commands"`
	NumEvents     int `yaml:"num_events"`
}

// Default returns the config the engine uses when no file is given.
func Default() Config {
	d := backend.DefaultSettings()
	return Config{
		SampleRate: 44100,
		Driver:     DriverEbiten,
		Resources: ResourceConfig{
			NumSounds:     d.NumSounds,
			NumInstances:  d.NumInstances,
			NumSequences:  d.NumSequences,
			NumParameters: d.NumParameters,
			NumMetronomes: d.NumMetronomes,
			NumCommands:   d.NumCommands,
			NumEvents:     d.NumEvents,
		},
	}
}

// Load reads and parses a YAML config file, filling in defaults for any
// field the file leaves at zero.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := backend.DefaultSettings()
	if c.SampleRate == 0 {
		c.SampleRate = 44100
	}
	if c.Driver == "" {
		c.Driver = DriverEbiten
	}
	if c.Resources.NumSounds == 0 {
		c.Resources.NumSounds = d.NumSounds
	}
	if c.Resources.NumInstances == 0 {
		c.Resources.NumInstances = d.NumInstances
	}
	if c.Resources.NumSequences == 0 {
		c.Resources.NumSequences = d.NumSequences
	}
	if c.Resources.NumParameters == 0 {
		c.Resources.NumParameters = d.NumParameters
	}
	if c.Resources.NumMetronomes == 0 {
		c.Resources.NumMetronomes = d.NumMetronomes
	}
	if c.Resources.NumCommands == 0 {
		c.Resources.NumCommands = d.NumCommands
	}
	if c.Resources.NumEvents == 0 {
		c.Resources.NumEvents = d.NumEvents
	}
}

// BackendSettings converts the resolved resource config into
// backend.Settings.
func (c Config) BackendSettings() backend.Settings {
	return backend.Settings{
		NumSounds:     c.Resources.NumSounds,
		NumInstances:  c.Resources.NumInstances,
		NumSequences:  c.Resources.NumSequences,
		NumParameters: c.Resources.NumParameters,
		NumMetronomes: c.Resources.NumMetronomes,
		NumCommands:   c.Resources.NumCommands,
		NumEvents:     c.Resources.NumEvents,
	}
}
