package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SessionConfig is the optional on-disk session file: everything a
// session needs besides what's passed on the command line. Loading is
// optional — no path given falls back to the defaults below; a path
// that cannot be read or parsed is an error.
type SessionConfig struct {
	SampleRate float64 `yaml:"sample_rate"`
	BPM        float64 `yaml:"bpm"`
	Voices     int     `yaml:"voices"`
	Tracks     int     `yaml:"tracks"`
}

// DefaultSessionConfig is used when no session file is given.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		SampleRate: 48000,
		BPM:        120,
		Voices:     8,
		Tracks:     1,
	}
}

// LoadSessionConfig reads and parses a YAML session file at path. An
// empty path returns the defaults unchanged.
func LoadSessionConfig(path string) (SessionConfig, error) {
	cfg := DefaultSessionConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
