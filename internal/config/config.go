// Package config provides YAML-based configuration loading and operating
// presets for the engine-cycle tools.
package config

import (
	"time"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// Config is the top-level configuration file.
type Config struct {
	Engine  engine.Config `yaml:"engine"`
	Display DisplayConfig `yaml:"display"`
	SSH     SSHConfig     `yaml:"ssh"`
	API     APIConfig     `yaml:"api"`
}

// DisplayConfig controls the interactive view.
type DisplayConfig struct {
	FPS            int     `yaml:"fps"`
	Model          string  `yaml:"model"`            // pressure model ID
	Step           float64 `yaml:"step_deg"`         // chart sampling resolution
	DegreesPerTick float64 `yaml:"degrees_per_tick"` // animation speed
}

// SSHConfig controls the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // auto-generated if empty
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// APIConfig controls the HTTP query server.
type APIConfig struct {
	Address string `yaml:"address"`
}

// Preset names an operating point.
type Preset string

const (
	PresetIdle   Preset = "idle"
	PresetCruise Preset = "cruise"
	PresetFull   Preset = "full"
)

// ParsePreset returns the preset for a name, or "" if unknown.
func ParsePreset(name string) Preset {
	switch Preset(name) {
	case PresetIdle, PresetCruise, PresetFull:
		return Preset(name)
	default:
		return ""
	}
}

// PresetUpdate returns the operating-point change for a preset. Load is
// expressed relative to the configured maximum so presets scale with the
// engine.
func PresetUpdate(p Preset, maxLoad float64) engine.Update {
	switch p {
	case PresetIdle:
		return engine.Update{RPM: engine.Float(800), Load: engine.Float(0.1 * maxLoad)}
	case PresetCruise:
		return engine.Update{RPM: engine.Float(2000), Load: engine.Float(0.5 * maxLoad)}
	case PresetFull:
		return engine.Update{RPM: engine.Float(3600), Load: engine.Float(maxLoad)}
	default:
		return engine.Update{}
	}
}

// ApplyPreset modifies the engine section of cfg for a preset.
func ApplyPreset(cfg *Config, p Preset) {
	cfg.Engine = PresetUpdate(p, cfg.Engine.MaxLoad).Merge(cfg.Engine)
}
