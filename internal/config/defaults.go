package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

//go:embed defaults/engine.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Engine: engine.Default(),
		Display: DisplayConfig{
			FPS:            30,
			Model:          "actual",
			Step:           engine.DefaultStep,
			DegreesPerTick: 4,
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		API: APIConfig{
			Address: ":8087",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
