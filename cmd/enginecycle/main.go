// enginecycle models the thermodynamic cycle of a four-stroke,
// single-cylinder spark-ignition engine.
//
// Usage:
//
//	enginecycle models           - List pressure models
//	enginecycle metrics          - Print indicated performance
//	enginecycle sample           - Sample one cycle as CSV, JSON or a table
//	enginecycle view             - Animated mechanism and charts in the terminal
//	enginecycle serve            - Serve the viewer over SSH
//	enginecycle api              - Serve the model over HTTP with Prometheus metrics
//	enginecycle config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search order)
//	--preset <name>     - Operating point: idle, cruise, full
//	--log-level <lvl>   - debug, info, warn, error
//	--rpm, --load, ...  - Override single engine parameters
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/engine-cycle/internal/config"
	"github.com/vovakirdan/engine-cycle/internal/engine"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "enginecycle",
	Short: "Four-stroke SI engine cycle model",
	Long: `enginecycle computes cylinder volume, pressure, valve and spark timing
and indicated performance of a single-cylinder four-stroke engine over
its 720° cycle.

Available commands:
  models   - List pressure models
  metrics  - Print indicated performance
  sample   - Sample one cycle
  view     - Interactive terminal view
  serve    - SSH server for the interactive view
  api      - HTTP query server
  config   - Print the effective configuration

Examples:
  enginecycle metrics --preset full
  enginecycle sample --model theoretical --step 1 --output cycle.csv
  enginecycle view --rpm 3000 --load 15
  enginecycle api --addr :8087`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	pf.StringVar(&flagPreset, "preset", "", "Operating preset: idle, cruise, full")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	registerEngineFlags(rootCmd)

	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(configCmd)
}

// settings is the resolved configuration of one command invocation.
type settings struct {
	config config.Config
	source string
	engine *engine.Engine
}

// loadSettings resolves the configuration file, the preset and the engine
// flags, in that order, and builds the engine.
func loadSettings(cmd *cobra.Command) (settings, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}

	if flagPreset != "" {
		p := config.ParsePreset(flagPreset)
		if p == "" {
			return settings{}, fmt.Errorf("unknown preset %q (expected idle, cruise or full)", flagPreset)
		}
		config.ApplyPreset(&cfg, p)
	}

	cfg.Engine = flagUpdate(cmd).Merge(cfg.Engine)
	e, err := engine.New(cfg.Engine)
	if err != nil {
		return settings{}, err
	}
	return settings{config: cfg, source: source, engine: e}, nil
}

// newLogger builds a logger honoring --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
