package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/engine-cycle/internal/registry"
)

var (
	flagMetricsModel string
	flagMetricsJSON  bool
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print indicated performance",
	Long: `Integrates one cycle at 1° resolution and prints displacement, IMEP,
indicated power and torque, Otto efficiency and mean piston speed.

Examples:
  enginecycle metrics
  enginecycle metrics --model wiebe --json
  enginecycle metrics --preset full --cr 10`,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&flagMetricsModel, "model", "actual", "Pressure model ID")
	metricsCmd.Flags().BoolVar(&flagMetricsJSON, "json", false, "Print JSON")
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	m, err := registry.Create(flagMetricsModel)
	if err != nil {
		return err
	}

	perf := s.engine.PerformanceFor(m)
	out := cmd.OutOrStdout()

	if flagMetricsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(perf)
	}

	cfg := s.engine.Config()
	fmt.Fprintf(out, "Model: %s\n", m.Title())
	fmt.Fprintf(out, "Operating point: %.0f rpm, %.1f/%.0f N·m, CR %.1f\n\n", cfg.RPM, cfg.Load, cfg.MaxLoad, cfg.CompressionRatio)
	rows := []struct {
		label string
		value string
	}{
		{"Displacement", fmt.Sprintf("%.1f cm³", perf.DisplacementCC)},
		{"Compression ratio", fmt.Sprintf("%.2f", perf.CompressionRatio)},
		{"IMEP", fmt.Sprintf("%.3f bar", perf.IMEP)},
		{"Indicated work", fmt.Sprintf("%.2f J", perf.IndicatedWork)},
		{"Indicated power", fmt.Sprintf("%.3f kW", perf.IndicatedPower)},
		{"Indicated torque", fmt.Sprintf("%.2f N·m", perf.IndicatedTorque)},
		{"Thermal efficiency", fmt.Sprintf("%.1f %%", perf.ThermalEfficiency*100)},
		{"Mean piston speed", fmt.Sprintf("%.2f m/s", perf.MeanPistonSpeed)},
		{"Peak pressure", fmt.Sprintf("%.2f bar at %.0f°", perf.PeakPressure, perf.PeakPressureAngle)},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %-20s %s\n", r.label, r.value)
	}
	return nil
}
