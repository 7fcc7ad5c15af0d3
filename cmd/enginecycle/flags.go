package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// engineFlag binds a command-line flag to one field of engine.Update.
type engineFlag struct {
	name  string
	usage string
	def   func(engine.Config) float64
	set   func(*engine.Update, float64)
}

var engineFlags = []engineFlag{
	{"bore", "Cylinder bore (mm)",
		func(c engine.Config) float64 { return c.Bore },
		func(u *engine.Update, v float64) { u.Bore = engine.Float(v) }},
	{"stroke", "Piston stroke (mm)",
		func(c engine.Config) float64 { return c.Stroke },
		func(u *engine.Update, v float64) { u.Stroke = engine.Float(v) }},
	{"rod", "Connecting rod length (mm)",
		func(c engine.Config) float64 { return c.ConRod },
		func(u *engine.Update, v float64) { u.ConRod = engine.Float(v) }},
	{"cr", "Compression ratio",
		func(c engine.Config) float64 { return c.CompressionRatio },
		func(u *engine.Update, v float64) { u.CompressionRatio = engine.Float(v) }},
	{"rpm", "Crankshaft speed (rev/min)",
		func(c engine.Config) float64 { return c.RPM },
		func(u *engine.Update, v float64) { u.RPM = engine.Float(v) }},
	{"load", "Load torque (N·m)",
		func(c engine.Config) float64 { return c.Load },
		func(u *engine.Update, v float64) { u.Load = engine.Float(v) }},
	{"max-load", "Maximum load torque (N·m)",
		func(c engine.Config) float64 { return c.MaxLoad },
		func(u *engine.Update, v float64) { u.MaxLoad = engine.Float(v) }},
	{"ambient-pressure", "Ambient pressure (bar)",
		func(c engine.Config) float64 { return c.AmbientPressure },
		func(u *engine.Update, v float64) { u.AmbientPressure = engine.Float(v) }},
	{"ambient-temp", "Ambient temperature (K)",
		func(c engine.Config) float64 { return c.AmbientTemperature },
		func(u *engine.Update, v float64) { u.AmbientTemperature = engine.Float(v) }},
	{"advance", "Ignition advance before TDC (deg)",
		func(c engine.Config) float64 { return c.IgnitionAdvance },
		func(u *engine.Update, v float64) { u.IgnitionAdvance = engine.Float(v) }},
	{"burn-duration", "Wiebe combustion duration (deg)",
		func(c engine.Config) float64 { return c.CombustionDuration },
		func(u *engine.Update, v float64) { u.CombustionDuration = engine.Float(v) }},
}

// registerEngineFlags adds one persistent flag per engine parameter.
// Defaults are shown for reference only; unset flags never override the
// configuration file.
func registerEngineFlags(cmd *cobra.Command) {
	def := engine.Default()
	for _, f := range engineFlags {
		cmd.PersistentFlags().Float64(f.name, f.def(def), f.usage)
	}
}

// flagUpdate collects the engine flags the user set explicitly.
func flagUpdate(cmd *cobra.Command) engine.Update {
	var u engine.Update
	fs := cmd.Flags()
	for _, f := range engineFlags {
		if !fs.Changed(f.name) {
			continue
		}
		if v, err := fs.GetFloat64(f.name); err == nil {
			f.set(&u, v)
		}
	}
	return u
}
