// Package engine models the thermodynamic cycle of a four-stroke,
// single-cylinder spark-ignition engine.
//
// All queries are pure functions of the owned configuration and a crank angle
// in degrees. The package has no I/O and no global state; an Engine must not
// be mutated concurrently with queries against it.
package engine

import (
	"fmt"
	"math"
)

// Config holds engine geometry, operating point, ambient state and
// combustion timing. Zero values are not meaningful; start from Default.
type Config struct {
	Bore             float64 `yaml:"bore_mm" json:"bore_mm"`
	Stroke           float64 `yaml:"stroke_mm" json:"stroke_mm"`
	ConRod           float64 `yaml:"con_rod_mm" json:"con_rod_mm"`
	CompressionRatio float64 `yaml:"compression_ratio" json:"compression_ratio"`

	RPM     float64 `yaml:"rpm" json:"rpm"`
	Load    float64 `yaml:"load_nm" json:"load_nm"`
	MaxLoad float64 `yaml:"max_load_nm" json:"max_load_nm"`

	AmbientPressure    float64 `yaml:"ambient_pressure_bar" json:"ambient_pressure_bar"`
	AmbientTemperature float64 `yaml:"ambient_temperature_k" json:"ambient_temperature_k"` // not used by the pressure models

	Gamma       float64 `yaml:"gamma" json:"gamma"`
	GasConstant float64 `yaml:"gas_constant" json:"gas_constant"` // J/(kg·K), reserved

	IgnitionAdvance    float64 `yaml:"ignition_advance_deg" json:"ignition_advance_deg"`
	CombustionDuration float64 `yaml:"combustion_duration_deg" json:"combustion_duration_deg"`
}

// Default returns the reference single-cylinder configuration.
func Default() Config {
	return Config{
		Bore:               80,
		Stroke:             110,
		ConRod:             220,
		CompressionRatio:   8,
		RPM:                1857,
		Load:               11.1,
		MaxLoad:            20,
		AmbientPressure:    1.013,
		AmbientTemperature: 298,
		Gamma:              1.4,
		GasConstant:        287,
		IgnitionAdvance:    15,
		CombustionDuration: 40,
	}
}

// Validate reports whether the configuration can be turned into geometry.
// Errors wrap ErrInvalidConfiguration or ErrInvalidGeometry.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"bore", c.Bore},
		{"stroke", c.Stroke},
		{"connecting rod", c.ConRod},
		{"rpm", c.RPM},
		{"max load", c.MaxLoad},
		{"ambient pressure", c.AmbientPressure},
		{"ambient temperature", c.AmbientTemperature},
		{"combustion duration", c.CombustionDuration},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfiguration, p.name, p.value)
		}
	}
	if !(c.CompressionRatio > 1) || math.IsInf(c.CompressionRatio, 0) {
		return fmt.Errorf("%w: compression ratio must be greater than 1, got %v", ErrInvalidConfiguration, c.CompressionRatio)
	}
	if !(c.Gamma > 1) || math.IsInf(c.Gamma, 0) {
		return fmt.Errorf("%w: gamma must be greater than 1, got %v", ErrInvalidConfiguration, c.Gamma)
	}
	if !(c.Load >= 0) {
		return fmt.Errorf("%w: load must be non-negative, got %v", ErrInvalidConfiguration, c.Load)
	}
	if math.IsNaN(c.GasConstant) {
		return fmt.Errorf("%w: NaN parameter", ErrInvalidConfiguration)
	}
	if !(c.IgnitionAdvance >= 0 && c.IgnitionAdvance <= MaxIgnitionAdvance) {
		return fmt.Errorf("%w: ignition advance must be within [0, %v]°, got %v",
			ErrInvalidConfiguration, MaxIgnitionAdvance, c.IgnitionAdvance)
	}
	if c.Stroke/2 >= c.ConRod {
		return fmt.Errorf("%w: crank radius %.2f mm must be shorter than connecting rod %.2f mm",
			ErrInvalidGeometry, c.Stroke/2, c.ConRod)
	}
	return nil
}

// Geometry holds quantities derived from Config. Volumes are in cm³.
type Geometry struct {
	CrankRadius    float64 `json:"crank_radius_mm"`
	Lambda         float64 `json:"lambda"` // crank radius / rod length
	PistonArea     float64 `json:"piston_area_mm2"`
	DisplacementCC float64 `json:"displacement_cc"`
	ClearanceCC    float64 `json:"clearance_cc"`
	TotalCC        float64 `json:"total_cc"`
}

func deriveGeometry(c Config) Geometry {
	r := c.Stroke / 2
	area := math.Pi * c.Bore * c.Bore / 4
	disp := area * c.Stroke / 1000
	clearance := disp / (c.CompressionRatio - 1)
	return Geometry{
		CrankRadius:    r,
		Lambda:         r / c.ConRod,
		PistonArea:     area,
		DisplacementCC: disp,
		ClearanceCC:    clearance,
		TotalCC:        clearance + disp,
	}
}

// Update is a partial configuration change. Nil fields are left untouched.
type Update struct {
	Bore               *float64 `json:"bore_mm,omitempty"`
	Stroke             *float64 `json:"stroke_mm,omitempty"`
	ConRod             *float64 `json:"con_rod_mm,omitempty"`
	CompressionRatio   *float64 `json:"compression_ratio,omitempty"`
	RPM                *float64 `json:"rpm,omitempty"`
	Load               *float64 `json:"load_nm,omitempty"`
	MaxLoad            *float64 `json:"max_load_nm,omitempty"`
	AmbientPressure    *float64 `json:"ambient_pressure_bar,omitempty"`
	AmbientTemperature *float64 `json:"ambient_temperature_k,omitempty"`
	IgnitionAdvance    *float64 `json:"ignition_advance_deg,omitempty"`
	CombustionDuration *float64 `json:"combustion_duration_deg,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u == Update{}
}

// Merge returns c with every non-nil field of u applied.
func (u Update) Merge(c Config) Config {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Bore, u.Bore)
	set(&c.Stroke, u.Stroke)
	set(&c.ConRod, u.ConRod)
	set(&c.CompressionRatio, u.CompressionRatio)
	set(&c.RPM, u.RPM)
	set(&c.Load, u.Load)
	set(&c.MaxLoad, u.MaxLoad)
	set(&c.AmbientPressure, u.AmbientPressure)
	set(&c.AmbientTemperature, u.AmbientTemperature)
	set(&c.IgnitionAdvance, u.IgnitionAdvance)
	set(&c.CombustionDuration, u.CombustionDuration)
	return c
}

// Engine owns one configuration and its derived geometry.
type Engine struct {
	cfg Config
	geo Geometry
}

// New validates cfg and returns an engine for it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, geo: deriveGeometry(cfg)}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Geometry returns the derived geometry for the current configuration.
func (e *Engine) Geometry() Geometry {
	return e.geo
}

// Apply merges u into the configuration. The merged configuration is
// validated first; on error the engine is left unchanged.
func (e *Engine) Apply(u Update) error {
	next := u.Merge(e.cfg)
	if err := next.Validate(); err != nil {
		return err
	}
	e.cfg, e.geo = next, deriveGeometry(next)
	return nil
}

// Reset replaces the whole configuration.
func (e *Engine) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg, e.geo = cfg, deriveGeometry(cfg)
	return nil
}

// Clone returns an independently owned copy of the engine.
func (e *Engine) Clone() *Engine {
	c := *e
	return &c
}

// LoadFraction returns load/maxLoad. It is not clamped.
func (e *Engine) LoadFraction() float64 {
	return e.cfg.Load / e.cfg.MaxLoad
}

// Float returns a pointer to v, for building Updates.
func Float(v float64) *float64 {
	return &v
}
