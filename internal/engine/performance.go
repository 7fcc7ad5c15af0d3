package engine

import "math"

// Metrics summarizes indicated performance for one cycle.
type Metrics struct {
	DisplacementCC    float64 `json:"displacement_cc"`
	CompressionRatio  float64 `json:"compression_ratio"`
	IMEP              float64 `json:"imep_bar"`
	IndicatedPower    float64 `json:"indicated_power_kw"`
	ThermalEfficiency float64 `json:"thermal_efficiency"` // fraction, not percent
	MeanPistonSpeed   float64 `json:"mean_piston_speed_ms"`

	IndicatedWork     float64 `json:"indicated_work_j"` // signed loop area
	IndicatedTorque   float64 `json:"indicated_torque_nm"`
	PeakPressure      float64 `json:"peak_pressure_bar"`
	PeakPressureAngle float64 `json:"peak_pressure_deg"`
}

// metricsStep is the resolution used to integrate indicated work.
const metricsStep = 1.0

// IndicatedWork integrates P dV over points with the trapezoidal rule.
// Volumes are converted to m³ and pressures to Pa, so the result is in J.
func IndicatedWork(points []CyclePoint) float64 {
	var work float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dv := (b.Volume - a.Volume) * 1e-6
		work += 0.5 * (a.Pressure + b.Pressure) * 1e5 * dv
	}
	return work
}

// OttoEfficiency returns the ideal Otto-cycle thermal efficiency 1 − r^(1−γ).
func OttoEfficiency(compressionRatio, gamma float64) float64 {
	return 1 - math.Pow(compressionRatio, 1-gamma)
}

// Performance samples the six-phase actual-pressure model at 1° and derives
// the indicated metrics.
func (e *Engine) Performance() Metrics {
	return e.PerformanceFor(ActualSixPhase)
}

// PerformanceFor is Performance with an explicit pressure model.
func (e *Engine) PerformanceFor(m PressureModel) Metrics {
	points, _ := e.SampleCycle(m, metricsStep) // constant step cannot fail

	work := IndicatedWork(points)
	absWork := math.Abs(work)
	dispM3 := e.geo.DisplacementCC * 1e-6

	var peak CyclePoint
	for _, p := range points {
		if p.Pressure > peak.Pressure {
			peak = p
		}
	}

	return Metrics{
		DisplacementCC:    e.geo.DisplacementCC,
		CompressionRatio:  e.cfg.CompressionRatio,
		IMEP:              absWork / dispM3 / 1e5,
		IndicatedPower:    absWork * (e.cfg.RPM / 120) / 1000,
		ThermalEfficiency: OttoEfficiency(e.cfg.CompressionRatio, e.cfg.Gamma),
		MeanPistonSpeed:   2 * (e.cfg.Stroke / 1000) * e.cfg.RPM / 60,
		IndicatedWork:     work,
		IndicatedTorque:   absWork / (4 * math.Pi),
		PeakPressure:      peak.Pressure,
		PeakPressureAngle: peak.Theta,
	}
}
