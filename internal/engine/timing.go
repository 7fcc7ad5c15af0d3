package engine

import (
	"fmt"
	"strings"
)

// Phase identifies one stroke of the four-stroke cycle.
type Phase int

const (
	Suction Phase = iota
	Compression
	Power
	Exhaust
)

// String returns the stroke name.
func (p Phase) String() string {
	switch p {
	case Suction:
		return "Suction"
	case Compression:
		return "Compression"
	case Power:
		return "Power"
	case Exhaust:
		return "Exhaust"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the stroke by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a stroke name, ignoring case.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, c := range []Phase{Suction, Compression, Power, Exhaust} {
		if strings.EqualFold(string(text), c.String()) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("engine: unknown phase %q", text)
}

// Fixed valve and spark windows, in crank degrees.
const (
	IntakeClose  = 180.0 // intake open over [0, IntakeClose)
	IntakeOpen   = 700.0 // and over (IntakeOpen, 720)
	ExhaustOpen  = 540.0 // exhaust open over [ExhaustOpen, 720)
	ExhaustClose = 20.0  // and over [0, ExhaustClose)
	SparkWindow  = 10.0

	// MaxIgnitionAdvance keeps the spark window inside one cycle.
	MaxIgnitionAdvance = 90.0
)

// PhaseAt returns the stroke for a crank angle.
func PhaseAt(theta float64) Phase {
	t := Normalize(theta)
	switch {
	case t < 180:
		return Suction
	case t < 360:
		return Compression
	case t < 540:
		return Power
	default:
		return Exhaust
	}
}

// Phase returns the stroke for a crank angle.
func (e *Engine) Phase(theta float64) Phase {
	return PhaseAt(theta)
}

// ValveState reports which valves are open.
type ValveState struct {
	Intake  bool `json:"intake"`
	Exhaust bool `json:"exhaust"`
}

// ValvesAt returns valve state for a crank angle. Both windows wrap across
// the 720° boundary, giving a short overlap around TDC of suction.
func ValvesAt(theta float64) ValveState {
	t := Normalize(theta)
	return ValveState{
		Intake:  t < IntakeClose || t > IntakeOpen,
		Exhaust: t >= ExhaustOpen || t < ExhaustClose,
	}
}

// Valves returns valve state for a crank angle.
func (e *Engine) Valves(theta float64) ValveState {
	return ValvesAt(theta)
}

// SparkStart returns the crank angle at which the spark starts firing.
func (e *Engine) SparkStart() float64 {
	return 360 - e.cfg.IgnitionAdvance
}

// SparkFiring reports whether the plug fires at theta. The window is
// [360 − advance, 360 − advance + 10].
func (e *Engine) SparkFiring(theta float64) bool {
	t := Normalize(theta)
	start := e.SparkStart()
	return t >= start && t <= start+SparkWindow
}
