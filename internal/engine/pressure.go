package engine

import (
	"fmt"
	"math"
	"strings"
)

// PressureModel computes in-cylinder pressure in bar for a crank angle.
type PressureModel interface {
	// ID is the short identifier used on the command line and in the API.
	ID() string
	// Title is a human-readable name for charts and reports.
	Title() string
	// Pressure returns absolute pressure in bar.
	Pressure(e *Engine, theta float64) float64
}

// Model selects one of the built-in pressure models.
type Model int

const (
	// Theoretical is the idealized Otto cycle.
	Theoretical Model = iota
	// ActualSixPhase is the empirical six-phase indicator diagram.
	ActualSixPhase
	// ActualWiebe replaces the combustion blend with a Wiebe burn profile.
	ActualWiebe
)

// Models lists the built-in pressure models.
var Models = []Model{Theoretical, ActualSixPhase, ActualWiebe}

// ID implements PressureModel.
func (m Model) ID() string {
	switch m {
	case Theoretical:
		return "theoretical"
	case ActualSixPhase:
		return "actual"
	case ActualWiebe:
		return "wiebe"
	default:
		return "unknown"
	}
}

// Title implements PressureModel.
func (m Model) Title() string {
	switch m {
	case Theoretical:
		return "Theoretical Otto cycle"
	case ActualSixPhase:
		return "Actual (six-phase)"
	case ActualWiebe:
		return "Actual (Wiebe combustion)"
	default:
		return "Unknown"
	}
}

// String returns the model ID.
func (m Model) String() string {
	return m.ID()
}

// Pressure implements PressureModel.
func (m Model) Pressure(e *Engine, theta float64) float64 {
	switch m {
	case Theoretical:
		return e.theoreticalPressure(theta)
	case ActualWiebe:
		return e.wiebePressure(theta)
	default:
		return e.sixPhasePressure(theta)
	}
}

// ParseModel resolves a model ID. "sixphase" is accepted as an alias of "actual".
func ParseModel(id string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "theoretical", "ideal", "otto":
		return Theoretical, nil
	case "actual", "sixphase", "six-phase", "":
		return ActualSixPhase, nil
	case "wiebe":
		return ActualWiebe, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, id)
}

// Pressure returns the pressure in bar at theta under model m.
func (e *Engine) Pressure(m PressureModel, theta float64) float64 {
	return m.Pressure(e, theta)
}

// Empirical calibration of the actual-pressure models. These shape the
// indicator diagram and must not be altered.
const (
	minPressure = 0.1 // bar

	vacuumBase   = 0.10
	vacuumPerRPM = 0.25
	referenceRPM = 4000.0

	compressionStartRatio = 0.95
	compressionIndex      = 1.32
	expansionIndex        = 1.28

	peakBase          = 2.0
	peakPerLoad       = 1.8
	peakRPMBase       = 0.85
	peakRPMWeight     = 0.15
	optimumRPM        = 2000.0
	rpmPenalty        = 0.15
	combustionStart   = 360.0
	peakAngle         = 372.0
	combustionEnd     = 400.0
	blendStart        = 500.0
	blendWeight       = 0.3
	evoPressureRatio  = 1.5
	blowdownStart     = 540.0
	blowdownEnd       = 600.0
	blowdownExponent  = 2.5
	preBlowdownRatio  = 2.0
	backPressureRatio = 1.15
	backPressureBase  = 0.08
	backPressurePer   = 0.20

	wiebeEfficiency = 5.0
	wiebeShape      = 2.0
)

// LoadFactor is the theoretical model's heat-addition multiplier.
func (e *Engine) LoadFactor() float64 {
	return 1.5 + 2.0*e.LoadFraction()
}

// RPMEfficiency penalizes operation away from the 2000 rpm optimum.
func (e *Engine) RPMEfficiency() float64 {
	return 1 - rpmPenalty*math.Abs(e.cfg.RPM/optimumRPM-1)
}

// PeakPressureMultiplier scales end-of-compression pressure to the
// combustion peak in the actual-pressure models.
func (e *Engine) PeakPressureMultiplier() float64 {
	return (peakBase + peakPerLoad*e.LoadFraction()) * (peakRPMBase + peakRPMWeight*e.RPMEfficiency())
}

func (e *Engine) theoreticalPressure(theta float64) float64 {
	t := Normalize(theta)
	pa, g := e.cfg.AmbientPressure, e.cfg.Gamma
	switch {
	case t < 180:
		return pa
	case t < 360:
		return pa * math.Pow(e.geo.TotalCC/e.Volume(t), g)
	case t < 540:
		peak := pa * math.Pow(e.cfg.CompressionRatio, g) * e.LoadFactor()
		return peak * math.Pow(e.geo.ClearanceCC/e.Volume(t), g)
	default:
		return pa
	}
}

func smoothstep(p float64) float64 {
	return p * p * (3 - 2*p)
}

func floor(p float64) float64 {
	return math.Max(p, minPressure)
}

func (e *Engine) suctionPressure(t float64) float64 {
	depth := vacuumBase + vacuumPerRPM*(e.cfg.RPM/referenceRPM)
	return e.cfg.AmbientPressure * (1 - depth*math.Sin(math.Pi*t/180))
}

func (e *Engine) compressionStartPressure() float64 {
	return compressionStartRatio * e.cfg.AmbientPressure
}

// compressionEndPressure is the polytropic state at TDC; V(180)/V(360) is
// exactly the compression ratio.
func (e *Engine) compressionEndPressure() float64 {
	return e.compressionStartPressure() * math.Pow(e.cfg.CompressionRatio, compressionIndex)
}

func (e *Engine) polytropicCompression(t float64) float64 {
	return e.compressionStartPressure() * math.Pow(e.geo.TotalCC/e.Volume(t), compressionIndex)
}

func (e *Engine) peakPressure() float64 {
	return e.compressionEndPressure() * e.PeakPressureMultiplier()
}

// expansionOrigin is the θ=400 state shared by the combustion fall and the
// expansion stroke, so the two meet exactly.
func (e *Engine) expansionOrigin() float64 {
	return e.peakPressure() * math.Pow(e.Volume(peakAngle)/e.Volume(combustionEnd), expansionIndex)
}

// blendToEVO pulls late-expansion pressure toward the exhaust-valve-opening
// level. The fixed weight makes the curve step down just past θ=500.
func (e *Engine) blendToEVO(t, p float64) float64 {
	if t <= blendStart {
		return p
	}
	return p*(1-blendWeight) + evoPressureRatio*e.cfg.AmbientPressure*blendWeight
}

func (e *Engine) exhaustPressure(t float64) float64 {
	pa := e.cfg.AmbientPressure
	if t < blowdownEnd {
		p := (t - blowdownStart) / (blowdownEnd - blowdownStart)
		ease := 1 - math.Pow(1-p, blowdownExponent)
		from, to := preBlowdownRatio*pa, backPressureRatio*pa
		return from + (to-from)*ease
	}
	height := backPressureBase + backPressurePer*(e.cfg.RPM/referenceRPM)
	return pa * (1 + height*math.Sin(math.Pi*(t-blowdownStart)/180))
}

func (e *Engine) sixPhasePressure(theta float64) float64 {
	t := Normalize(theta)
	switch {
	case t < 180:
		return floor(e.suctionPressure(t))
	case t < combustionStart:
		return floor(e.polytropicCompression(t))
	case t <= peakAngle:
		p := (t - combustionStart) / (peakAngle - combustionStart)
		from, to := e.compressionEndPressure(), e.peakPressure()
		return floor(from + (to-from)*smoothstep(p))
	case t < combustionEnd:
		p := (t - peakAngle) / (combustionEnd - peakAngle)
		from, to := e.peakPressure(), e.expansionOrigin()
		return floor(from + (to-from)*smoothstep(p))
	case t < blowdownStart:
		p := e.expansionOrigin() * math.Pow(e.Volume(combustionEnd)/e.Volume(t), expansionIndex)
		return floor(e.blendToEVO(t, p))
	default:
		return floor(e.exhaustPressure(t))
	}
}

// BurnFraction returns the Wiebe mass fraction burned at theta, in [0, 1].
func (e *Engine) BurnFraction(theta float64) float64 {
	t := Normalize(theta)
	p := (t - e.SparkStart()) / e.cfg.CombustionDuration
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		p = 1
	}
	return 1 - math.Exp(-wiebeEfficiency*math.Pow(p, wiebeShape+1))
}

func (e *Engine) wiebePressure(theta float64) float64 {
	t := Normalize(theta)
	switch {
	case t < 180:
		return floor(e.suctionPressure(t))
	case t < blowdownStart:
		var motored float64
		if t < combustionStart {
			motored = e.polytropicCompression(t)
		} else {
			motored = e.compressionEndPressure() * math.Pow(e.geo.ClearanceCC/e.Volume(t), compressionIndex)
		}
		p := motored * (1 + (e.PeakPressureMultiplier()-1)*e.BurnFraction(t))
		return floor(e.blendToEVO(t, p))
	default:
		return floor(e.exhaustPressure(t))
	}
}
