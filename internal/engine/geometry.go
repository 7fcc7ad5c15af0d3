package engine

import "math"

// CycleDegrees is the crank angle covered by one four-stroke cycle.
const CycleDegrees = 720.0

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Normalize maps any crank angle onto [0, 720).
func Normalize(theta float64) float64 {
	t := math.Mod(theta, CycleDegrees)
	if t < 0 {
		t += CycleDegrees
	}
	if t >= CycleDegrees {
		t = 0
	}
	return t
}

// PistonPosition returns the piston displacement from TDC in millimeters:
//
//	x = R(1 − cos θ) + L(1 − √(1 − λ² sin² θ))
func (e *Engine) PistonPosition(theta float64) float64 {
	r, l, lambda := e.geo.CrankRadius, e.cfg.ConRod, e.geo.Lambda
	rad := radians(theta)
	s := math.Sin(rad)
	return r*(1-math.Cos(rad)) + l*(1-math.Sqrt(1-lambda*lambda*s*s))
}

// PistonVelocity returns the piston speed in m/s at the configured rpm.
// Positive values move away from TDC.
func (e *Engine) PistonVelocity(theta float64) float64 {
	r, lambda := e.geo.CrankRadius, e.geo.Lambda
	rad := radians(theta)
	s, c := math.Sin(rad), math.Cos(rad)
	dxdTheta := r * s * (1 + lambda*c/math.Sqrt(1-lambda*lambda*s*s)) // mm/rad
	omega := 2 * math.Pi * e.cfg.RPM / 60
	return dxdTheta * omega / 1000
}

// Volume returns the instantaneous cylinder volume in cm³.
func (e *Engine) Volume(theta float64) float64 {
	return e.geo.ClearanceCC + e.geo.PistonArea*e.PistonPosition(theta)/1000
}

// ConRodAngle returns the connecting rod's deviation from the cylinder axis
// in degrees.
func (e *Engine) ConRodAngle(theta float64) float64 {
	return degrees(math.Asin(e.geo.Lambda * math.Sin(radians(theta))))
}
