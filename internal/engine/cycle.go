package engine

import (
	"fmt"
	"iter"
	"math"
)

const (
	// DefaultStep is the default sampling resolution in crank degrees.
	DefaultStep = 2.0
	// MinStep bounds a cycle to 72001 samples.
	MinStep = 0.01
)

// CyclePoint is one sample of the cycle.
type CyclePoint struct {
	Theta    float64 `json:"theta"`     // crank angle, degrees
	Volume   float64 `json:"volume_cc"` // cm³
	Pressure float64 `json:"pressure_bar"`
	Phase    Phase   `json:"phase"`
}

func checkStep(step float64) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}
	if step < MinStep {
		return fmt.Errorf("%w: %v is below the %v° minimum", ErrInvalidStep, step, MinStep)
	}
	return nil
}

// sampleCount returns how many samples cover [0, 720] inclusive at step.
// A small tolerance keeps 720 itself when step divides it in floating point.
func sampleCount(step float64) int {
	return int(math.Floor(CycleDegrees/step+1e-9)) + 1
}

// Point samples a single crank angle.
func (e *Engine) Point(m PressureModel, theta float64) CyclePoint {
	return CyclePoint{
		Theta:    theta,
		Volume:   e.Volume(theta),
		Pressure: m.Pressure(e, theta),
		Phase:    PhaseAt(theta),
	}
}

// Cycle returns a restartable sequence of points for θ from 0 to 720
// inclusive, stepped by step degrees. Each range over the sequence samples
// the engine afresh.
func (e *Engine) Cycle(m PressureModel, step float64) (iter.Seq[CyclePoint], error) {
	if err := checkStep(step); err != nil {
		return nil, err
	}
	n := sampleCount(step)
	return func(yield func(CyclePoint) bool) {
		for i := range n {
			if !yield(e.Point(m, float64(i)*step)) {
				return
			}
		}
	}, nil
}

// SampleCycle collects a full cycle into a slice.
func (e *Engine) SampleCycle(m PressureModel, step float64) ([]CyclePoint, error) {
	seq, err := e.Cycle(m, step)
	if err != nil {
		return nil, err
	}
	points := make([]CyclePoint, 0, sampleCount(step))
	for p := range seq {
		points = append(points, p)
	}
	return points, nil
}
