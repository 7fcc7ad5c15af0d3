package engine

import (
	"math"
	"testing"
)

func TestPerformanceDefault(t *testing.T) {
	e := MustNew(Default())
	m := e.Performance()

	if m.IMEP <= 0 {
		t.Errorf("IMEP = %v, expected positive", m.IMEP)
	}
	if m.IndicatedPower <= 0 {
		t.Errorf("IndicatedPower = %v, expected positive", m.IndicatedPower)
	}
	if want := 1 - math.Pow(8, -0.4); !approx(m.ThermalEfficiency, want, 1e-12) {
		t.Errorf("ThermalEfficiency = %v, expected %v", m.ThermalEfficiency, want)
	}
	if !approx(m.ThermalEfficiency, 0.5647, 1e-4) {
		t.Errorf("ThermalEfficiency = %v, expected ~56.5%%", m.ThermalEfficiency)
	}
	if want := 2 * 0.110 * 1857 / 60; !approx(m.MeanPistonSpeed, want, 1e-9) {
		t.Errorf("MeanPistonSpeed = %v, expected %v", m.MeanPistonSpeed, want)
	}
	if !approx(m.MeanPistonSpeed, 6.81, 0.01) {
		t.Errorf("MeanPistonSpeed = %v, expected ~6.81", m.MeanPistonSpeed)
	}
	if m.CompressionRatio != 8 {
		t.Errorf("CompressionRatio = %v, expected 8", m.CompressionRatio)
	}
	if m.DisplacementCC != e.Geometry().DisplacementCC {
		t.Errorf("DisplacementCC = %v, expected %v", m.DisplacementCC, e.Geometry().DisplacementCC)
	}
}

func TestPerformanceDerivations(t *testing.T) {
	e := MustNew(Default())
	m := e.Performance()

	work := math.Abs(m.IndicatedWork)
	if want := work / (e.Geometry().DisplacementCC * 1e-6) / 1e5; !approx(m.IMEP, want, 1e-12) {
		t.Errorf("IMEP = %v, expected %v", m.IMEP, want)
	}
	if want := work * 1857 / 120 / 1000; !approx(m.IndicatedPower, want, 1e-12) {
		t.Errorf("IndicatedPower = %v, expected %v", m.IndicatedPower, want)
	}
	if want := work / (4 * math.Pi); !approx(m.IndicatedTorque, want, 1e-12) {
		t.Errorf("IndicatedTorque = %v, expected %v", m.IndicatedTorque, want)
	}
	if m.PeakPressureAngle < 360 || m.PeakPressureAngle > 400 {
		t.Errorf("PeakPressureAngle = %v, expected within combustion", m.PeakPressureAngle)
	}
	if !approx(m.PeakPressure, e.Pressure(ActualSixPhase, 372), 1e-9) {
		t.Errorf("PeakPressure = %v, expected %v", m.PeakPressure, e.Pressure(ActualSixPhase, 372))
	}
}

func TestPerformanceRisesWithLoad(t *testing.T) {
	light := MustNew(Default())
	heavy := light.Clone()
	if err := heavy.Apply(Update{Load: Float(20)}); err != nil {
		t.Fatal(err)
	}
	if heavy.Performance().IMEP <= light.Performance().IMEP {
		t.Error("IMEP should increase with load")
	}
}

func TestIndicatedWorkRectangle(t *testing.T) {
	// A rectangular loop of 1 bar over 1 cm³ encloses 0.1 J.
	loop := []CyclePoint{
		{Volume: 1, Pressure: 2},
		{Volume: 2, Pressure: 2},
		{Volume: 2, Pressure: 1},
		{Volume: 1, Pressure: 1},
		{Volume: 1, Pressure: 2},
	}
	if w := IndicatedWork(loop); !approx(w, 0.1, 1e-12) {
		t.Errorf("IndicatedWork() = %v, expected 0.1", w)
	}
	if w := IndicatedWork(nil); w != 0 {
		t.Errorf("IndicatedWork(nil) = %v, expected 0", w)
	}
}

func TestTheoreticalWorkExceedsActual(t *testing.T) {
	e := MustNew(Default())
	ideal := e.PerformanceFor(Theoretical)
	actual := e.Performance()
	if ideal.IndicatedWork <= actual.IndicatedWork {
		t.Errorf("ideal work %v should exceed actual %v", ideal.IndicatedWork, actual.IndicatedWork)
	}
}
