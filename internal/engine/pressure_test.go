package engine

import (
	"errors"
	"math"
	"testing"
)

func relClose(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}

func TestTheoreticalPressure(t *testing.T) {
	e := MustNew(Default())
	cfg := e.Config()

	if p := e.Pressure(Theoretical, 0); p != cfg.AmbientPressure {
		t.Errorf("Pressure(theoretical, 0) = %v, expected ambient %v", p, cfg.AmbientPressure)
	}
	if p := e.Pressure(Theoretical, 600); p != cfg.AmbientPressure {
		t.Errorf("Pressure(theoretical, 600) = %v, expected ambient %v", p, cfg.AmbientPressure)
	}

	loadFactor := 1.5 + 2.0*(11.1/20)
	peak := cfg.AmbientPressure * math.Pow(8, 1.4) * loadFactor
	if p := e.Pressure(Theoretical, 360); !relClose(p, peak, 1e-9) {
		t.Errorf("Pressure(theoretical, 360) = %v, expected peak %v", p, peak)
	}
	if p := e.Pressure(Theoretical, 360.01); !relClose(p, peak, 1e-3) {
		t.Errorf("Pressure(theoretical, 360.01) = %v, expected ~%v", p, peak)
	}

	// Adiabatic compression reaches P·r^γ just before TDC.
	end := cfg.AmbientPressure * math.Pow(8, 1.4)
	if p := e.Pressure(Theoretical, 359.99); !relClose(p, end, 1e-3) {
		t.Errorf("Pressure(theoretical, 359.99) = %v, expected ~%v", p, end)
	}
}

func TestTheoreticalCompressionFollowsVolume(t *testing.T) {
	e := MustNew(Default())
	cfg := e.Config()
	g := e.Geometry()

	for _, theta := range []float64{200, 250, 300, 340} {
		want := cfg.AmbientPressure * math.Pow(g.TotalCC/e.Volume(theta), cfg.Gamma)
		if p := e.Pressure(Theoretical, theta); !relClose(p, want, 1e-12) {
			t.Errorf("Pressure(theoretical, %v) = %v, expected %v", theta, p, want)
		}
	}
}

func TestActualPressureFloor(t *testing.T) {
	configs := map[string]Config{
		"default": Default(),
		"high rpm": func() Config {
			c := Default()
			c.RPM = 12000
			return c
		}(),
		"thin air": func() Config {
			c := Default()
			c.AmbientPressure = 0.05
			return c
		}(),
		"no load": func() Config {
			c := Default()
			c.Load = 0
			return c
		}(),
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			e := MustNew(cfg)
			for _, m := range []Model{ActualSixPhase, ActualWiebe} {
				for theta := 0.0; theta < CycleDegrees; theta += 0.25 {
					p := e.Pressure(m, theta)
					if p < minPressure || math.IsNaN(p) {
						t.Fatalf("Pressure(%s, %v) = %v, expected >= %v", m, theta, p, minPressure)
					}
				}
			}
		})
	}
}

func TestTheoreticalPressurePositive(t *testing.T) {
	e := MustNew(Default())
	for theta := 0.0; theta < CycleDegrees; theta += 0.5 {
		if p := e.Pressure(Theoretical, theta); !(p > 0) {
			t.Fatalf("Pressure(theoretical, %v) = %v, expected positive", theta, p)
		}
	}
}

func TestSixPhaseSuction(t *testing.T) {
	e := MustNew(Default())
	cfg := e.Config()

	depth := 0.10 + 0.25*(cfg.RPM/4000)
	want := cfg.AmbientPressure * (1 - depth)
	if p := e.Pressure(ActualSixPhase, 90); !relClose(p, want, 1e-12) {
		t.Errorf("Pressure(actual, 90) = %v, expected vacuum %v", p, want)
	}
	if p := e.Pressure(ActualSixPhase, 0); p != cfg.AmbientPressure {
		t.Errorf("Pressure(actual, 0) = %v, expected ambient", p)
	}

	// Deeper vacuum at higher speed.
	fast := e.Clone()
	if err := fast.Apply(Update{RPM: Float(4000)}); err != nil {
		t.Fatal(err)
	}
	if fast.Pressure(ActualSixPhase, 90) >= e.Pressure(ActualSixPhase, 90) {
		t.Error("suction vacuum should deepen with rpm")
	}
}

func TestSixPhaseCombustion(t *testing.T) {
	e := MustNew(Default())
	cfg := e.Config()

	compEnd := 0.95 * cfg.AmbientPressure * math.Pow(8, 1.32)
	if p := e.Pressure(ActualSixPhase, 360); !relClose(p, compEnd, 1e-12) {
		t.Errorf("Pressure(actual, 360) = %v, expected end of compression %v", p, compEnd)
	}

	loadFraction := 11.1 / 20
	rpmEff := 1 - 0.15*math.Abs(cfg.RPM/2000-1)
	mult := (2.0 + 1.8*loadFraction) * (0.85 + 0.15*rpmEff)
	if m := e.PeakPressureMultiplier(); !relClose(m, mult, 1e-12) {
		t.Errorf("PeakPressureMultiplier() = %v, expected %v", m, mult)
	}
	if p := e.Pressure(ActualSixPhase, 372); !relClose(p, compEnd*mult, 1e-12) {
		t.Errorf("Pressure(actual, 372) = %v, expected peak %v", p, compEnd*mult)
	}

	// The rise is monotonic and the fall never exceeds the peak.
	prev := e.Pressure(ActualSixPhase, 360)
	for theta := 360.5; theta <= 372; theta += 0.5 {
		p := e.Pressure(ActualSixPhase, theta)
		if p < prev {
			t.Fatalf("pressure fell during rise at %v: %v < %v", theta, p, prev)
		}
		prev = p
	}
	for theta := 372.5; theta < 400; theta += 0.5 {
		if p := e.Pressure(ActualSixPhase, theta); p > compEnd*mult {
			t.Fatalf("Pressure(actual, %v) = %v exceeds peak", theta, p)
		}
	}
}

func TestSixPhaseContinuity(t *testing.T) {
	e := MustNew(Default())

	for _, boundary := range []float64{372, 400} {
		before := e.Pressure(ActualSixPhase, boundary-1e-7)
		at := e.Pressure(ActualSixPhase, boundary)
		if !relClose(before, at, 1e-5) {
			t.Errorf("discontinuity at %v: %v vs %v", boundary, before, at)
		}
	}

	// Blowdown lands near, not exactly on, the exhaust back-pressure curve.
	blow := e.Pressure(ActualSixPhase, 600-1e-7)
	stroke := e.Pressure(ActualSixPhase, 600)
	if !relClose(blow, stroke, 1e-3) {
		t.Errorf("blowdown end %v too far from exhaust stroke start %v", blow, stroke)
	}

	// Exhaust stroke returns to ambient at the end of the cycle, matching
	// the start of suction.
	end := e.Pressure(ActualSixPhase, 720-1e-7)
	start := e.Pressure(ActualSixPhase, 0)
	if !relClose(end, start, 1e-5) {
		t.Errorf("cycle does not close: P(720-) = %v, P(0) = %v", end, start)
	}
}

func TestSixPhaseLateExpansionBlend(t *testing.T) {
	e := MustNew(Default())
	pa := e.Config().AmbientPressure

	expansion := func(theta float64) float64 {
		return e.expansionOrigin() * math.Pow(e.Volume(combustionEnd)/e.Volume(theta), expansionIndex)
	}

	if got := e.Pressure(ActualSixPhase, 500); !relClose(got, expansion(500), 1e-12) {
		t.Errorf("Pressure(actual, 500) = %v, expected unblended %v", got, expansion(500))
	}
	for _, theta := range []float64{501, 520, 539} {
		want := 0.7*expansion(theta) + 0.45*pa
		if got := e.Pressure(ActualSixPhase, theta); !relClose(got, want, 1e-12) {
			t.Errorf("Pressure(actual, %v) = %v, expected %v", theta, got, want)
		}
	}
}

func TestSixPhaseExhaust(t *testing.T) {
	e := MustNew(Default())
	pa := e.Config().AmbientPressure

	if p := e.Pressure(ActualSixPhase, 540); !relClose(p, 2.0*pa, 1e-12) {
		t.Errorf("Pressure(actual, 540) = %v, expected pre-blowdown %v", p, 2.0*pa)
	}
	for theta := 600.0; theta < 720; theta += 5 {
		if p := e.Pressure(ActualSixPhase, theta); p < pa {
			t.Errorf("Pressure(actual, %v) = %v, expected above ambient during exhaust", theta, p)
		}
	}
}

func TestWiebeBurnFraction(t *testing.T) {
	e := MustNew(Default())
	start := e.SparkStart()
	dur := e.Config().CombustionDuration

	if x := e.BurnFraction(start - 1); x != 0 {
		t.Errorf("BurnFraction before spark = %v, expected 0", x)
	}
	want := 1 - math.Exp(-5)
	if x := e.BurnFraction(start + dur); !relClose(x, want, 1e-12) {
		t.Errorf("BurnFraction at end = %v, expected %v", x, want)
	}
	if x := e.BurnFraction(start + 2*dur); !relClose(x, want, 1e-12) {
		t.Errorf("BurnFraction after end = %v, expected %v", x, want)
	}

	prev := 0.0
	for theta := start; theta <= start+dur; theta += 1 {
		x := e.BurnFraction(theta)
		if x < prev {
			t.Fatalf("BurnFraction decreased at %v", theta)
		}
		prev = x
	}
}

func TestWiebeMatchesSixPhaseBeforeSpark(t *testing.T) {
	e := MustNew(Default())
	for theta := 0.0; theta < e.SparkStart(); theta += 5 {
		a := e.Pressure(ActualWiebe, theta)
		b := e.Pressure(ActualSixPhase, theta)
		if a != b {
			t.Errorf("Pressure at %v: wiebe=%v sixphase=%v", theta, a, b)
		}
	}
	if e.Pressure(ActualWiebe, 380) <= e.Pressure(ActualWiebe, 340) {
		t.Error("Wiebe combustion should raise pressure after TDC")
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		in   string
		want Model
	}{
		{"theoretical", Theoretical},
		{"Otto", Theoretical},
		{"actual", ActualSixPhase},
		{"sixphase", ActualSixPhase},
		{"", ActualSixPhase},
		{" wiebe ", ActualWiebe},
	}
	for _, tc := range tests {
		got, err := ParseModel(tc.in)
		if err != nil {
			t.Errorf("ParseModel(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseModel(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseModel("diesel"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("ParseModel(diesel) error = %v, expected ErrUnknownModel", err)
	}
}

func TestModelIDsRoundTrip(t *testing.T) {
	for _, m := range Models {
		got, err := ParseModel(m.ID())
		if err != nil || got != m {
			t.Errorf("ParseModel(%q) = %v, %v", m.ID(), got, err)
		}
	}
}
