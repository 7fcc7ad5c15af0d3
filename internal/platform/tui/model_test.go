package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/engine-cycle/internal/config"
	"github.com/vovakirdan/engine-cycle/internal/engine"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *engine.Engine) {
	t.Helper()
	e := engine.MustNew(engine.Default())
	m, err := NewModel(e, Options{
		Display:       config.Default().Display,
		Width:         120,
		Height:        40,
		ExportDir:     filepath.Join(t.TempDir(), "exports"),
		ScreenshotDir: filepath.Join(t.TempDir(), "shots"),
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m, e
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Action
	}{
		{"q quits", runes("q"), ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
		{"up raises rpm", tea.KeyMsg{Type: tea.KeyUp}, ActionRPMUp},
		{"j lowers rpm", runes("j"), ActionRPMDown},
		{"right raises load", tea.KeyMsg{Type: tea.KeyRight}, ActionLoadUp},
		{"h lowers load", runes("h"), ActionLoadDown},
		{"] advances spark", runes("]"), ActionAdvanceUp},
		{"[ retards spark", runes("["), ActionAdvanceDown},
		{"+ raises CR", runes("+"), ActionCRUp},
		{"- lowers CR", runes("-"), ActionCRDown},
		{"m cycles model", runes("m"), ActionNextModel},
		{"tab toggles chart", tea.KeyMsg{Type: tea.KeyTab}, ActionToggleChart},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, ActionPause},
		{". steps", runes("."), ActionStep},
		{"e exports", runes("e"), ActionExport},
		{"ctrl+s screenshots", tea.KeyMsg{Type: tea.KeyCtrlS}, ActionScreenshot},
		{"r resets", runes("r"), ActionReset},
		{"? help", runes("?"), ActionHelp},
		{"1 idle", runes("1"), ActionPresetIdle},
		{"2 cruise", runes("2"), ActionPresetCruise},
		{"3 full", runes("3"), ActionPresetFull},
		{"unbound", runes("z"), ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.expected {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestControlUpdate(t *testing.T) {
	cfg := engine.Default()

	tests := []struct {
		name   string
		action Action
		check  func(engine.Config) bool
	}{
		{"rpm up", ActionRPMUp, func(c engine.Config) bool { return c.RPM == cfg.RPM+rpmStep }},
		{"load down", ActionLoadDown, func(c engine.Config) bool { return c.Load == cfg.Load-loadStep }},
		{"advance up", ActionAdvanceUp, func(c engine.Config) bool { return c.IgnitionAdvance == 16 }},
		{"CR down", ActionCRDown, func(c engine.Config) bool { return c.CompressionRatio == 7.5 }},
		{"idle preset", ActionPresetIdle, func(c engine.Config) bool { return c.RPM == 800 && math.Abs(c.Load-2) < 1e-9 }},
		{"full preset", ActionPresetFull, func(c engine.Config) bool { return c.Load == c.MaxLoad }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, ok := ControlUpdate(tc.action, cfg)
			if !ok {
				t.Fatal("expected an engine update")
			}
			if got := u.Merge(cfg); !tc.check(got) {
				t.Errorf("unexpected config after %s: %+v", tc.name, got)
			}
		})
	}

	if _, ok := ControlUpdate(ActionPause, cfg); ok {
		t.Error("pause should not produce an engine update")
	}
}

func TestControlUpdateClamps(t *testing.T) {
	cfg := engine.Default()
	cfg.RPM = rpmMax
	cfg.Load = 0
	cfg.CompressionRatio = crMin

	if u, _ := ControlUpdate(ActionRPMUp, cfg); *u.RPM != rpmMax {
		t.Errorf("rpm should clamp at %v, got %v", rpmMax, *u.RPM)
	}
	if u, _ := ControlUpdate(ActionLoadDown, cfg); *u.Load != 0 {
		t.Errorf("load should clamp at 0, got %v", *u.Load)
	}
	if u, _ := ControlUpdate(ActionCRDown, cfg); *u.CompressionRatio != crMin {
		t.Errorf("CR should clamp at %v, got %v", crMin, *u.CompressionRatio)
	}
}

func TestNewModelUnknownModel(t *testing.T) {
	e := engine.MustNew(engine.Default())
	d := config.Default().Display
	d.Model = "diesel"
	if _, err := NewModel(e, Options{Display: d}); err == nil {
		t.Error("expected error for unknown pressure model")
	}
}

func TestModelTick(t *testing.T) {
	m, _ := newTestModel(t)
	dpt := config.Default().Display.DegreesPerTick

	m, cmd := update(t, m, TickMsg(time.Now()))
	if m.Theta() != dpt {
		t.Errorf("theta after one tick = %v, expected %v", m.Theta(), dpt)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if !m.Paused() {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Theta() != dpt {
		t.Errorf("paused tick moved theta to %v", m.Theta())
	}

	m, _ = update(t, m, runes("."))
	if m.Theta() != 2*dpt {
		t.Errorf("step should advance theta to %v, got %v", 2*dpt, m.Theta())
	}
}

func TestModelThetaWraps(t *testing.T) {
	m, _ := newTestModel(t)
	m.theta = 718
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Theta() < 0 || m.Theta() >= engine.CycleDegrees {
		t.Errorf("theta %v outside [0, 720)", m.Theta())
	}
}

func TestModelControls(t *testing.T) {
	m, e := newTestModel(t)
	rpm := e.Config().RPM

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if e.Config().RPM != rpm+rpmStep {
		t.Errorf("rpm = %v, expected %v", e.Config().RPM, rpm+rpmStep)
	}

	imep := m.metrics.IMEP

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.metrics.IMEP <= imep {
		t.Errorf("IMEP should rise with load: %v -> %v", imep, m.metrics.IMEP)
	}

	m, _ = update(t, m, runes("r"))
	if e.Config() != engine.Default() {
		t.Errorf("reset should restore the starting configuration, got %+v", e.Config())
	}
	if m.Status() != "reset" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModelCycleModelAndChart(t *testing.T) {
	m, _ := newTestModel(t)
	if m.ModelID() != "actual" {
		t.Fatalf("initial model = %q", m.ModelID())
	}

	seen := map[string]bool{m.ModelID(): true}
	for range 2 {
		m, _ = update(t, m, runes("m"))
		seen[m.ModelID()] = true
	}
	if len(seen) != 3 {
		t.Errorf("cycling should visit every model, saw %v", seen)
	}
	m, _ = update(t, m, runes("m"))
	if m.ModelID() != "actual" {
		t.Errorf("cycling should wrap, got %q", m.ModelID())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Chart() != ChartAngle {
		t.Error("tab should switch to the P-θ chart")
	}
	if !strings.Contains(m.View(), "P (bar) vs θ") {
		t.Error("P-θ chart caption missing from view")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Chart() != ChartPV {
		t.Error("tab should switch back to the P-V chart")
	}
}

func TestModelExportAndScreenshot(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runes("e"))
	if !strings.HasPrefix(m.Status(), "exported ") {
		t.Fatalf("export status = %q", m.Status())
	}
	path := strings.TrimPrefix(m.Status(), "exported ")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Crank_Angle,Volume_cm3,Pressure_bar,Phase\n") {
		t.Error("export should start with the CSV header")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.Status(), "screenshot ") {
		t.Fatalf("screenshot status = %q", m.Status())
	}
	shot, err := os.ReadFile(strings.TrimPrefix(m.Status(), "screenshot "))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(shot), "\x1b[") {
		t.Error("screenshot should not contain ANSI escapes")
	}
	if !strings.Contains(string(shot), "ENGINE CYCLE") {
		t.Error("screenshot should contain the header")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 36})

	view := m.View()
	for _, want := range []string{"ENGINE CYCLE", "Actual (six-phase)", "IMEP", "rpm", "Suction"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
