package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/engine-cycle/internal/chart"
	"github.com/vovakirdan/engine-cycle/internal/config"
	"github.com/vovakirdan/engine-cycle/internal/core"
	"github.com/vovakirdan/engine-cycle/internal/engine"
	"github.com/vovakirdan/engine-cycle/internal/export"
	"github.com/vovakirdan/engine-cycle/internal/mechanism"
	"github.com/vovakirdan/engine-cycle/internal/registry"
)

// ChartMode selects the right-hand chart.
type ChartMode int

const (
	ChartPV ChartMode = iota
	ChartAngle
)

// Layout constants
const (
	defaultWidth  = 100
	defaultHeight = 36
	minMechWidth  = 24
	minBodyHeight = 12
	readoutLines  = 3
)

// Options configures a viewer model.
type Options struct {
	Display       config.DisplayConfig
	Width, Height int    // initial size, updated on resize
	ExportDir     string // CSV exports, defaults to ~/.enginecycle/exports
	ScreenshotDir string // defaults to ~/.enginecycle/screenshots
}

// Model is the Bubble Tea model for the engine cycle viewer.
type Model struct {
	engine  *engine.Engine
	base    engine.Config // restored by reset
	model   engine.PressureModel
	display config.DisplayConfig

	theta  float64
	paused bool
	chart  ChartMode

	width, height int
	keys          KeyMap
	help          help.Model
	table         table.Model

	actual      []engine.CyclePoint
	theoretical []engine.CyclePoint
	metrics     engine.Metrics

	status        string
	exportDir     string
	screenshotDir string
	quitting      bool
}

// NewModel creates a viewer for e. The display model ID must be registered.
func NewModel(e *engine.Engine, opts Options) (Model, error) {
	d := opts.Display
	def := config.Default().Display
	if d.FPS <= 0 {
		d.FPS = def.FPS
	}
	if d.Step <= 0 {
		d.Step = def.Step
	}
	if d.DegreesPerTick <= 0 {
		d.DegreesPerTick = def.DegreesPerTick
	}
	if d.Model == "" {
		d.Model = def.Model
	}

	pm, err := registry.Create(d.Model)
	if err != nil {
		return Model{}, err
	}

	if opts.ExportDir == "" {
		opts.ExportDir = export.Dir("exports")
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = export.Dir("screenshots")
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		engine:        e,
		base:          e.Config(),
		model:         pm,
		display:       d,
		width:         opts.Width,
		height:        opts.Height,
		keys:          DefaultKeyMap(),
		help:          h,
		table:         newMetricsTable(),
		exportDir:     opts.ExportDir,
		screenshotDir: opts.ScreenshotDir,
	}
	m.refresh()
	return m, nil
}

// refresh resamples the charts and metrics after a parameter or model change.
func (m *Model) refresh() {
	var err error
	if m.actual, err = m.engine.SampleCycle(m.model, m.display.Step); err != nil {
		m.status = err.Error()
	}
	if m.model.ID() != engine.Theoretical.ID() {
		m.theoretical, _ = m.engine.SampleCycle(engine.Theoretical, m.display.Step)
	} else {
		m.theoretical = nil
	}
	m.metrics = m.engine.PerformanceFor(m.model)

	rows, active := metricsRows(m.engine, m.model.ID())
	m.table.SetRows(rows)
	m.table.SetCursor(active)
}

// Init starts the animation loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.display.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			m.theta = engine.Normalize(m.theta + m.display.DegreesPerTick)
		}
		return m, tickCmd(m.display.FPS)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case ActionNone:
		return m, nil

	case ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case ActionNextModel:
		next, err := registry.Create(registry.Next(m.model.ID()))
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.model = next
		m.refresh()
		m.status = "model: " + next.Title()

	case ActionToggleChart:
		if m.chart == ChartPV {
			m.chart = ChartAngle
		} else {
			m.chart = ChartPV
		}

	case ActionPause:
		m.paused = !m.paused

	case ActionStep:
		m.paused = true
		m.theta = engine.Normalize(m.theta + m.display.DegreesPerTick)

	case ActionExport:
		path, err := export.SaveCycle(m.exportDir, m.engine, m.model, m.display.Step)
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = "exported " + path
		}

	case ActionScreenshot:
		m.saveScreenshot()

	case ActionReset:
		if err := m.engine.Reset(m.base); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.theta = 0
		m.refresh()
		m.status = "reset"

	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	default:
		u, ok := ControlUpdate(action, m.engine.Config())
		if !ok {
			return m, nil
		}
		if err := m.engine.Apply(u); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.refresh()
		m.status = ""
	}

	return m, nil
}

// saveScreenshot saves the current view as plain text.
func (m *Model) saveScreenshot() {
	path, err := export.SaveScreenshot(m.screenshotDir, m.model.ID(), ansi.Strip(m.View()))
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "screenshot " + path
}

// size returns the effective terminal size.
func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.size()
	tableLines := len(m.table.Rows()) + 2
	bodyH := max(h-(1+2+readoutLines+tableLines+1), minBodyHeight)
	mechW := max(w/3, minMechWidth)
	chartW := max(w-mechW-4, 20)

	var b strings.Builder
	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")

	mech := core.NewScreen(mechW, bodyH)
	mechanism.Render(mech, core.NewRect(0, 0, mechW, bodyH), m.engine, m.theta)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(RenderScreen(mech)),
		panelStyle.Width(chartW).Height(bodyH).Render(m.renderChart(chartW, bodyH)),
	)
	b.WriteString(body)
	b.WriteString("\n")

	b.WriteString(m.renderReadout())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := titleStyle.Render("ENGINE CYCLE") + "  " + valueStyle.Render(m.model.Title())
	if m.paused {
		title += "  " + labelStyle.Render("[paused]")
	}
	if m.status != "" {
		title += "  " + statusStyle.Render(m.status)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(title)
}

func (m Model) renderChart(w, h int) string {
	current := m.engine.Point(m.model, m.theta)

	if m.chart == ChartAngle {
		series := []chart.Series{{Model: m.model, Points: m.actual}}
		if m.theoretical != nil {
			series = append([]chart.Series{{Model: engine.Theoretical, Points: m.theoretical}}, series...)
		}
		// Leave room for asciigraph's axis labels and caption.
		return chart.RenderAngle(w-10, h-3, m.theta, series...)
	}

	s := core.NewScreen(w, h)
	chart.RenderPV(s, core.NewRect(0, 0, w, h), m.actual, m.theoretical, &current)
	return RenderScreen(s)
}

func (m Model) renderReadout() string {
	e, cfg := m.engine, m.engine.Config()
	theta := m.theta
	phase := e.Phase(theta)
	valves := e.Valves(theta)

	field := func(label, value string) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(value)
	}
	onOff := func(b bool) string {
		if b {
			return "open"
		}
		return "shut"
	}
	spark := ""
	if e.SparkFiring(theta) {
		spark = "  " + colorStyles[core.ColorSpark].Render("SPARK")
	}

	line1 := strings.Join([]string{
		field("θ", fmt.Sprintf("%5.1f°", theta)),
		phaseStyles[mechanism.PhaseColor(phase)].Render(fmt.Sprintf("%-11s", phase)),
		field("V", fmt.Sprintf("%6.1f cm³", e.Volume(theta))),
		field("P", fmt.Sprintf("%5.2f bar", e.Pressure(m.model, theta))),
		field("x", fmt.Sprintf("%5.1f mm", e.PistonPosition(theta))),
		field("v", fmt.Sprintf("%5.2f m/s", e.PistonVelocity(theta))),
		field("φ", fmt.Sprintf("%5.1f°", e.ConRodAngle(theta))),
		field("IN", onOff(valves.Intake)),
		field("EX", onOff(valves.Exhaust)),
	}, "  ") + spark

	line2 := strings.Join([]string{
		field("rpm", fmt.Sprintf("%.0f", cfg.RPM)),
		field("load", fmt.Sprintf("%.1f/%.0f N·m", cfg.Load, cfg.MaxLoad)),
		field("advance", fmt.Sprintf("%.0f°", cfg.IgnitionAdvance)),
		field("CR", fmt.Sprintf("%.1f", cfg.CompressionRatio)),
		field("bore×stroke", fmt.Sprintf("%.0f×%.0f mm", cfg.Bore, cfg.Stroke)),
	}, "  ")

	line3 := strings.Join([]string{
		field("Vd", fmt.Sprintf("%.1f cm³", m.metrics.DisplacementCC)),
		field("IMEP", fmt.Sprintf("%.2f bar", m.metrics.IMEP)),
		field("Pi", fmt.Sprintf("%.2f kW", m.metrics.IndicatedPower)),
		field("ηth", fmt.Sprintf("%.1f%%", m.metrics.ThermalEfficiency*100)),
		field("Cm", fmt.Sprintf("%.2f m/s", m.metrics.MeanPistonSpeed)),
	}, "  ")

	return line1 + "\n" + line2 + "\n" + line3
}

// Theta returns the current crank angle.
func (m Model) Theta() float64 { return m.theta }

// Paused reports whether the animation is stopped.
func (m Model) Paused() bool { return m.paused }

// ModelID returns the active pressure model.
func (m Model) ModelID() string { return m.model.ID() }

// Chart returns the active chart mode.
func (m Model) Chart() ChartMode { return m.chart }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

// Run starts the Bubble Tea program with the given model.
func Run(e *engine.Engine, opts Options) error {
	model, err := NewModel(e, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
