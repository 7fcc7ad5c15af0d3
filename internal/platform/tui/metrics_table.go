package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/engine-cycle/internal/engine"
	"github.com/vovakirdan/engine-cycle/internal/registry"
)

// newMetricsTable creates the model comparison table.
func newMetricsTable() table.Model {
	columns := []table.Column{
		{Title: "Model", Width: 26},
		{Title: "IMEP bar", Width: 9},
		{Title: "Power kW", Width: 9},
		{Title: "Torque Nm", Width: 10},
		{Title: "Peak bar", Width: 9},
		{Title: "at θ", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(len(registry.List())+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// metricsRows computes one row per registered model and returns the index
// of the active model.
func metricsRows(e *engine.Engine, activeID string) ([]table.Row, int) {
	models := registry.List()
	rows := make([]table.Row, 0, len(models))
	active := 0
	for i, info := range models {
		m, err := registry.Create(info.ID)
		if err != nil {
			continue
		}
		if info.ID == activeID {
			active = i
		}
		perf := e.PerformanceFor(m)
		rows = append(rows, table.Row{
			info.Title,
			fmt.Sprintf("%.2f", perf.IMEP),
			fmt.Sprintf("%.2f", perf.IndicatedPower),
			fmt.Sprintf("%.1f", perf.IndicatedTorque),
			fmt.Sprintf("%.1f", perf.PeakPressure),
			fmt.Sprintf("%.0f°", perf.PeakPressureAngle),
		})
	}
	return rows, active
}
