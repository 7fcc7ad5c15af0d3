// Package chart renders cycle samples as terminal charts: a P-V indicator
// diagram rasterized into a core.Screen and a P-θ line chart drawn with
// asciigraph.
package chart

import (
	"fmt"
	"math"

	"github.com/vovakirdan/engine-cycle/internal/core"
	"github.com/vovakirdan/engine-cycle/internal/engine"
	"github.com/vovakirdan/engine-cycle/internal/mechanism"
)

// Plot characters
const (
	TheoreticalChar = '·'
	ActualChar      = '•'
	CurrentChar     = '◆'
	axisMargin      = 6 // columns reserved for pressure labels
	labelRows       = 2 // rows reserved for volume labels
)

// Plot maps volume/pressure values onto the cells of an area.
type Plot struct {
	Area       core.Rect // data cells, excluding axes and labels
	VMin, VMax float64
	PMin, PMax float64
}

// NewPlot fits a plot inside area using the extent of all given series.
func NewPlot(area core.Rect, series ...[]engine.CyclePoint) Plot {
	vmax, pmax := 0.0, 0.0
	for _, pts := range series {
		for _, p := range pts {
			vmax = math.Max(vmax, p.Volume)
			pmax = math.Max(pmax, p.Pressure)
		}
	}
	if vmax == 0 {
		vmax = 1
	}
	if pmax == 0 {
		pmax = 1
	}

	data := core.NewRect(area.X+axisMargin, area.Y, core.Max(area.W-axisMargin, 0), core.Max(area.H-labelRows, 0))
	return Plot{
		Area: data,
		VMin: 0,
		VMax: vmax * 1.05,
		PMin: 0,
		PMax: pmax * 1.05,
	}
}

// Cell returns the screen cell for a volume/pressure pair.
func (p Plot) Cell(volume, pressure float64) (int, int) {
	x := core.Round(core.Scale(volume, p.VMin, p.VMax, float64(p.Area.X), float64(p.Area.Right()-1)))
	y := core.Round(core.Scale(pressure, p.PMin, p.PMax, float64(p.Area.Bottom()-1), float64(p.Area.Y)))
	return core.Clamp(x, p.Area.X, p.Area.Right()-1), core.Clamp(y, p.Area.Y, p.Area.Bottom()-1)
}

// RenderPV draws the P-V diagram into area. The theoretical loop is drawn
// first so the actual loop stays on top; current is marked last.
// Either series may be empty.
func RenderPV(dst *core.Screen, area core.Rect, actual, theoretical []engine.CyclePoint, current *engine.CyclePoint) Plot {
	plot := NewPlot(area, actual, theoretical)
	if plot.Area.W < 2 || plot.Area.H < 2 {
		return plot
	}

	drawAxes(dst, plot)
	drawSeries(dst, plot, theoretical, func(engine.CyclePoint) core.Color { return core.ColorTheoretical }, TheoreticalChar)
	drawSeries(dst, plot, actual, func(p engine.CyclePoint) core.Color { return mechanism.PhaseColor(p.Phase) }, ActualChar)

	if current != nil {
		x, y := plot.Cell(current.Volume, current.Pressure)
		dst.SetColor(x, y, CurrentChar, core.ColorHighlight)
	}
	return plot
}

func drawSeries(dst *core.Screen, plot Plot, pts []engine.CyclePoint, color func(engine.CyclePoint) core.Color, ch rune) {
	for i, p := range pts {
		x, y := plot.Cell(p.Volume, p.Pressure)
		if i > 0 {
			px, py := plot.Cell(pts[i-1].Volume, pts[i-1].Pressure)
			dst.DrawLine(px, py, x, y, ch, color(p))
			continue
		}
		dst.SetColor(x, y, ch, color(p))
	}
}

func drawAxes(dst *core.Screen, plot Plot) {
	a := plot.Area
	axisX := a.X - 1
	axisY := a.Bottom()

	dst.DrawVLine(axisX, a.Y, a.H, '│', core.ColorAxis)
	dst.DrawHLine(a.X, axisY, a.W, '─', core.ColorAxis)
	dst.SetColor(axisX, axisY, '└', core.ColorAxis)

	// Pressure labels at top, middle and zero.
	for _, frac := range []float64{1, 0.5, 0} {
		p := plot.PMin + frac*(plot.PMax-plot.PMin)
		_, y := plot.Cell(plot.VMin, p)
		label := fmt.Sprintf("%5.1f", p)
		dst.DrawText(axisX-len(label), y, label, core.ColorAxis)
	}

	dst.DrawText(a.X, axisY+1, "0", core.ColorAxis)
	vmax := fmt.Sprintf("%.0f cm³", plot.VMax)
	dst.DrawText(a.Right()-len([]rune(vmax)), axisY+1, vmax, core.ColorAxis)
	dst.DrawText(a.X+a.W/2-2, axisY+1, "V", core.ColorAxis)
	dst.DrawText(a.Right()-5, a.Y, "P bar", core.ColorAxis)
}
