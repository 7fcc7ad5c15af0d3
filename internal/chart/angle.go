package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// Series is one pressure curve of a P-θ chart.
type Series struct {
	Model  engine.PressureModel
	Points []engine.CyclePoint
}

// Pressures extracts the pressure column of a sample.
func Pressures(points []engine.CyclePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Pressure
	}
	return out
}

// seriesColor picks the line color for a pressure model.
func seriesColor(m engine.PressureModel) asciigraph.AnsiColor {
	switch m.ID() {
	case engine.Theoretical.ID():
		return asciigraph.Cyan
	case engine.ActualWiebe.ID():
		return asciigraph.Yellow
	default:
		return asciigraph.Red
	}
}

// RenderAngle plots pressure against crank angle over one cycle. width and
// height are the plot body size in cells; asciigraph adds the axis labels.
// A spike marks crank angle theta; a negative theta omits it.
func RenderAngle(width, height int, theta float64, series ...Series) string {
	if len(series) == 0 || width < 4 || height < 2 {
		return ""
	}

	data := make([][]float64, 0, len(series)+1)
	colors := make([]asciigraph.AnsiColor, 0, len(series)+1)
	caption := ""
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		data = append(data, Pressures(s.Points))
		colors = append(colors, seriesColor(s.Model))
		if caption != "" {
			caption += " / "
		}
		caption += s.Model.ID()
	}
	if len(data) == 0 {
		return ""
	}

	if theta >= 0 {
		if marker := angleMarker(data, theta); marker != nil {
			data = append(data, marker)
			colors = append(colors, asciigraph.White)
		}
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(captionFor(caption, theta)),
	)
}

// angleMarker builds a series that is flat at zero except for a spike at
// the sample nearest theta.
func angleMarker(data [][]float64, theta float64) []float64 {
	n := len(data[0])
	if n < 2 {
		return nil
	}
	peak := 0.0
	for _, d := range data {
		for _, v := range d {
			if v > peak {
				peak = v
			}
		}
	}

	idx := int(engine.Normalize(theta)/engine.CycleDegrees*float64(n-1) + 0.5)
	idx = min(idx, n-1)
	marker := make([]float64, n)
	marker[idx] = peak
	return marker
}

func captionFor(models string, theta float64) string {
	if theta < 0 {
		return "P (bar) vs θ  " + models
	}
	return fmt.Sprintf("P (bar) vs θ  %s  θ=%.0f°", models, engine.Normalize(theta))
}
