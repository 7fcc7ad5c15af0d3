// Package mechanism draws the slider-crank mechanism of a single cylinder
// into a character screen, synchronized to a crank angle.
package mechanism

import (
	"math"

	"github.com/vovakirdan/engine-cycle/internal/core"
	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// Visual characters for rendering
const (
	WallChar     = '┃'
	HeadChar     = '━'
	PistonChar   = '█'
	RodChar      = '•'
	CrankChar    = '·'
	PinChar      = 'O'
	ShaftChar    = '◉'
	GasChar      = '░'
	ValveOpen    = '▼'
	ValveClosed  = '▬'
	SparkChar    = '*'
	PlugChar     = '┬'
	pistonHeight = 2
)

// cellAspect is the height/width ratio of a terminal cell. Horizontal
// distances are stretched by this factor so the crank looks round.
const cellAspect = 2.0

// PhaseColor returns the gas color for a stroke.
func PhaseColor(p engine.Phase) core.Color {
	switch p {
	case engine.Suction:
		return core.ColorSuction
	case engine.Compression:
		return core.ColorCompression
	case engine.Power:
		return core.ColorPower
	default:
		return core.ColorExhaust
	}
}

// Layout holds the cell coordinates of the mechanism at one crank angle.
type Layout struct {
	ShaftX, ShaftY   int // crankshaft center
	CrankPinX        int
	CrankPinY        int
	PistonPinY       int // wrist pin, also the piston's lower face
	HeadY            int // cylinder head row
	SkirtY           int // lowest row of the cylinder walls
	BoreLeft         int // inner wall columns
	BoreRight        int
	CrankRadiusCells float64 // vertical cells
}

// Compute places the mechanism inside area for crank angle theta.
func Compute(e *engine.Engine, area core.Rect, theta float64) Layout {
	cfg, geo := e.Config(), e.Geometry()
	r, l := geo.CrankRadius, cfg.ConRod

	// Vertical budget: head + clearance row + piston + rod + crank circle.
	usable := float64(area.H - pistonHeight - 3)
	k := usable / (l + 2*r)
	if k <= 0 {
		k = 0
	}

	shaftX := area.X + area.W/2
	shaftY := area.Y + area.H - 1 - core.Round(r*k)

	rad := theta * math.Pi / 180
	pinX := shaftX + core.Round(r*math.Sin(rad)*k*cellAspect)
	pinY := shaftY - core.Round(r*math.Cos(rad)*k)

	// Wrist pin distance from the shaft is R + L - x.
	wristY := shaftY - core.Round((r+l-e.PistonPosition(theta))*k)
	tdcWristY := shaftY - core.Round((r+l)*k)
	bdcWristY := shaftY - core.Round((l-r)*k)
	headY := tdcWristY - pistonHeight - 1

	halfBore := core.Max(2, core.Round(cfg.Bore/2*k*cellAspect))
	return Layout{
		ShaftX:           shaftX,
		ShaftY:           shaftY,
		CrankPinX:        pinX,
		CrankPinY:        pinY,
		PistonPinY:       wristY,
		HeadY:            headY,
		SkirtY:           bdcWristY,
		BoreLeft:         shaftX - halfBore,
		BoreRight:        shaftX + halfBore,
		CrankRadiusCells: r * k,
	}
}

// Render draws the mechanism for crank angle theta into area.
func Render(dst *core.Screen, area core.Rect, e *engine.Engine, theta float64) Layout {
	lay := Compute(e, area, theta)
	phase := e.Phase(theta)
	valves := e.Valves(theta)

	drawCylinder(dst, lay)
	drawGas(dst, lay, PhaseColor(phase))
	drawPiston(dst, lay)
	drawValves(dst, lay, valves)
	drawPlug(dst, lay, e.SparkFiring(theta))
	drawCrank(dst, lay)

	// Connecting rod from wrist pin to crank pin.
	dst.DrawLine(lay.ShaftX, lay.PistonPinY+1, lay.CrankPinX, lay.CrankPinY, RodChar, core.ColorMetal)
	dst.SetColor(lay.CrankPinX, lay.CrankPinY, PinChar, core.ColorHighlight)
	dst.SetColor(lay.ShaftX, lay.ShaftY, ShaftChar, core.ColorHighlight)
	return lay
}

func drawCylinder(dst *core.Screen, lay Layout) {
	length := lay.SkirtY - lay.HeadY
	dst.DrawHLine(lay.BoreLeft-1, lay.HeadY, lay.BoreRight-lay.BoreLeft+3, HeadChar, core.ColorMetal)
	dst.DrawVLine(lay.BoreLeft-1, lay.HeadY+1, length, WallChar, core.ColorMetal)
	dst.DrawVLine(lay.BoreRight+1, lay.HeadY+1, length, WallChar, core.ColorMetal)
}

func drawGas(dst *core.Screen, lay Layout, c core.Color) {
	top := lay.HeadY + 1
	bottom := lay.PistonPinY - pistonHeight // row above the piston crown
	for y := top; y <= bottom; y++ {
		dst.DrawHLine(lay.BoreLeft, y, lay.BoreRight-lay.BoreLeft+1, GasChar, c)
	}
}

func drawPiston(dst *core.Screen, lay Layout) {
	dst.DrawRect(core.NewRect(lay.BoreLeft, lay.PistonPinY-pistonHeight+1, lay.BoreRight-lay.BoreLeft+1, pistonHeight),
		PistonChar, core.ColorMetal)
}

func drawValves(dst *core.Screen, lay Layout, v engine.ValveState) {
	intakeX := lay.BoreLeft + 1
	exhaustX := lay.BoreRight - 1

	if v.Intake {
		dst.SetColor(intakeX, lay.HeadY, ValveOpen, core.ColorSuction)
	} else {
		dst.SetColor(intakeX, lay.HeadY, ValveClosed, core.ColorAxis)
	}
	if v.Exhaust {
		dst.SetColor(exhaustX, lay.HeadY, ValveOpen, core.ColorExhaust)
	} else {
		dst.SetColor(exhaustX, lay.HeadY, ValveClosed, core.ColorAxis)
	}
	dst.DrawText(intakeX, lay.HeadY-1, "IN", core.ColorSuction)
	dst.DrawText(exhaustX-1, lay.HeadY-1, "EX", core.ColorExhaust)
}

func drawPlug(dst *core.Screen, lay Layout, firing bool) {
	if firing {
		dst.SetColor(lay.ShaftX, lay.HeadY, SparkChar, core.ColorSpark)
		dst.SetColor(lay.ShaftX, lay.HeadY+1, SparkChar, core.ColorSpark)
		return
	}
	dst.SetColor(lay.ShaftX, lay.HeadY, PlugChar, core.ColorMetal)
}

func drawCrank(dst *core.Screen, lay Layout) {
	r := lay.CrankRadiusCells
	if r < 1 {
		return
	}
	for deg := 0; deg < 360; deg += 10 {
		rad := float64(deg) * math.Pi / 180
		x := lay.ShaftX + core.Round(r*math.Sin(rad)*cellAspect)
		y := lay.ShaftY - core.Round(r*math.Cos(rad))
		dst.SetColor(x, y, CrankChar, core.ColorAxis)
	}
	dst.DrawLine(lay.ShaftX, lay.ShaftY, lay.CrankPinX, lay.CrankPinY, CrankChar, core.ColorMetal)
}
