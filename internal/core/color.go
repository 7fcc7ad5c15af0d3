package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Semantic colors shared by the mechanism and chart renderers.
const (
	ColorSuction     = ColorBlue
	ColorCompression = ColorGreen
	ColorPower       = ColorRed
	ColorExhaust     = ColorOrange
	ColorSpark       = ColorBrightYellow
	ColorAxis        = ColorGray
	ColorMetal       = ColorWhite
	ColorHighlight   = ColorBrightWhite
	ColorTheoretical = ColorCyan
)
