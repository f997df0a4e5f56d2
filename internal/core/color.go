package core

// Color represents a foreground color for a screen cell.
// The render layer maps each value to an ANSI 256-color code.
type Color uint8

// Named colors. The first seven non-default colors match the conventional
// piece palette; Orange, Gray and the bright variants cover UI accents like
// the ghost piece and the line-clear flash.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
