package core

// Color is a foreground color for a screen cell, mapped to ANSI 256-color
// codes by the platform.
type Color uint8

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
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorMaroon
)

// adjacentColors follows the classic minesweeper palette for 1 through 8.
var adjacentColors = [...]Color{
	ColorDefault,
	ColorBrightBlue,
	ColorGreen,
	ColorBrightRed,
	ColorBlue,
	ColorMaroon,
	ColorCyan,
	ColorWhite,
	ColorGray,
}

// AdjacentColor returns the color used to draw an adjacent-mine count.
func AdjacentColor(n int) Color {
	if n < 0 || n >= len(adjacentColors) {
		return ColorDefault
	}
	return adjacentColors[n]
}
