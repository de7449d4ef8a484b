package minesweeper

import (
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
)

const (
	cellWidth = 2 // Columns per board cell: a spacer and the glyph
	hudHeight = 2 // Lines above the board frame
	footer    = 2 // Lines below the board frame
)

// boardLayout places the board frame on screen. Cell (r, c) is drawn at
// x = X + 2 + c*cellWidth, y = Y + 1 + r.
type boardLayout struct {
	rows, cols int
	screenW    int
	screenH    int
}

func (g *Game) layout() boardLayout {
	grid := g.session.Grid()
	return boardLayout{rows: grid.Rows, cols: grid.Cols, screenW: g.screenW, screenH: g.screenH}
}

func (l boardLayout) frameWidth() int {
	return l.cols*cellWidth + 3
}

func (l boardLayout) frameHeight() int {
	return l.rows + 2
}

func (l boardLayout) minWidth() int {
	return l.frameWidth()
}

func (l boardLayout) minHeight() int {
	return hudHeight + l.frameHeight() + footer
}

// frame returns the board frame rectangle, centered horizontally.
func (l boardLayout) frame() core.Rect {
	x := core.Max(0, (l.screenW-l.frameWidth())/2)
	return core.NewRect(x, hudHeight, l.frameWidth(), l.frameHeight())
}

// cellPos returns the screen position of a cell glyph.
func (l boardLayout) cellPos(c engine.Coord) (x, y int) {
	f := l.frame()
	return f.X + 2 + c.Col*cellWidth, f.Y + 1 + c.Row
}

// cellAt maps a screen position back to a board cell. Both columns of a
// cell, spacer and glyph, hit it.
func (l boardLayout) cellAt(x, y int) (engine.Coord, bool) {
	f := l.frame()
	inner := core.NewRect(f.X+1, f.Y+1, l.cols*cellWidth, l.rows)
	if !inner.Contains(x, y) {
		return engine.Coord{}, false
	}
	return engine.C(y-inner.Y, (x-inner.X)/cellWidth), true
}
