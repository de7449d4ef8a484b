package minesweeper

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
)

// Glyphs for the board.
const (
	glyphHidden   = '·'
	glyphFlag     = '⚑'
	glyphMine     = '*'
	glyphExploded = '✸'
	glyphBadFlag  = 'x'
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	frame := l.frame()

	g.renderHUD(dst, frame)
	dst.DrawBox(frame, core.ColorGray)
	g.renderBoard(dst, l)
	g.renderFooter(dst, frame)
	g.renderOverlays(dst, frame)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	l := g.layout()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", l.minWidth(), l.minHeight()), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightWhite)

	mines := fmt.Sprintf("Mines: %d", g.session.MinesRemaining())
	dst.DrawTextColor(frame.X, 1, mines, core.ColorRed)

	clock := fmt.Sprintf("Time: %03d", int(g.Elapsed()/time.Second))
	x := frame.Right() - utf8.RuneCountInString(clock)
	dst.DrawTextColor(core.Max(frame.X, x), 1, clock, core.ColorCyan)
}

func (g *Game) renderBoard(dst *core.Screen, l boardLayout) {
	view := g.session.View()
	for r, row := range view.Cells {
		for c, cell := range row {
			x, y := l.cellPos(engine.C(r, c))
			glyph, color := cellGlyph(cell, view.Status)
			dst.SetColor(x, y, glyph, color)
		}
	}

	if !view.Status.Terminal() {
		x, y := l.cellPos(g.cursor)
		dst.SetColor(x-1, y, '[', core.ColorBrightWhite)
		dst.SetColor(x+1, y, ']', core.ColorBrightWhite)
	}
}

// cellGlyph picks the rune and color for one cell.
func cellGlyph(cell engine.CellView, status engine.GameStatus) (rune, core.Color) {
	switch {
	case cell.Exploded:
		return glyphExploded, core.ColorBrightRed
	case cell.Flagged && status.Terminal() && !cell.Mine:
		return glyphBadFlag, core.ColorRed
	case cell.Flagged:
		return glyphFlag, core.ColorYellow
	case cell.Mine:
		return glyphMine, core.ColorRed
	case !cell.Visited:
		return glyphHidden, core.ColorGray
	case cell.Adjacent == 0:
		return ' ', core.ColorDefault
	default:
		return rune('0' + cell.Adjacent), core.AdjacentColor(cell.Adjacent)
	}
}

func (g *Game) renderFooter(dst *core.Screen, frame core.Rect) {
	y := frame.Bottom()
	status := g.statusLine()
	dst.DrawTextCentered(y, status, core.ColorWhite)
	dst.DrawTextCentered(y+1, "Space reveal  F flag  P pause  Q quit", core.ColorGray)
}

func (g *Game) statusLine() string {
	switch g.session.Status() {
	case engine.StatusNotStarted:
		return "Reveal any cell to start"
	case engine.StatusWon, engine.StatusLost:
		return "Score: " + strconv.Itoa(g.Score())
	}

	switch g.last.Kind {
	case engine.OutcomeCascadeCleared:
		return fmt.Sprintf("Opened %d cells", len(g.last.Revealed))
	case engine.OutcomeCleared:
		return fmt.Sprintf("%v has %d neighbouring mines", g.last.Cell, g.last.Count)
	}
	return fmt.Sprintf("Revealed %d/%d", RevealedSafe(g.session), g.session.Grid().Size()-g.session.NumMines())
}

func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	centerX := frame.X + frame.W/2
	centerY := frame.Y + frame.H/2

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, core.ColorYellow, "PAUSED", "Press P to resume")
	case g.session.Status() == engine.StatusWon:
		drawOverlay(dst, centerX, centerY, core.ColorGreen,
			"BOARD CLEARED!",
			fmt.Sprintf("Time %s  Score %d", g.Elapsed().Truncate(time.Second), g.Score()),
			"Press R to restart")
	case g.session.Status() == engine.StatusLost:
		drawOverlay(dst, centerX, centerY, core.ColorBrightRed,
			"BOOM",
			fmt.Sprintf("Revealed %d safe cells", RevealedSafe(g.session)),
			"Press R to restart")
	}
}

// drawOverlay draws a boxed message centered on (centerX, centerY).
func drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, color)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColor(x, box.Y+1+i, line, color)
	}
}
