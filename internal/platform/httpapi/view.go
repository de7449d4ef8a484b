package httpapi

import (
	"strconv"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
)

// Board glyphs used in SessionView.Board.
const (
	glyphHidden    = '#'
	glyphFlag      = 'F'
	glyphMine      = '*'
	glyphExploded  = 'X'
	glyphWrongFlag = 'x'
)

// CoordJSON is a cell position on the wire.
type CoordJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func toCoordJSON(c engine.Coord) CoordJSON {
	return CoordJSON{Row: c.Row, Col: c.Col}
}

// SessionView is the public state of one session. Mines stay hidden until
// the game is over.
type SessionView struct {
	ID             string   `json:"id"`
	Mode           string   `json:"mode"`
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	Mines          int      `json:"mines"`
	MinesRemaining int      `json:"mines_remaining"`
	Revealed       int      `json:"revealed"`
	Moves          int      `json:"moves"`
	Status         string   `json:"status"`
	Score          int      `json:"score"`
	ElapsedMS      int64    `json:"elapsed_ms"`
	Seed           *int64   `json:"seed,omitempty"` // Only once the game is over
	Board          []string `json:"board"`
}

// RevealResponse reports one reveal request.
type RevealResponse struct {
	Outcome  string      `json:"outcome"`
	Cell     CoordJSON   `json:"cell"`
	Count    int         `json:"count"`
	Revealed []CoordJSON `json:"revealed"`
	Session  SessionView `json:"session"`
}

// FlagResponse reports one flag toggle.
type FlagResponse struct {
	Flag    string      `json:"flag"`
	Cell    CoordJSON   `json:"cell"`
	Session SessionView `json:"session"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// renderBoard draws the board as one string per row.
func renderBoard(v engine.BoardView) []string {
	over := v.Status.Terminal()
	rows := make([]string, v.Rows)
	for r, line := range v.Cells {
		buf := make([]byte, len(line))
		for c, cell := range line {
			buf[c] = cellGlyph(cell, over)
		}
		rows[r] = string(buf)
	}
	return rows
}

func cellGlyph(cell engine.CellView, over bool) byte {
	switch {
	case cell.Exploded:
		return glyphExploded
	case cell.Flagged && over && !cell.Mine:
		return glyphWrongFlag
	case cell.Flagged:
		return glyphFlag
	case cell.Visited:
		return strconv.Itoa(cell.Adjacent)[0]
	case over && cell.Mine:
		return glyphMine
	default:
		return glyphHidden
	}
}
