package minesweeper

import (
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
)

// maxTimeBonus is the score bonus for an instant win; it drops by one per second.
const maxTimeBonus = 1000

// RevealedSafe counts visited cells that are not the losing mine.
func RevealedSafe(s *engine.Session) int {
	n := s.RevealedCount()
	if s.Status() == engine.StatusLost {
		n--
	}
	return n
}

// Score is the number of revealed safe cells, plus a time bonus on a win.
func Score(s *engine.Session, elapsed time.Duration) int {
	score := RevealedSafe(s)
	if s.Status() == engine.StatusWon {
		score += core.Max(0, maxTimeBonus-int(elapsed/time.Second))
	}
	return score
}
