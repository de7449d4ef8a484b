package minesweeper

import "github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateWaiting     GameStateType = "waiting"
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	PlayTicks uint64
	Mode      string
	Seed      int64
	Cursor    engine.Coord
	Score     int
	State     GameStateType
	Board     engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		PlayTicks: g.playTicks,
		Mode:      string(g.mode),
		Seed:      g.seed,
		Cursor:    g.cursor,
		Score:     g.Score(),
	}
	if g.session == nil {
		return snap
	}
	snap.Board = g.session.Snapshot()

	switch status := g.session.Status(); {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case status == engine.StatusWon:
		snap.State = StateWon
	case status == engine.StatusLost:
		snap.State = StateLost
	case g.paused:
		snap.State = StatePaused
	case status == engine.StatusNotStarted:
		snap.State = StateWaiting
	default:
		snap.State = StatePlaying
	}
	return snap
}
