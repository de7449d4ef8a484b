// Package minesweeper drives an engine.Session as a registry.Game: cursor and
// mouse input, a tick-based clock, scoring and rendering into core.Screen.
package minesweeper

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// Mode selects the cascade behaviour.
type Mode string

const (
	ModeBounded   Mode = "minesweeper"
	ModeUnbounded Mode = "minesweeper_unbounded"
)

// Game implements minesweeper on top of the engine.
type Game struct {
	mode    Mode
	cfg     config.MinesweeperConfig
	seed    int64
	session *engine.Session

	tick      uint64
	playTicks uint64 // Ticks spent in progress, unpaused
	tickRate  int

	cursor engine.Coord
	last   engine.RevealOutcome

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// Package-level settings applied on the next Reset.
var (
	configPath     string
	overrideRows   int
	overrideCols   int
	overrideMines  int
	configOverride *config.MinesweeperConfig
)

// SetConfigPath sets the YAML file loaded on Reset. Empty uses the default search.
func SetConfigPath(path string) {
	configPath = path
}

// SetBoardOverrides replaces the configured board values. Zero keeps a value.
func SetBoardOverrides(rows, cols, mines int) {
	overrideRows, overrideCols, overrideMines = rows, cols, mines
}

// SetConfig bypasses file loading with an explicit configuration.
// Pass nil to return to file loading.
func SetConfig(cfg *config.MinesweeperConfig) {
	configOverride = cfg
}

// New creates a game with the bounded cascade.
func New() *Game {
	return &Game{mode: ModeBounded}
}

// NewUnbounded creates a game whose reveals open whole zero regions.
func NewUnbounded() *Game {
	return &Game{mode: ModeUnbounded}
}

func init() {
	registry.Register(string(ModeBounded), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeUnbounded), func() registry.Game {
		return NewUnbounded()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeUnbounded {
		return "Minesweeper (Unbounded)"
	}
	return "Minesweeper"
}

// loadConfig resolves the board configuration for the next round.
func (g *Game) loadConfig() (config.MinesweeperConfig, error) {
	var cfg config.MinesweeperConfig
	if configOverride != nil {
		cfg = *configOverride
	} else {
		loaded, err := config.LoadMinesweeper(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(overrideRows, overrideCols, overrideMines)
	if g.mode == ModeUnbounded {
		cfg.Cascade.Unbounded = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Reset starts a new round with a freshly generated board.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("minesweeper: %w", err)
	}

	session, err := engine.NewSession(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.Mines, engine.NewSource(rc.Seed), cfg.SessionOptions()...)
	if err != nil {
		return fmt.Errorf("minesweeper: %w", err)
	}

	g.cfg = cfg
	g.seed = rc.Seed
	g.session = session
	g.tick = 0
	g.playTicks = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.cursor = engine.C(cfg.Board.Rows/2, cfg.Board.Cols/2)
	g.last = engine.RevealOutcome{}
	g.paused = false
	g.Resize(rc.ScreenW, rc.ScreenH)
	return nil
}

// Resize adapts the layout to a new screen size, keeping the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	if g.session == nil {
		return
	}
	l := g.layout()
	g.tooSmall = g.screenW < l.minWidth() || g.screenH < l.minHeight()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.session == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	status := g.session.Status()
	if in.Has(core.ActionPause) && !status.Terminal() {
		g.paused = !g.paused
	}
	if g.paused || status.Terminal() {
		return core.StepResult{State: g.State()}
	}

	if status == engine.StatusInProgress {
		g.playTicks++
	}

	g.moveCursor(in)

	if in.Pressed() {
		if c, ok := g.layout().cellAt(in.Pointer.X, in.Pointer.Y); ok {
			g.cursor = c
			switch in.Pointer.Button {
			case core.PointerPrimary:
				g.reveal(c)
			case core.PointerSecondary:
				g.session.ToggleFlag(c)
			}
		}
	}

	switch {
	case in.Has(core.ActionReveal):
		g.reveal(g.cursor)
	case in.Has(core.ActionFlag):
		g.session.ToggleFlag(g.cursor)
	}

	return core.StepResult{
		State:    g.State(),
		Finished: g.session.Status().Terminal(),
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	grid := g.session.Grid()
	row, col := g.cursor.Row, g.cursor.Col
	switch {
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	}
	switch {
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	}
	g.cursor = engine.C(core.Clamp(row, 0, grid.Rows-1), core.Clamp(col, 0, grid.Cols-1))
}

func (g *Game) reveal(c engine.Coord) {
	out := g.session.Reveal(c)
	if out.Kind != engine.OutcomeAlreadyHandled {
		g.last = out
	}
}

// Elapsed returns the game clock derived from ticks.
func (g *Game) Elapsed() time.Duration {
	if g.tickRate <= 0 {
		return 0
	}
	return time.Duration(g.playTicks) * time.Second / time.Duration(g.tickRate)
}

// Score returns the score of the current session.
func (g *Game) Score() int {
	if g.session == nil {
		return 0
	}
	return Score(g.session, g.Elapsed())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	status := g.session.Status()
	return core.GameState{
		Score:    g.Score(),
		GameOver: status.Terminal(),
		Won:      status == engine.StatusWon,
		Paused:   g.paused || g.tooSmall,
	}
}

// Result returns the record of a finished game. ok is false while the game
// is still running.
func (g *Game) Result() (r storage.Result, ok bool) {
	if g.session == nil || !g.session.Status().Terminal() {
		return r, false
	}
	grid := g.session.Grid()
	return storage.Result{
		GameID:   g.ID(),
		Rows:     grid.Rows,
		Cols:     grid.Cols,
		Mines:    g.session.NumMines(),
		Won:      g.session.Status() == engine.StatusWon,
		Revealed: RevealedSafe(g.session),
		Score:    g.Score(),
		Elapsed:  g.Elapsed(),
		Seed:     g.seed,
	}, true
}

// Session exposes the running engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Reveal | F: Flag | Mouse: L reveal, R flag | P: Pause | R: Restart | Q: Quit"
}
