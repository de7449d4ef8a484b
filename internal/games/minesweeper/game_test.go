package minesweeper

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

func useConfig(t *testing.T, rows, cols, mines, firstDepth, depth int) {
	t.Helper()
	SetConfig(&config.MinesweeperConfig{
		Board:   config.BoardConfig{Rows: rows, Cols: cols, Mines: mines},
		Cascade: config.CascadeConfig{FirstDepth: firstDepth, Depth: depth},
	})
	t.Cleanup(func() { SetConfig(nil) })
}

func newGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed}
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"minesweeper", "minesweeper_unbounded"} {
		if !registry.Exists(id) {
			t.Errorf("game %q is not registered", id)
		}
	}

	g, err := registry.Create("minesweeper_unbounded")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Minesweeper (Unbounded)" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestResetStartsWaiting(t *testing.T) {
	useConfig(t, 9, 9, 10, 3, 5)
	g := newGame(t, New(), 1)

	snap := g.Snapshot()
	if snap.State != StateWaiting {
		t.Errorf("State = %s, want waiting", snap.State)
	}
	if snap.Cursor != engine.C(4, 4) {
		t.Errorf("Cursor = %v, want (4,4)", snap.Cursor)
	}
	if len(snap.Board.Mines) != 10 {
		t.Errorf("board has %d mines, want 10", len(snap.Board.Mines))
	}
	if g.State().GameOver {
		t.Error("new game should not be over")
	}
}

func TestResetRejectsCrowdedBoard(t *testing.T) {
	useConfig(t, 4, 4, 8, 3, 5)

	err := New().Reset(core.DefaultConfig())
	var cfgErr *engine.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Reset() error = %v, want ConfigError", err)
	}
}

func TestCursorClamped(t *testing.T) {
	useConfig(t, 9, 9, 10, 3, 5)
	g := newGame(t, New(), 1)

	for i := 0; i < 12; i++ {
		g.Step(frame(core.ActionUp, core.ActionLeft))
	}
	if g.cursor != engine.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}

	for i := 0; i < 12; i++ {
		g.Step(frame(core.ActionDown, core.ActionRight))
	}
	if g.cursor != engine.C(8, 8) {
		t.Errorf("cursor = %v, want (8,8)", g.cursor)
	}
}

func TestUnboundedWinOnFirstReveal(t *testing.T) {
	useConfig(t, 9, 9, 0, 3, 5)
	g := newGame(t, NewUnbounded(), 1)

	res := g.Step(frame(core.ActionReveal))
	if !res.Finished || !res.State.GameOver || !res.State.Won {
		t.Fatalf("Step() = %+v, want a finished win", res)
	}
	if res.State.Score != 81+maxTimeBonus {
		t.Errorf("Score = %d, want %d", res.State.Score, 81+maxTimeBonus)
	}

	r, ok := g.Result()
	if !ok {
		t.Fatal("Result() not available after win")
	}
	if r.GameID != "minesweeper_unbounded" || !r.Won || r.Revealed != 81 || r.Seed != 1 {
		t.Errorf("Result() = %+v", r)
	}
}

func TestResultUnavailableWhilePlaying(t *testing.T) {
	useConfig(t, 9, 9, 10, 3, 5)
	g := newGame(t, New(), 1)

	if _, ok := g.Result(); ok {
		t.Error("Result() should not be available before the game ends")
	}
}

func TestMineHitEndsGame(t *testing.T) {
	useConfig(t, 9, 9, 10, 0, 0)
	g := newGame(t, New(), 3)

	g.Step(frame(core.ActionReveal))
	if g.session.Status() != engine.StatusInProgress {
		t.Fatalf("status after first reveal = %v", g.session.Status())
	}

	g.cursor = g.session.Snapshot().Mines[0]
	res := g.Step(frame(core.ActionReveal))
	if !res.Finished || res.State.Won {
		t.Fatalf("Step() = %+v, want a finished loss", res)
	}
	if res.State.Score != 1 {
		t.Errorf("Score = %d, want 1 (only the first cell)", res.State.Score)
	}

	r, ok := g.Result()
	if !ok || r.Won || r.Revealed != 1 {
		t.Errorf("Result() = %+v, %v", r, ok)
	}

	// Input is ignored once the game is over.
	before := g.Snapshot()
	g.Step(frame(core.ActionFlag, core.ActionPause))
	after := g.Snapshot()
	if !reflect.DeepEqual(before.Board, after.Board) || after.State != StateLost {
		t.Error("finished game changed after input")
	}
}

func TestFlagToggle(t *testing.T) {
	useConfig(t, 9, 9, 10, 3, 5)
	g := newGame(t, New(), 1)

	g.Step(frame(core.ActionFlag))
	if got := g.session.MinesRemaining(); got != 9 {
		t.Errorf("MinesRemaining after flag = %d, want 9", got)
	}
	g.Step(frame(core.ActionReveal))
	if g.session.Status() != engine.StatusNotStarted {
		t.Error("reveal on a flagged cell should not start the game")
	}
	g.Step(frame(core.ActionFlag))
	if got := g.session.FlagCount(); got != 0 {
		t.Errorf("FlagCount after second toggle = %d, want 0", got)
	}
}

func TestPointerInput(t *testing.T) {
	useConfig(t, 9, 9, 10, 0, 0)
	g := newGame(t, New(), 1)
	l := g.layout()

	x, y := l.cellPos(engine.C(2, 7))
	in := core.NewInputFrame()
	in.Press(x, y, core.PointerPrimary)
	g.Step(in)

	if g.cursor != engine.C(2, 7) {
		t.Errorf("cursor = %v, want (2,7)", g.cursor)
	}
	if !g.session.Cell(engine.C(2, 7)).Visited {
		t.Error("primary click did not reveal the cell")
	}

	// The spacer left of a glyph belongs to the same cell.
	x, y = l.cellPos(engine.C(6, 1))
	in.Clear()
	in.Press(x-1, y, core.PointerSecondary)
	g.Step(in)
	if !g.session.Cell(engine.C(6, 1)).Flagged {
		t.Error("secondary click did not flag the cell")
	}

	// Clicks on the frame are ignored.
	f := l.frame()
	in.Clear()
	in.Press(f.X, f.Y, core.PointerPrimary)
	g.Step(in)
	if g.cursor != engine.C(6, 1) {
		t.Errorf("click outside the board moved the cursor to %v", g.cursor)
	}
}

func TestClockRunsOnlyWhilePlaying(t *testing.T) {
	useConfig(t, 9, 9, 10, 0, 0)
	g := newGame(t, New(), 1)

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Elapsed() != 0 {
		t.Errorf("clock ran before the first reveal: %v", g.Elapsed())
	}

	g.Step(frame(core.ActionReveal))
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Elapsed() != time.Second {
		t.Errorf("Elapsed = %v, want 1s", g.Elapsed())
	}

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Elapsed() != time.Second {
		t.Errorf("clock ran while paused: %v", g.Elapsed())
	}
}

func TestTooSmallScreen(t *testing.T) {
	useConfig(t, 9, 9, 10, 3, 5)
	g := New()
	if err := g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 30, Seed: 1}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	if g.Snapshot().State != StatePausedSmall || !g.State().Paused {
		t.Fatalf("State = %s, want paused_small_window", g.Snapshot().State)
	}
	g.Step(frame(core.ActionReveal))
	if g.session.Status() != engine.StatusNotStarted {
		t.Error("input handled on a too-small screen")
	}

	screen := core.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("too-small screen not rendered:\n%s", screen.String())
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StateWaiting {
		t.Errorf("State after resize = %s, want waiting", g.Snapshot().State)
	}
}

func TestRender(t *testing.T) {
	useConfig(t, 9, 9, 10, 3, 5)
	g := newGame(t, New(), 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Minesweeper") {
		t.Errorf("title missing: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Mines: 10") {
		t.Errorf("mine counter missing: %q", screen.Row(1))
	}

	x, y := g.layout().cellPos(g.cursor)
	if screen.Get(x-1, y) != '[' || screen.Get(x+1, y) != ']' {
		t.Error("cursor brackets missing")
	}
	if c := screen.GetCell(x, y); c.Rune != glyphHidden || c.Color != core.ColorGray {
		t.Errorf("hidden cell drawn as %+v", c)
	}
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		name   string
		cell   engine.CellView
		status engine.GameStatus
		glyph  rune
	}{
		{"hidden", engine.CellView{}, engine.StatusInProgress, glyphHidden},
		{"flag", engine.CellView{Flagged: true}, engine.StatusInProgress, glyphFlag},
		{"empty", engine.CellView{Visited: true}, engine.StatusInProgress, ' '},
		{"number", engine.CellView{Visited: true, Adjacent: 3}, engine.StatusInProgress, '3'},
		{"mine shown", engine.CellView{Mine: true}, engine.StatusLost, glyphMine},
		{"exploded", engine.CellView{Mine: true, Visited: true, Exploded: true}, engine.StatusLost, glyphExploded},
		{"correct flag", engine.CellView{Mine: true, Flagged: true}, engine.StatusLost, glyphFlag},
		{"wrong flag", engine.CellView{Flagged: true}, engine.StatusLost, glyphBadFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := cellGlyph(tt.cell, tt.status); got != tt.glyph {
				t.Errorf("cellGlyph() = %q, want %q", got, tt.glyph)
			}
		})
	}
}

func TestDeterministicPlay(t *testing.T) {
	useConfig(t, 12, 12, 20, 3, 5)

	inputs := []core.InputFrame{
		frame(core.ActionReveal),
		frame(core.ActionLeft, core.ActionUp),
		frame(core.ActionLeft),
		frame(core.ActionFlag),
		frame(core.ActionDown),
		frame(core.ActionReveal),
		frame(core.ActionRight, core.ActionRight),
		frame(core.ActionReveal),
	}

	play := func() Snapshot {
		g := newGame(t, New(), 777)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}
