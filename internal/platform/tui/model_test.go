package tui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var errBadBoard = errors.New("bad board")

// stubGame ends as soon as it sees a reveal.
type stubGame struct {
	id       string
	resetErr error
	resets   int
	resized  [2]int
	over     bool
}

func (g *stubGame) ID() string    { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }

func (g *stubGame) Reset(core.RuntimeConfig) error {
	if g.resetErr != nil {
		return g.resetErr
	}
	g.resets++
	g.over = false
	return nil
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionReveal) {
		g.over = true
	}
	return core.StepResult{State: g.State(), Finished: g.over}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, g.id) }

func (g *stubGame) State() core.GameState {
	return core.GameState{GameOver: g.over, Won: g.over, Score: 10}
}

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) Result() (storage.Result, bool) {
	if !g.over {
		return storage.Result{}, false
	}
	return storage.Result{
		GameID: g.id, Rows: 3, Cols: 3, Mines: 1,
		Won: true, Revealed: 8, Score: 10, Elapsed: time.Second,
	}, true
}

func init() {
	registry.Register("stub_a", func() registry.Game { return &stubGame{id: "stub_a"} })
	registry.Register("stub_b", func() registry.Game { return &stubGame{id: "stub_b", resetErr: errBadBoard} })
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

// send feeds msgs through a GameModel and returns the result.
func send(t *testing.T, m GameModel, msgs ...tea.Msg) GameModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		gm, ok := next.(GameModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = gm
	}
	return m
}

func tick() tea.Msg { return TickMsg(time.Now()) }

func TestNewGameModelResetError(t *testing.T) {
	_, err := NewGameModel(&stubGame{id: "x", resetErr: errBadBoard}, nil, testConfig(), nil)
	if !errors.Is(err, errBadBoard) {
		t.Fatalf("err = %v, want %v", err, errBadBoard)
	}
}

func TestGameModelSavesResultOnce(t *testing.T) {
	store := testStore(t)
	game := &stubGame{id: "stub_save"}

	m, err := NewGameModel(game, store, testConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	m = send(t, m, runeKey(' '), tick(), tick(), tick())
	if !m.gameState.GameOver {
		t.Fatal("game should be over after a reveal")
	}

	results, err := store.RecentResults("stub_save", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("saved %d results, want 1", len(results))
	}
	if !results[0].Won || results[0].Elapsed != time.Second {
		t.Errorf("saved %+v", results[0])
	}
}

func TestGameModelRestart(t *testing.T) {
	store := testStore(t)
	game := &stubGame{id: "stub_restart"}

	m, err := NewGameModel(game, store, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Restart is ignored while playing.
	m = send(t, m, runeKey('r'), tick())
	if game.resets != 1 {
		t.Fatalf("resets = %d during play, want 1", game.resets)
	}

	m = send(t, m, runeKey(' '), tick(), runeKey('r'), tick())
	if game.resets != 2 {
		t.Fatalf("resets = %d after restart, want 2", game.resets)
	}
	if m.gameState.GameOver || m.saved {
		t.Error("restart should clear game over and the saved flag")
	}

	m = send(t, m, runeKey(' '), tick())
	results, _ := store.RecentResults("stub_restart", 10)
	if len(results) != 2 {
		t.Errorf("saved %d results over two games, want 2", len(results))
	}
}

func TestGameModelBackOnlyWhenOver(t *testing.T) {
	m, err := NewGameModel(&stubGame{id: "stub_back"}, nil, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	m = send(t, m, esc)
	if m.BackToMenu() {
		t.Fatal("back should be ignored during play")
	}

	m = send(t, m, runeKey(' '), tick(), esc)
	if !m.BackToMenu() {
		t.Fatal("back should work once the game is over")
	}
}

func TestGameModelQuit(t *testing.T) {
	m, err := NewGameModel(&stubGame{id: "stub_quit"}, nil, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if v := next.(GameModel).View(); v != "" {
		t.Errorf("View after quit = %q, want empty", v)
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	game := &stubGame{id: "stub_resize"}
	m, err := NewGameModel(game, nil, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 1 {
		t.Errorf("resets = %d, resizable games should not be reset", game.resets)
	}
	if game.resized != [2]int{100, 40} {
		t.Errorf("resized = %v, want [100 40]", game.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelView(t *testing.T) {
	m, err := NewGameModel(&stubGame{id: "stub_view"}, nil, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m.View(), "stub_view") {
		t.Error("View should contain the rendered game")
	}
}

// sendSession feeds msgs through a SessionModel.
func sendSession(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m
}

func TestSessionModelFlow(t *testing.T) {
	m := NewSessionModel(testStore(t), testConfig(), log.New(io.Discard))
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = sendSession(t, m, enter)
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}

	m = sendSession(t, m, runeKey(' '), tick(), tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v after back, want menu", m.screen)
	}
	if m.menu.items[0].Played != 1 {
		t.Errorf("menu should show the recorded game, got %+v", m.menu.items[0])
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scores", m.screen)
	}
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v after leaving scores, want menu", m.screen)
	}
}

func TestSessionModelStartFailureShowsMessage(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), log.New(io.Discard))

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if !strings.Contains(m.View(), errBadBoard.Error()) {
		t.Error("menu should show why the game could not start")
	}
}

func TestScoreboardToggleView(t *testing.T) {
	store := testStore(t)
	for _, won := range []bool{true, false} {
		if _, err := store.SaveResult(storage.Result{GameID: "stub_a", Won: won, Elapsed: time.Second}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 120, 40)
	if m.view != ViewBestTimes || len(m.results) != 1 {
		t.Fatalf("best times = %d rows, want 1 win", len(m.results))
	}

	next, _ := m.Update(runeKey('r'))
	m = next.(ScoreboardModel)
	if m.view != ViewRecent || len(m.results) != 2 {
		t.Fatalf("recent = %d rows, want 2", len(m.results))
	}
	if !strings.Contains(m.View(), "Played 2") {
		t.Error("stats line missing from view")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00.0"},
		{1500 * time.Millisecond, "0:01.5"},
		{83*time.Second + 250*time.Millisecond, "1:23.2"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
