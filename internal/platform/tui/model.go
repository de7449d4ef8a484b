package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// resultReporter is implemented by games that produce a storable record
// once they finish.
type resultReporter interface {
	Result() (storage.Result, bool)
}

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger // nil when the terminal is ours
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	saved      bool // Whether the finished game has been recorded
	err        error
}

// NewGameModel resets the game and wraps it in a model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (GameModel, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := game.Reset(cfg); err != nil {
		return GameModel{}, err
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keyMapper:  NewKeyMapper(),
	}, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when the game is over or paused.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		if err := m.game.Reset(m.config); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		if err := m.game.Reset(m.config); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished game. Saving is best-effort.
func (m *GameModel) saveResult() {
	if m.store == nil {
		return
	}
	reporter, ok := m.game.(resultReporter)
	if !ok {
		return
	}
	r, ok := reporter.Result()
	if !ok {
		return
	}

	id, err := m.store.SaveResult(r)
	if m.logger == nil {
		return
	}
	if err != nil {
		m.logger.Warn("could not save result", "game", r.GameID, "error", err)
		return
	}
	m.logger.Debug("result saved", "id", id, "game", r.GameID, "won", r.Won, "elapsed", r.Elapsed)
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sweeper", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that stopped the game, if any.
func (m GameModel) Err() error {
	return m.err
}

// Run plays one game in the local terminal until the player quits or goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewGameModel(game, store, cfg, nil)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		backQuits{model},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if bq, ok := final.(backQuits); ok {
		return bq.Err()
	}
	return nil
}

// backQuits ends the program when a standalone game goes back to the menu.
type backQuits struct {
	GameModel
}

func (b backQuits) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := b.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		b.GameModel = gm
	}
	if b.BackToMenu() {
		return b, tea.Quit
	}
	return b, cmd
}
