package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sweeper/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Logger receives server events. A default stderr logger is used if nil.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.sweeper/results.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServer wraps a Wish SSH server that serves the game menu.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "sweeper-ssh",
		})
	}

	// Results are optional; sessions still play without them.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sweeper", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.store, cfg, logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Truncate(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model used for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	logger    *log.Logger
	screen    sessionScreen
	menu      MenuModel
	gameModel *GameModel
	scores    ScoreboardModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// showMenu rebuilds the menu so best times reflect new results.
func (m SessionModel) showMenu(message string) (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.store, m.config).WithMessage(message)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// The menu asks to quit the program whenever it is done; the session
	// decides what actually happens next.
	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}

	return m, cmd
}

func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		return m.showMenu(err.Error())
	}

	m.config = m.menu.Config()
	m.config.Seed = time.Now().UnixNano()

	gameModel, err := NewGameModel(game, m.store, m.config, m.logger)
	if err != nil {
		m.logger.Warn("could not start game", "game", gameID, "error", err)
		return m.showMenu(err.Error())
	}

	m.logger.Debug("game started", "game", gameID, "seed", m.config.Seed)
	m.gameModel = &gameModel
	m.screen = screenGame
	return m, m.gameModel.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	switch {
	case m.gameModel.Err() != nil:
		return m.showMenu(m.gameModel.Err().Error())
	case m.gameModel.BackToMenu():
		return m.showMenu("")
	case m.gameModel.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsGoingBack():
		return m.showMenu("")
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}
