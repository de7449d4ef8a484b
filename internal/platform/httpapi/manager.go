package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("httpapi: session not found")

// NewSessionParams describes a session to create. Nil fields take the
// manager's defaults.
type NewSessionParams struct {
	Rows      *int
	Cols      *int
	Mines     *int
	Seed      *int64
	Unbounded bool
}

// entry is one live session. All fields are guarded by Manager.mu.
type entry struct {
	id       string
	mode     minesweeper.Mode
	seed     int64
	session  *engine.Session
	started  time.Time // First reveal, zero before
	finished time.Time
	lastSeen time.Time
}

func (e *entry) elapsed(now time.Time) time.Duration {
	switch {
	case e.started.IsZero():
		return 0
	case !e.finished.IsZero():
		return e.finished.Sub(e.started)
	default:
		return now.Sub(e.started)
	}
}

// Manager holds the live sessions of the API. Engine sessions are not safe
// for concurrent use, so every access goes through mu.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	defaults config.MinesweeperConfig
	ttl      time.Duration
	maxCells int
	now      func() time.Time
	store    *storage.Store
	metrics  *Metrics
	logger   *log.Logger
}

// NewManager creates an empty manager. store may be nil.
// maxCells caps rows*cols of new sessions; zero or less means no cap.
func NewManager(defaults config.MinesweeperConfig, ttl time.Duration, maxCells int, store *storage.Store, metrics *Metrics, logger *log.Logger) *Manager {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		sessions: make(map[string]*entry),
		defaults: defaults,
		ttl:      ttl,
		maxCells: maxCells,
		now:      time.Now,
		store:    store,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create starts a new session and returns its view.
func (m *Manager) Create(p NewSessionParams) (SessionView, error) {
	cfg := m.defaults
	if p.Rows != nil {
		cfg.Board.Rows = *p.Rows
	}
	if p.Cols != nil {
		cfg.Board.Cols = *p.Cols
	}
	if p.Mines != nil {
		cfg.Board.Mines = *p.Mines
	}
	if p.Unbounded {
		cfg.Cascade.Unbounded = true
	}
	if err := cfg.Validate(); err != nil {
		return SessionView{}, err
	}
	if b := cfg.Board; m.maxCells > 0 && b.Rows*b.Cols > m.maxCells {
		return SessionView{}, &engine.ConfigError{
			Rows:   b.Rows,
			Cols:   b.Cols,
			Mines:  b.Mines,
			Reason: fmt.Sprintf("board exceeds the %d cell limit", m.maxCells),
		}
	}

	seed := m.now().UnixNano()
	if p.Seed != nil {
		seed = *p.Seed
	}

	session, err := engine.NewSession(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.Mines,
		engine.NewSource(seed), cfg.SessionOptions()...)
	if err != nil {
		return SessionView{}, fmt.Errorf("httpapi: cannot create session: %w", err)
	}

	mode := minesweeper.ModeBounded
	if cfg.Cascade.Unbounded {
		mode = minesweeper.ModeUnbounded
	}

	now := m.now()
	e := &entry{
		id:       uuid.NewString(),
		mode:     mode,
		seed:     seed,
		session:  session,
		lastSeen: now,
	}

	m.mu.Lock()
	m.sessions[e.id] = e
	active := len(m.sessions)
	view := m.viewLocked(e)
	m.mu.Unlock()

	m.metrics.sessionsCreated.Inc()
	m.metrics.activeSessions.Set(float64(active))
	m.logger.Debug("session created", "id", e.id, "mode", mode,
		"rows", cfg.Board.Rows, "cols", cfg.Board.Cols, "mines", cfg.Board.Mines)
	return view, nil
}

// Get returns the current view of a session.
func (m *Manager) Get(id string) (SessionView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookupLocked(id)
	if err != nil {
		return SessionView{}, err
	}
	return m.viewLocked(e), nil
}

// Reveal applies a reveal request. Rejected requests return the response
// together with the rejection reason.
func (m *Manager) Reveal(id string, c engine.Coord) (RevealResponse, error) {
	m.mu.Lock()
	e, err := m.lookupLocked(id)
	if err != nil {
		m.mu.Unlock()
		return RevealResponse{}, err
	}

	wasOver := e.session.Status().Terminal()
	out := e.session.Reveal(c)
	if e.started.IsZero() && e.session.Status() != engine.StatusNotStarted {
		e.started = m.now()
	}
	finished := !wasOver && e.session.Status().Terminal()
	if finished {
		e.finished = m.now()
	}

	resp := RevealResponse{
		Outcome:  out.Kind.String(),
		Cell:     toCoordJSON(out.Cell),
		Count:    out.Count,
		Revealed: make([]CoordJSON, 0, len(out.Revealed)),
		Session:  m.viewLocked(e),
	}
	for _, rc := range out.Revealed {
		resp.Revealed = append(resp.Revealed, toCoordJSON(rc))
	}

	var result storage.Result
	if finished {
		result = m.resultLocked(e)
	}
	m.mu.Unlock()

	m.metrics.reveals.WithLabelValues(out.Kind.String()).Inc()
	if finished {
		m.finish(result)
	}

	if out.Kind == engine.OutcomeRejected {
		return resp, out.Reason
	}
	return resp, nil
}

// Flag toggles the flag on a cell.
func (m *Manager) Flag(id string, c engine.Coord) (FlagResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookupLocked(id)
	if err != nil {
		return FlagResponse{}, err
	}
	if e.session.Status().Terminal() {
		return FlagResponse{}, engine.ErrSessionOver
	}
	if !e.session.Grid().InBounds(c) {
		return FlagResponse{}, engine.ErrOutOfBounds
	}

	state := e.session.ToggleFlag(c)
	return FlagResponse{
		Flag:    state.String(),
		Cell:    toCoordJSON(c),
		Session: m.viewLocked(e),
	}, nil
}

// Delete drops a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.metrics.activeSessions.Set(float64(len(m.sessions)))
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict removes sessions idle for longer than the TTL and returns how many
// were dropped. A non-positive TTL disables eviction.
func (m *Manager) Evict() int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	evicted := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.metrics.activeSessions.Set(float64(len(m.sessions)))
		m.logger.Debug("evicted idle sessions", "count", evicted, "active", len(m.sessions))
	}
	return evicted
}

// Run evicts idle sessions periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if m.ttl <= 0 {
		return
	}

	interval := m.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evict()
		}
	}
}

func (m *Manager) lookupLocked(id string) (*entry, error) {
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = m.now()
	return e, nil
}

func (m *Manager) viewLocked(e *entry) SessionView {
	bv := e.session.View()
	elapsed := e.elapsed(m.now())
	v := SessionView{
		ID:             e.id,
		Mode:           string(e.mode),
		Rows:           bv.Rows,
		Cols:           bv.Cols,
		Mines:          bv.Mines,
		MinesRemaining: bv.MinesRemaining,
		Revealed:       bv.Revealed,
		Moves:          e.session.Moves(),
		Status:         bv.Status.String(),
		Score:          minesweeper.Score(e.session, elapsed),
		ElapsedMS:      elapsed.Milliseconds(),
		Board:          renderBoard(bv),
	}
	if bv.Status.Terminal() {
		seed := e.seed
		v.Seed = &seed
	}
	return v
}

func (m *Manager) resultLocked(e *entry) storage.Result {
	grid := e.session.Grid()
	elapsed := e.elapsed(m.now())
	return storage.Result{
		GameID:   string(e.mode),
		Rows:     grid.Rows,
		Cols:     grid.Cols,
		Mines:    e.session.NumMines(),
		Won:      e.session.Status() == engine.StatusWon,
		Revealed: minesweeper.RevealedSafe(e.session),
		Score:    minesweeper.Score(e.session, elapsed),
		Elapsed:  elapsed,
		Seed:     e.seed,
	}
}

// finish counts a finished game and records it when a store is set.
func (m *Manager) finish(r storage.Result) {
	status := engine.StatusLost.String()
	if r.Won {
		status = engine.StatusWon.String()
	}
	m.metrics.gamesFinished.WithLabelValues(status).Inc()

	if m.store == nil {
		return
	}
	id, err := m.store.SaveResult(r)
	if err != nil {
		m.logger.Warn("could not save result", "game", r.GameID, "error", err)
		return
	}
	m.logger.Debug("result saved", "id", id, "game", r.GameID, "won", r.Won)
}
