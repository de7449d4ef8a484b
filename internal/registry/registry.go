// Package registry maps game ids to factories. Games register themselves in
// init() so front ends can list and create them by id.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

// ErrUnknownGame is returned by Create for ids that were never registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the interface front ends drive. Implementations hold no terminal
// state; the platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns the registered identifier, also used as the score key.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh round. It fails when the configured board
	// cannot be built.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the game by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Resizable is implemented by games that can adapt to a new screen size
// without losing their state. Other games are reset on resize.
type Resizable interface {
	Resize(width, height int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
