package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "k", "up":
		return core.ActionUp, false
	case "s", "j", "down":
		return core.ActionDown, false
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case " ", "space", "enter":
		return core.ActionReveal, false
	case "f", "m":
		return core.ActionFlag, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records a mouse press in the frame. Releases, motion and
// wheel events are ignored. Returns true if the press was recorded.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		frame.Press(msg.X, msg.Y, core.PointerPrimary)
	case tea.MouseButtonRight:
		frame.Press(msg.X, msg.Y, core.PointerSecondary)
	default:
		return false
	}
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
