package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, H, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionReveal         // Space - reveal the cell under the cursor
	ActionFlag           // F - toggle a flag under the cursor
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause the clock
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionReveal:
		return "Reveal"
	case ActionFlag:
		return "Flag"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerButton identifies the mouse button of a pointer event.
type PointerButton int

const (
	PointerNone PointerButton = iota
	PointerPrimary
	PointerSecondary
)

// Pointer is a mouse press in screen cells.
type Pointer struct {
	X, Y   int
	Button PointerButton
}

// InputFrame holds the input collected during one tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the last mouse press of the frame. Button is PointerNone
	// when there was none.
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Press records a pointer press, replacing any earlier one in the frame.
func (f *InputFrame) Press(x, y int, button PointerButton) {
	f.Pointer = Pointer{X: x, Y: y, Button: button}
}

// Pressed reports whether the frame carries a pointer press.
func (f InputFrame) Pressed() bool {
	return f.Pointer.Button != PointerNone
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = Pointer{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	return clone
}
