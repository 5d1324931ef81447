package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionLeft                // A, Left arrow - held movement
	ActionRight               // D, Right arrow - held movement
	ActionJump                // Space, W, Up - jump edge
	ActionFire                // F, X - fire edge
	ActionConfirm             // Enter - advance past the results screen
	ActionRestart             // R - restart after win or game over
	ActionPause               // P - pause/unpause game
	ActionBack                // Esc - go back to menu
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionToggleEditor        // E - switch between game and editor
	ActionSave                // Ctrl+S - save custom level
	ActionLoad                // Ctrl+L - load custom level
	ActionPlayCustom          // T - play the edited level
	ActionTool1               // 1..9 - select editor tool
	ActionTool2
	ActionTool3
	ActionTool4
	ActionTool5
	ActionTool6
	ActionTool7
	ActionTool8
	ActionTool9
)

var actionNames = map[Action]string{
	ActionNone:         "None",
	ActionLeft:         "Left",
	ActionRight:        "Right",
	ActionJump:         "Jump",
	ActionFire:         "Fire",
	ActionConfirm:      "Confirm",
	ActionRestart:      "Restart",
	ActionPause:        "Pause",
	ActionBack:         "Back",
	ActionQuit:         "Quit",
	ActionToggleEditor: "ToggleEditor",
	ActionSave:         "Save",
	ActionLoad:         "Load",
	ActionPlayCustom:   "PlayCustom",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	if a >= ActionTool1 && a <= ActionTool9 {
		return "Tool" + string(rune('1'+int(a-ActionTool1)))
	}
	return "Unknown"
}

// ToolIndex returns the zero-based tool slot for ActionTool1..ActionTool9.
func (a Action) ToolIndex() (int, bool) {
	if a < ActionTool1 || a > ActionTool9 {
		return 0, false
	}
	return int(a - ActionTool1), true
}

// Pointer is the mouse state for one tick, in screen cells.
type Pointer struct {
	Col, Row int
	Down     bool // button currently held
	Pressed  bool // button went down this tick
}

// InputFrame represents the input state for a single player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is valid only when HasPointer is set.
	Pointer    Pointer
	HasPointer bool
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

// SetPointer records the pointer state for this frame.
func (f *InputFrame) SetPointer(p Pointer) {
	f.Pointer = p
	f.HasPointer = true
}

// Clear resets all actions and the pointer edge for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer.Pressed = false
	f.HasPointer = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	clone.HasPointer = f.HasPointer
	return clone
}
