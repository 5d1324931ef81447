package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// holdTicks is how long a movement key stays held after its last key
// event. Terminals repeat a held key but never report its release.
const holdTicks = 8

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "left", "a":
		return core.ActionLeft, false
	case "right", "d":
		return core.ActionRight, false
	case " ", "up", "w":
		return core.ActionJump, false
	case "f", "x":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "r":
		return core.ActionRestart, false
	case "p":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	case "e":
		return core.ActionToggleEditor, false
	case "ctrl+s":
		return core.ActionSave, false
	case "ctrl+l":
		return core.ActionLoad, false
	case "t":
		return core.ActionPlayCustom, false
	}

	// Editor tools 1-9
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.ActionTool1 + core.Action(key[0]-'1'), false
	}

	return core.ActionNone, false
}

// IsHeld reports whether an action is a held movement rather than an edge.
func IsHeld(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}

// heldKeys emulates key-up for movement keys: a press keeps the direction
// held for holdTicks ticks, and repeats from the terminal extend it.
type heldKeys struct {
	left, right int
}

// press marks a direction held. The opposite direction is released.
func (h *heldKeys) press(a core.Action) {
	switch a {
	case core.ActionLeft:
		h.left, h.right = holdTicks, 0
	case core.ActionRight:
		h.left, h.right = 0, holdTicks
	}
}

// apply sets the held directions on the frame and ages them by one tick.
func (h *heldKeys) apply(f *core.InputFrame) {
	if h.left > 0 {
		f.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		f.Set(core.ActionRight)
		h.right--
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
