package game

import "github.com/gdamore/tcell/v2"

// Action represents a viewer-requested action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionJump
	ActionCutawayDown
	ActionCutawayUp
	ActionQuit
)

// keyToAction maps a tcell key event to an action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k', 'K', 'w', 'W':
		return ActionMoveN
	case 'j', 'J', 's', 'S':
		return ActionMoveS
	case 'l', 'L', 'd', 'D':
		return ActionMoveE
	case 'h', 'H', 'a', 'A':
		return ActionMoveW
	case ' ':
		return ActionJump
	case '[':
		return ActionCutawayDown
	case ']':
		return ActionCutawayUp
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a movement action to a world (dx, dy). North is
// -y, so it runs up and to the right on screen.
func actionToDelta(a Action) (float64, float64) {
	switch a {
	case ActionMoveN:
		return 0, -1
	case ActionMoveS:
		return 0, 1
	case ActionMoveE:
		return 1, 0
	case ActionMoveW:
		return -1, 0
	}
	return 0, 0
}
