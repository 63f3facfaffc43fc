// Package action maps key events onto the closed set of editor input actions.
package action

import "github.com/dshills/hecto/internal/input/key"

// Action is an input action the editor core understands.
type Action int

const (
	// Other is any key the editor does not act on.
	Other Action = iota
	Quit
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	PageUp
	PageDown
	Home
	End
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Quit:
		return "quit"
	case MoveUp:
		return "move-up"
	case MoveDown:
		return "move-down"
	case MoveLeft:
		return "move-left"
	case MoveRight:
		return "move-right"
	case PageUp:
		return "page-up"
	case PageDown:
		return "page-down"
	case Home:
		return "home"
	case End:
		return "end"
	default:
		return "other"
	}
}

// IsMotion reports whether the action moves the cursor.
func (a Action) IsMotion() bool {
	return a >= MoveUp && a <= End
}

// Resolve maps a key event to its action. Cursor motion uses the vi
// letters h, j, k and l; Ctrl-Q quits.
func Resolve(ev key.Event) Action {
	switch ev.Key {
	case key.KeyRune:
		if ev.IsCtrl('q') {
			return Quit
		}
		if !ev.IsChar() {
			return Other
		}
		switch ev.Rune {
		case 'k':
			return MoveUp
		case 'j':
			return MoveDown
		case 'h':
			return MoveLeft
		case 'l':
			return MoveRight
		}
	case key.KeyPageUp:
		return PageUp
	case key.KeyPageDown:
		return PageDown
	case key.KeyHome:
		return Home
	case key.KeyEnd:
		return End
	}
	return Other
}
