package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/hecto/internal/engine/row"
	"github.com/dshills/hecto/internal/input/action"
	"github.com/dshills/hecto/internal/terminal"
)

// State is the editor run state. Quitting is terminal.
type State int

const (
	StateRunning State = iota
	StateQuitting
)

func (s State) String() string {
	if s == StateQuitting {
		return "quitting"
	}
	return "running"
}

// farewell is painted once after the user quits.
const farewell = "Goodbye."

// Editor is the render/input core. It is not safe for concurrent use.
type Editor struct {
	surface terminal.Surface
	cursor  Position
	state   State
	rows    []row.Row

	appName string
	version string
	welcome bool
	logger  Logger
}

// New creates an editor drawing on surface. The editor has exclusive use
// of the surface until Run returns.
func New(surface terminal.Surface, opts ...Option) *Editor {
	e := &Editor{
		surface: surface,
		appName: DefaultAppName,
		version: DefaultVersion,
		welcome: true,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cursor returns the current cursor position.
func (e *Editor) Cursor() Position {
	return e.cursor
}

// State returns the current run state.
func (e *Editor) State() State {
	return e.state
}

// Run refreshes the screen and processes keys until the user quits.
// A cancelled ctx stops the loop before the next refresh with ctx.Err();
// a key read already in progress is not interrupted.
func (e *Editor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.refreshScreen(); err != nil {
			return e.die("refresh screen", err)
		}
		if e.state == StateQuitting {
			return nil
		}
		if err := e.processKeypress(); err != nil {
			return e.die("read key", err)
		}
	}
}

// die clears the screen on a best-effort basis and wraps err as fatal.
func (e *Editor) die(op string, err error) error {
	e.surface.ClearScreen()
	_ = e.surface.Flush()
	return &FatalError{Op: op, Err: err}
}

func (e *Editor) refreshScreen() error {
	e.surface.PositionCursor(0, 0)
	e.surface.ClearScreen()
	if e.state == StateQuitting {
		e.surface.ClearScreen()
		e.surface.Write(farewell + "\r\n")
	} else {
		e.drawRows()
		e.surface.PositionCursor(e.cursor.X, e.cursor.Y)
	}
	return e.surface.Flush()
}

func (e *Editor) processKeypress() error {
	ev, err := e.surface.ReadKey()
	if err != nil {
		return err
	}

	switch a := action.Resolve(ev); a {
	case action.Quit:
		e.state = StateQuitting
	case action.MoveUp, action.MoveDown, action.MoveLeft, action.MoveRight,
		action.PageUp, action.PageDown, action.Home, action.End:
		e.moveCursor(a)
	case action.Other:
		e.logger.Debug("unhandled key %s", ev)
	}
	return nil
}

// moveCursor applies a motion within the current viewport. Positions left
// out of range by a shrinking terminal are pulled back in.
func (e *Editor) moveCursor(a action.Action) {
	x, y := e.cursor.X, e.cursor.Y
	rows, cols := e.surface.Size()
	height := saturatingSub(rows, 1)
	width := saturatingSub(cols, 1)

	switch a {
	case action.MoveUp:
		y = saturatingSub(y, 1)
	case action.MoveDown:
		if y < height {
			y++
		}
	case action.MoveLeft:
		x = saturatingSub(x, 1)
	case action.MoveRight:
		if x < width {
			x++
		}
	case action.PageUp:
		y = 0
	case action.PageDown:
		y = height
	case action.Home:
		x = 0
	case action.End:
		x = width
	case action.Quit, action.Other:
	}

	e.cursor = Position{X: clamp(x, width), Y: clamp(y, height)}
}

// drawRows paints every terminal row but the last. Rows without content
// get a "~" marker; one of them carries the welcome banner while the
// document is empty.
func (e *Editor) drawRows() {
	height, width := e.surface.Size()
	e.surface.ClearCurrentLine()
	for r := 0; r < height-1; r++ {
		switch {
		case r < len(e.rows):
			e.surface.Write(e.rows[r].Render(0, width) + "\r\n")
		case e.showWelcome() && r == height/3:
			e.surface.Write(e.welcomeMessage(width) + "\r\n")
		default:
			e.surface.Write("~\r\n")
		}
	}
}

func (e *Editor) showWelcome() bool {
	return e.welcome && len(e.rows) == 0
}

// welcomeMessage returns the centered banner line, never wider than width.
func (e *Editor) welcomeMessage(width int) string {
	msg := fmt.Sprintf("%s editor -- version %s", e.appName, e.version)
	padding := saturatingSub(width, uniseg.StringWidth(msg)) / 2
	line := "~" + strings.Repeat(" ", saturatingSub(padding, 1)) + msg
	return truncateWidth(line, width)
}

// truncateWidth cuts s to at most width terminal cells without splitting
// a grapheme cluster.
func truncateWidth(s string, width int) string {
	var (
		b     strings.Builder
		used  int
		state = -1
	)
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String()
}
