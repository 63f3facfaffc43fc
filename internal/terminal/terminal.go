// Package terminal provides the screen surface the editor draws on.
//
// A Surface behaves like a raw-mode terminal: text written to it does not
// wrap and "\n" moves down without returning to column zero, so callers end
// each line with "\r\n". Two implementations are provided. Screen draws onto
// a renderer backend (tcell by default) and ANSI writes escape sequences to a
// byte stream.
package terminal

import (
	"github.com/dshills/hecto/internal/input/key"
)

// Surface is the terminal the editor core draws on and reads keys from.
type Surface interface {
	// Size returns the current viewport dimensions. It is queried fresh
	// on every call so terminal resizes are observed.
	Size() (rows, cols int)

	// ReadKey blocks until a key is pressed.
	ReadKey() (key.Event, error)

	// PositionCursor moves the hardware cursor and the write position to
	// column x, row y (both 0-based).
	PositionCursor(x, y int)

	// ClearScreen erases the whole display. The write position is unchanged.
	ClearScreen()

	// ClearCurrentLine erases the row at the write position.
	ClearCurrentLine()

	// Write outputs text at the write position.
	Write(s string)

	// Flush sends buffered output to the terminal.
	Flush() error
}

// Device is a Surface with an explicit lifecycle. Open enters raw mode;
// Close restores the terminal and must be called on every exit path.
type Device interface {
	Surface
	Open() error
	Close() error
}
