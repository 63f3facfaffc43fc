package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/hecto/internal/input/key"
)

// Fallback dimensions when the window size cannot be queried.
const (
	fallbackRows = 24
	fallbackCols = 80
)

// ANSI is a Device that writes VT100 escape sequences to a byte stream and
// decodes key presses from another. Output is buffered until Flush.
type ANSI struct {
	in      io.Reader
	out     io.Writer
	decoder *key.Decoder
	buf     bytes.Buffer
	size    func() (rows, cols int, err error)
	state   *term.State
}

var _ Device = (*ANSI)(nil)

// ANSIOption configures an ANSI surface.
type ANSIOption func(*ANSI)

// WithSizeFunc overrides how the window size is queried.
func WithSizeFunc(fn func() (rows, cols int, err error)) ANSIOption {
	return func(a *ANSI) {
		a.size = fn
	}
}

// NewANSI creates an ANSI surface reading keys from in and writing to out.
func NewANSI(in io.Reader, out io.Writer, opts ...ANSIOption) *ANSI {
	a := &ANSI{
		in:      in,
		out:     out,
		decoder: key.NewDecoder(in),
	}
	a.size = func() (int, int, error) {
		return windowSize(out)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewStdANSI creates an ANSI surface on the process's stdin and stdout.
func NewStdANSI() *ANSI {
	return NewANSI(os.Stdin, os.Stdout)
}

// Open puts the input terminal into raw mode. It is a no-op when the input
// is not a terminal.
func (a *ANSI) Open() error {
	f, ok := a.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	a.state = state
	return nil
}

// Close restores the terminal to the mode it had before Open.
func (a *ANSI) Close() error {
	if a.state == nil {
		return nil
	}
	f := a.in.(*os.File)
	state := a.state
	a.state = nil
	if err := term.Restore(int(f.Fd()), state); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

func (a *ANSI) Size() (int, int) {
	rows, cols, err := a.size()
	if err != nil || rows <= 0 || cols <= 0 {
		return fallbackRows, fallbackCols
	}
	return rows, cols
}

func (a *ANSI) ReadKey() (key.Event, error) {
	for {
		ev, err := a.decoder.ReadEvent()
		if err != nil {
			return key.Event{}, err
		}
		// Unknown escape sequences decode to KeyNone
		if ev.Key != key.KeyNone {
			return ev, nil
		}
	}
}

func (a *ANSI) PositionCursor(x, y int) {
	fmt.Fprintf(&a.buf, "\x1b[%d;%dH", max(y, 0)+1, max(x, 0)+1)
}

func (a *ANSI) ClearScreen() {
	a.buf.WriteString("\x1b[2J")
}

func (a *ANSI) ClearCurrentLine() {
	a.buf.WriteString("\x1b[2K")
}

func (a *ANSI) Write(s string) {
	a.buf.WriteString(s)
}

func (a *ANSI) Flush() error {
	if a.buf.Len() == 0 {
		return nil
	}
	_, err := a.out.Write(a.buf.Bytes())
	a.buf.Reset()
	if err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}
