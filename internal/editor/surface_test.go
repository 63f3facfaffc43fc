package editor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/hecto/internal/input/key"
)

// fakeSurface records what the editor does and replays scripted keys.
type fakeSurface struct {
	rows, cols int
	keys       []key.Event
	reads      int
	ops        []string
	written    strings.Builder
	cursor     Position
	flushErr   error
	readErr    error
	flushes    int
}

func newFakeSurface(cols, rows int, keys ...key.Event) *fakeSurface {
	return &fakeSurface{rows: rows, cols: cols, keys: keys}
}

func (s *fakeSurface) Size() (int, int) {
	return s.rows, s.cols
}

func (s *fakeSurface) ReadKey() (key.Event, error) {
	s.reads++
	if s.readErr != nil {
		return key.Event{}, s.readErr
	}
	if len(s.keys) == 0 {
		return key.Event{}, io.EOF
	}
	ev := s.keys[0]
	s.keys = s.keys[1:]
	return ev, nil
}

func (s *fakeSurface) PositionCursor(x, y int) {
	s.cursor = Position{X: x, Y: y}
	s.ops = append(s.ops, fmt.Sprintf("goto(%d,%d)", x, y))
}

func (s *fakeSurface) ClearScreen() {
	s.ops = append(s.ops, "clear")
	s.written.Reset()
}

func (s *fakeSurface) ClearCurrentLine() {
	s.ops = append(s.ops, "clear-line")
}

func (s *fakeSurface) Write(text string) {
	s.written.WriteString(text)
}

func (s *fakeSurface) Flush() error {
	s.flushes++
	s.ops = append(s.ops, "flush")
	return s.flushErr
}

// lines returns the text written since the last clear, split on "\r\n".
func (s *fakeSurface) lines() []string {
	out := strings.Split(s.written.String(), "\r\n")
	if len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

var errBroken = errors.New("broken terminal")
