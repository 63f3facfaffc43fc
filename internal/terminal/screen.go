package terminal

import (
	"fmt"
	"io"

	"github.com/dshills/hecto/internal/input/key"
	"github.com/dshills/hecto/internal/renderer/backend"
)

// Screen is a Device drawing onto a cell backend.
type Screen struct {
	backend backend.Backend
	col     int
	row     int
}

var _ Device = (*Screen)(nil)

// NewScreen creates a screen over b. The backend is initialized by Open.
func NewScreen(b backend.Backend) *Screen {
	return &Screen{backend: b}
}

// Open initializes the backend, which puts the terminal into raw mode.
func (s *Screen) Open() error {
	if err := s.backend.Init(); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}
	return nil
}

// Close shuts the backend down and restores the terminal.
func (s *Screen) Close() error {
	s.backend.Shutdown()
	return nil
}

func (s *Screen) Size() (int, int) {
	w, h := s.backend.Size()
	return h, w
}

// ReadKey skips resize and other non-key events. The size is re-read on
// every refresh so a resize needs no handling here.
func (s *Screen) ReadKey() (key.Event, error) {
	for {
		ev := s.backend.PollEvent()
		switch ev.Type {
		case backend.EventKey:
			return ev.Key, nil
		case backend.EventNone:
			return key.Event{}, io.EOF
		case backend.EventError:
			return key.Event{}, ev.Err
		}
	}
}

func (s *Screen) PositionCursor(x, y int) {
	s.col, s.row = x, y
	s.backend.ShowCursor(x, y)
}

func (s *Screen) ClearScreen() {
	s.backend.Clear()
}

func (s *Screen) ClearCurrentLine() {
	w, _ := s.backend.Size()
	for x := 0; x < w; x++ {
		s.backend.SetCell(x, s.row, backend.EmptyCell())
	}
}

// Write lays text out cell by cell. Text past the right edge is dropped.
func (s *Screen) Write(text string) {
	w, _ := s.backend.Size()
	for _, r := range text {
		switch r {
		case '\r':
			s.col = 0
		case '\n':
			s.row++
		default:
			cell := backend.NewCell(r)
			if s.col+cell.Width <= w {
				s.backend.SetCell(s.col, s.row, cell)
			}
			s.col += cell.Width
		}
	}
}

func (s *Screen) Flush() error {
	s.backend.Show()
	return nil
}
