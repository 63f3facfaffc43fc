package editor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/hecto/internal/engine/row"
	"github.com/dshills/hecto/internal/input/action"
	"github.com/dshills/hecto/internal/input/key"
	"github.com/dshills/hecto/internal/renderer/backend"
	"github.com/dshills/hecto/internal/terminal"
)

var (
	keyUp       = key.NewRuneEvent('k', key.ModNone)
	keyDown     = key.NewRuneEvent('j', key.ModNone)
	keyLeft     = key.NewRuneEvent('h', key.ModNone)
	keyRight    = key.NewRuneEvent('l', key.ModNone)
	keyPageUp   = key.NewSpecialEvent(key.KeyPageUp, key.ModNone)
	keyPageDown = key.NewSpecialEvent(key.KeyPageDown, key.ModNone)
	keyHome     = key.NewSpecialEvent(key.KeyHome, key.ModNone)
	keyEnd      = key.NewSpecialEvent(key.KeyEnd, key.ModNone)
	keyQuit     = key.Ctrl('q')
)

func TestNewDefaults(t *testing.T) {
	e := New(newFakeSurface(80, 24))
	if e.Cursor() != (Position{}) {
		t.Errorf("Cursor() = %+v, want origin", e.Cursor())
	}
	if e.State() != StateRunning {
		t.Errorf("State() = %v, want running", e.State())
	}
}

func TestScenarioPageDownEndHome(t *testing.T) {
	s := newFakeSurface(80, 24)
	e := New(s)

	steps := []struct {
		act  action.Action
		want Position
	}{
		{action.PageDown, Position{X: 0, Y: 23}},
		{action.End, Position{X: 79, Y: 23}},
		{action.Home, Position{X: 0, Y: 23}},
		{action.PageUp, Position{X: 0, Y: 0}},
	}
	for _, st := range steps {
		e.moveCursor(st.act)
		if got := e.Cursor(); got != st.want {
			t.Fatalf("after %v: Cursor() = %+v, want %+v", st.act, got, st.want)
		}
	}
}

func TestMoveCursorSaturates(t *testing.T) {
	s := newFakeSurface(5, 3)
	e := New(s)

	for i := 0; i < 10; i++ {
		e.moveCursor(action.MoveUp)
		e.moveCursor(action.MoveLeft)
	}
	if got := e.Cursor(); got != (Position{}) {
		t.Errorf("Cursor() after moving up/left from origin = %+v, want origin", got)
	}

	for i := 0; i < 10; i++ {
		e.moveCursor(action.MoveDown)
		e.moveCursor(action.MoveRight)
	}
	if got := e.Cursor(); got != (Position{X: 4, Y: 2}) {
		t.Errorf("Cursor() after moving down/right = %+v, want {4 2}", got)
	}
}

func TestMoveCursorIgnoresNonMotion(t *testing.T) {
	e := New(newFakeSurface(10, 10))
	e.moveCursor(action.MoveDown)
	e.moveCursor(action.Other)
	e.moveCursor(action.Quit)
	if got := e.Cursor(); got != (Position{X: 0, Y: 1}) {
		t.Errorf("Cursor() = %+v, want {0 1}", got)
	}
	if e.State() != StateRunning {
		t.Error("moveCursor must not change state")
	}
}

func TestMoveCursorStaysInBoundsForAllSizes(t *testing.T) {
	motions := []action.Action{
		action.MoveUp, action.MoveDown, action.MoveLeft, action.MoveRight,
		action.PageUp, action.PageDown, action.Home, action.End,
	}
	for w := 1; w <= 6; w++ {
		for h := 1; h <= 6; h++ {
			e := New(newFakeSurface(w, h))
			// Deterministic walk through every motion in a scrambled order
			for i := 0; i < 200; i++ {
				e.moveCursor(motions[(i*7+i/3)%len(motions)])
				c := e.Cursor()
				if c.X < 0 || c.X > w-1 || c.Y < 0 || c.Y > h-1 {
					t.Fatalf("%dx%d: cursor %+v escaped viewport", w, h, c)
				}
			}
		}
	}
}

func TestMoveCursorAfterShrink(t *testing.T) {
	s := newFakeSurface(80, 24)
	e := New(s)
	e.moveCursor(action.PageDown)
	e.moveCursor(action.End)

	s.cols, s.rows = 10, 5
	e.moveCursor(action.MoveDown)
	if got := e.Cursor(); got != (Position{X: 9, Y: 4}) {
		t.Errorf("Cursor() after shrink = %+v, want {9 4}", got)
	}
}

func TestZeroSizedViewport(t *testing.T) {
	s := newFakeSurface(0, 0, keyDown, keyRight, keyEnd, keyPageDown, keyQuit)
	e := New(s)
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := e.Cursor(); got != (Position{}) {
		t.Errorf("Cursor() = %+v, want origin", got)
	}
}

func TestWelcomeMessage(t *testing.T) {
	e := New(newFakeSurface(80, 24), WithAppName("Hecto"), WithVersion("0.1.0"))

	got := e.welcomeMessage(80)
	msg := "Hecto editor -- version 0.1.0"
	padding := (80 - len(msg)) / 2
	want := "~" + strings.Repeat(" ", padding-1) + msg
	if got != want {
		t.Errorf("welcomeMessage(80) = %q, want %q", got, want)
	}
}

func TestWelcomeMessageNarrow(t *testing.T) {
	// A 30-byte banner on a 10-column viewport: no padding, cut to 10.
	e := New(newFakeSurface(10, 5), WithAppName("Hecto"), WithVersion("0.1.00"))
	if n := len("Hecto editor -- version 0.1.00"); n != 30 {
		t.Fatalf("test message length = %d, want 30", n)
	}

	got := e.welcomeMessage(10)
	if got != "~Hecto edi" {
		t.Errorf("welcomeMessage(10) = %q, want %q", got, "~Hecto edi")
	}
	if utf8.RuneCountInString(got) != 10 {
		t.Errorf("len = %d, want 10", utf8.RuneCountInString(got))
	}
}

func TestWelcomeMessageNeverExceedsWidth(t *testing.T) {
	names := []string{"Hecto", "", "Éditeur", "日本語エディタ"}
	for _, name := range names {
		e := New(newFakeSurface(1, 1), WithAppName(name), WithVersion("1.2.3"))
		for width := 0; width <= 120; width++ {
			got := e.welcomeMessage(width)
			if !utf8.ValidString(got) {
				t.Fatalf("%q width %d: invalid UTF-8 %q", name, width, got)
			}
			if w := uniseg.StringWidth(got); w > width {
				t.Fatalf("%q width %d: banner is %d cells wide", name, width, w)
			}
			if width > 0 && !strings.HasPrefix(got, "~") {
				t.Fatalf("%q width %d: banner %q does not start with ~", name, width, got)
			}
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"hello", 0, ""},
		{"日本語", 3, "日"},
		{"日本語", 4, "日本"},
		{"éx", 1, "é"},
	}
	for _, tt := range tests {
		if got := truncateWidth(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestDrawRows(t *testing.T) {
	s := newFakeSurface(80, 24)
	e := New(s, WithVersion("0.1.0"))

	e.drawRows()

	lines := s.lines()
	if len(lines) != 23 {
		t.Fatalf("drew %d lines, want 23", len(lines))
	}
	for i, line := range lines {
		if i == 24/3 {
			if !strings.Contains(line, "Hecto editor -- version 0.1.0") {
				t.Errorf("line %d = %q, want welcome banner", i, line)
			}
			continue
		}
		if line != "~" {
			t.Errorf("line %d = %q, want %q", i, line, "~")
		}
	}
	if s.ops[0] != "clear-line" {
		t.Errorf("first op = %q, want clear-line", s.ops[0])
	}
}

func TestDrawRowsWelcomeDisabled(t *testing.T) {
	s := newFakeSurface(40, 9)
	e := New(s, WithWelcome(false))
	e.drawRows()
	for i, line := range s.lines() {
		if line != "~" {
			t.Errorf("line %d = %q, want %q", i, line, "~")
		}
	}
}

func TestDrawRowsWithContent(t *testing.T) {
	s := newFakeSurface(5, 6)
	e := New(s, WithRows(row.FromLines([]string{"first line", "two"})))
	e.drawRows()

	want := []string{"first", "two", "~", "~", "~"}
	got := s.lines()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestRunQuitScenario(t *testing.T) {
	s := newFakeSurface(80, 24, keyPageDown, keyQuit, keyDown)
	e := New(s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if e.State() != StateQuitting {
		t.Errorf("State() = %v, want quitting", e.State())
	}
	if s.reads != 2 {
		t.Errorf("ReadKey called %d times, want 2", s.reads)
	}
	if got := s.written.String(); got != "Goodbye.\r\n" {
		t.Errorf("final paint = %q, want %q", got, "Goodbye.\r\n")
	}
	if e.Cursor() != (Position{X: 0, Y: 23}) {
		t.Errorf("Cursor() = %+v, want {0 23}", e.Cursor())
	}
	if s.flushes != 3 {
		t.Errorf("Flush called %d times, want 3", s.flushes)
	}
}

func TestRunRefreshPositionsCursor(t *testing.T) {
	s := newFakeSurface(80, 24, keyRight, keyRight, keyDown, keyQuit)
	e := New(s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The refresh before the quit key placed the cursor at (2,1).
	want := []string{"goto(0,0)", "clear", "clear-line", "goto(2,1)", "flush"}
	ops := s.ops
	found := false
	for i := 0; i+len(want) <= len(ops); i++ {
		if strings.Join(ops[i:i+len(want)], " ") == strings.Join(want, " ") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("ops %v do not contain refresh sequence %v", ops, want)
	}
}

func TestRunIgnoresUnknownKeys(t *testing.T) {
	s := newFakeSurface(80, 24,
		key.NewRuneEvent('x', key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
		keyQuit,
	)
	log := &recordingLogger{}
	e := New(s, WithLogger(log))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if e.Cursor() != (Position{}) {
		t.Errorf("Cursor() = %+v, want origin", e.Cursor())
	}
	if len(log.messages) != 2 {
		t.Errorf("logged %d messages, want 2: %v", len(log.messages), log.messages)
	}
}

func TestRunReadErrorIsFatal(t *testing.T) {
	s := newFakeSurface(80, 24)
	s.readErr = errBroken
	e := New(s)

	err := e.Run(context.Background())
	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("Run() error = %v, want *FatalError", err)
	}
	if fatal.Op != "read key" {
		t.Errorf("Op = %q, want %q", fatal.Op, "read key")
	}
	if !errors.Is(err, errBroken) {
		t.Error("FatalError should wrap the read error")
	}
	if s.ops[len(s.ops)-2] != "clear" {
		t.Errorf("screen not cleared before returning: %v", s.ops)
	}
}

func TestRunFlushErrorIsFatal(t *testing.T) {
	s := newFakeSurface(80, 24, keyDown)
	s.flushErr = errBroken
	e := New(s)

	err := e.Run(context.Background())
	var fatal *FatalError
	if !errors.As(err, &fatal) || fatal.Op != "refresh screen" {
		t.Fatalf("Run() error = %v, want refresh FatalError", err)
	}
	if s.reads != 0 {
		t.Errorf("ReadKey called %d times after failed refresh, want 0", s.reads)
	}
}

func TestRunCancelledContext(t *testing.T) {
	s := newFakeSurface(80, 24, keyDown)
	e := New(s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if e.State() != StateRunning {
		t.Errorf("State() = %v, want running", e.State())
	}
}

func TestFatalErrorNil(t *testing.T) {
	var e *FatalError
	if e.Error() != "" || e.Unwrap() != nil {
		t.Error("nil FatalError should be empty")
	}
	err := &FatalError{Op: "read key", Err: errBroken}
	if got := err.Error(); got != "fatal: read key: broken terminal" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRunOnScreen(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	screen := terminal.NewScreen(b)
	if err := screen.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer screen.Close()

	for _, ev := range []key.Event{keyPageDown, keyEnd, keyHome, keyUp, keyLeft} {
		b.PostEvent(backend.Event{Type: backend.EventKey, Key: ev})
	}

	e := New(screen, WithVersion("0.1.0"))
	for i := 0; i < 5; i++ {
		if err := e.refreshScreen(); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		if err := e.processKeypress(); err != nil {
			t.Fatalf("processKeypress failed: %v", err)
		}
	}
	if err := e.refreshScreen(); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if got := e.Cursor(); got != (Position{X: 0, Y: 22}) {
		t.Errorf("Cursor() = %+v, want {0 22}", got)
	}
	if x, y, _ := b.CursorPosition(); x != 0 || y != 22 {
		t.Errorf("hardware cursor = (%d, %d), want (0, 22)", x, y)
	}
	if got := b.Line(0); got != "~" {
		t.Errorf("line 0 = %q, want %q", got, "~")
	}
	if got := b.Line(8); !strings.HasSuffix(got, "Hecto editor -- version 0.1.0") {
		t.Errorf("line 8 = %q, want welcome banner", got)
	}
	if got := b.Line(23); got != "" {
		t.Errorf("last line = %q, want blank", got)
	}

	b.PostEvent(backend.Event{Type: backend.EventKey, Key: keyQuit})
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := b.Line(0); got != "Goodbye." {
		t.Errorf("line 0 after quit = %q, want %q", got, "Goodbye.")
	}
	if got := b.Line(8); got != "" {
		t.Errorf("line 8 after quit = %q, want blank", got)
	}
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg string, args ...any) {
	l.messages = append(l.messages, msg)
}
