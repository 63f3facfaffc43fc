package editor

import (
	"github.com/dshills/hecto/internal/engine/row"
)

// Defaults used when no option overrides them.
const (
	DefaultAppName = "Hecto"
	DefaultVersion = "dev"
)

// Logger receives diagnostics from the editor.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Option configures an Editor.
type Option func(*Editor)

// WithAppName sets the name shown in the welcome banner.
func WithAppName(name string) Option {
	return func(e *Editor) {
		if name != "" {
			e.appName = name
		}
	}
}

// WithVersion sets the version shown in the welcome banner. The version is
// supplied by the build, not by configuration.
func WithVersion(version string) Option {
	return func(e *Editor) {
		if version != "" {
			e.version = version
		}
	}
}

// WithWelcome enables or disables the welcome banner.
func WithWelcome(enabled bool) Option {
	return func(e *Editor) {
		e.welcome = enabled
	}
}

// WithRows sets the rows drawn in place of empty-line markers.
// The welcome banner is only shown while there are no rows.
func WithRows(rows []row.Row) Option {
	return func(e *Editor) {
		e.rows = rows
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}
