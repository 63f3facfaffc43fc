// Package app wires configuration, logging, the terminal, and the editor
// core together and owns the terminal for the lifetime of a run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/hecto/internal/config"
	"github.com/dshills/hecto/internal/editor"
	"github.com/dshills/hecto/internal/renderer/backend"
	"github.com/dshills/hecto/internal/terminal"
)

// Application owns the terminal device and runs the editor on it.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	logger  *Logger
	logFile io.Closer
	device  terminal.Device

	closeOnce sync.Once
	running   atomic.Bool

	opts Options
}

// Options configures the application. Non-empty fields override the
// corresponding config settings.
type Options struct {
	// ConfigPath is the path to the configuration file. When empty the
	// per-user default location is tried.
	ConfigPath string

	// Backend selects the terminal surface ("tcell" or "ansi").
	Backend string

	// LogFile is the diagnostic log destination.
	LogFile string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Version is the build version shown in the welcome banner.
	Version string

	// Env replaces the process environment when non-nil.
	Env []string

	// NewDevice creates the terminal device for a backend name.
	// Defaults to NewDevice.
	NewDevice func(backendName string) (terminal.Device, error)
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	if err := app.initConfig(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	if err := app.initDevice(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	return nil
}

func (app *Application) initConfig() error {
	var opts []config.Option

	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path != "" {
		opts = append(opts, config.WithFile(path))
	}
	if app.opts.Env != nil {
		opts = append(opts, config.WithEnv(app.opts.Env))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	// Command-line flags sit above every other layer.
	if app.opts.Backend != "" {
		cfg.Terminal.Backend = app.opts.Backend
	}
	if app.opts.LogFile != "" {
		cfg.Log.File = app.opts.LogFile
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	app.config = cfg
	return nil
}

func (app *Application) initLogger() error {
	if app.config.Log.File == "" {
		app.logger = NullLogger
		return nil
	}

	f, err := os.OpenFile(app.config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	app.logFile = f

	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.config.Log.Level),
		Output: f,
		Prefix: "hecto",
	}).WithField("session", uuid.NewString())
	return nil
}

func (app *Application) initDevice() error {
	newDevice := app.opts.NewDevice
	if newDevice == nil {
		newDevice = NewDevice
	}
	dev, err := newDevice(app.config.Terminal.Backend)
	if err != nil {
		return err
	}
	app.device = dev
	return nil
}

// NewDevice creates the terminal device for the named backend.
func NewDevice(backendName string) (terminal.Device, error) {
	switch backendName {
	case config.BackendTCell:
		t, err := backend.NewTerminal()
		if err != nil {
			return nil, err
		}
		return terminal.NewScreen(t), nil
	case config.BackendANSI:
		return terminal.NewStdANSI(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backendName)
	}
}

// Run opens the terminal, runs the editor until it quits, and restores the
// terminal on every exit path, including panics.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	log := app.logger.WithComponent("app")

	if err := app.device.Open(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
			log.Error("recovered: %v", r)
		}
		if cerr := app.closeDevice(); cerr != nil && err == nil {
			err = WrapError(cerr, "close terminal")
		}
	}()

	ed := editor.New(app.device,
		editor.WithAppName(app.config.Editor.AppName),
		editor.WithVersion(app.opts.Version),
		editor.WithWelcome(app.config.Editor.Welcome),
		editor.WithLogger(app.logger.WithComponent("editor")),
	)

	log.Info("started: backend=%s version=%s", app.config.Terminal.Backend, app.opts.Version)

	err = ed.Run(ctx)
	switch {
	case err == nil:
		log.Info("quit")
		return nil
	case ctx.Err() != nil:
		// Cancellation surfaces either directly or as a failed read once
		// Shutdown has closed the device underneath the editor.
		log.Info("shutdown requested")
		return ErrQuit
	default:
		log.Error("editor: %v", err)
		return err
	}
}

// Shutdown restores the terminal and closes the log. It is safe to call
// from a signal handler while Run is blocked, and more than once.
func (app *Application) Shutdown() {
	if err := app.closeDevice(); err != nil {
		app.logger.Warn("close terminal: %v", err)
	}
	app.closeLog()
}

func (app *Application) closeDevice() error {
	var err error
	app.closeOnce.Do(func() {
		if app.device != nil {
			err = app.device.Close()
		}
	})
	return err
}

func (app *Application) closeLog() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.logFile != nil {
		// Every derived logger shares this state, so none of them can
		// write to the file once it is closed.
		app.logger.Disable()
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// IsFatal reports whether err came from a terminal failure inside the editor.
func IsFatal(err error) bool {
	var fe *editor.FatalError
	return errors.As(err, &fe)
}
