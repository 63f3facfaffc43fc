package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/hecto/internal/config/loader"
)

// Terminal backends.
const (
	BackendTCell = "tcell"
	BackendANSI  = "ansi"
)

// Config holds all Hecto settings.
type Config struct {
	Editor   EditorConfig
	Terminal TerminalConfig
	Log      LogConfig
}

// EditorConfig controls the editor core.
type EditorConfig struct {
	// AppName is shown in the welcome banner.
	AppName string
	// Welcome enables the welcome banner on an empty document.
	Welcome bool
}

// TerminalConfig selects the terminal surface.
type TerminalConfig struct {
	// Backend is BackendTCell or BackendANSI.
	Backend string
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// File is the log destination. Logging is off when empty.
	File string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			AppName: "Hecto",
			Welcome: true,
		},
		Terminal: TerminalConfig{
			Backend: BackendTCell,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	file   string
	fs     loader.FileSystem
	env    *loader.EnvLoader
	useEnv bool
}

// WithFile sets the config file to read. A leading "~/" is expanded to the
// home directory. A missing file is not an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithFileSystem sets the file system used to read the config file.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnv reads overrides from the given "NAME=value" list instead of the
// process environment.
func WithEnv(env []string) Option {
	return func(o *options) {
		o.env = loader.NewEnvLoaderFromList(env)
	}
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(o *options) {
		o.useEnv = false
	}
}

// Load builds a Config from defaults, the config file, and the environment.
func Load(opts ...Option) (*Config, error) {
	o := options{
		fs:     loader.DefaultFS(),
		useEnv: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)

	if o.file != "" {
		data, err := loader.ForFile(o.fs, expandHome(o.file)).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if o.useEnv {
		env := o.env
		if env == nil {
			env = loader.NewEnvLoader()
		}
		data, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg := Default()
	if err := cfg.Apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overlays settings from a nested map onto c.
func (c *Config) Apply(data map[string]any) error {
	for section, raw := range data {
		values, ok := raw.(map[string]any)
		if !ok {
			return &ValidationError{
				Path:    section,
				Message: "expected a table",
				Value:   raw,
				Code:    ErrCodeTypeMismatch,
			}
		}
		for key, value := range values {
			if err := c.set(section+"."+key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Config) set(path string, value any) error {
	var err error
	switch path {
	case "editor.app_name":
		c.Editor.AppName, err = asString(path, value)
	case "editor.welcome":
		c.Editor.Welcome, err = asBool(path, value)
	case "terminal.backend":
		c.Terminal.Backend, err = asString(path, value)
	case "log.level":
		c.Log.Level, err = asString(path, value)
	case "log.file":
		c.Log.File, err = asString(path, value)
	default:
		err = &ValidationError{
			Path:    path,
			Message: "unknown setting",
			Value:   value,
			Code:    ErrCodeUnknownSetting,
		}
	}
	return err
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Terminal.Backend {
	case BackendTCell, BackendANSI:
	default:
		return &ValidationError{
			Path:    "terminal.backend",
			Message: "must be tcell or ansi",
			Value:   c.Terminal.Backend,
			Code:    ErrCodeInvalidEnum,
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{
			Path:    "log.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}
	return nil
}

func asString(path string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case int64, int:
		return fmt.Sprint(s), nil
	}
	return "", typeMismatch(path, "string", v)
}

// asBool accepts file booleans and the usual spellings from the environment.
func asBool(path string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
	}
	return false, typeMismatch(path, "bool", v)
}

func typeMismatch(path, want string, v any) error {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("expected %s, got %T", want, v),
		Value:   v,
		Code:    ErrCodeTypeMismatch,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hecto", "config.toml")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
