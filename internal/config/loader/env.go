package loader

import (
	"os"
	"strings"
)

// EnvLoader loads configuration from environment variables. Only mapped
// variables are read, so unrelated variables sharing the prefix are ignored.
// Values are passed through as strings; typing is left to the consumer.
type EnvLoader struct {
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader over the process environment.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{
		mapping: defaultEnvMapping(),
		lookup:  os.LookupEnv,
	}
}

// NewEnvLoaderFromList creates a loader that reads from a fixed
// "NAME=value" list instead of the process environment.
func NewEnvLoaderFromList(env []string) *EnvLoader {
	vars := make(map[string]string, len(env))
	for _, kv := range env {
		name, value, ok := strings.Cut(kv, "=")
		if ok {
			vars[name] = value
		}
	}
	l := NewEnvLoader()
	l.lookup = func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
	return l
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"HECTO_APP_NAME":  "editor.app_name",
		"HECTO_WELCOME":   "editor.welcome",
		"HECTO_BACKEND":   "terminal.backend",
		"HECTO_LOG_LEVEL": "log.level",
		"HECTO_LOG_FILE":  "log.file",
	}
}

// Load reads the mapped environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, val)
		}
	}
	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[parts[i]] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
