package loader

import (
	"errors"
	"io/fs"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
	err   error
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestForFile(t *testing.T) {
	memfs := NewMemFS()
	tests := []struct {
		path string
		yaml bool
	}{
		{"/hecto.toml", false},
		{"/hecto.yaml", true},
		{"/hecto.YML", true},
		{"/hecto", false},
	}
	for _, tt := range tests {
		l := ForFile(memfs, tt.path)
		_, isYAML := l.(*YAMLLoader)
		if isYAML != tt.yaml {
			t.Errorf("ForFile(%q) = %T, yaml = %v", tt.path, l, tt.yaml)
		}
	}
}

func TestReadFileError(t *testing.T) {
	memfs := NewMemFS()
	memfs.err = fs.ErrPermission

	_, err := NewTOMLLoaderWithFS(memfs, "/hecto.toml").Load()
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("Load error = %v, want ErrPermission", err)
	}
}

func TestTOMLAndYAMLParity(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/hecto.toml", `
[editor]
app_name = "Hecto"
welcome = false
`)
	memfs.AddFile("/hecto.yaml", `
editor:
  app_name: Hecto
  welcome: false
`)

	fromTOML, err := ForFile(memfs, "/hecto.toml").Load()
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	fromYAML, err := ForFile(memfs, "/hecto.yaml").Load()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}

	te := fromTOML["editor"].(map[string]any)
	ye := fromYAML["editor"].(map[string]any)
	for _, k := range []string{"app_name", "welcome"} {
		if te[k] != ye[k] {
			t.Errorf("%s: toml %v != yaml %v", k, te[k], ye[k])
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{
			"app_name": "Hecto",
			"welcome":  true,
		},
		"log": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"editor":   map[string]any{"welcome": false},
		"terminal": map[string]any{"backend": "ansi"},
		"log":      "replaced",
	}

	got := DeepMerge(dst, src)

	editor := got["editor"].(map[string]any)
	if editor["app_name"] != "Hecto" {
		t.Errorf("app_name = %v, want Hecto", editor["app_name"])
	}
	if editor["welcome"] != false {
		t.Errorf("welcome = %v, want false", editor["welcome"])
	}
	if got["log"] != "replaced" {
		t.Errorf("log = %v, want replaced", got["log"])
	}
	if _, ok := got["terminal"].(map[string]any); !ok {
		t.Error("expected terminal section to be added")
	}
}

func TestDeepMergeNil(t *testing.T) {
	got := DeepMerge(nil, map[string]any{"a": 1})
	if got["a"] != 1 {
		t.Errorf("a = %v, want 1", got["a"])
	}
	dst := map[string]any{"b": 2}
	if got := DeepMerge(dst, nil); got["b"] != 2 {
		t.Errorf("b = %v, want 2", got["b"])
	}
}
