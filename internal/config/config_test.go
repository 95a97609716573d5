package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pikedit/pike/internal/operation"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.HistoryLimit != 256 {
		t.Errorf("HistoryLimit = %d, want 256", cfg.Editor.HistoryLimit)
	}
	if cfg.Search.CaseSensitive {
		t.Error("CaseSensitive = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	km, err := cfg.Keymap()
	if err != nil {
		t.Fatalf("Keymap() error = %v", err)
	}
	want := map[string]operation.Operation{
		"ctrl+s": operation.Save,
		"ctrl+z": operation.Undo,
		"ctrl+q": operation.Quit,
		"ctrl+f": operation.SearchInCurrentBuffer,
	}
	for chord, op := range want {
		if got := km[chord]; got != op {
			t.Errorf("Keymap()[%q] = %v, want %v", chord, got, op)
		}
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[editor]
tab_width = 8
history_limit = 32

[search]
case_sensitive = true

[keys]
"ctrl+p" = "open_file"
"ctrl+z" = "redo"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.HistoryLimit != 32 {
		t.Errorf("HistoryLimit = %d, want 32", cfg.Editor.HistoryLimit)
	}
	if !cfg.Search.CaseSensitive {
		t.Error("CaseSensitive = false, want true")
	}

	km, err := cfg.Keymap()
	if err != nil {
		t.Fatalf("Keymap() error = %v", err)
	}
	if got := km["ctrl+p"]; got != operation.OpenFile {
		t.Errorf("new binding ctrl+p = %v, want OpenFile", got)
	}
	if got := km["ctrl+z"]; got != operation.Redo {
		t.Errorf("rebound ctrl+z = %v, want Redo", got)
	}
	// Untouched defaults survive.
	if got := km["ctrl+s"]; got != operation.Save {
		t.Errorf("default ctrl+s = %v, want Save", got)
	}
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[search]\ncase_sensitive = true\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Editor.TabWidth != 4 || cfg.Editor.HistoryLimit != 256 {
		t.Errorf("editor settings = %+v, want defaults", cfg.Editor)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"tab width too small", "[editor]\ntab_width = -1\n", ErrInvalid},
		{"tab width explicit zero", "[editor]\ntab_width = 0\n", ErrInvalid},
		{"tab width too large", "[editor]\ntab_width = 99\n", ErrInvalid},
		{"history limit negative", "[editor]\nhistory_limit = -5\n", ErrInvalid},
		{"history limit explicit zero", "[editor]\nhistory_limit = 0\n", ErrInvalid},
		{"unknown operation", "[keys]\n\"ctrl+p\" = \"warp\"\n", ErrBadBinding},
		{"bad chord", "[keys]\n\"hyper+p\" = \"save\"\n", ErrBadBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMalformedTOML(t *testing.T) {
	if _, err := Parse([]byte("[editor\ntab_width = 4")); err == nil {
		t.Error("Parse() error = nil for malformed TOML")
	}
}

func TestKeymapNormalizesChords(t *testing.T) {
	cfg, err := Parse([]byte("[keys]\n\"Ctrl+P\" = \"open_file\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	km, err := cfg.Keymap()
	if err != nil {
		t.Fatalf("Keymap() error = %v", err)
	}
	if got := km["ctrl+p"]; got != operation.OpenFile {
		t.Errorf("Keymap()[%q] = %v, want OpenFile", "ctrl+p", got)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want default 4", cfg.Editor.TabWidth)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", cfg.Editor.TabWidth)
	}
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	w, err := Watch(path, func(cfg *Config, err error) {
		if err != nil {
			t.Errorf("reload error = %v", err)
			return
		}
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Editor.TabWidth != 8 {
			t.Errorf("reloaded TabWidth = %d, want 8", cfg.Editor.TabWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	w, err := Watch(path, func(*Config, error) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Error("reload fired for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
