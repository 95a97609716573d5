// Package config loads editor configuration from a TOML file and
// resolves the key bindings into an operation keymap. A missing file is
// not an error; defaults apply. A malformed file or an invalid binding
// is an error, so a typo never silently unbinds a key.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pikedit/pike/internal/engine/history"
	"github.com/pikedit/pike/internal/input/key"
	"github.com/pikedit/pike/internal/operation"
)

// Errors returned when loading configuration.
var (
	// ErrInvalid indicates a value outside its allowed range.
	ErrInvalid = errors.New("invalid config value")

	// ErrBadBinding indicates a [keys] entry whose chord or operation
	// name cannot be resolved.
	ErrBadBinding = errors.New("invalid key binding")
)

// Limits for validated settings.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Editor holds buffer and text settings.
type Editor struct {
	// TabWidth is the display width of a tab stop, in cells.
	TabWidth int `toml:"tab_width"`

	// HistoryLimit is the per-buffer undo capacity.
	HistoryLimit int `toml:"history_limit"`
}

// Search holds search settings.
type Search struct {
	// CaseSensitive selects exact-case matching.
	CaseSensitive bool `toml:"case_sensitive"`
}

// Config is the full editor configuration.
type Config struct {
	Editor Editor `toml:"editor"`
	Search Search `toml:"search"`

	// Keys maps chord notation ("ctrl+s") to operation names ("save").
	// Entries replace the default binding for that chord.
	Keys map[string]string `toml:"keys"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: Editor{
			TabWidth:     4,
			HistoryLimit: history.DefaultLimit,
		},
		Search: Search{
			CaseSensitive: false,
		},
		Keys: map[string]string{
			"ctrl+o":    "open_file",
			"alt+n":     "new_file",
			"ctrl+n":    "new_buffer",
			"ctrl+w":    "close_buffer",
			"alt+right": "next_buffer",
			"alt+left":  "previous_buffer",
			"ctrl+f":    "search_in_current_buffer",
			"ctrl+h":    "replace_in_current_buffer",
			"ctrl+s":    "save",
			"ctrl+z":    "undo",
			"ctrl+y":    "redo",
			"ctrl+q":    "quit",
		},
	}
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/pike/config.toml or ~/.config/pike/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pike", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pike", "config.toml")
}

// Load reads configuration from path, layered over the defaults.
// A missing file yields the defaults with no error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := cfg.merge(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads configuration from raw TOML, layered over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.merge(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig mirrors Config with pointer fields, so an absent key and
// an explicit zero can be told apart: absent keys keep the defaults,
// explicit values reach validation as written.
type fileConfig struct {
	Editor struct {
		TabWidth     *int `toml:"tab_width"`
		HistoryLimit *int `toml:"history_limit"`
	} `toml:"editor"`
	Search struct {
		CaseSensitive *bool `toml:"case_sensitive"`
	} `toml:"search"`
	Keys map[string]string `toml:"keys"`
}

// merge unmarshals data over the receiver. File [keys] entries are
// merged into the default keymap rather than replacing it wholesale.
func (c *Config) merge(data []byte) error {
	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return err
	}

	if file.Editor.TabWidth != nil {
		c.Editor.TabWidth = *file.Editor.TabWidth
	}
	if file.Editor.HistoryLimit != nil {
		c.Editor.HistoryLimit = *file.Editor.HistoryLimit
	}
	if file.Search.CaseSensitive != nil {
		c.Search.CaseSensitive = *file.Search.CaseSensitive
	}
	for chord, name := range file.Keys {
		c.Keys[chord] = name
	}
	return nil
}

// Validate checks value ranges and resolves every key binding.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < MinTabWidth || c.Editor.TabWidth > MaxTabWidth {
		return fmt.Errorf("%w: editor.tab_width %d (want %d..%d)",
			ErrInvalid, c.Editor.TabWidth, MinTabWidth, MaxTabWidth)
	}
	if c.Editor.HistoryLimit < 1 {
		return fmt.Errorf("%w: editor.history_limit %d (want >= 1)",
			ErrInvalid, c.Editor.HistoryLimit)
	}
	_, err := c.Keymap()
	return err
}

// Keymap resolves the [keys] table into a lookup from normalized chord
// to operation. Two spellings of the same chord ("Ctrl+S", "ctrl+s")
// collapse to one entry.
func (c *Config) Keymap() (map[string]operation.Operation, error) {
	m := make(map[string]operation.Operation, len(c.Keys))
	for chord, name := range c.Keys {
		normalized, err := key.NormalizeChord(chord)
		if err != nil {
			return nil, fmt.Errorf("%w: %q = %q: %v", ErrBadBinding, chord, name, err)
		}
		op, err := operation.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q = %q: %v", ErrBadBinding, chord, name, err)
		}
		m[normalized] = op
	}
	return m, nil
}
