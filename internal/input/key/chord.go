package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrBadChord indicates a chord string that cannot be parsed.
var ErrBadChord = errors.New("invalid key chord")

// ParseChord parses chord notation into an event: zero or more
// modifier names and one key, joined with "+". The key is either a
// named key ("enter", "right") or a single character. Parsing is
// case-insensitive.
func ParseChord(s string) (Event, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Event{}, fmt.Errorf("%w: %q", ErrBadChord, s)
	}

	var mods Modifier
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.TrimSpace(part)]
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrBadChord, part, s)
		}
		mods |= mod
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "space" {
		return Event{Key: KeyRune, Rune: ' ', Modifiers: mods}, nil
	}
	if k, ok := keyNames[name]; ok {
		return Event{Key: k, Modifiers: mods}, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if unicode.IsPrint(r) {
			return Event{Key: KeyRune, Rune: r, Modifiers: mods &^ ModShift}, nil
		}
	}
	return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrBadChord, name, s)
}

// NormalizeChord parses a chord and renders it back in canonical form,
// so differently written bindings ("Ctrl+S", "ctrl+s") compare equal.
func NormalizeChord(s string) (string, error) {
	ev, err := ParseChord(s)
	if err != nil {
		return "", err
	}
	return ev.Chord(), nil
}
