// Package key models keyboard input: keys, modifiers, and the chord
// notation ("ctrl+s", "alt+right") that configuration files use to bind
// keys to operations. Terminal events are translated into Events here
// so the rest of the editor never touches tcell types.
package key

import "fmt"

// Key identifies a non-character key. Character input uses KeyRune with
// the character in Event.Rune.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is a character key; the character is in Event.Rune.
	KeyRune
)

// String returns the key's chord-notation name.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyEscape:
		return "esc"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pageup"
	case KeyPageDown:
		return "pagedown"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyRune:
		return "rune"
	default:
		return fmt.Sprintf("key(%d)", k)
	}
}

// IsArrow returns true for the four arrow keys.
func (k Key) IsArrow() bool {
	return k >= KeyUp && k <= KeyRight
}

// keyNames maps chord-notation names (and common aliases) to keys.
var keyNames = map[string]Key{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"space":     KeyRune, // resolved to Rune ' ' by ParseChord
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModAlt indicates the Alt key.
	ModAlt

	// ModShift indicates the Shift key. For character keys Shift is
	// folded into the character and never reported separately.
	ModShift
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the chord-notation prefix, e.g. "ctrl+alt".
func (m Modifier) String() string {
	s := ""
	if m.Has(ModCtrl) {
		s = "ctrl"
	}
	if m.Has(ModAlt) {
		if s != "" {
			s += "+"
		}
		s += "alt"
	}
	if m.Has(ModShift) {
		if s != "" {
			s += "+"
		}
		s += "shift"
	}
	return s
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
}
