package key

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Rune creates a character event.
func Rune(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// Special creates a non-character event.
func Special(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsChar returns true for a printable character with no Ctrl or Alt
// held, i.e. a key press that should insert text.
func (e Event) IsChar() bool {
	return e.Key == KeyRune &&
		!e.Modifiers.Has(ModCtrl) && !e.Modifiers.Has(ModAlt) &&
		unicode.IsPrint(e.Rune)
}

// Chord returns the event in chord notation: modifiers in ctrl, alt,
// shift order joined with "+", then the key name or lowercased
// character. Examples: "ctrl+s", "alt+right", "enter", "a".
func (e Event) Chord() string {
	mods := e.Modifiers
	if e.Key == KeyRune {
		mods &^= ModShift
	}

	name := e.Key.String()
	if e.Key == KeyRune {
		if e.Rune == ' ' {
			name = "space"
		} else {
			name = string(unicode.ToLower(e.Rune))
		}
	}

	if prefix := mods.String(); prefix != "" {
		return prefix + "+" + name
	}
	return name
}

// FromTcell translates a tcell key event. Ctrl+letter combinations
// arrive from tcell as dedicated key codes; they are folded back into
// character events with ModCtrl set so chord lookup sees "ctrl+a"
// rather than a terminal control code.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMod(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		return Event{Key: KeyRune, Rune: ev.Rune(), Modifiers: mods}
	case tcell.KeyEscape:
		return Event{Key: KeyEscape, Modifiers: mods}
	case tcell.KeyEnter:
		return Event{Key: KeyEnter, Modifiers: mods &^ ModCtrl}
	case tcell.KeyTab:
		return Event{Key: KeyTab, Modifiers: mods &^ ModCtrl}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		// Ctrl+H shares the backspace key code; only the modifier
		// distinguishes them.
		if mods.Has(ModCtrl) {
			return Event{Key: KeyRune, Rune: 'h', Modifiers: mods}
		}
		return Event{Key: KeyBackspace}
	case tcell.KeyDelete:
		return Event{Key: KeyDelete, Modifiers: mods}
	case tcell.KeyHome:
		return Event{Key: KeyHome, Modifiers: mods}
	case tcell.KeyEnd:
		return Event{Key: KeyEnd, Modifiers: mods}
	case tcell.KeyPgUp:
		return Event{Key: KeyPageUp, Modifiers: mods}
	case tcell.KeyPgDn:
		return Event{Key: KeyPageDown, Modifiers: mods}
	case tcell.KeyUp:
		return Event{Key: KeyUp, Modifiers: mods}
	case tcell.KeyDown:
		return Event{Key: KeyDown, Modifiers: mods}
	case tcell.KeyLeft:
		return Event{Key: KeyLeft, Modifiers: mods}
	case tcell.KeyRight:
		return Event{Key: KeyRight, Modifiers: mods}
	}

	// Tab (Ctrl-I), Enter (Ctrl-M), and Escape were handled above.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Event{
			Key:       KeyRune,
			Rune:      'a' + rune(k-tcell.KeyCtrlA),
			Modifiers: mods | ModCtrl,
		}
	}

	return Event{Key: KeyNone, Modifiers: mods}
}

func fromTcellMod(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	return out
}
