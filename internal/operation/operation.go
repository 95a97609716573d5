// Package operation defines the editor's command vocabulary: the named
// operations a key binding can invoke. The set is closed; configuration
// files bind keys to these names and anything else is a config error.
package operation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown indicates a name that is not part of the vocabulary.
var ErrUnknown = errors.New("unknown operation")

// Operation identifies a single editor command.
type Operation int

// The full command vocabulary.
const (
	OpenFile Operation = iota
	NewFile
	NewBuffer
	CloseBuffer
	NextBuffer
	PreviousBuffer
	SearchInCurrentBuffer
	ReplaceInCurrentBuffer
	Save
	Undo
	Redo
	Quit
)

var names = map[Operation]string{
	OpenFile:               "open_file",
	NewFile:                "new_file",
	NewBuffer:              "new_buffer",
	CloseBuffer:            "close_buffer",
	NextBuffer:             "next_buffer",
	PreviousBuffer:         "previous_buffer",
	SearchInCurrentBuffer:  "search_in_current_buffer",
	ReplaceInCurrentBuffer: "replace_in_current_buffer",
	Save:                   "save",
	Undo:                   "undo",
	Redo:                   "redo",
	Quit:                   "quit",
}

var byName = func() map[string]Operation {
	m := make(map[string]Operation, len(names))
	for op, name := range names {
		m[name] = op
	}
	return m
}()

// String returns the operation's config-file name.
func (o Operation) String() string {
	if name, ok := names[o]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// Parse resolves a config-file name to an operation. Names are
// case-insensitive and surrounding whitespace is ignored.
func Parse(name string) (Operation, error) {
	op, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return op, nil
}

// All returns every operation in the vocabulary, in declaration order.
func All() []Operation {
	out := make([]Operation, 0, len(names))
	for op := OpenFile; op <= Quit; op++ {
		out = append(out, op)
	}
	return out
}
