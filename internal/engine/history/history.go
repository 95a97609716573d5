// Package history provides per-buffer undo/redo tracking.
//
// Every content mutation is recorded as a Diff: an invertible insert or
// delete of a contiguous run of text at a byte offset. The History keeps
// a bounded stack of applied diffs and a stack of undone diffs. Recording
// a new diff clears the redo stack; once the undo stack reaches its
// capacity the oldest entry is evicted and becomes permanently
// unrecoverable. That trade-off keeps memory bounded over long sessions.
package history

// DiffKind identifies the direction of a Diff.
type DiffKind uint8

const (
	// DiffInsert is text spliced into the document.
	DiffInsert DiffKind = iota
	// DiffDelete is text removed from the document.
	DiffDelete
)

// String returns a human-readable name for the kind.
func (k DiffKind) String() string {
	switch k {
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Diff is one atomic, invertible edit. Text always carries the literal
// payload: the inserted text for DiffInsert, the removed text for
// DiffDelete. That is exactly the information needed to invert the edit.
type Diff struct {
	Kind   DiffKind
	Offset int
	Text   string
}

// Insert creates a diff describing text inserted at offset.
func Insert(offset int, text string) Diff {
	return Diff{Kind: DiffInsert, Offset: offset, Text: text}
}

// Delete creates a diff describing text removed at offset.
func Delete(offset int, text string) Diff {
	return Diff{Kind: DiffDelete, Offset: offset, Text: text}
}

// Invert returns the diff that undoes d. Applying a diff and then its
// inverse restores the document byte-for-byte.
func (d Diff) Invert() Diff {
	if d.Kind == DiffInsert {
		return Diff{Kind: DiffDelete, Offset: d.Offset, Text: d.Text}
	}
	return Diff{Kind: DiffInsert, Offset: d.Offset, Text: d.Text}
}

// End returns the offset just past the diff's text span.
func (d Diff) End() int {
	return d.Offset + len(d.Text)
}

// IsNoop returns true if the diff carries no text.
func (d Diff) IsNoop() bool {
	return len(d.Text) == 0
}

// DefaultLimit is the undo stack capacity used when none is configured.
const DefaultLimit = 256

// History manages the undo/redo stacks for a single buffer. It is owned
// exclusively by that buffer and guarded by the buffer's lock; histories
// are never shared or migrated between buffers.
type History struct {
	undo  []Diff
	redo  []Diff
	limit int
}

// New creates a history with the given undo capacity.
// Non-positive capacities fall back to DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Record pushes an applied diff onto the undo stack and clears the redo
// stack. Called for every content mutation except undo and redo
// themselves. No-op diffs are not recorded.
func (h *History) Record(d Diff) {
	if d.IsNoop() {
		return
	}

	h.undo = append(h.undo, d)
	h.redo = nil

	if excess := len(h.undo) - h.limit; excess > 0 {
		h.undo = append(h.undo[:0:0], h.undo[excess:]...)
	}
}

// Undo pops the most recent diff and moves it to the redo stack.
// The caller applies the returned diff's inverse to the content.
// Returns false when there is nothing to undo; that is not an error.
func (h *History) Undo() (Diff, bool) {
	if len(h.undo) == 0 {
		return Diff{}, false
	}

	d := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, d)
	return d, true
}

// Redo pops the most recent undone diff and moves it back to the undo
// stack. The caller reapplies the returned diff as-is.
// Returns false when there is nothing to redo.
func (h *History) Redo() (Diff, bool) {
	if len(h.redo) == 0 {
		return Diff{}, false
	}

	d := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, d)
	return d, true
}

// CanUndo returns true if at least one diff can be undone.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if at least one diff can be redone.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoCount returns the number of recorded diffs available to undo.
func (h *History) UndoCount() int {
	return len(h.undo)
}

// RedoCount returns the number of undone diffs available to redo.
func (h *History) RedoCount() int {
	return len(h.redo)
}

// Limit returns the undo stack capacity.
func (h *History) Limit() int {
	return h.limit
}

// Clear discards all undo and redo state.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
