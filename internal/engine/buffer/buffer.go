// Package buffer provides a single editable text document: its content,
// cursor, modified flag, private edit history, and optional search state.
//
// Content is stored in a gap buffer behind an offset-based interface, so
// the backing representation can change without touching history or
// search logic. All mutating operations record invertible diffs in the
// buffer's history and invalidate any active search, keeping match
// offsets from going stale. The modified flag tracks whether content
// differs from the last text read from or written to the buffer's path;
// undo and redo recompute it against that snapshot, so undoing back to
// the save point restores a clean state exactly.
package buffer

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pikedit/pike/internal/engine/gapbuf"
	"github.com/pikedit/pike/internal/engine/history"
	"github.com/pikedit/pike/internal/engine/search"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// ScratchName is the display name for buffers without a file path.
const ScratchName = "Untitled"

// Buffer is one editable document. All methods are safe for concurrent
// use, though the editor drives a buffer from a single goroutine.
type Buffer struct {
	mu       sync.RWMutex
	id       uuid.UUID
	path     string
	content  *gapbuf.GapBuffer
	cursor   int
	saved    string
	modified bool
	history  *history.History
	search   *search.State
}

// Option configures a buffer at creation.
type Option func(*Buffer)

// WithPath associates the buffer with a file path.
func WithPath(path string) Option {
	return func(b *Buffer) { b.path = path }
}

// WithHistoryLimit sets the undo stack capacity.
func WithHistoryLimit(n int) Option {
	return func(b *Buffer) { b.history = history.New(n) }
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:      uuid.New(),
		content: gapbuf.New(),
		history: history.New(history.DefaultLimit),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer holding the given text, with line
// endings normalized to LF. The text becomes the saved snapshot, so a
// freshly opened buffer is unmodified.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	s = normalizeLineEndings(s)
	b.content = gapbuf.FromString(s)
	b.saved = s
	return b
}

// normalizeLineEndings converts CRLF and lone CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Identity

// ID returns the buffer's stable identifier, assigned at creation and
// never reused within a session.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Path returns the associated file path, empty for scratch buffers.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// SetPath binds the buffer to a file path.
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
}

// IsScratch returns true if the buffer has no file path.
func (b *Buffer) IsScratch() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path == ""
}

// Name returns the display name: the path's base name, or ScratchName.
func (b *Buffer) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.path == "" {
		return ScratchName
	}
	return filepath.Base(b.path)
}

// Read Operations

// Text returns the full document content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.String()
}

// Len returns the document length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Len()
}

// Slice returns the text in [start, end), clamped to the document.
func (b *Buffer) Slice(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Slice(start, end)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.LineCount()
}

// Line returns the text of a line without its trailing newline.
func (b *Buffer) Line(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Line(line)
}

// LineStartOffset returns the byte offset where a line begins.
func (b *Buffer) LineStartOffset(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.LineStartOffset(line)
}

// Cursor returns the cursor's byte offset.
func (b *Buffer) Cursor() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// CursorPoint returns the cursor as a line/column position.
func (b *Buffer) CursorPoint() gapbuf.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.OffsetToPoint(b.cursor)
}

// SetCursor moves the cursor to the given offset, clamped to [0, Len].
func (b *Buffer) SetCursor(off int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = b.clampOffset(off)
}

// Modified returns true if content differs from the last-saved snapshot.
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modified
}

// MarkSaved records the current content as the saved snapshot and clears
// the modified flag. Called after a successful write to the path.
func (b *Buffer) MarkSaved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = b.content.String()
	b.modified = false
}

// Write Operations

// Insert splices text at the cursor.
func (b *Buffer) Insert(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.insertLocked(b.cursor, text)
}

// InsertAt splices text at the given offset and moves the cursor to the
// end of the inserted text.
func (b *Buffer) InsertAt(off int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if off < 0 || off > b.content.Len() {
		return ErrOffsetOutOfRange
	}
	b.insertLocked(off, text)
	return nil
}

func (b *Buffer) insertLocked(off int, text string) {
	text = normalizeLineEndings(text)
	if text == "" {
		return
	}

	b.content.Insert(off, text)
	b.history.Record(history.Insert(off, text))
	b.cursor = off + len(text)
	b.modified = true
	b.search = nil
}

// DeleteRange removes the text in [start, end) and moves the cursor to
// the range start. The removed text is recorded so the edit can be
// inverted.
func (b *Buffer) DeleteRange(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > b.content.Len() {
		return ErrRangeInvalid
	}
	b.deleteLocked(start, end)
	return nil
}

func (b *Buffer) deleteLocked(start, end int) {
	if start == end {
		return
	}

	removed := b.content.Slice(start, end)
	b.content.Delete(start, end)
	b.history.Record(history.Delete(start, removed))
	b.cursor = start
	b.modified = true
	b.search = nil
}

// DeleteBackward removes the rune before the cursor. A no-op at offset 0.
func (b *Buffer) DeleteBackward() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cursor == 0 {
		return
	}
	start := b.cursor
	window := b.content.Slice(start-utf8.UTFMax, start)
	_, size := utf8.DecodeLastRuneInString(window)
	if size == 0 {
		size = 1
	}
	b.deleteLocked(start-size, start)
}

// DeleteForward removes the rune at the cursor. A no-op at end of content.
func (b *Buffer) DeleteForward() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cursor >= b.content.Len() {
		return
	}
	window := b.content.Slice(b.cursor, b.cursor+utf8.UTFMax)
	_, size := utf8.DecodeRuneInString(window)
	if size == 0 {
		size = 1
	}
	b.deleteLocked(b.cursor, b.cursor+size)
}

// Undo / Redo

// Undo reverts the most recent edit. Returns false when there is nothing
// to undo; pressing undo at the oldest state is normal interaction, not
// an error. The cursor moves to the inverse edit's resulting position
// and the modified flag is recomputed against the saved snapshot.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.history.Undo()
	if !ok {
		return false
	}

	inv := d.Invert()
	b.applyDiff(inv)
	if inv.Kind == history.DiffInsert {
		b.cursor = inv.End()
	} else {
		b.cursor = inv.Offset
	}
	b.afterHistoryChange()
	return true
}

// Redo reapplies the most recently undone edit. Returns false when there
// is nothing to redo.
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.history.Redo()
	if !ok {
		return false
	}

	b.applyDiff(d)
	if d.Kind == history.DiffInsert {
		b.cursor = d.End()
	} else {
		b.cursor = d.Offset
	}
	b.afterHistoryChange()
	return true
}

// CanUndo returns true if an edit can be undone.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanUndo()
}

// CanRedo returns true if an undone edit can be reapplied.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanRedo()
}

// applyDiff applies a diff to the content without recording it.
func (b *Buffer) applyDiff(d history.Diff) {
	if d.Kind == history.DiffInsert {
		b.content.Insert(d.Offset, d.Text)
	} else {
		b.content.Delete(d.Offset, d.End())
	}
}

// afterHistoryChange recomputes state that undo/redo invalidate.
// The modified flag is compared against the saved snapshot rather than
// toggled, so undoing back past the save point restores a clean state.
func (b *Buffer) afterHistoryChange() {
	b.modified = b.content.String() != b.saved
	b.search = nil
}

func (b *Buffer) clampOffset(off int) int {
	if off < 0 {
		return 0
	}
	if n := b.content.Len(); off > n {
		return n
	}
	return off
}
