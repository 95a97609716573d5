package buffer

import (
	"errors"
	"testing"
)

func TestNewEmpty(t *testing.T) {
	b := New()

	if got := b.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
	if b.Modified() {
		t.Error("Modified() = true for a fresh buffer")
	}
	if !b.IsScratch() {
		t.Error("IsScratch() = false for a path-less buffer")
	}
	if got := b.Name(); got != ScratchName {
		t.Errorf("Name() = %q, want %q", got, ScratchName)
	}
}

func TestNewFromString(t *testing.T) {
	b := NewFromString("hello\nworld", WithPath("/tmp/greet.txt"))

	if got := b.Text(); got != "hello\nworld" {
		t.Errorf("Text() = %q, want %q", got, "hello\nworld")
	}
	if b.Modified() {
		t.Error("Modified() = true for freshly opened content")
	}
	if got := b.Name(); got != "greet.txt" {
		t.Errorf("Name() = %q, want %q", got, "greet.txt")
	}
	if b.IsScratch() {
		t.Error("IsScratch() = true for a buffer with a path")
	}
}

func TestIDsAreUnique(t *testing.T) {
	if New().ID() == New().ID() {
		t.Error("two buffers share an ID")
	}
}

func TestLineEndingNormalization(t *testing.T) {
	b := NewFromString("a\r\nb\rc")
	if got := b.Text(); got != "a\nb\nc" {
		t.Errorf("Text() = %q, want %q", got, "a\nb\nc")
	}

	b.Insert("x\r\ny")
	if got := b.Text(); got != "x\nya\nb\nc" {
		t.Errorf("Text() after insert = %q, want %q", got, "x\nya\nb\nc")
	}
}

func TestInsertAdvancesCursor(t *testing.T) {
	b := New()
	b.Insert("hello")

	if got := b.Cursor(); got != 5 {
		t.Errorf("Cursor() = %d, want 5", got)
	}
	if !b.Modified() {
		t.Error("Modified() = false after an edit")
	}
}

func TestInsertAt(t *testing.T) {
	b := NewFromString("hd")

	if err := b.InsertAt(1, "ello worl"); err != nil {
		t.Fatalf("InsertAt() error = %v", err)
	}
	if got := b.Text(); got != "hello world" {
		t.Errorf("Text() = %q, want %q", got, "hello world")
	}
	if got := b.Cursor(); got != 10 {
		t.Errorf("Cursor() = %d, want 10", got)
	}

	if err := b.InsertAt(99, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("InsertAt(99) error = %v, want ErrOffsetOutOfRange", err)
	}
	if err := b.InsertAt(-1, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("InsertAt(-1) error = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestDeleteRange(t *testing.T) {
	b := NewFromString("hello world")

	if err := b.DeleteRange(5, 11); err != nil {
		t.Fatalf("DeleteRange() error = %v", err)
	}
	if got := b.Text(); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}
	if got := b.Cursor(); got != 5 {
		t.Errorf("Cursor() = %d, want 5 (range start)", got)
	}

	if err := b.DeleteRange(3, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("DeleteRange(3, 1) error = %v, want ErrRangeInvalid", err)
	}
	if err := b.DeleteRange(0, 99); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("DeleteRange(0, 99) error = %v, want ErrRangeInvalid", err)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := New()
	b.Insert("hello")
	b.Insert(" world")

	if got := b.Text(); got != "hello world" {
		t.Fatalf("Text() = %q, want %q", got, "hello world")
	}

	if !b.Undo() {
		t.Fatal("first Undo() = false")
	}
	if got := b.Text(); got != "hello" {
		t.Errorf("Text() after undo = %q, want %q", got, "hello")
	}

	if !b.Undo() {
		t.Fatal("second Undo() = false")
	}
	if got := b.Text(); got != "" {
		t.Errorf("Text() after second undo = %q, want empty", got)
	}

	if b.Undo() {
		t.Error("Undo() = true with empty history, want no-op false")
	}

	b.Redo()
	b.Redo()
	if got := b.Text(); got != "hello world" {
		t.Errorf("Text() after two redos = %q, want %q", got, "hello world")
	}
	if b.Redo() {
		t.Error("Redo() = true with empty redo stack")
	}
}

func TestUndoDeleteRestoresText(t *testing.T) {
	b := NewFromString("hello world")
	if err := b.DeleteRange(2, 9); err != nil {
		t.Fatalf("DeleteRange() error = %v", err)
	}
	if got := b.Text(); got != "held" {
		t.Fatalf("Text() = %q, want %q", got, "held")
	}

	b.Undo()
	if got := b.Text(); got != "hello world" {
		t.Errorf("Text() after undo = %q, want %q", got, "hello world")
	}
	// Undoing a delete reinserts text; cursor lands after it.
	if got := b.Cursor(); got != 9 {
		t.Errorf("Cursor() after undo = %d, want 9", got)
	}
}

func TestUndoInsertCursor(t *testing.T) {
	b := NewFromString("abc")
	if err := b.InsertAt(1, "xy"); err != nil {
		t.Fatalf("InsertAt() error = %v", err)
	}

	b.Undo()
	if got := b.Cursor(); got != 1 {
		t.Errorf("Cursor() after undoing insert = %d, want 1", got)
	}

	b.Redo()
	if got := b.Cursor(); got != 3 {
		t.Errorf("Cursor() after redo = %d, want 3", got)
	}
}

func TestKEditsThenKUndos(t *testing.T) {
	b := NewFromString("base")
	edits := []string{"one ", "two ", "three "}

	for _, e := range edits {
		if err := b.InsertAt(0, e); err != nil {
			t.Fatalf("InsertAt() error = %v", err)
		}
	}
	for range edits {
		if !b.Undo() {
			t.Fatal("Undo() = false before history exhausted")
		}
	}

	if got := b.Text(); got != "base" {
		t.Errorf("Text() after k undos = %q, want %q", got, "base")
	}
}

func TestHistoryCapacityEviction(t *testing.T) {
	const limit = 4
	b := New(WithHistoryLimit(limit))

	// limit+1 edits; the oldest becomes unrecoverable.
	for i := 0; i < limit+1; i++ {
		b.Insert("x")
	}

	undos := 0
	for b.Undo() {
		undos++
	}
	if undos != limit {
		t.Errorf("undo count = %d, want %d", undos, limit)
	}
	// The evicted first edit survives every undo.
	if got := b.Text(); got != "x" {
		t.Errorf("Text() after exhausting undo = %q, want %q", got, "x")
	}
}

func TestModifiedTracksSavePoint(t *testing.T) {
	b := NewFromString("abc", WithPath("/tmp/f.txt"))
	if b.Modified() {
		t.Fatal("Modified() = true after open")
	}

	if err := b.InsertAt(1, "x"); err != nil {
		t.Fatalf("InsertAt() error = %v", err)
	}
	if got := b.Text(); got != "axbc" {
		t.Fatalf("Text() = %q, want %q", got, "axbc")
	}
	if !b.Modified() {
		t.Fatal("Modified() = false after edit")
	}

	b.MarkSaved()
	if b.Modified() {
		t.Fatal("Modified() = true after save")
	}

	b.Insert("y")
	if !b.Modified() {
		t.Fatal("Modified() = false after post-save edit")
	}

	// Undoing back to exactly the save point restores a clean state.
	b.Undo()
	if b.Modified() {
		t.Error("Modified() = true at save point after undo")
	}

	// Undoing past the save point makes the buffer modified again.
	b.Undo()
	if got := b.Text(); got != "abc" {
		t.Fatalf("Text() = %q, want %q", got, "abc")
	}
	if !b.Modified() {
		t.Error("Modified() = false past the save point")
	}

	// Redoing forward to the save point is clean again.
	b.Redo()
	if b.Modified() {
		t.Error("Modified() = true after redo to save point")
	}
}

func TestDeleteBackwardForward(t *testing.T) {
	b := NewFromString("héllo")
	b.SetCursor(3) // after the two-byte é

	b.DeleteBackward()
	if got := b.Text(); got != "hllo" {
		t.Errorf("Text() after DeleteBackward = %q, want %q", got, "hllo")
	}
	if got := b.Cursor(); got != 1 {
		t.Errorf("Cursor() = %d, want 1", got)
	}

	b.DeleteForward()
	if got := b.Text(); got != "hlo" {
		t.Errorf("Text() after DeleteForward = %q, want %q", got, "hlo")
	}

	b.SetCursor(0)
	b.DeleteBackward() // no-op at start
	if got := b.Text(); got != "hlo" {
		t.Errorf("Text() after no-op DeleteBackward = %q, want %q", got, "hlo")
	}

	b.SetCursor(b.Len())
	b.DeleteForward() // no-op at end
	if got := b.Text(); got != "hlo" {
		t.Errorf("Text() after no-op DeleteForward = %q, want %q", got, "hlo")
	}
}

func TestSetCursorClamps(t *testing.T) {
	b := NewFromString("abc")

	b.SetCursor(99)
	if got := b.Cursor(); got != 3 {
		t.Errorf("Cursor() = %d, want 3", got)
	}
	b.SetCursor(-5)
	if got := b.Cursor(); got != 0 {
		t.Errorf("Cursor() = %d, want 0", got)
	}
}
