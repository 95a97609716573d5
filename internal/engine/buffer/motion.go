package buffer

import (
	"unicode/utf8"

	"github.com/pikedit/pike/internal/engine/gapbuf"
)

// Cursor movement. These are pure position updates: they never mutate
// content and always clamp to the document bounds, so moving left at
// offset 0 or right at end of content is a no-op rather than an error.

// MoveLeft moves the cursor one rune left.
func (b *Buffer) MoveLeft() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cursor == 0 {
		return
	}
	window := b.content.Slice(b.cursor-utf8.UTFMax, b.cursor)
	_, size := utf8.DecodeLastRuneInString(window)
	if size == 0 {
		size = 1
	}
	b.cursor -= size
}

// MoveRight moves the cursor one rune right.
func (b *Buffer) MoveRight() {
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
	b.cursor += size
}

// MoveUp moves the cursor one line up, keeping the column where the line
// permits. On the first line it is a no-op.
func (b *Buffer) MoveUp() {
	b.moveVertical(-1)
}

// MoveDown moves the cursor one line down, keeping the column where the
// line permits. On the last line it is a no-op.
func (b *Buffer) MoveDown() {
	b.moveVertical(1)
}

func (b *Buffer) moveVertical(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.content.OffsetToPoint(b.cursor)
	line := p.Line + delta
	if line < 0 || line >= b.content.LineCount() {
		return
	}
	b.cursor = b.content.PointToOffset(gapbuf.Point{Line: line, Column: p.Column})
}

// MoveLineStart moves the cursor to the start of its line.
func (b *Buffer) MoveLineStart() {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.content.OffsetToPoint(b.cursor)
	b.cursor = b.content.LineStartOffset(p.Line)
}

// MoveLineEnd moves the cursor to the end of its line, before the newline.
func (b *Buffer) MoveLineEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.content.OffsetToPoint(b.cursor)
	b.cursor = b.content.LineEndOffset(p.Line)
}

// MoveDocStart moves the cursor to offset 0.
func (b *Buffer) MoveDocStart() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = 0
}

// MoveDocEnd moves the cursor past the last byte of content.
func (b *Buffer) MoveDocEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = b.content.Len()
}
