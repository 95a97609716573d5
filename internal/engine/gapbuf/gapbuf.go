// Package gapbuf implements the text storage used by editor buffers.
//
// A gap buffer keeps the document in a single byte slice with a movable
// gap of free space. Edits at or near the gap are amortized O(1), which
// matches the editing pattern of a cursor moving locally through a
// document. Offsets are byte offsets; callers see a contiguous document
// with exact offset semantics regardless of where the gap sits.
package gapbuf

import (
	"bytes"
)

// minGap is the smallest amount of free space reserved when the buffer grows.
const minGap = 64

// Point is a line/column position. Both are 0-indexed; Column is in bytes.
type Point struct {
	Line   int
	Column int
}

// GapBuffer stores document text with a movable gap.
// The zero value is not usable; create instances with New or FromString.
type GapBuffer struct {
	data     []byte
	gapStart int
	gapEnd   int
}

// New creates an empty gap buffer.
func New() *GapBuffer {
	return &GapBuffer{
		data:   make([]byte, minGap),
		gapEnd: minGap,
	}
}

// FromString creates a gap buffer holding the given text.
func FromString(s string) *GapBuffer {
	data := make([]byte, len(s)+minGap)
	copy(data, s)
	return &GapBuffer{
		data:     data,
		gapStart: len(s),
		gapEnd:   len(data),
	}
}

// Len returns the document length in bytes.
func (g *GapBuffer) Len() int {
	return len(g.data) - (g.gapEnd - g.gapStart)
}

// IsEmpty returns true if the document holds no text.
func (g *GapBuffer) IsEmpty() bool {
	return g.Len() == 0
}

// String returns the full document text.
func (g *GapBuffer) String() string {
	out := make([]byte, 0, g.Len())
	out = append(out, g.data[:g.gapStart]...)
	out = append(out, g.data[g.gapEnd:]...)
	return string(out)
}

// Slice returns the text in [start, end). Offsets are clamped to the
// document bounds; an inverted range yields the empty string.
func (g *GapBuffer) Slice(start, end int) string {
	start = g.clamp(start)
	end = g.clamp(end)
	if start >= end {
		return ""
	}

	out := make([]byte, 0, end-start)
	if start < g.gapStart {
		head := g.gapStart
		if end < head {
			head = end
		}
		out = append(out, g.data[start:head]...)
	}
	if end > g.gapStart {
		tail := start
		if tail < g.gapStart {
			tail = g.gapStart
		}
		out = append(out, g.data[g.gapEnd+(tail-g.gapStart):g.gapEnd+(end-g.gapStart)]...)
	}
	return string(out)
}

// ByteAt returns the byte at the given offset.
func (g *GapBuffer) ByteAt(off int) (byte, bool) {
	if off < 0 || off >= g.Len() {
		return 0, false
	}
	return g.data[g.phys(off)], true
}

// Insert splices text into the document at the given offset.
// The offset is clamped to [0, Len].
func (g *GapBuffer) Insert(off int, text string) {
	if text == "" {
		return
	}
	off = g.clamp(off)
	g.grow(len(text))
	g.moveGap(off)
	copy(g.data[g.gapStart:], text)
	g.gapStart += len(text)
}

// Delete removes the text in [start, end). Offsets are clamped; an
// inverted or empty range is a no-op.
func (g *GapBuffer) Delete(start, end int) {
	start = g.clamp(start)
	end = g.clamp(end)
	if start >= end {
		return
	}
	g.moveGap(start)
	g.gapEnd += end - start
}

// Line Queries

// LineCount returns the number of lines. An empty document has one line.
func (g *GapBuffer) LineCount() int {
	return bytes.Count(g.data[:g.gapStart], nl) + bytes.Count(g.data[g.gapEnd:], nl) + 1
}

// Line returns the text of the given line without its trailing newline.
// Out-of-range lines yield the empty string.
func (g *GapBuffer) Line(line int) string {
	return g.Slice(g.LineStartOffset(line), g.LineEndOffset(line))
}

// LineStartOffset returns the byte offset where the given line begins.
// Lines past the last line clamp to the document end.
func (g *GapBuffer) LineStartOffset(line int) int {
	if line <= 0 {
		return 0
	}
	seen := 0
	off := 0
	for _, seg := range [2][]byte{g.data[:g.gapStart], g.data[g.gapEnd:]} {
		for {
			i := bytes.IndexByte(seg, '\n')
			if i < 0 {
				off += len(seg)
				break
			}
			seen++
			off += i + 1
			seg = seg[i+1:]
			if seen == line {
				return off
			}
		}
	}
	return g.Len()
}

// LineEndOffset returns the byte offset of the given line's end, before
// the trailing newline if one exists.
func (g *GapBuffer) LineEndOffset(line int) int {
	start := g.LineStartOffset(line)
	if i := g.indexByteFrom(start, '\n'); i >= 0 {
		return i
	}
	return g.Len()
}

// OffsetToPoint converts a byte offset to a line/column position.
// The offset is clamped to the document bounds.
func (g *GapBuffer) OffsetToPoint(off int) Point {
	off = g.clamp(off)

	head := g.data[:g.gapStart]
	tail := g.data[g.gapEnd:]

	var line, lineStart int
	if off <= len(head) {
		line = bytes.Count(head[:off], nl)
		lineStart = bytes.LastIndexByte(head[:off], '\n') + 1
	} else {
		rest := off - len(head)
		line = bytes.Count(head, nl) + bytes.Count(tail[:rest], nl)
		if i := bytes.LastIndexByte(tail[:rest], '\n'); i >= 0 {
			lineStart = len(head) + i + 1
		} else if i := bytes.LastIndexByte(head, '\n'); i >= 0 {
			lineStart = i + 1
		}
	}
	return Point{Line: line, Column: off - lineStart}
}

// PointToOffset converts a line/column position to a byte offset.
// The line is clamped to the document and the column to the line length.
func (g *GapBuffer) PointToOffset(p Point) int {
	if p.Line < 0 {
		return 0
	}
	start := g.LineStartOffset(p.Line)
	end := g.LineEndOffset(p.Line)
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > end-start {
		col = end - start
	}
	return start + col
}

var nl = []byte{'\n'}

// phys maps a logical offset to its physical index in the backing slice.
func (g *GapBuffer) phys(off int) int {
	if off < g.gapStart {
		return off
	}
	return off + (g.gapEnd - g.gapStart)
}

func (g *GapBuffer) clamp(off int) int {
	if off < 0 {
		return 0
	}
	if n := g.Len(); off > n {
		return n
	}
	return off
}

// indexByteFrom returns the logical offset of the first c at or after off,
// or -1 if none exists.
func (g *GapBuffer) indexByteFrom(off int, c byte) int {
	off = g.clamp(off)
	if off < g.gapStart {
		if i := bytes.IndexByte(g.data[off:g.gapStart], c); i >= 0 {
			return off + i
		}
		if i := bytes.IndexByte(g.data[g.gapEnd:], c); i >= 0 {
			return g.gapStart + i
		}
		return -1
	}
	if i := bytes.IndexByte(g.data[g.phys(off):], c); i >= 0 {
		return off + i
	}
	return -1
}

// moveGap relocates the gap so it begins at the given logical offset.
func (g *GapBuffer) moveGap(to int) {
	if to == g.gapStart {
		return
	}
	if to < g.gapStart {
		n := g.gapStart - to
		copy(g.data[g.gapEnd-n:g.gapEnd], g.data[to:g.gapStart])
		g.gapStart = to
		g.gapEnd -= n
	} else {
		n := to - g.gapStart
		copy(g.data[g.gapStart:g.gapStart+n], g.data[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// grow ensures the gap can hold at least need more bytes.
func (g *GapBuffer) grow(need int) {
	gap := g.gapEnd - g.gapStart
	if gap >= need {
		return
	}

	newGap := need + minGap + g.Len()/2
	data := make([]byte, g.Len()+newGap)
	copy(data, g.data[:g.gapStart])
	copy(data[g.gapStart+newGap:], g.data[g.gapEnd:])

	g.data = data
	g.gapEnd = g.gapStart + newGap
}
