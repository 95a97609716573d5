package app

import (
	"fmt"
	"sort"

	"github.com/pikedit/pike/internal/renderer"
)

// frame snapshots the editor state for drawing.
func (a *App) frame() renderer.Frame {
	f := renderer.Frame{
		Message:      a.message,
		PromptActive: a.prompt.kind != promptNone,
		PromptLabel:  a.prompt.label,
		PromptText:   string(a.prompt.text),
		PromptCursor: len(string(a.prompt.text[:a.prompt.cursor])),
	}

	b, ok := a.ws.ActiveBuffer()
	if !ok {
		f.Name = "no buffers"
		f.Lines = []renderer.Line{{}}
		return f
	}

	f.Name = b.Name()
	f.Modified = b.Modified()
	if n := a.ws.Len(); n > 1 {
		f.Status = fmt.Sprintf("buf %d/%d", a.ws.ActiveIndex()+1, n)
	}

	count := b.LineCount()
	f.Lines = make([]renderer.Line, count)
	starts := make([]int, count)
	for i := 0; i < count; i++ {
		f.Lines[i] = renderer.Line{Text: b.Line(i)}
		starts[i] = b.LineStartOffset(i)
	}

	p := b.CursorPoint()
	f.CursorLine = p.Line
	f.CursorByte = p.Column

	if st := b.Search(); st != nil {
		matches := st.Matches()
		for j, m := range matches {
			line := sort.Search(len(starts), func(i int) bool { return starts[i] > m.Start }) - 1
			if line < 0 {
				continue
			}
			span := renderer.Span{
				Start: m.Start - starts[line],
				End:   m.End - starts[line],
				Focus: j == st.CurrentIndex(),
			}
			if max := len(f.Lines[line].Text); span.End > max {
				span.End = max // match spans a newline; clamp to the line
			}
			f.Lines[line].Spans = append(f.Lines[line].Spans, span)
		}
		if st.Count() > 0 {
			f.Status = fmt.Sprintf("match %d/%d", st.CurrentIndex()+1, st.Count())
		}
	}

	return f
}
