// Package renderer draws the editor to a tcell screen: the text
// viewport, search-match highlighting, the status line, and the prompt
// line used for interactive input. It consumes plain frame snapshots so
// the engine packages never depend on terminal types.
package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Span marks a highlighted byte range within one line.
type Span struct {
	Start int // byte offset in the line, inclusive
	End   int // byte offset in the line, exclusive
	Focus bool
}

// Line is one document line plus its highlight spans.
type Line struct {
	Text  string
	Spans []Span
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Lines      []Line
	CursorLine int // 0-based
	CursorByte int // byte offset within the cursor line

	Name     string
	Modified bool
	Status   string // right-aligned status segment, e.g. match position
	Message  string // transient message shown in the status line

	PromptActive bool
	PromptLabel  string
	PromptText   string
	PromptCursor int // byte offset within PromptText
}

// Renderer draws frames to a screen.
type Renderer struct {
	screen   tcell.Screen
	tabWidth int
	view     viewport

	textStyle   tcell.Style
	statusStyle tcell.Style
	matchStyle  tcell.Style
	focusStyle  tcell.Style
	promptStyle tcell.Style
}

// New creates a renderer for screen. The screen must already be
// initialized.
func New(screen tcell.Screen, tabWidth int) *Renderer {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &Renderer{
		screen:      screen,
		tabWidth:    tabWidth,
		textStyle:   tcell.StyleDefault,
		statusStyle: tcell.StyleDefault.Reverse(true),
		matchStyle:  tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack),
		focusStyle:  tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
		promptStyle: tcell.StyleDefault.Bold(true),
	}
}

// SetTabWidth changes the tab stop width for subsequent frames.
func (r *Renderer) SetTabWidth(w int) {
	if w >= 1 {
		r.tabWidth = w
	}
}

// Render draws a full frame and flushes it to the terminal.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	width, height := r.screen.Size()
	if width < 1 || height < 1 {
		return
	}
	textHeight := height - 1 // bottom row is status or prompt
	if textHeight < 1 {
		textHeight = 0
	}

	cursorCol := 0
	if f.CursorLine < len(f.Lines) {
		cursorCol = displayCol(f.Lines[f.CursorLine].Text, f.CursorByte, r.tabWidth)
	}
	if textHeight > 0 {
		r.view.follow(f.CursorLine, cursorCol, textHeight, width)
		r.view.clamp(len(f.Lines), textHeight)
	}

	for row := 0; row < textHeight; row++ {
		idx := r.view.topLine + row
		if idx >= len(f.Lines) {
			break
		}
		r.drawLine(row, f.Lines[idx], width)
	}

	if f.PromptActive {
		r.drawPrompt(f, width, height-1)
	} else {
		r.drawStatus(f, width, height-1)
		if textHeight > 0 {
			r.screen.ShowCursor(cursorCol-r.view.leftCol, f.CursorLine-r.view.topLine)
		}
	}

	r.screen.Show()
}

// drawLine draws one document line at screen row, applying highlight
// spans and horizontal scroll.
func (r *Renderer) drawLine(row int, line Line, width int) {
	col := 0
	for i, ch := range line.Text {
		w := advance(ch, col, r.tabWidth)
		x := col - r.view.leftCol
		col += w
		if x+w <= 0 {
			continue
		}
		if x >= width {
			break
		}
		if ch == '\t' {
			continue // tab cells stay blank
		}
		r.screen.SetContent(x, row, ch, nil, r.styleAt(line.Spans, i))
	}
}

// styleAt picks the style for the character starting at byte offset i.
func (r *Renderer) styleAt(spans []Span, i int) tcell.Style {
	for _, s := range spans {
		if i >= s.Start && i < s.End {
			if s.Focus {
				return r.focusStyle
			}
			return r.matchStyle
		}
	}
	return r.textStyle
}

// drawStatus draws the status line: name and modified marker on the
// left, cursor position and any extra status on the right.
func (r *Renderer) drawStatus(f Frame, width, row int) {
	left := f.Name
	if f.Modified {
		left += " [+]"
	}
	if f.Message != "" {
		left = f.Message
	}

	right := fmt.Sprintf("Ln %d, Col %d", f.CursorLine+1, f.CursorByte+1)
	if f.Status != "" {
		right = f.Status + "  " + right
	}

	r.drawBar(row, left, right, width, r.statusStyle)
}

// drawPrompt draws the interactive prompt over the status row and
// places the terminal cursor inside the input.
func (r *Renderer) drawPrompt(f Frame, width, row int) {
	label := f.PromptLabel + ": "
	r.drawBar(row, label+f.PromptText, "", width, r.promptStyle)

	x := displayWidth(label, r.tabWidth) + displayCol(f.PromptText, f.PromptCursor, r.tabWidth)
	if x < width {
		r.screen.ShowCursor(x, row)
	}
}

// drawBar fills a row with style and writes left- and right-aligned
// text segments.
func (r *Renderer) drawBar(row int, left, right string, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, row, ' ', nil, style)
	}

	rightW := displayWidth(right, r.tabWidth)
	leftMax := width
	if right != "" {
		leftMax = width - rightW - 1
	}
	if leftMax > 0 {
		r.putString(0, row, truncate(left, leftMax, r.tabWidth), style)
	}
	if right != "" && rightW < width {
		r.putString(width-rightW, row, right, style)
	}
}

func (r *Renderer) putString(x, row int, s string, style tcell.Style) {
	col := x
	for _, ch := range s {
		r.screen.SetContent(col, row, ch, nil, style)
		col += advance(ch, col, r.tabWidth)
	}
}
