package renderer

import (
	"github.com/mattn/go-runewidth"
)

// advance returns the display width of r when drawn at display column
// col. Tabs expand to the next tab stop; everything else uses its
// terminal cell width.
func advance(r rune, col, tabWidth int) int {
	if r == '\t' {
		return tabWidth - col%tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = 1
	}
	return w
}

// displayWidth returns the display width of s starting at column 0.
func displayWidth(s string, tabWidth int) int {
	col := 0
	for _, r := range s {
		col += advance(r, col, tabWidth)
	}
	return col
}

// displayCol converts a byte offset within line to a display column.
func displayCol(line string, byteOff, tabWidth int) int {
	col := 0
	for i, r := range line {
		if i >= byteOff {
			break
		}
		col += advance(r, col, tabWidth)
	}
	return col
}

// truncate shortens s to at most width display cells, appending an
// ellipsis when it had to cut.
func truncate(s string, width, tabWidth int) string {
	if displayWidth(s, tabWidth) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
