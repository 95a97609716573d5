package renderer

// viewport tracks which part of the document is visible. Scrolling
// follows the cursor: the visible window moves just enough to bring the
// cursor back inside it.
type viewport struct {
	topLine int
	leftCol int
}

// follow adjusts the viewport so that (line, col) is visible in a
// window of height rows and width cells.
func (v *viewport) follow(line, col, height, width int) {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}

	if line < v.topLine {
		v.topLine = line
	} else if line >= v.topLine+height {
		v.topLine = line - height + 1
	}

	if col < v.leftCol {
		v.leftCol = col
	} else if col >= v.leftCol+width {
		v.leftCol = col - width + 1
	}
}

// clamp keeps the viewport inside a document of totalLines lines.
func (v *viewport) clamp(totalLines, height int) {
	maxTop := totalLines - height
	if maxTop < 0 {
		maxTop = 0
	}
	if v.topLine > maxTop {
		v.topLine = maxTop
	}
	if v.topLine < 0 {
		v.topLine = 0
	}
	if v.leftCol < 0 {
		v.leftCol = 0
	}
}
