package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayCenter composites box over base, centred in a width x height canvas.
// Base lines are padded or cut to the canvas first.
func overlayCenter(base, box string, width, height int) string {
	rows := canvasLines(base, width, height)
	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, l := range boxLines {
		if w := ansi.StringWidth(l); w > boxW {
			boxW = w
		}
	}
	x := max((width-boxW)/2, 0)
	y := max((height-len(boxLines))/2, 0)

	for i, line := range boxLines {
		row := y + i
		if row >= len(rows) {
			break
		}
		line = fitWidth(line, boxW)
		left := ansi.Truncate(rows[row], x, "")
		right := ansi.TruncateLeft(rows[row], x+boxW, "")
		rows[row] = fitWidth(left+line+right, width)
	}
	return strings.Join(rows, "\n")
}

func canvasLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return lines
}

// fitWidth pads or cuts s to exactly width visible cells.
func fitWidth(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
