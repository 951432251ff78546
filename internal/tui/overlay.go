package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// rect is a panel's bounding region in screen cells, used to map mouse
// motion to pointer-enter/leave edges.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// compositeAt paints overlay on top of base at cell position (x, y),
// treating both as line-based grids clipped to width x height.
func compositeAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := widestLine(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)

		left := ansi.Truncate(target, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}

		painted := padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(painted)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			if gap := width - pos - ansi.StringWidth(right); gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		baseLines[row] = left + painted + right
	}
	return strings.Join(baseLines, "\n")
}

// overlayBounds returns the rect an overlay occupies when composited at
// (x, y), for hover hit-testing against later mouse positions.
func overlayBounds(overlay string, x, y int) rect {
	lines := splitLines(overlay)
	return rect{x: x, y: y, w: widestLine(lines), h: len(lines)}
}

// splitLines splits on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// widestLine returns the visual width of the widest line.
func widestLine(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to width cells, appending an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
