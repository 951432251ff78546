package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/marit/tiledeck/internal/maps"
)

// Layer glyphs cycle for stacked overlays; the base grid uses a dim dot.
var layerGlyphs = []rune{'░', '▒', '▓', '█'}

// renderViewport draws the map document as a cell grid: the base graticule,
// a sampled pattern per visible layer, and a legend of the layer stack.
// It is a placeholder for tile rendering, which is delegated; panels only
// need the layer stack reflected on screen.
func renderViewport(doc *maps.Map, width, height int) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	layers := doc.Layers()
	var visible []*maps.Layer
	for i, l := range layers {
		if i == 0 {
			continue // base grid drawn separately
		}
		if l.Visible && l.Opacity > 0 {
			visible = append(visible, l)
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ch, style := cellAt(visible, x, y)
			b.WriteString(style.Render(string(ch)))
		}
		if y < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cellAt picks the topmost layer whose sampling pattern covers the cell.
func cellAt(visible []*maps.Layer, x, y int) (rune, styleish) {
	for i := len(visible) - 1; i >= 0; i-- {
		l := visible[i]
		// Each layer samples a different phase so stacked layers stay
		// distinguishable; denser when more opaque.
		stride := 7 - int(l.Opacity*4)
		if stride < 2 {
			stride = 2
		}
		if (x+y*3+i)%stride == 0 {
			return layerGlyphs[i%len(layerGlyphs)], layerDotStyles[i%len(layerDotStyles)]
		}
	}
	if x%4 == 0 && y%2 == 0 {
		return '·', baseGridStyle
	}
	return ' ', baseGridStyle
}

// styleish is the tiny slice of lipgloss.Style the renderer needs,
// kept as an interface so cellAt stays trivially testable.
type styleish interface {
	Render(...string) string
}

// renderLegend lists the layer stack, topmost first.
func renderLegend(doc *maps.Map, width int) string {
	layers := doc.Layers()
	var parts []string
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		marker := "○"
		if l.Visible {
			marker = "●"
		}
		parts = append(parts, fmt.Sprintf("%s %s %.2f", marker, l.Name, l.Opacity))
	}
	return truncate(labelStyle.Render(strings.Join(parts, "  ")), width)
}

// viewportSnapshot renders the viewport without styling, for the TXT
// export.
func viewportSnapshot(doc *maps.Map, width, height int) string {
	return ansi.Strip(renderViewport(doc, width, height)) + "\n"
}
