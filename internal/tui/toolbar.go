package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
)

// Tool identifiers, grid order.
const (
	toolBasemap = iota
	toolSplit
	toolOpenData
	toolCensus
	toolSearch
	toolOSM
	toolTimeSlider
	toolSaveMap
	toolHelp
	toolCount
)

const toolbarColumns = 3

type toolDef struct {
	icon    string
	tooltip string
}

var toolDefs = [toolCount]toolDef{
	toolBasemap:    {icon: "map", tooltip: "Change basemap"},
	toolSplit:      {icon: "spl", tooltip: "Split-panel map"},
	toolOpenData:   {icon: "dat", tooltip: "Open local dataset"},
	toolCensus:     {icon: "cen", tooltip: "Census data"},
	toolSearch:     {icon: "xyz", tooltip: "Search XYZ/WMS providers"},
	toolOSM:        {icon: "osm", tooltip: "Download OSM data"},
	toolTimeSlider: {icon: "tim", tooltip: "Time slider"},
	toolSaveMap:    {icon: "sav", tooltip: "Save map"},
	toolHelp:       {icon: "hlp", tooltip: "Help"},
}

// toolbar is the collapsible tool grid. It enforces tool exclusivity:
// at most one tool is active, and activating one deactivates the
// previous. It also hosts the layer manager, which replaces the grid
// while open.
type toolbar struct {
	ctrl   *panel.Controller
	doc    *maps.Map
	cursor int
	active int // active tool, -1 for none

	layersMode  bool
	layerCursor int // 0 is the all-layers row
	allLayers   checkbox
}

func newToolbar(doc *maps.Map, ctrl *panel.Controller) *toolbar {
	return &toolbar{
		ctrl:      ctrl,
		doc:       doc,
		active:    -1,
		allLayers: checkbox{label: "All layers on/off", checked: true},
	}
}

// moveCursor steps the grid cursor by delta, clamped.
func (t *toolbar) moveCursor(delta int) {
	next := t.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= toolCount {
		next = toolCount - 1
	}
	t.cursor = next
}

// setActive records the active tool; -1 clears it.
func (t *toolbar) setActive(tool int) {
	t.active = tool
}

func (t *toolbar) toggleLayersMode() {
	t.layersMode = !t.layersMode
	t.layerCursor = 0
}

// updateLayers handles keys while the layer manager is open.
func (t *toolbar) updateLayers(msg tea.KeyMsg) {
	rows := len(t.doc.Layers()) + 1 // row 0 toggles everything
	switch msg.String() {
	case "up":
		if t.layerCursor > 0 {
			t.layerCursor--
		}
	case "down":
		if t.layerCursor < rows-1 {
			t.layerCursor++
		}
	case " ":
		if t.layerCursor == 0 {
			t.allLayers.toggle()
			t.doc.SetAllVisible(t.allLayers.checked)
			return
		}
		if l := t.layerAtCursor(); l != nil {
			l.Visible = !l.Visible
		}
	case "left", "right":
		l := t.layerAtCursor()
		if l == nil {
			return
		}
		step := 0.05
		if msg.String() == "left" {
			step = -step
		}
		l.Opacity += step
		if l.Opacity < 0 {
			l.Opacity = 0
		}
		if l.Opacity > 1 {
			l.Opacity = 1
		}
	}
}

func (t *toolbar) layerAtCursor() *maps.Layer {
	layers := t.doc.Layers()
	i := t.layerCursor - 1
	if i < 0 || i >= len(layers) {
		return nil
	}
	return layers[i]
}

// view renders the grid (or the layer manager) inside the toolbar
// chrome. Collapsed, only the header row shows.
func (t *toolbar) view() string {
	header := iconStyle.Render("≡") + " " + titleStyle.Render("Toolbar")
	if t.layersMode {
		header = iconStyle.Render("≡") + " " + titleStyle.Render("Layers")
	}
	if !t.ctrl.Expanded() {
		return panelStyle.Render(iconStyle.Render("≡"))
	}

	body := t.gridView()
	if t.layersMode {
		body = t.layersView()
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (t *toolbar) gridView() string {
	var rows []string
	for start := 0; start < toolCount; start += toolbarColumns {
		var cells []string
		for i := start; i < start+toolbarColumns && i < toolCount; i++ {
			style := iconStyle
			switch {
			case i == t.active:
				style = iconActive
			case i == t.cursor:
				style = iconPinned
			}
			cells = append(cells, style.Render(toolDefs[i].icon))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, truncate(labelStyle.Render(toolDefs[t.cursor].tooltip), panelWidth))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t *toolbar) layersView() string {
	lines := []string{t.allLayers.view(t.layerCursor == 0, panelWidth)}
	for i, l := range t.doc.Layers() {
		box := "[ ]"
		if l.Visible {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %-24s %3.0f%%", box, truncate(l.Name, 24), l.Opacity*100)
		if t.layerCursor == i+1 {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, truncate(line, panelWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
