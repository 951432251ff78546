package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
	"github.com/marit/tiledeck/internal/service"
)

// Open-data file types, dropdown order.
var openDataTypes = []string{"Shapefile", "GeoJSON", "CSV", "Vector", "Raster"}

// Control slots in the open-data form. Which slots are focusable depends
// on the selected file type.
const (
	odType = iota
	odPath
	odName
	odPoint
	odLon
	odLat
	odLabel
	odBand
	odVMin
	odVMax
	odNoData
	odPalette
	odButtons
)

// openDataPanel loads a local dataset as a new layer. The form is
// type-shaped: CSV exposes column pickers, Vector a point toggle and
// Raster its display settings.
type openDataPanel struct {
	ctrl *panel.Controller
	doc  *maps.Map

	fileType dropdown
	path     textinput.Model
	name     textinput.Model
	point    checkbox
	lon      textinput.Model
	lat      textinput.Model
	label    textinput.Model
	band     textinput.Model
	vmin     textinput.Model
	vmax     textinput.Model
	nodata   textinput.Model
	palette  dropdown
	buttons  buttonRow

	focus  int // index into focusables()
	output string
}

func newOpenDataPanel(doc *maps.Map, ctrl *panel.Controller) *openDataPanel {
	p := &openDataPanel{
		ctrl:     ctrl,
		doc:      doc,
		fileType: newDropdown("File type", openDataTypes),
		palette:  newDropdown("Palette", []string{"terrain", "viridis", "plasma", "gray"}),
		point:    checkbox{label: "Point layer"},
		buttons:  newButtonRow("Apply", "Reset", "Close"),
	}
	p.path = newTextField("path to dataset", 34)
	p.name = newTextField("layer name", 24)
	p.lon = newTextField("longitude", 12)
	p.lat = newTextField("latitude", 12)
	p.label = newTextField("name", 12)
	p.band = newTextField("band", 8)
	p.vmin = newTextField("vmin", 8)
	p.vmax = newTextField("vmax", 8)
	p.nodata = newTextField("nodata", 8)
	p.name.SetValue("Shapefile")
	p.lon.SetValue("longitude")
	p.lat.SetValue("latitude")
	p.syncFocus()
	return p
}

func newTextField(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = width
	ti.CharLimit = 256
	return ti
}

func (p *openDataPanel) title() string                 { return "Open local dataset" }
func (p *openDataPanel) icon() string                  { return "dat" }
func (p *openDataPanel) controller() *panel.Controller { return p.ctrl }
func (p *openDataPanel) teardown()                     {}

// focusables lists the focusable slots for the current file type.
func (p *openDataPanel) focusables() []int {
	slots := []int{odType, odPath, odName}
	switch p.fileType.value() {
	case "CSV":
		slots = append(slots, odLon, odLat, odLabel)
	case "Vector":
		slots = append(slots, odPoint)
	case "Raster":
		slots = append(slots, odBand, odVMin, odVMax, odNoData, odPalette)
	}
	return append(slots, odButtons)
}

func (p *openDataPanel) focusedSlot() int {
	slots := p.focusables()
	if p.focus >= len(slots) {
		p.focus = len(slots) - 1
	}
	return slots[p.focus]
}

func (p *openDataPanel) textField(slot int) *textinput.Model {
	switch slot {
	case odPath:
		return &p.path
	case odName:
		return &p.name
	case odLon:
		return &p.lon
	case odLat:
		return &p.lat
	case odLabel:
		return &p.label
	case odBand:
		return &p.band
	case odVMin:
		return &p.vmin
	case odVMax:
		return &p.vmax
	case odNoData:
		return &p.nodata
	}
	return nil
}

// syncFocus gives terminal focus to the focused text field, if any.
func (p *openDataPanel) syncFocus() {
	slot := p.focusedSlot()
	for _, s := range []int{odPath, odName, odLon, odLat, odLabel, odBand, odVMin, odVMax, odNoData} {
		ti := p.textField(s)
		if s == slot {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

func (p *openDataPanel) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	slot := p.focusedSlot()

	switch key.String() {
	case "up":
		if p.focus > 0 {
			p.focus--
		}
		p.syncFocus()
		return nil
	case "down":
		if p.focus < len(p.focusables())-1 {
			p.focus++
		}
		p.syncFocus()
		return nil
	}

	switch slot {
	case odType:
		changed := false
		switch key.String() {
		case "left":
			changed = p.fileType.prev()
		case "right":
			changed = p.fileType.next()
		}
		if changed {
			// A type change resets the form around the new shape.
			p.path.SetValue("")
			p.name.SetValue(p.fileType.value())
			p.output = ""
			p.focus = 0
			p.syncFocus()
		}
	case odPoint:
		if key.String() == " " {
			p.point.toggle()
		}
	case odPalette:
		switch key.String() {
		case "left":
			p.palette.prev()
		case "right":
			p.palette.next()
		}
	case odButtons:
		switch key.String() {
		case "left":
			p.buttons.prev()
		case "right":
			p.buttons.next()
		case "enter":
			return p.press()
		}
	default:
		if ti := p.textField(slot); ti != nil {
			var cmd tea.Cmd
			*ti, cmd = ti.Update(msg)
			return cmd
		}
	}
	return nil
}

func (p *openDataPanel) press() tea.Cmd {
	switch p.buttons.value() {
	case "Apply":
		p.apply()
	case "Reset":
		p.path.SetValue("")
		p.output = ""
	case "Close":
		p.output = ""
		return func() tea.Msg { return closePanelMsg{} }
	}
	return nil
}

// apply adds the dataset as a layer. Reading and styling the file is
// the renderer's concern; the layer carries the path and the parsed
// display settings in its name and URL.
func (p *openDataPanel) apply() {
	path := strings.TrimSpace(p.path.Value())
	if path == "" {
		p.output = "Please select a file to open."
		return
	}
	name := strings.TrimSpace(p.name.Value())
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	url := "file://" + path
	switch p.fileType.value() {
	case "CSV":
		url = fmt.Sprintf("%s?lon=%s&lat=%s&label=%s", url, p.lon.Value(), p.lat.Value(), p.label.Value())
	case "Vector":
		if p.point.checked {
			url += "?point=true"
		}
	case "Raster":
		opts, ignored := service.ParseRasterOptions(p.band.Value(), p.vmin.Value(), p.vmax.Value(), p.nodata.Value())
		url += rasterQuery(opts, p.palette.value())
		if len(ignored) > 0 {
			p.output = "Added " + name + " (ignored invalid: " + strings.Join(ignored, ", ") + ")"
			p.doc.AddTileLayer(url, name, "")
			return
		}
	}
	p.doc.AddTileLayer(url, name, "")
	p.output = "Added " + name
}

func rasterQuery(opts service.RasterOptions, palette string) string {
	var parts []string
	if opts.Band != nil {
		parts = append(parts, fmt.Sprintf("band=%d", *opts.Band))
	}
	if opts.VMin != nil {
		parts = append(parts, fmt.Sprintf("vmin=%g", *opts.VMin))
	}
	if opts.VMax != nil {
		parts = append(parts, fmt.Sprintf("vmax=%g", *opts.VMax))
	}
	if opts.NoData != nil {
		parts = append(parts, fmt.Sprintf("nodata=%g", *opts.NoData))
	}
	if palette != "" {
		parts = append(parts, "palette="+palette)
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

func (p *openDataPanel) body(width int) string {
	slot := p.focusedSlot()
	lines := []string{
		p.fileType.view(slot == odType, width),
		fieldLine("File", &p.path, slot == odPath, width),
		fieldLine("Layer", &p.name, slot == odName, width),
	}
	switch p.fileType.value() {
	case "CSV":
		lines = append(lines,
			fieldLine("X col", &p.lon, slot == odLon, width),
			fieldLine("Y col", &p.lat, slot == odLat, width),
			fieldLine("Label", &p.label, slot == odLabel, width),
		)
	case "Vector":
		lines = append(lines, p.point.view(slot == odPoint, width))
	case "Raster":
		lines = append(lines,
			fieldLine("Band", &p.band, slot == odBand, width),
			fieldLine("vmin", &p.vmin, slot == odVMin, width),
			fieldLine("vmax", &p.vmax, slot == odVMax, width),
			fieldLine("nodata", &p.nodata, slot == odNoData, width),
			p.palette.view(slot == odPalette, width),
		)
	}
	lines = append(lines, p.buttons.view(slot == odButtons, width))
	if n := noticeLine(p.output, width); n != "" {
		lines = append(lines, n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fieldLine renders a labelled text input row.
func fieldLine(label string, ti *textinput.Model, focused bool, width int) string {
	line := fmt.Sprintf("%s %s", labelStyle.Render(label), ti.View())
	if focused {
		line = cursorStyle.Render("> ") + line
	} else {
		line = "  " + line
	}
	return truncate(line, width)
}
