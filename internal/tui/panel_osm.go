package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
	"github.com/marit/tiledeck/internal/service"
)

// osmPanel builds an Overpass query for a tag filter within a place and
// stages it as a pending layer. Running the query is delegated to the
// renderer; the layer carries the query in its URL.
type osmPanel struct {
	ctrl *panel.Controller
	doc  *maps.Map

	tag     dropdown
	place   textinput.Model
	buttons buttonRow
	focus   int // 0 tag, 1 place, 2 buttons
	notice  string
}

func newOSMPanel(doc *maps.Map, ctrl *panel.Controller) *osmPanel {
	p := &osmPanel{
		ctrl:    ctrl,
		doc:     doc,
		tag:     newDropdown("Tag", service.OSMFeatureTags),
		buttons: newButtonRow("Apply", "Reset", "Close"),
	}
	p.place = newTextField("place, e.g. Knoxville, Tennessee", 30)
	return p
}

func (p *osmPanel) title() string                 { return "Download OSM data" }
func (p *osmPanel) icon() string                  { return "osm" }
func (p *osmPanel) controller() *panel.Controller { return p.ctrl }
func (p *osmPanel) teardown()                     {}

func (p *osmPanel) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up":
		if p.focus > 0 {
			p.focus--
		}
		p.syncFocus()
		return nil
	case "down":
		if p.focus < 2 {
			p.focus++
		}
		p.syncFocus()
		return nil
	}

	switch p.focus {
	case 0:
		switch key.String() {
		case "left":
			p.tag.prev()
		case "right":
			p.tag.next()
		}
	case 1:
		var cmd tea.Cmd
		p.place, cmd = p.place.Update(msg)
		return cmd
	case 2:
		switch key.String() {
		case "left":
			p.buttons.prev()
		case "right":
			p.buttons.next()
		case "enter":
			return p.press()
		}
	}
	return nil
}

func (p *osmPanel) syncFocus() {
	if p.focus == 1 {
		p.place.Focus()
	} else {
		p.place.Blur()
	}
}

func (p *osmPanel) press() tea.Cmd {
	switch p.buttons.value() {
	case "Apply":
		query := service.BuildOverpassQuery(p.tag.value(), p.place.Value())
		name := fmt.Sprintf("OSM %s", p.tag.value())
		p.doc.AddTileLayer("overpass://"+query, name, "© OpenStreetMap contributors")
		p.notice = "Added " + name
	case "Reset":
		p.place.SetValue("")
		p.notice = ""
	case "Close":
		return func() tea.Msg { return closePanelMsg{} }
	}
	return nil
}

func (p *osmPanel) body(width int) string {
	lines := []string{
		p.tag.view(p.focus == 0, width),
		fieldLine("Place", &p.place, p.focus == 1, width),
		p.buttons.view(p.focus == 2, width),
	}
	for _, ql := range p.queryPreview(4) {
		lines = append(lines, truncate(labelStyle.Render(ql), width))
	}
	if n := noticeLine(p.notice, width); n != "" {
		lines = append(lines, n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// queryPreview shows the head of the composed query so the user sees
// what Apply will stage.
func (p *osmPanel) queryPreview(max int) []string {
	query := service.BuildOverpassQuery(p.tag.value(), p.place.Value())
	lines := strings.Split(strings.TrimRight(query, "\n"), "\n")
	if len(lines) > max {
		lines = append(lines[:max], "…")
	}
	return lines
}
