package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/database/repository"
	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
)

// basemapPanel swaps the basemap in layer slot 1. The substitution is
// in-place so layers stacked above the basemap are untouched.
type basemapPanel struct {
	ctrl      *panel.Controller
	doc       *maps.Map
	providers []repository.Provider
	drop      dropdown
	notice    string
}

func newBasemapPanel(doc *maps.Map, ctrl *panel.Controller) *basemapPanel {
	return &basemapPanel{
		ctrl: ctrl,
		doc:  doc,
		drop: newDropdown("Basemap", nil),
	}
}

func (p *basemapPanel) title() string                 { return "Change basemap" }
func (p *basemapPanel) icon() string                  { return "map" }
func (p *basemapPanel) controller() *panel.Controller { return p.ctrl }
func (p *basemapPanel) teardown()                     {}

func (p *basemapPanel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case basemapsLoadedMsg:
		if msg.err != nil {
			p.notice = "basemap catalog unavailable: " + msg.err.Error()
			return nil
		}
		p.providers = msg.providers
		names := make([]string, len(msg.providers))
		for i, pr := range msg.providers {
			names[i] = pr.Name
		}
		p.drop.setOptions(names)
		p.ensureBasemapSlot()
		if slot := p.basemapSlot(); slot != nil {
			p.drop.setValue(slot.Name)
		}
	case tea.KeyMsg:
		changed := false
		switch msg.String() {
		case "left":
			changed = p.drop.prev()
		case "right":
			changed = p.drop.next()
		}
		if changed {
			p.applySelection()
		}
	}
	return nil
}

// basemapSlot returns the layer at stack index 1, or nil when the stack
// holds only the base layer.
func (p *basemapPanel) basemapSlot() *maps.Layer {
	layers := p.doc.Layers()
	if len(layers) < 2 {
		return nil
	}
	return layers[1]
}

// ensureBasemapSlot guarantees slot 1 holds a catalog basemap, inserting
// OpenStreetMap beneath any existing overlays when it does not.
func (p *basemapPanel) ensureBasemapSlot() {
	if slot := p.basemapSlot(); slot != nil {
		for _, pr := range p.providers {
			if pr.Name == slot.Name {
				return
			}
		}
	}
	for _, pr := range p.providers {
		if pr.Name == "OpenStreetMap" {
			p.doc.InsertLayer(1, maps.NewTileLayer(pr.URL, pr.Name, pr.Attribution))
			return
		}
	}
}

func (p *basemapPanel) applySelection() {
	name := p.drop.value()
	for _, pr := range p.providers {
		if pr.Name != name {
			continue
		}
		p.notice = ""
		if pr.RequiresToken {
			p.notice = pr.Name + " requires an API key."
		}
		repl := maps.NewTileLayer(pr.URL, pr.Name, pr.Attribution)
		if slot := p.basemapSlot(); slot != nil {
			p.doc.SubstituteLayer(slot, repl)
		} else {
			p.doc.InsertLayer(1, repl)
		}
		return
	}
}

func (p *basemapPanel) body(width int) string {
	lines := []string{p.drop.view(true, width)}
	if n := noticeLine(p.notice, width); n != "" {
		lines = append(lines, n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
