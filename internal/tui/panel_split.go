package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/database/repository"
	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
)

// splitPanel runs the side-by-side comparison mode. Opening it
// snapshots the map and rebuilds it around a left and a right layer;
// closing restores the snapshot, so whatever the user did inside the
// mode does not leak into the normal map.
type splitPanel struct {
	ctrl      *panel.Controller
	doc       *maps.Map
	snap      maps.Snapshot
	providers []repository.Provider

	left       dropdown
	right      dropdown
	leftLayer  *maps.Layer
	rightLayer *maps.Layer
	focus      int // 0 left dropdown, 1 right dropdown
	notice     string
}

func newSplitPanel(doc *maps.Map, ctrl *panel.Controller) *splitPanel {
	p := &splitPanel{
		ctrl:  ctrl,
		doc:   doc,
		snap:  doc.Snapshot(),
		left:  newDropdown("Left", nil),
		right: newDropdown("Right", nil),
	}
	// The comparison mode owns the whole surface while it is up.
	doc.ClearControls()
	doc.Attach(maps.Control{Name: "zoom", Position: maps.TopLeft})
	doc.Attach(maps.Control{Name: "scale", Position: maps.BottomLeft})
	return p
}

func (p *splitPanel) title() string                 { return "Split-panel map" }
func (p *splitPanel) icon() string                  { return "spl" }
func (p *splitPanel) controller() *panel.Controller { return p.ctrl }

// teardown restores the pre-split layer stack and control surface.
func (p *splitPanel) teardown() {
	p.doc.Restore(p.snap)
}

func (p *splitPanel) update(msg tea.Msg) tea.Cmd {
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
		p.left.setOptions(names)
		p.right.setOptions(names)
		if len(names) > 1 {
			p.right.index = len(names) - 1
		}
		p.buildSides()
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			p.focus = 0
		case "down":
			p.focus = 1
		case "left", "right":
			d := &p.left
			if p.focus == 1 {
				d = &p.right
			}
			changed := false
			if msg.String() == "left" {
				changed = d.prev()
			} else {
				changed = d.next()
			}
			if changed {
				p.applySide(p.focus)
			}
		}
	}
	return nil
}

// buildSides replaces the layer stack with base + left + right.
func (p *splitPanel) buildSides() {
	base := p.doc.Layers()[0]
	p.leftLayer = p.layerFor(p.left.value())
	p.rightLayer = p.layerFor(p.right.value())
	p.doc.Restore(maps.Snapshot{})
	p.doc.AddLayer(base)
	if p.leftLayer != nil {
		p.doc.AddLayer(p.leftLayer)
	}
	if p.rightLayer != nil {
		p.doc.AddLayer(p.rightLayer)
	}
	p.doc.Attach(maps.Control{Name: "zoom", Position: maps.TopLeft})
	p.doc.Attach(maps.Control{Name: "scale", Position: maps.BottomLeft})
}

// applySide retargets one side's layer in place; the other side and the
// divider stay put.
func (p *splitPanel) applySide(side int) {
	d, layer := &p.left, p.leftLayer
	if side == 1 {
		d, layer = &p.right, p.rightLayer
	}
	pr := p.providerNamed(d.value())
	if pr == nil || layer == nil {
		return
	}
	layer.Name = pr.Name
	layer.URL = pr.URL
	layer.Attribution = pr.Attribution
	p.notice = ""
	if pr.RequiresToken {
		p.notice = pr.Name + " requires an API key."
	}
}

func (p *splitPanel) providerNamed(name string) *repository.Provider {
	for i := range p.providers {
		if p.providers[i].Name == name {
			return &p.providers[i]
		}
	}
	return nil
}

func (p *splitPanel) layerFor(name string) *maps.Layer {
	pr := p.providerNamed(name)
	if pr == nil {
		return nil
	}
	return maps.NewTileLayer(pr.URL, pr.Name, pr.Attribution)
}

func (p *splitPanel) body(width int) string {
	lines := []string{
		p.left.view(p.focus == 0, width),
		p.right.view(p.focus == 1, width),
	}
	if n := noticeLine(p.notice, width); n != "" {
		lines = append(lines, n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
