package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
	"github.com/marit/tiledeck/internal/service"
)

// censusPanel adds TIGERweb WMS layers. Changing the source or layer
// with "replace" set swaps the previous census layer out instead of
// stacking a new one.
type censusPanel struct {
	ctrl *panel.Controller
	doc  *maps.Map

	source  dropdown
	layer   dropdown
	replace checkbox
	focus   int // 0 source, 1 layer, 2 replace

	// lastAdded is the layer name of the census layer currently on the
	// map, for replacement.
	lastAdded string
}

func newCensusPanel(doc *maps.Map, ctrl *panel.Controller) *censusPanel {
	p := &censusPanel{
		ctrl:    ctrl,
		doc:     doc,
		source:  newDropdown("WMS", service.CensusSourceNames()),
		replace: checkbox{label: "Replace previous layer", checked: true},
	}
	p.layer = newDropdown("Layer", service.CensusLayers(p.source.value()))
	p.addSelected()
	return p
}

func (p *censusPanel) title() string                 { return "Census data" }
func (p *censusPanel) icon() string                  { return "cen" }
func (p *censusPanel) controller() *panel.Controller { return p.ctrl }
func (p *censusPanel) teardown()                     {}

func (p *censusPanel) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up":
		if p.focus > 0 {
			p.focus--
		}
	case "down":
		if p.focus < 2 {
			p.focus++
		}
	case " ":
		if p.focus == 2 {
			p.replace.toggle()
		}
	case "left", "right":
		changed := false
		switch p.focus {
		case 0:
			if key.String() == "left" {
				changed = p.source.prev()
			} else {
				changed = p.source.next()
			}
			if changed {
				p.layer.setOptions(service.CensusLayers(p.source.value()))
			}
		case 1:
			if key.String() == "left" {
				changed = p.layer.prev()
			} else {
				changed = p.layer.next()
			}
		}
		if changed {
			p.addSelected()
		}
	}
	return nil
}

func (p *censusPanel) addSelected() {
	source, layer := p.source.value(), p.layer.value()
	url := service.CensusLayerURL(source, layer)
	if url == "" {
		return
	}
	if p.replace.checked && p.lastAdded != "" {
		p.doc.RemoveLayerNamed(p.lastAdded)
	}
	name := service.CensusLayerName(source, layer)
	p.doc.AddTileLayer(url, name, "U.S. Census Bureau")
	p.lastAdded = name
}

func (p *censusPanel) body(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		p.source.view(p.focus == 0, width),
		p.layer.view(p.focus == 1, width),
		p.replace.view(p.focus == 2, width),
	)
}
