package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/database/repository"
	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
)

// searchPanel looks tile providers up by keyword and adds the selected
// one as a layer.
type searchPanel struct {
	ctrl *panel.Controller
	doc  *maps.Map
	repo *repository.ProviderRepo

	keyword textinput.Model
	qms     checkbox
	results list.Model
	focus   int // 0 keyword, 1 qms, 2 results
	notice  string
}

// providerItem adapts a catalog row to the results list.
type providerItem struct {
	p repository.Provider
}

func (i providerItem) FilterValue() string { return i.p.Name }

// providerDelegate renders one result row: name, source, and a key
// marker for token-gated providers.
type providerDelegate struct{}

func (providerDelegate) Height() int                         { return 1 }
func (providerDelegate) Spacing() int                        { return 0 }
func (providerDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (providerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(providerItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s (%s)", it.p.Name, it.p.Source)
	if it.p.RequiresToken {
		line += " 🔑"
	}
	if index == m.Index() {
		line = selectedStyle.Render(line)
	}
	fmt.Fprint(w, "  "+line)
}

func newSearchPanel(doc *maps.Map, ctrl *panel.Controller, repo *repository.ProviderRepo) *searchPanel {
	p := &searchPanel{
		ctrl: ctrl,
		doc:  doc,
		repo: repo,
		qms:  checkbox{label: "Include QMS results"},
	}
	p.keyword = newTextField("keyword, e.g. OpenTopoMap", 30)
	p.keyword.Focus()

	p.results = list.New(nil, providerDelegate{}, panelWidth, 8)
	p.results.SetShowTitle(false)
	p.results.SetShowStatusBar(false)
	p.results.SetFilteringEnabled(false)
	p.results.SetShowHelp(false)
	p.results.SetShowPagination(false)
	return p
}

func (p *searchPanel) title() string                 { return "Search XYZ/WMS providers" }
func (p *searchPanel) icon() string                  { return "xyz" }
func (p *searchPanel) controller() *panel.Controller { return p.ctrl }
func (p *searchPanel) teardown()                     {}

func (p *searchPanel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case providersFoundMsg:
		if msg.err != nil {
			p.notice = "search failed: " + msg.err.Error()
			return nil
		}
		items := make([]list.Item, len(msg.providers))
		for i, pr := range msg.providers {
			items[i] = providerItem{p: pr}
		}
		p.notice = fmt.Sprintf("%d providers match %q", len(items), msg.keyword)
		return p.results.SetItems(items)
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *searchPanel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// The results list owns up/down while focused, so tab cycles the
	// three form regions instead.
	switch msg.String() {
	case "up":
		if p.focus != 2 && p.focus > 0 {
			p.focus--
			p.syncFocus()
			return nil
		}
	case "down":
		if p.focus < 2 {
			p.focus++
			p.syncFocus()
			return nil
		}
	}

	switch p.focus {
	case 0:
		if msg.String() == "enter" {
			return p.search()
		}
		var cmd tea.Cmd
		p.keyword, cmd = p.keyword.Update(msg)
		return cmd
	case 1:
		switch msg.String() {
		case " ":
			p.qms.toggle()
		case "enter":
			return p.search()
		}
	case 2:
		if msg.String() == "enter" {
			p.addSelected()
			return nil
		}
		var cmd tea.Cmd
		p.results, cmd = p.results.Update(msg)
		return cmd
	}
	return nil
}

func (p *searchPanel) syncFocus() {
	if p.focus == 0 {
		p.keyword.Focus()
	} else {
		p.keyword.Blur()
	}
}

func (p *searchPanel) search() tea.Cmd {
	keyword := strings.TrimSpace(p.keyword.Value())
	includeQMS := p.qms.checked
	repo := p.repo
	return func() tea.Msg {
		providers, err := repo.Search(context.Background(), keyword, includeQMS)
		return providersFoundMsg{keyword: keyword, providers: providers, err: err}
	}
}

func (p *searchPanel) addSelected() {
	item, ok := p.results.SelectedItem().(providerItem)
	if !ok {
		return
	}
	if item.p.RequiresToken {
		p.notice = item.p.Name + " requires an API key."
		return
	}
	p.doc.AddTileLayer(item.p.URL, item.p.Name, item.p.Attribution)
	p.notice = "Added " + item.p.Name
}

func (p *searchPanel) body(width int) string {
	lines := []string{
		fieldLine("Keyword", &p.keyword, p.focus == 0, width),
		p.qms.view(p.focus == 1, width),
		p.results.View(),
	}
	if n := noticeLine(p.notice, width); n != "" {
		lines = append(lines, n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
