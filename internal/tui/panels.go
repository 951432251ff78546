package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/panel"
)

// panelWidth is the interior width of every tool panel body.
const panelWidth = 44

// toolPanel is one expandable tool configuration panel. The app owns
// activation and routing; the panel owns its controls and its map
// mutations.
type toolPanel interface {
	title() string
	icon() string
	controller() *panel.Controller

	// update receives messages while the panel is active.
	update(msg tea.Msg) tea.Cmd

	// body renders the interior controls at the given width.
	body(width int) string

	// teardown runs panel-specific cleanup on close, before the
	// controller detaches the panel from the map.
	teardown()
}

// renderToolPanel draws the icon row, or icon row plus body when the
// controller is expanded. The displayed tree is replaced whole: either
// the icon row alone or the icon row with the body beneath it.
func renderToolPanel(p toolPanel) string {
	ctrl := p.controller()

	icon := iconStyle.Render(p.icon())
	if ctrl.Pinned() {
		icon = iconPinned.Render(p.icon())
	}

	if !ctrl.Expanded() {
		return panelStyle.Render(icon)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, iconStyle.Render("✕"), icon, " ", titleStyle.Render(p.title()))
	body := p.body(panelWidth)
	content := header
	if strings.TrimSpace(body) != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, header, body)
	}
	return panelStyle.Render(lipgloss.NewStyle().Width(panelWidth).Render(content))
}

// noticeLine renders a one-line in-panel notice, or "" when empty.
func noticeLine(text string, width int) string {
	if text == "" {
		return ""
	}
	return truncate(noticeStyle.Render(text), width)
}
