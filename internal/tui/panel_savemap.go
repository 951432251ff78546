package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/panel"
	"github.com/marit/tiledeck/internal/service"
)

// saveMapPanel exports the map. A type/extension mismatch is shown as
// an in-panel label and blocks the export until resolved; it is user
// feedback, not an error.
type saveMapPanel struct {
	ctrl     *panel.Controller
	exporter *service.Exporter
	// document captures the exportable map state at the moment of
	// export, viewport snapshot included.
	document func() service.Document

	format   dropdown
	filename textinput.Model
	buttons  buttonRow
	focus    int // 0 format, 1 filename, 2 buttons
	label    string
}

func newSaveMapPanel(ctrl *panel.Controller, exporter *service.Exporter, document func() service.Document, defaultName string) *saveMapPanel {
	types := service.ExportTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	p := &saveMapPanel{
		ctrl:     ctrl,
		exporter: exporter,
		document: document,
		format:   newDropdown("Type", names),
		buttons:  newButtonRow("OK", "Cancel", "Close"),
	}
	p.filename = newTextField("output file", 30)
	if defaultName == "" {
		defaultName = p.selectedType().DefaultFilename()
	}
	p.filename.SetValue(defaultName)
	return p
}

func (p *saveMapPanel) selectedType() service.ExportType {
	return service.ExportType(p.format.value())
}

func (p *saveMapPanel) title() string                 { return "Save map" }
func (p *saveMapPanel) icon() string                  { return "sav" }
func (p *saveMapPanel) controller() *panel.Controller { return p.ctrl }
func (p *saveMapPanel) teardown()                     {}

func (p *saveMapPanel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.err != nil {
			p.label = "export failed: " + msg.err.Error()
		} else {
			p.label = "Saved " + msg.path
		}
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *saveMapPanel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
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
		changed := false
		switch msg.String() {
		case "left":
			changed = p.format.prev()
		case "right":
			changed = p.format.next()
		}
		if changed {
			// Selecting a type resets the filename to that type's
			// default, clearing any mismatch.
			p.filename.SetValue(p.selectedType().DefaultFilename())
			p.label = ""
		}
	case 1:
		var cmd tea.Cmd
		p.filename, cmd = p.filename.Update(msg)
		return cmd
	case 2:
		switch msg.String() {
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

func (p *saveMapPanel) syncFocus() {
	if p.focus == 1 {
		p.filename.Focus()
	} else {
		p.filename.Blur()
	}
}

func (p *saveMapPanel) press() tea.Cmd {
	switch p.buttons.value() {
	case "OK":
		return p.export()
	case "Cancel":
		p.filename.SetValue(p.selectedType().DefaultFilename())
		p.label = ""
	case "Close":
		return func() tea.Msg { return closePanelMsg{} }
	}
	return nil
}

func (p *saveMapPanel) export() tea.Cmd {
	t := p.selectedType()
	path := strings.TrimSpace(p.filename.Value())
	if msg := service.Mismatch(t, path); msg != "" {
		p.label = msg
		return nil
	}
	p.label = ""
	doc := p.document()
	exporter := p.exporter
	return func() tea.Msg {
		err := exporter.Export(t, path, doc)
		return exportDoneMsg{path: path, err: err}
	}
}

func (p *saveMapPanel) body(width int) string {
	lines := []string{
		p.format.view(p.focus == 0, width),
		fieldLine("File", &p.filename, p.focus == 1, width),
		p.buttons.view(p.focus == 2, width),
	}
	if n := noticeLine(p.label, width); n != "" {
		lines = append(lines, n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
