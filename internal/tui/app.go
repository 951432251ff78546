package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/config"
	"github.com/marit/tiledeck/internal/database/repository"
	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
	"github.com/marit/tiledeck/internal/service"
)

// App is the root model: the map viewport, the toolbar, and at most one
// active tool panel. All map mutation happens on the update goroutine;
// the playback loop reaches it through the events channel.
type App struct {
	cfg      config.Config
	doc      *maps.Map
	repo     *repository.ProviderRepo
	exporter *service.Exporter

	keys    keyMap
	help    help.Model
	toolbar *toolbar
	active  toolPanel

	// events carries messages from background goroutines (the playback
	// loop) into Update. Sends are non-blocking; a dropped tick is
	// replaced by the next one.
	events chan tea.Msg

	// basemaps is the cached catalog, fed to panels opened after the
	// initial load.
	basemaps []repository.Provider

	width, height int
	status        string
	statusErr     bool

	toolbarRect rect
	panelRect   rect
	inToolbar   bool
	inPanel     bool
}

func NewApp(cfg config.Config, doc *maps.Map, repo *repository.ProviderRepo, exporter *service.Exporter) *App {
	a := &App{
		cfg:      cfg,
		doc:      doc,
		repo:     repo,
		exporter: exporter,
		keys:     newKeyMap(),
		help:     help.New(),
		events:   make(chan tea.Msg, 8),
		status:   "Ready. Tab moves the tool cursor, enter opens a tool.",
	}
	pos := maps.Position(cfg.UI.ToolbarPosition)
	switch pos {
	case maps.TopLeft, maps.TopRight, maps.BottomLeft, maps.BottomRight:
	default:
		pos = maps.TopRight
	}
	ctrl := panel.New(doc, doc.Attach(maps.Control{Name: "toolbar", Position: pos}))
	ctrl.SetPinned(true)
	a.toolbar = newToolbar(doc, ctrl)
	return a
}

// send delivers a message from a background goroutine, dropping it if
// the channel is full. Last write wins on the consumer side anyway.
func (a *App) send(msg tea.Msg) {
	select {
	case a.events <- msg:
	default:
	}
}

func (a *App) listen() tea.Msg {
	return <-a.events
}

func (a *App) loadBasemaps() tea.Msg {
	providers, err := a.repo.List(context.Background(), repository.CategoryBasemap)
	return basemapsLoadedMsg{providers: providers, err: err}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadBasemaps, a.listen)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, nil

	case frameAdvancedMsg:
		var cmd tea.Cmd
		if a.active != nil {
			cmd = a.active.update(msg)
		}
		// Re-arm the channel listener for the next tick.
		return a, tea.Batch(cmd, a.listen)

	case basemapsLoadedMsg:
		if msg.err == nil {
			a.basemaps = msg.providers
		}
		if a.active != nil {
			return a, a.active.update(msg)
		}
		return a, nil

	case providersFoundMsg, exportDoneMsg:
		if a.active != nil {
			return a, a.active.update(msg)
		}
		return a, nil

	case closePanelMsg:
		return a, a.closeActive()

	case statusMsg:
		a.status, a.statusErr = msg.text, msg.isErr
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		if a.active != nil {
			return a, a.closeActive()
		}
		if a.toolbar.layersMode {
			a.toolbar.toggleLayersMode()
		}
		return a, nil
	case "ctrl+p":
		if a.active != nil {
			a.active.controller().TogglePinned()
		}
		return a, nil
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		if a.active != nil {
			// A panel is open, so tab switches tools directly; the
			// toolbar enforces one active tool at a time.
			next := (a.toolbar.active + delta + toolCount) % toolCount
			return a, a.activateTool(next)
		}
		a.toolbar.moveCursor(delta)
		return a, nil
	}

	if a.toolbar.layersMode {
		if msg.String() == "l" {
			a.toolbar.toggleLayersMode()
			return a, nil
		}
		a.toolbar.updateLayers(msg)
		return a, nil
	}

	if a.active != nil {
		return a, a.active.update(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "l":
		a.toolbar.toggleLayersMode()
	case "left":
		a.toolbar.moveCursor(-1)
	case "right":
		a.toolbar.moveCursor(1)
	case "up":
		a.toolbar.moveCursor(-toolbarColumns)
	case "down":
		a.toolbar.moveCursor(toolbarColumns)
	case "enter":
		return a, a.activateTool(a.toolbar.cursor)
	}
	return a, nil
}

// handleMouse turns motion events into pointer-enter/leave edges for
// the toolbar and the active panel.
func (a *App) handleMouse(msg tea.MouseMsg) {
	if !a.cfg.UI.MouseMotion || msg.Action != tea.MouseActionMotion {
		return
	}

	if in := a.toolbarRect.contains(msg.X, msg.Y); in != a.inToolbar {
		a.inToolbar = in
		if in {
			a.toolbar.ctrl.PointerEnter()
		} else {
			a.toolbar.ctrl.PointerLeave()
		}
	}

	if a.active == nil {
		a.inPanel = false
		return
	}
	if in := a.panelRect.contains(msg.X, msg.Y); in != a.inPanel {
		a.inPanel = in
		if in {
			a.active.controller().PointerEnter()
		} else {
			a.active.controller().PointerLeave()
		}
	}
}

// activateTool opens the tool at index i, closing any other open tool
// first. Reopening the already-active tool closes it.
func (a *App) activateTool(i int) tea.Cmd {
	if i == toolHelp {
		a.status = "Help: https://github.com/marit/tiledeck#readme"
		a.statusErr = false
		return nil
	}
	if a.toolbar.active == i {
		return a.closeActive()
	}
	closeCmd := a.closeActive()

	handle := a.doc.Attach(maps.Control{Name: toolDefs[i].tooltip, Position: maps.TopRight})
	ctrl := panel.New(a.doc, handle)
	ctrl.SetPinned(true) // panels open pinned; unpin for hover-only behavior

	var p toolPanel
	switch i {
	case toolBasemap:
		p = newBasemapPanel(a.doc, ctrl)
	case toolSplit:
		p = newSplitPanel(a.doc, ctrl)
	case toolOpenData:
		p = newOpenDataPanel(a.doc, ctrl)
	case toolCensus:
		p = newCensusPanel(a.doc, ctrl)
	case toolSearch:
		p = newSearchPanel(a.doc, ctrl, a.repo)
	case toolOSM:
		p = newOSMPanel(a.doc, ctrl)
	case toolTimeSlider:
		p = newTimeSliderPanel(a.doc, ctrl, a.cfg.Playback, a.send)
	case toolSaveMap:
		p = newSaveMapPanel(ctrl, a.exporter, a.exportDocument, a.cfg.Export.DefaultFilename)
	default:
		return nil
	}
	a.active = p
	a.toolbar.setActive(i)
	a.toolbar.cursor = i
	a.status = toolDefs[i].tooltip
	a.statusErr = false

	if len(a.basemaps) > 0 {
		return tea.Batch(closeCmd, p.update(basemapsLoadedMsg{providers: a.basemaps}))
	}
	return closeCmd
}

// closeActive tears the active panel down and detaches it. Safe to call
// with no panel open. Closing the basemap panel persists the selection.
func (a *App) closeActive() tea.Cmd {
	if a.active == nil {
		return nil
	}
	var cmd tea.Cmd
	if _, ok := a.active.(*basemapPanel); ok {
		cmd = a.persistBasemap()
	}
	a.active.teardown()
	a.active.controller().Close()
	a.active = nil
	a.inPanel = false
	a.toolbar.setActive(-1)
	return cmd
}

// persistBasemap writes the chosen basemap back to the config file so
// the next session starts on it.
func (a *App) persistBasemap() tea.Cmd {
	layers := a.doc.Layers()
	if len(layers) < 2 || layers[1].Name == a.cfg.UI.Basemap {
		return nil
	}
	a.cfg.UI.Basemap = layers[1].Name
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return statusMsg{text: "save preferences: " + err.Error(), isErr: true}
		}
		return nil
	}
}

// exportDocument snapshots the map for the save-map panel.
func (a *App) exportDocument() service.Document {
	layers := a.doc.Layers()
	doc := service.Document{
		Title:   "tiledeck map",
		CenterY: 40,
		CenterX: -100,
		Zoom:    4,
		Layers:  make([]service.ExportLayer, len(layers)),
	}
	for i, l := range layers {
		doc.Layers[i] = service.ExportLayer{
			Name:        l.Name,
			URL:         l.URL,
			Attribution: l.Attribution,
			Visible:     l.Visible,
			Opacity:     l.Opacity,
		}
	}
	doc.Snapshot = viewportSnapshot(a.doc, a.viewportWidth(), a.viewportHeight())
	return doc
}

func (a *App) viewportWidth() int {
	if a.width > 0 {
		return a.width
	}
	return 80
}

func (a *App) viewportHeight() int {
	h := a.height - 2 // status bar and footer
	if h < 1 {
		h = 22
	}
	return h
}

func (a *App) View() string {
	w, h := a.viewportWidth(), a.viewportHeight()
	screen := renderViewport(a.doc, w, h)

	// Toolbar in the top-right corner; the active panel stacks beneath
	// it. Bounds are recorded for mouse hit-testing.
	tb := a.toolbar.view()
	tbBounds := overlayBounds(tb, 0, 0)
	tbX := w - tbBounds.w - 1
	if tbX < 0 {
		tbX = 0
	}
	a.toolbarRect = overlayBounds(tb, tbX, 1)
	screen = compositeAt(screen, tb, tbX, 1, w, h)

	a.panelRect = rect{}
	if a.active != nil {
		pv := renderToolPanel(a.active)
		pvBounds := overlayBounds(pv, 0, 0)
		pvX := w - pvBounds.w - 1
		if pvX < 0 {
			pvX = 0
		}
		pvY := a.toolbarRect.y + a.toolbarRect.h
		a.panelRect = overlayBounds(pv, pvX, pvY)
		screen = compositeAt(screen, pv, pvX, pvY, w, h)
	}

	statusLine := statusStyle
	if a.statusErr {
		statusLine = errStyle
	}
	status := statusLine.Width(w).Render(truncate(a.status+"  "+renderLegend(a.doc, w/2), w-4))
	footer := footerStyle.Width(w).Render(a.help.View(a.keys))

	return lipgloss.JoinVertical(lipgloss.Left, screen, status, footer)
}
