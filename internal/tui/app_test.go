package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/marit/tiledeck/internal/config"
	"github.com/marit/tiledeck/internal/database/repository"
	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
	"github.com/marit/tiledeck/internal/service"
)

func testDoc() *maps.Map {
	return maps.New(maps.NewTileLayer("", "Graticule", ""))
}

func testCtrl(doc *maps.Map) *panel.Controller {
	c := panel.New(doc, doc.Attach(maps.Control{Name: "test", Position: maps.TopRight}))
	c.SetPinned(true)
	return c
}

func keyRight() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRight} }
func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func testBasemaps() []repository.Provider {
	return []repository.Provider{
		{Name: "OpenStreetMap", URL: "https://osm/{z}/{x}/{y}.png", Category: repository.CategoryBasemap},
		{Name: "OpenTopoMap", URL: "https://topo/{z}/{x}/{y}.png", Category: repository.CategoryBasemap},
	}
}

func TestBasemapPanelSubstitutesSlotOne(t *testing.T) {
	doc := testDoc()
	p := newBasemapPanel(doc, testCtrl(doc))

	p.update(basemapsLoadedMsg{providers: testBasemaps()})
	require.Len(t, doc.Layers(), 2, "catalog load should seat a basemap in slot 1")
	require.Equal(t, "OpenStreetMap", doc.Layers()[1].Name)

	overlay := doc.AddTileLayer("https://x", "Overlay", "")

	p.update(keyRight())
	layers := doc.Layers()
	require.Equal(t, "OpenTopoMap", layers[1].Name, "substitution happens in slot 1")
	require.Same(t, overlay, layers[2], "layers above the basemap stay put")
}

func TestSplitPanelRestoresMapOnClose(t *testing.T) {
	doc := testDoc()
	doc.AddTileLayer("https://osm", "OpenStreetMap", "")

	p := newSplitPanel(doc, testCtrl(doc))
	p.update(basemapsLoadedMsg{providers: testBasemaps()})

	require.Len(t, doc.Layers(), 3, "base + left + right while split is up")

	p.teardown()
	layers := doc.Layers()
	require.Len(t, layers, 2)
	require.Equal(t, "Graticule", layers[0].Name)
	require.Equal(t, "OpenStreetMap", layers[1].Name)
}

func TestCensusPanelReplacesPreviousLayer(t *testing.T) {
	doc := testDoc()
	p := newCensusPanel(doc, testCtrl(doc))

	require.NotNil(t, doc.LayerNamed("Census 2020 - States"), "opening adds the default layer")

	p.focus = 1
	p.update(keyRight())

	require.Nil(t, doc.LayerNamed("Census 2020 - States"), "replace removes the previous layer")
	require.NotNil(t, doc.LayerNamed("Census 2020 - Counties"))

	census := 0
	for _, l := range doc.Layers() {
		if strings.HasPrefix(l.Name, "Census") {
			census++
		}
	}
	require.Equal(t, 1, census)
}

func TestCensusPanelStacksWhenReplaceOff(t *testing.T) {
	doc := testDoc()
	p := newCensusPanel(doc, testCtrl(doc))
	p.replace.checked = false

	p.focus = 1
	p.update(keyRight())

	require.NotNil(t, doc.LayerNamed("Census 2020 - States"))
	require.NotNil(t, doc.LayerNamed("Census 2020 - Counties"))
}

func TestTimeSliderAppliesFramesAndTearsDown(t *testing.T) {
	doc := testDoc()
	cfg := config.PlaybackConfig{
		IntervalSeconds: 1,
		FrameTemplate:   "https://gibs/{t}/tile.jpg",
		FrameLabels:     []string{"2024-01-01", "2024-02-01", "2024-03-01"},
	}
	ctrl := testCtrl(doc)
	p := newTimeSliderPanel(doc, ctrl, cfg, func(tea.Msg) {})

	require.Len(t, doc.Layers(), 2)
	require.Contains(t, p.layer.URL, "2024-01-01")
	require.Len(t, doc.Controls(), 2, "panel control plus the slider control")

	p.update(frameAdvancedMsg{index: 2})
	require.Contains(t, p.layer.URL, "2024-02-01")
	require.Equal(t, 2, p.pos.val)

	p.teardown()
	ctrl.Close()
	require.Len(t, doc.Layers(), 1, "frame layer removed on close")
	require.Empty(t, doc.Controls(), "close detaches both controls")
	require.False(t, p.loop.Playing())
	require.False(t, p.loop.Play(), "closed loop refuses to restart")
}

func TestSaveMapPanelShowsMismatchLabelAndBlocksExport(t *testing.T) {
	doc := testDoc()
	exporter := &service.Exporter{Dir: t.TempDir()}
	p := newSaveMapPanel(testCtrl(doc), exporter, func() service.Document {
		return service.Document{Title: "test", Snapshot: "snapshot\n"}
	}, "")

	require.Equal(t, "my_map.html", p.filename.Value())

	p.filename.SetValue("map.json")
	p.focus = 2
	cmd := p.handleKey(keyEnter())
	require.Nil(t, cmd, "mismatch blocks the export")
	require.Equal(t, "The selected file extension does not match the selected exporting type.", p.label)

	p.filename.SetValue("map.html")
	cmd = p.handleKey(keyEnter())
	require.NotNil(t, cmd)
	msg, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
}

func TestSaveMapPanelUsesConfiguredDefaultFilename(t *testing.T) {
	doc := testDoc()
	p := newSaveMapPanel(testCtrl(doc), &service.Exporter{}, func() service.Document {
		return service.Document{}
	}, "atlas.html")
	require.Equal(t, "atlas.html", p.filename.Value())
}

func TestClosingBasemapPanelPersistsSelection(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("TILEDECK_CONFIG", cfgPath)

	doc := testDoc()
	cfg := config.Config{}
	cfg.UI.Basemap = "OpenStreetMap"
	app := NewApp(cfg, doc, nil, &service.Exporter{})
	app.basemaps = testBasemaps()

	app.activateTool(toolBasemap)
	require.NotNil(t, app.active)
	app.active.update(keyRight()) // OpenStreetMap -> OpenTopoMap

	cmd := app.closeActive()
	require.NotNil(t, cmd, "a changed basemap schedules a preferences save")
	require.Nil(t, cmd(), "save succeeds silently")
	require.Equal(t, "OpenTopoMap", app.cfg.UI.Basemap)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "OpenTopoMap")
}

func TestClosingBasemapPanelWithoutChangeSavesNothing(t *testing.T) {
	doc := testDoc()
	cfg := config.Config{}
	cfg.UI.Basemap = "OpenStreetMap"
	app := NewApp(cfg, doc, nil, &service.Exporter{})
	app.basemaps = testBasemaps()

	app.activateTool(toolBasemap)
	require.Nil(t, app.closeActive(), "unchanged basemap schedules no save")
}

func TestToolbarHonorsConfiguredPosition(t *testing.T) {
	doc := testDoc()
	cfg := config.Config{}
	cfg.UI.ToolbarPosition = "bottomleft"
	NewApp(cfg, doc, nil, &service.Exporter{})

	controls := doc.Controls()
	require.Len(t, controls, 1)
	require.Equal(t, maps.BottomLeft, controls[0].Position)
}

func TestOpenDataPanelRequiresFile(t *testing.T) {
	doc := testDoc()
	p := newOpenDataPanel(doc, testCtrl(doc))

	p.apply()
	require.Equal(t, "Please select a file to open.", p.output)
	require.Len(t, doc.Layers(), 1)

	p.path.SetValue("/data/trees.geojson")
	p.apply()
	require.Len(t, doc.Layers(), 2)
}

func TestOpenDataPanelReportsIgnoredRasterFields(t *testing.T) {
	doc := testDoc()
	p := newOpenDataPanel(doc, testCtrl(doc))
	p.fileType.setValue("Raster")
	p.path.SetValue("/data/dem.tif")
	p.name.SetValue("DEM")
	p.vmin.SetValue("0")
	p.vmax.SetValue("oops")

	p.apply()
	require.Contains(t, p.output, "ignored invalid: vmax")
	l := doc.LayerNamed("DEM")
	require.NotNil(t, l)
	require.Contains(t, l.URL, "vmin=0")
	require.NotContains(t, l.URL, "vmax")
}

func TestToolbarActivationIsExclusive(t *testing.T) {
	doc := testDoc()
	app := NewApp(config.Config{}, doc, nil, &service.Exporter{})

	app.activateTool(toolCensus)
	first := app.active
	require.NotNil(t, first)
	require.Equal(t, toolCensus, app.toolbar.active)

	app.activateTool(toolOSM)
	require.True(t, first.controller().Closed(), "activating another tool closes the previous one")
	require.NotNil(t, app.active)
	require.Equal(t, toolOSM, app.toolbar.active)

	// reopening the active tool toggles it off
	app.activateTool(toolOSM)
	require.Nil(t, app.active)
	require.Equal(t, -1, app.toolbar.active)
}

func TestHelpToolOnlySetsStatus(t *testing.T) {
	doc := testDoc()
	app := NewApp(config.Config{}, doc, nil, &service.Exporter{})

	app.activateTool(toolHelp)
	require.Nil(t, app.active)
	require.Contains(t, app.status, "Help")
}

func TestMouseMotionDrivesHoverEdges(t *testing.T) {
	doc := testDoc()
	cfg := config.Config{}
	cfg.UI.MouseMotion = true
	app := NewApp(cfg, doc, nil, &service.Exporter{})

	app.toolbar.ctrl.SetPinned(false)
	require.False(t, app.toolbar.ctrl.Expanded())

	app.toolbarRect = rect{x: 10, y: 1, w: 20, h: 6}
	motion := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
	}

	app.handleMouse(motion(12, 2))
	require.True(t, app.toolbar.ctrl.Expanded(), "entering the region expands")

	app.handleMouse(motion(0, 0))
	require.False(t, app.toolbar.ctrl.Expanded(), "leaving an unpinned region collapses")
}

func TestLayerManagerTogglesAndOpacity(t *testing.T) {
	doc := testDoc()
	doc.AddTileLayer("https://osm", "OpenStreetMap", "")
	tb := newToolbar(doc, testCtrl(doc))
	tb.toggleLayersMode()

	space := tea.KeyMsg{Type: tea.KeySpace}
	down := tea.KeyMsg{Type: tea.KeyDown}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	tb.updateLayers(space) // all-layers row
	for _, l := range doc.Layers() {
		require.False(t, l.Visible)
	}
	tb.updateLayers(space)
	for _, l := range doc.Layers() {
		require.True(t, l.Visible)
	}

	tb.updateLayers(down)
	tb.updateLayers(down) // second layer row
	tb.updateLayers(left)
	require.InDelta(t, 0.95, doc.Layers()[1].Opacity, 1e-9)
}
