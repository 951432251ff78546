package tui

import "github.com/marit/tiledeck/internal/database/repository"

// frameAdvancedMsg is scheduled by the playback goroutine; the UI owner
// applies the index to the slider and the slider layer.
type frameAdvancedMsg struct {
	index int
}

// providersFoundMsg carries XYZ search results back to the search panel.
type providersFoundMsg struct {
	keyword   string
	providers []repository.Provider
	err       error
}

// basemapsLoadedMsg carries the basemap catalog for the basemap and
// split panels.
type basemapsLoadedMsg struct {
	providers []repository.Provider
	err       error
}

// exportDoneMsg reports a save-map outcome.
type exportDoneMsg struct {
	path string
	err  error
}

// closePanelMsg asks the app to close the active panel, equivalent to
// pressing its close button.
type closePanelMsg struct{}

// statusMsg updates the status bar.
type statusMsg struct {
	text  string
	isErr bool
}
