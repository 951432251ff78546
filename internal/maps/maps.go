// Package maps holds the shared map document that toolbar panels
// mutate: an ordered layer stack and a surface of attached overlay
// controls. A single UI goroutine owns all mutation.
package maps

import "github.com/google/uuid"

// Position places a control on the map's overlay surface.
type Position string

const (
	TopLeft     Position = "topleft"
	TopRight    Position = "topright"
	BottomLeft  Position = "bottomleft"
	BottomRight Position = "bottomright"
)

// Layer is one entry in the map's layer stack. Panels write these
// fields directly; last write wins.
type Layer struct {
	Name        string
	URL         string
	Attribution string
	Visible     bool
	Opacity     float64
}

// NewTileLayer returns a visible, fully opaque tile layer.
func NewTileLayer(url, name, attribution string) *Layer {
	return &Layer{Name: name, URL: url, Attribution: attribution, Visible: true, Opacity: 1}
}

// Control describes an overlay element attached to the map.
type Control struct {
	Name     string
	Position Position
}

type attached struct {
	handle string
	ctrl   Control
}

// Map is the map document. Index 0 of the layer stack is the base
// layer; slot 1 is by convention the active basemap.
type Map struct {
	layers   []*Layer
	controls []attached
}

// New returns a map holding only the given base layer.
func New(base *Layer) *Map {
	m := &Map{}
	if base != nil {
		m.layers = append(m.layers, base)
	}
	return m
}

// Attach adds a control to the overlay surface and returns its handle.
func (m *Map) Attach(ctrl Control) string {
	h := uuid.NewString()
	m.controls = append(m.controls, attached{handle: h, ctrl: ctrl})
	return h
}

// Detach removes the control with the given handle. Detaching an
// unknown or already-detached handle is a no-op.
func (m *Map) Detach(handle string) {
	for i, a := range m.controls {
		if a.handle == handle {
			m.controls = append(m.controls[:i], m.controls[i+1:]...)
			return
		}
	}
}

// Attached reports whether a handle is currently on the surface.
func (m *Map) Attached(handle string) bool {
	for _, a := range m.controls {
		if a.handle == handle {
			return true
		}
	}
	return false
}

// Controls returns the attached controls in attach order.
func (m *Map) Controls() []Control {
	out := make([]Control, len(m.controls))
	for i, a := range m.controls {
		out[i] = a.ctrl
	}
	return out
}

// ClearControls detaches everything from the surface.
func (m *Map) ClearControls() {
	m.controls = nil
}

// Layers returns the layer stack, base first.
func (m *Map) Layers() []*Layer { return m.layers }

// AddLayer appends a layer to the top of the stack.
func (m *Map) AddLayer(l *Layer) {
	m.layers = append(m.layers, l)
}

// AddTileLayer creates and appends a tile layer.
func (m *Map) AddTileLayer(url, name, attribution string) *Layer {
	l := NewTileLayer(url, name, attribution)
	m.AddLayer(l)
	return l
}

// InsertLayer places l at stack index i, clamped to the stack bounds.
func (m *Map) InsertLayer(i int, l *Layer) {
	if i < 0 {
		i = 0
	}
	if i > len(m.layers) {
		i = len(m.layers)
	}
	m.layers = append(m.layers[:i], append([]*Layer{l}, m.layers[i:]...)...)
}

// RemoveLayer deletes l from the stack, reporting whether it was found.
func (m *Map) RemoveLayer(l *Layer) bool {
	for i, cur := range m.layers {
		if cur == l {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveLayerNamed deletes the topmost layer with the given name.
func (m *Map) RemoveLayerNamed(name string) bool {
	for i := len(m.layers) - 1; i >= 0; i-- {
		if m.layers[i].Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return true
		}
	}
	return false
}

// LayerNamed returns the topmost layer with the given name, or nil.
func (m *Map) LayerNamed(name string) *Layer {
	for i := len(m.layers) - 1; i >= 0; i-- {
		if m.layers[i].Name == name {
			return m.layers[i]
		}
	}
	return nil
}

// SubstituteLayer replaces old with new in place, keeping stack order.
// Layers above the substituted slot are untouched.
func (m *Map) SubstituteLayer(old, repl *Layer) bool {
	for i, cur := range m.layers {
		if cur == old {
			m.layers[i] = repl
			return true
		}
	}
	return false
}

// SetAllVisible flips visibility on every layer.
func (m *Map) SetAllVisible(visible bool) {
	for _, l := range m.layers {
		l.Visible = visible
	}
}

// Snapshot captures the layer stack and control surface so a mode that
// rebuilds the map (the split view) can restore it on close.
type Snapshot struct {
	layers   []*Layer
	controls []attached
}

// Snapshot copies the current stack and surface.
func (m *Map) Snapshot() Snapshot {
	s := Snapshot{
		layers:   make([]*Layer, len(m.layers)),
		controls: make([]attached, len(m.controls)),
	}
	copy(s.layers, m.layers)
	copy(s.controls, m.controls)
	return s
}

// Restore replaces the stack and surface with a snapshot's contents.
func (m *Map) Restore(s Snapshot) {
	m.layers = make([]*Layer, len(s.layers))
	copy(m.layers, s.layers)
	m.controls = make([]attached, len(s.controls))
	copy(m.controls, s.controls)
}
