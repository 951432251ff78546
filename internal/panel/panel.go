// Package panel implements the show/hide state machine shared by every
// toolbar panel: pointer hover expands the panel body, leaving collapses
// it unless the panel has been pinned open.
package panel

// State is the displayed state of a panel.
type State int

const (
	// Collapsed shows only the panel's icon row.
	Collapsed State = iota
	// Expanded shows the icon row plus the panel body.
	Expanded
)

func (s State) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// Detacher removes an attached control from the map's overlay surface.
// Detach must be a no-op for a handle that is already detached.
type Detacher interface {
	Detach(handle string)
}

// Event describes a state transition and is published to subscribers.
type Event struct {
	Old    State
	New    State
	Pinned bool
}

// Controller tracks one panel's visibility. It owns no widgets; the
// caller renders icon-only or icon+body based on State and swaps the
// whole displayed tree, never a partial overlay.
//
// Pointer enter/leave events come from an external source keyed on the
// panel's bounding region. The only ordering assumption is that an enter
// precedes the next leave for the same hover session.
type Controller struct {
	state       State
	pinned      bool
	pointerOver bool
	closed      bool

	detacher Detacher
	handle   string

	subs []func(Event)
}

// New returns a collapsed, unpinned controller. detacher and handle
// identify the map control to remove on Close; detacher may be nil for
// panels not attached to a control surface.
func New(detacher Detacher, handle string) *Controller {
	return &Controller{detacher: detacher, handle: handle}
}

// Subscribe registers fn to be called after every state transition.
func (c *Controller) Subscribe(fn func(Event)) {
	c.subs = append(c.subs, fn)
}

// State returns the current displayed state.
func (c *Controller) State() State { return c.state }

// Expanded reports whether the panel body is displayed.
func (c *Controller) Expanded() bool { return c.state == Expanded }

// Pinned reports whether the panel is toggled open explicitly.
func (c *Controller) Pinned() bool { return c.pinned }

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }

// PointerOver reports whether the pointer is currently over the panel
// region, as seen by the controller.
func (c *Controller) PointerOver() bool { return c.pointerOver }

// PointerEnter expands the panel unconditionally.
func (c *Controller) PointerEnter() {
	if c.closed {
		return
	}
	c.pointerOver = true
	c.transition(Expanded)
}

// PointerLeave collapses the panel unless it is pinned.
func (c *Controller) PointerLeave() {
	if c.closed {
		return
	}
	c.pointerOver = false
	if !c.pinned {
		c.transition(Collapsed)
	}
}

// SetPinned toggles the explicit open state. Pinning forces Expanded.
// Unpinning collapses only if the pointer is not over the region.
// Repeated identical calls are idempotent.
func (c *Controller) SetPinned(pinned bool) {
	if c.closed {
		return
	}
	c.pinned = pinned
	if pinned {
		c.transition(Expanded)
		return
	}
	if !c.pointerOver {
		c.transition(Collapsed)
	}
}

// TogglePinned flips the pin state and returns the new value.
func (c *Controller) TogglePinned() bool {
	c.SetPinned(!c.pinned)
	return c.pinned
}

// Close detaches the panel from the map's control surface. The
// controller is terminal afterwards: all further events are no-ops.
// Calling Close again, or closing an already-detached panel, is safe.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.pinned = false
	c.transition(Collapsed)
	if c.detacher != nil {
		c.detacher.Detach(c.handle)
	}
}

func (c *Controller) transition(next State) {
	if next == c.state {
		return
	}
	ev := Event{Old: c.state, New: next, Pinned: c.pinned}
	c.state = next
	for _, fn := range c.subs {
		fn(ev)
	}
}
