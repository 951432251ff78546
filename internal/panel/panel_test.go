package panel

import "testing"

type fakeSurface struct {
	attached map[string]bool
	detaches int
}

func newFakeSurface(handles ...string) *fakeSurface {
	s := &fakeSurface{attached: map[string]bool{}}
	for _, h := range handles {
		s.attached[h] = true
	}
	return s
}

func (s *fakeSurface) Detach(handle string) {
	s.detaches++
	delete(s.attached, handle)
}

func TestHoverSequencesUnpinned(t *testing.T) {
	const (
		enter = "enter"
		leave = "leave"
	)
	cases := []struct {
		name   string
		events []string
		want   State
	}{
		{"initial", nil, Collapsed},
		{"enter", []string{enter}, Expanded},
		{"enter leave", []string{enter, leave}, Collapsed},
		{"enter leave enter", []string{enter, leave, enter}, Expanded},
		{"double enter", []string{enter, enter}, Expanded},
		{"long session", []string{enter, leave, enter, leave, enter, leave}, Collapsed},
	}
	for _, tc := range cases {
		c := New(nil, "")
		for _, ev := range tc.events {
			if ev == enter {
				c.PointerEnter()
			} else {
				c.PointerLeave()
			}
		}
		if c.State() != tc.want {
			t.Fatalf("%s: state = %v, want %v", tc.name, c.State(), tc.want)
		}
		// with pinned false, expanded iff the last event was an enter
		wantExpanded := len(tc.events) > 0 && tc.events[len(tc.events)-1] == enter
		if c.Expanded() != wantExpanded {
			t.Fatalf("%s: expanded = %v, want %v", tc.name, c.Expanded(), wantExpanded)
		}
	}
}

func TestPinnedSurvivesPointerLeave(t *testing.T) {
	c := New(nil, "")
	c.PointerEnter()
	c.SetPinned(true)
	c.PointerLeave()
	if c.State() != Expanded {
		t.Fatalf("pinned panel collapsed on pointer leave")
	}
	// idempotent pin-toggle
	c.SetPinned(true)
	if c.State() != Expanded || !c.Pinned() {
		t.Fatalf("repeated pin changed state: %v pinned=%v", c.State(), c.Pinned())
	}
}

func TestUnpinOutsideRegionCollapsesImmediately(t *testing.T) {
	c := New(nil, "")
	c.PointerEnter()
	c.SetPinned(true)
	c.PointerLeave()
	c.SetPinned(false)
	if c.State() != Collapsed {
		t.Fatalf("state = %v, want Collapsed after unpin outside region", c.State())
	}
}

func TestUnpinInsideRegionStaysExpanded(t *testing.T) {
	c := New(nil, "")
	c.SetPinned(true)
	c.PointerEnter()
	c.SetPinned(false)
	if c.State() != Expanded {
		t.Fatalf("state = %v, want Expanded while pointer is over region", c.State())
	}
	c.PointerLeave()
	if c.State() != Collapsed {
		t.Fatalf("state = %v, want Collapsed after leave", c.State())
	}
}

func TestCloseDetachesOnceAndIsTerminal(t *testing.T) {
	surface := newFakeSurface("h1")
	c := New(surface, "h1")
	c.SetPinned(true)

	c.Close()
	if surface.attached["h1"] {
		t.Fatalf("handle still attached after close")
	}
	if !c.Closed() || c.State() != Collapsed {
		t.Fatalf("closed=%v state=%v after close", c.Closed(), c.State())
	}

	// second close: no panic, no re-attach, detacher not required to
	// tolerate anything because it is not called again
	c.Close()
	if surface.detaches != 1 {
		t.Fatalf("detach called %d times, want 1", surface.detaches)
	}

	// terminal: no further events accepted
	c.PointerEnter()
	c.SetPinned(true)
	if c.State() != Collapsed || c.Pinned() {
		t.Fatalf("closed controller accepted events: %v pinned=%v", c.State(), c.Pinned())
	}
}

func TestDetachOfAlreadyDetachedHandleIsSafe(t *testing.T) {
	surface := newFakeSurface()
	c := New(surface, "gone")
	c.Close() // handle never attached; Detach must be a no-op
	if surface.detaches != 1 {
		t.Fatalf("detach calls = %d, want 1", surface.detaches)
	}
}

func TestSubscribePublishesTransitions(t *testing.T) {
	c := New(nil, "")
	var got []Event
	c.Subscribe(func(ev Event) { got = append(got, ev) })

	c.PointerEnter()
	c.PointerEnter() // no transition, no event
	c.PointerLeave()

	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].Old != Collapsed || got[0].New != Expanded {
		t.Fatalf("first event = %+v", got[0])
	}
	if got[1].Old != Expanded || got[1].New != Collapsed {
		t.Fatalf("second event = %+v", got[1])
	}
}
