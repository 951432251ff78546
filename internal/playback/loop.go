// Package playback drives the time-slider's cyclic frame advance. A
// single background goroutine steps an index in [1, n] on a fixed
// period while a run flag is set; cancellation is cooperative and takes
// effect within one period.
package playback

import (
	"sync/atomic"
	"time"
)

// Loop advances a 1-based frame index cyclically. Only one background
// task may run per Loop; Play guards against double-starts with a
// compare-and-set on the run flag.
type Loop struct {
	n      int
	period time.Duration

	running atomic.Bool
	closed  atomic.Bool
	index   atomic.Int64

	// gen identifies the current background task. A task exits when the
	// generation moves past it, so a Pause/Play pair within one period
	// cannot leave the old task stepping next to the new one.
	gen atomic.Int64

	// advance is called off the UI goroutine after each step with the
	// new index. It should hand the value to the UI owner (e.g. send a
	// message) rather than mutate UI state directly.
	advance func(i int)
}

// NewLoop returns a stopped loop positioned at frame 1. n must be at
// least 1; period must be positive.
func NewLoop(n int, period time.Duration, advance func(i int)) *Loop {
	if n < 1 {
		n = 1
	}
	if period <= 0 {
		period = time.Second
	}
	l := &Loop{n: n, period: period, advance: advance}
	l.index.Store(1)
	return l
}

// N returns the number of frames.
func (l *Loop) N() int { return l.n }

// Index returns the current 1-based frame index.
func (l *Loop) Index() int { return int(l.index.Load()) }

// SetIndex positions the loop, clamping to [1, n]. Last write wins when
// racing with a running advance; the UI owner is the only mutator that
// matters and the next advance starts from whatever is stored.
func (l *Loop) SetIndex(i int) {
	if i < 1 {
		i = 1
	}
	if i > l.n {
		i = l.n
	}
	l.index.Store(int64(i))
}

// Playing reports whether the background task is running.
func (l *Loop) Playing() bool { return l.running.Load() }

// Play starts the background task. It returns false without starting
// anything if the loop is already running or has been closed.
func (l *Loop) Play() bool {
	if l.closed.Load() {
		return false
	}
	if !l.running.CompareAndSwap(false, true) {
		return false
	}
	go l.run(l.gen.Add(1))
	return true
}

// Pause clears the run flag. The task observes it within one period and
// exits without a further advance. Safe to call when not playing.
func (l *Loop) Pause() {
	l.running.Store(false)
}

// Close pauses the loop permanently; Play refuses afterwards.
// Idempotent.
func (l *Loop) Close() {
	l.closed.Store(true)
	l.Pause()
}

func (l *Loop) run(g int64) {
	// A panic in the advance body must not wedge the run flag: clear it
	// so a later Play can start a fresh task. Only the current
	// generation may touch the flag.
	defer func() {
		if r := recover(); r != nil && l.gen.Load() == g {
			l.running.Store(false)
		}
	}()

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for l.running.Load() && l.gen.Load() == g {
		l.step()
		<-ticker.C
	}
}

// step wraps at n back to 1, never reaching n+1.
func (l *Loop) step() {
	next := l.Index() + 1
	if next > l.n {
		next = 1
	}
	l.index.Store(int64(next))
	if l.advance != nil {
		l.advance(next)
	}
}
