package playback

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu   sync.Mutex
	seen []int
}

func (r *recorder) record(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, i)
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.seen))
	copy(out, r.seen)
	return out
}

func TestPlayAdvancesAndWraps(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(3, 5*time.Millisecond, rec.record)

	if !l.Play() {
		t.Fatalf("Play returned false on a fresh loop")
	}
	time.Sleep(60 * time.Millisecond) // well over n*period
	l.Pause()
	time.Sleep(20 * time.Millisecond)

	seen := rec.snapshot()
	if len(seen) == 0 {
		t.Fatalf("no advances recorded")
	}
	for _, i := range seen {
		if i < 1 || i > 3 {
			t.Fatalf("advance outside [1,3]: %d (seen %v)", i, seen)
		}
	}
	if got := l.Index(); got < 1 || got > 3 {
		t.Fatalf("index after pause = %d, want within [1,3]", got)
	}
	// cyclic: from 1 the sequence is 2,3,1,2,3,1,...
	want := []int{2, 3, 1}
	for k, i := range seen {
		if i != want[k%3] {
			t.Fatalf("advance %d = %d, want %d (seen %v)", k, i, want[k%3], seen)
		}
	}
}

func TestWrapNeverExceedsN(t *testing.T) {
	l := NewLoop(4, time.Second, nil)
	l.SetIndex(4)
	l.step()
	if got := l.Index(); got != 1 {
		t.Fatalf("index after wrap = %d, want 1", got)
	}
}

func TestPauseStopsWithinOnePeriod(t *testing.T) {
	rec := &recorder{}
	period := 10 * time.Millisecond
	l := NewLoop(100, period, rec.record)

	if !l.Play() {
		t.Fatalf("Play returned false")
	}
	time.Sleep(35 * time.Millisecond)
	l.Pause()
	// one period of slack for the in-flight tick, then the count must
	// freeze
	time.Sleep(2 * period)
	frozen := len(rec.snapshot())
	time.Sleep(5 * period)
	if got := len(rec.snapshot()); got != frozen {
		t.Fatalf("advances continued after pause: %d -> %d", frozen, got)
	}
	if l.Playing() {
		t.Fatalf("still playing after pause")
	}
}

func TestDoublePlayIsRejected(t *testing.T) {
	l := NewLoop(5, 10*time.Millisecond, nil)
	if !l.Play() {
		t.Fatalf("first Play returned false")
	}
	defer l.Pause()
	if l.Play() {
		t.Fatalf("second Play started a concurrent task")
	}
}

func TestPauseThenPlayRunsOneTask(t *testing.T) {
	rec := &recorder{}
	period := 10 * time.Millisecond
	l := NewLoop(1000, period, rec.record)

	// The first task is mid-sleep when Play starts the second; the old
	// one must exit on wake instead of stepping alongside the new one.
	if !l.Play() {
		t.Fatalf("first Play returned false")
	}
	time.Sleep(3 * time.Millisecond)
	l.Pause()
	if !l.Play() {
		t.Fatalf("Play after Pause returned false")
	}

	time.Sleep(100 * time.Millisecond)
	l.Pause()
	time.Sleep(2 * period)

	// A single task advances about once per period; two concurrent
	// tasks double the rate.
	if got := len(rec.snapshot()); got > 15 {
		t.Fatalf("%d advances in ~10 periods: more than one task running", got)
	}
}

func TestCloseImpliesPauseAndRefusesPlay(t *testing.T) {
	l := NewLoop(5, 5*time.Millisecond, nil)
	l.Play()
	l.Close()
	time.Sleep(15 * time.Millisecond)
	if l.Playing() {
		t.Fatalf("playing after close")
	}
	if l.Play() {
		t.Fatalf("Play succeeded on a closed loop")
	}
	l.Close() // idempotent
}

func TestPanicInAdvanceClearsRunFlag(t *testing.T) {
	l := NewLoop(5, 5*time.Millisecond, func(int) { panic("boom") })
	if !l.Play() {
		t.Fatalf("Play returned false")
	}
	time.Sleep(30 * time.Millisecond)
	if l.Playing() {
		t.Fatalf("run flag still set after advance panicked")
	}
	// flag consistency survived: a new task can start
	if !l.Play() {
		t.Fatalf("Play refused after recovered panic")
	}
	l.Pause()
}

func TestSetIndexClamps(t *testing.T) {
	l := NewLoop(3, time.Second, nil)
	l.SetIndex(0)
	if l.Index() != 1 {
		t.Fatalf("clamp low: %d", l.Index())
	}
	l.SetIndex(99)
	if l.Index() != 3 {
		t.Fatalf("clamp high: %d", l.Index())
	}
}
