package grid

import (
	"time"

	"github.com/grindlemire/go-grid/internal/debug"
	"github.com/petermattis/goid"
)

// Phase is one of the two ordered sub-steps of a scheduled frame.
// Read callbacks measure; write callbacks mutate. Within one frame every
// pending read runs before any write, which is what lets many items
// transition in the same frame without interleaving measurement and
// mutation (layout thrashing).
type Phase int

const (
	// PhaseRead runs first each frame. Use it to measure.
	PhaseRead Phase = iota
	// PhaseWrite runs after all reads of the same frame. Use it to mutate.
	PhaseWrite
)

// Ticker schedules keyed callbacks onto animation frames, split into a
// read phase and a write phase. It is explicitly constructed and shared
// by injection; typically one Ticker serves one frame loop.
//
// The ticker is confined to the frame source's goroutine: Schedule,
// Cancel, and Reset must only be called from frame callbacks or before
// the frame source starts delivering frames.
type Ticker struct {
	frames  FrameRequester
	reads   *lane
	writes  *lane
	armed   bool
	ticking bool
	gid     int64 // goroutine that delivered the last frame, for debug checks
}

// NewTicker creates a ticker driven by the given frame source.
// The ticker requests frames lazily: it is idle until the first Schedule
// and stops requesting frames whenever both phases are empty.
func NewTicker(frames FrameRequester) *Ticker {
	return &Ticker{
		frames: frames,
		reads:  newLane(),
		writes: newLane(),
	}
}

// Schedule registers fn to run during the next frame's phase, keyed by
// key. If a callback is already pending for the same (phase, key) it is
// replaced without changing its position in the running order; only the
// latest callback ever runs. A nil fn is a no-op.
//
// A registration made while the same phase is dispatching takes effect on
// the next frame, never the current one. Read callbacks may schedule
// write callbacks for the same frame.
//
// Panics in callbacks are not recovered; a callback that panics leaves
// the ticker in an undefined state.
func (t *Ticker) Schedule(phase Phase, key Key, fn FrameFunc) {
	t.checkConfinement("Schedule")
	if fn == nil {
		return
	}
	switch phase {
	case PhaseRead:
		t.reads.add(key, fn)
	case PhaseWrite:
		t.writes.add(key, fn)
	default:
		return
	}
	t.arm()
}

// Cancel removes any pending callback for key in either phase.
// Canceling a key with nothing pending is a no-op.
func (t *Ticker) Cancel(key Key) {
	t.checkConfinement("Cancel")
	t.reads.remove(key)
	t.writes.remove(key)
}

// Reset drops all pending callbacks in both phases without running them.
// Intended for tests and teardown.
func (t *Ticker) Reset() {
	t.reads = newLane()
	t.writes = newLane()
}

// arm requests the next frame if one is not already requested. During
// dispatch the decision is deferred to the end of the tick so that the
// ticker never requests a frame it will not need.
func (t *Ticker) arm() {
	if t.armed || t.ticking {
		return
	}
	t.armed = true
	t.frames.Request(t.tick)
}

// tick dispatches one frame: every pending read in registration order,
// then every write pending once the reads have run, in registration
// order. Callbacks registered during dispatch land in the next frame,
// except writes registered by this frame's reads, which run this frame.
func (t *Ticker) tick(now time.Duration) {
	t.gid = goid.Get()
	t.armed = false
	t.ticking = true

	for _, fn := range t.reads.drain() {
		fn(now)
	}
	for _, fn := range t.writes.drain() {
		fn(now)
	}

	t.ticking = false
	if !t.reads.isEmpty() || !t.writes.isEmpty() {
		t.arm()
	}
}

// checkConfinement logs cross-goroutine use when debug logging is on.
// The ticker has no locks; calling it off the frame goroutine is a bug
// in the caller, not a supported mode.
func (t *Ticker) checkConfinement(op string) {
	if !debug.Enabled() {
		return
	}
	if t.gid == 0 {
		return
	}
	if g := goid.Get(); g != t.gid {
		debug.Log("ticker: %s called from goroutine %d, frames delivered on %d", op, g, t.gid)
	}
}

// lane is one phase's pending work: an ordered set of keys and the
// latest callback registered for each.
type lane struct {
	order []Key
	fns   map[Key]FrameFunc
}

func newLane() *lane {
	return &lane{fns: map[Key]FrameFunc{}}
}

// add registers fn under key, replacing any previous callback for the
// key while keeping its original position in the order.
func (l *lane) add(key Key, fn FrameFunc) {
	if _, pending := l.fns[key]; !pending {
		l.order = append(l.order, key)
	}
	l.fns[key] = fn
}

// remove drops the pending callback for key, if any.
func (l *lane) remove(key Key) {
	if _, pending := l.fns[key]; !pending {
		return
	}
	delete(l.fns, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// drain atomically takes the lane's callbacks in registration order and
// leaves the lane empty, so registrations made while the snapshot runs
// accumulate for the next frame.
func (l *lane) drain() []FrameFunc {
	if len(l.order) == 0 {
		return nil
	}
	out := make([]FrameFunc, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.fns[key])
	}
	l.order = l.order[:0]
	clear(l.fns)
	return out
}

func (l *lane) isEmpty() bool {
	return len(l.order) == 0
}
