package grid

import (
	"sync"
	"time"
)

// FrameFunc is a callback invoked with the current frame timestamp,
// expressed as time elapsed since the frame source started.
type FrameFunc func(now time.Duration)

// FrameRequester is the host's frame-callback primitive. Request enqueues
// fn to run exactly once on the next frame. A source delivers frames on a
// single goroutine; everything built on top of it is confined to that
// goroutine.
type FrameRequester interface {
	Request(fn FrameFunc)
}

// FrameLoop is a wall-clock FrameRequester: a frame-based main loop in
// the same shape as a render loop, delivering frames at a fixed cadence.
//
// Request must be called either before Run or from the loop goroutine
// itself (frame callbacks re-requesting frames is the normal case). Use
// QueueUpdate to hand work to the loop from other goroutines.
type FrameLoop struct {
	frameDuration time.Duration
	pending       []FrameFunc
	updateQueue   chan func()
	stopCh        chan struct{}
	stopOnce      sync.Once
}

// Ensure FrameLoop implements FrameRequester.
var _ FrameRequester = (*FrameLoop)(nil)

// NewFrameLoop creates a loop delivering frames every frameDuration.
// A non-positive duration defaults to 16ms (60 fps).
func NewFrameLoop(frameDuration time.Duration) *FrameLoop {
	if frameDuration <= 0 {
		frameDuration = 16 * time.Millisecond
	}
	return &FrameLoop{
		frameDuration: frameDuration,
		updateQueue:   make(chan func(), 256),
		stopCh:        make(chan struct{}),
	}
}

// Request enqueues fn for the next frame.
func (l *FrameLoop) Request(fn FrameFunc) {
	l.pending = append(l.pending, fn)
}

// Run drives the loop. Blocks until Stop is called. Each frame first
// drains queued updates, then fires the frame callbacks requested so far
// with a timestamp measured from the moment Run started.
func (l *FrameLoop) Run() error {
	start := time.Now()
	frames := time.NewTicker(l.frameDuration)
	defer frames.Stop()

	for {
		select {
		case <-l.stopCh:
			return nil
		case fn := <-l.updateQueue:
			fn()
		case <-frames.C:
			l.drainUpdates()
			pending := l.pending
			l.pending = nil
			now := time.Since(start)
			for _, fn := range pending {
				fn(now)
			}
		}
	}
}

// drainUpdates runs queued updates without blocking.
func (l *FrameLoop) drainUpdates() {
	for {
		select {
		case fn := <-l.updateQueue:
			fn()
		default:
			return
		}
	}
}

// Stop signals Run to exit. Idempotent.
func (l *FrameLoop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

// QueueUpdate enqueues a function to run on the loop goroutine before the
// next frame. Safe to call from any goroutine.
func (l *FrameLoop) QueueUpdate(fn func()) {
	select {
	case l.updateQueue <- fn:
	case <-l.stopCh:
		// Loop is stopping, drop the update.
	}
}

// ManualFrames is a FrameRequester stepped by hand. Tests and benchmarks
// use it to advance frames deterministically without a wall clock.
type ManualFrames struct {
	pending  []FrameFunc
	requests int
}

// Ensure ManualFrames implements FrameRequester.
var _ FrameRequester = (*ManualFrames)(nil)

// NewManualFrames creates an idle manual frame source.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

// Request enqueues fn for the next Step.
func (m *ManualFrames) Request(fn FrameFunc) {
	m.pending = append(m.pending, fn)
	m.requests++
}

// Step fires all currently pending frame callbacks with the given
// timestamp. Callbacks requested during Step run on the next Step.
func (m *ManualFrames) Step(now time.Duration) {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		fn(now)
	}
}

// Pending returns the number of callbacks waiting for the next Step.
func (m *ManualFrames) Pending() int {
	return len(m.pending)
}

// Requests returns the total number of Request calls ever made, which is
// how tests observe the lazy-start/auto-stop behavior of consumers.
func (m *ManualFrames) Requests() int {
	return m.requests
}
