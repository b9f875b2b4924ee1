package grid

import "time"

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear returns progress unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutCubic accelerates until halfway, then decelerates.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

// AnimationOptions configures one animation run.
type AnimationOptions struct {
	Duration time.Duration
	Easing   Easing // nil means Linear
	OnFinish func() // invoked once when the run completes naturally
}

// Animator is the interpolation primitive that mutates an element's
// visual style between two style sets. Stop must leave the style exactly
// as it was at the moment of stopping; it never snaps to either end.
type Animator interface {
	// Start begins interpolating from one style set to another. Starting
	// while a run is in flight supersedes it; the superseded run's
	// OnFinish never fires.
	Start(from, to Style, opts AnimationOptions)

	// Stop halts the current run, if any. No style is written after Stop
	// returns.
	Stop()

	// Running reports whether a run is in flight.
	Running() bool

	// ClearFinish nulls the current run's OnFinish so a stale completion
	// signal is suppressed while the run itself keeps going.
	ClearFinish()
}

// AnimatorFactory builds an Animator bound to one element. The Grid uses
// it to give every item its own animators; tests swap in instant fakes.
type AnimatorFactory func(ticker *Ticker, el Element) Animator

// Tween is the default Animator: a ticker-driven interpolator that writes
// eased styles during the write phase of every frame until the duration
// elapses.
type Tween struct {
	ticker   *Ticker
	el       Element
	key      Key
	running  bool
	from, to Style
	duration time.Duration
	easing   Easing
	onFinish func()
	startAt  time.Duration
}

// Ensure Tween implements Animator.
var _ Animator = (*Tween)(nil)

// NewTween creates a tween writing to el, stepped by ticker.
func NewTween(ticker *Ticker, el Element) *Tween {
	return &Tween{
		ticker: ticker,
		el:     el,
		key:    NextKey(),
	}
}

// Start begins a run. The duration is measured from the first frame the
// run gets to write in.
func (t *Tween) Start(from, to Style, opts AnimationOptions) {
	t.from = from.Clone()
	t.to = to.Clone()
	t.duration = opts.Duration
	t.easing = opts.Easing
	if t.easing == nil {
		t.easing = Linear
	}
	t.onFinish = opts.OnFinish
	t.startAt = -1
	t.running = true
	t.ticker.Schedule(PhaseWrite, t.key, t.step)
}

// Stop halts the run without touching styles.
func (t *Tween) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.onFinish = nil
	t.ticker.Cancel(t.key)
}

// Running reports whether a run is in flight.
func (t *Tween) Running() bool {
	return t.running
}

// ClearFinish suppresses the current run's completion callback.
func (t *Tween) ClearFinish() {
	t.onFinish = nil
}

// step writes one frame of the run and re-schedules itself until done.
func (t *Tween) step(now time.Duration) {
	if !t.running {
		return
	}
	if t.startAt < 0 {
		t.startAt = now
	}

	progress := 1.0
	if t.duration > 0 {
		progress = float64(now-t.startAt) / float64(t.duration)
		if progress > 1 {
			progress = 1
		}
	}
	eased := t.easing(progress)

	styles := make(Style, len(t.to))
	for prop, target := range t.to {
		start := t.from[prop]
		styles[prop] = start + (target-start)*eased
	}
	t.el.SetStyles(styles)

	if progress >= 1 {
		t.running = false
		if fn := t.onFinish; fn != nil {
			t.onFinish = nil
			fn()
		}
		return
	}
	t.ticker.Schedule(PhaseWrite, t.key, t.step)
}
