package grid

import "time"

// Debouncer coalesces repeated trigger requests into a single execution
// of an action after a quiet period, measured in ticker frames
// (trailing-edge debounce). A canceled debouncer is permanently inert.
type Debouncer struct {
	ticker    *Ticker
	key       Key
	action    func()
	delay     time.Duration
	remaining time.Duration
	lastTick  time.Duration
	armed     bool
	canceled  bool
}

// NewDebouncer wraps action with a trailing-edge delay driven by the
// ticker's read phase. A delay of zero or less makes every Trigger run
// the action synchronously with no scheduling involved.
func NewDebouncer(ticker *Ticker, delay time.Duration, action func()) *Debouncer {
	return &Debouncer{
		ticker: ticker,
		key:    NextKey(),
		action: action,
		delay:  delay,
	}
}

// Trigger (re)arms the delay. While armed, each Trigger resets the
// remaining time to the full delay; the action runs once the debouncer
// has gone a full delay without a Trigger. Calling Trigger after Cancel
// is a dead no-op.
func (d *Debouncer) Trigger() {
	if d.canceled {
		return
	}
	if d.delay <= 0 {
		d.action()
		return
	}
	d.remaining = d.delay
	if d.armed {
		return
	}
	d.armed = true
	d.lastTick = -1
	d.ticker.Schedule(PhaseRead, d.key, d.tick)
}

// Cancel discards any pending execution and makes the debouncer
// permanently inert. Canceling twice is a no-op.
func (d *Debouncer) Cancel() {
	if d.canceled {
		return
	}
	d.canceled = true
	if d.armed {
		d.armed = false
		d.ticker.Cancel(d.key)
	}
}

// tick decrements the remaining time by the elapsed frame time until it
// reaches zero, then runs the action. The first tick after arming only
// records a baseline timestamp.
func (d *Debouncer) tick(now time.Duration) {
	if d.lastTick >= 0 {
		d.remaining -= now - d.lastTick
	}
	d.lastTick = now
	if d.remaining <= 0 {
		d.armed = false
		d.action()
		return
	}
	d.ticker.Schedule(PhaseRead, d.key, d.tick)
}
