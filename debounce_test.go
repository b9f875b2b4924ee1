package grid

import (
	"testing"
	"time"
)

// stepFrames advances the manual frame source through evenly spaced
// timestamps.
func stepFrames(frames *ManualFrames, start, interval time.Duration, count int) time.Duration {
	now := start
	for i := 0; i < count; i++ {
		now += interval
		frames.Step(now)
	}
	return now
}

func TestDebouncer_TrailingEdge(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	runs := 0
	d := NewDebouncer(tk, 100*time.Millisecond, func() { runs++ })

	d.Trigger()

	// First tick is the baseline; quiet period has not elapsed yet.
	frames.Step(16 * time.Millisecond)
	frames.Step(32 * time.Millisecond)
	if runs != 0 {
		t.Fatalf("action ran %d times before the quiet period elapsed, want 0", runs)
	}

	stepFrames(frames, 32*time.Millisecond, 16*time.Millisecond, 8)
	if runs != 1 {
		t.Errorf("action ran %d times after the quiet period, want 1", runs)
	}
}

func TestDebouncer_RepeatedTriggersResetDelay(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	runs := 0
	d := NewDebouncer(tk, 100*time.Millisecond, func() { runs++ })

	// Trigger every 48ms, well inside the 100ms window; the action must
	// never fire while triggers keep coming.
	now := time.Duration(0)
	for i := 0; i < 10; i++ {
		d.Trigger()
		now = stepFrames(frames, now, 16*time.Millisecond, 3)
		if runs != 0 {
			t.Fatalf("action ran %d times while triggers kept arriving, want 0", runs)
		}
	}

	// Let the quiet period elapse.
	stepFrames(frames, now, 16*time.Millisecond, 10)
	if runs != 1 {
		t.Errorf("action ran %d times once triggers stopped, want 1", runs)
	}
}

func TestDebouncer_CancelIsTerminal(t *testing.T) {
	type tc struct {
		triggerAfterCancel bool
	}

	tests := map[string]tc{
		"cancel while armed":           {triggerAfterCancel: false},
		"trigger after cancel is dead": {triggerAfterCancel: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			frames := NewManualFrames()
			tk := NewTicker(frames)

			runs := 0
			d := NewDebouncer(tk, 50*time.Millisecond, func() { runs++ })

			d.Trigger()
			d.Cancel()
			if tt.triggerAfterCancel {
				d.Trigger()
			}

			stepFrames(frames, 0, 16*time.Millisecond, 20)

			if runs != 0 {
				t.Errorf("action ran %d times after cancel, want 0", runs)
			}
		})
	}
}

func TestDebouncer_DoubleCancelIsNoOp(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	d := NewDebouncer(tk, 50*time.Millisecond, func() {})
	d.Trigger()
	d.Cancel()
	d.Cancel()
}

func TestDebouncer_ZeroDelayRunsSynchronously(t *testing.T) {
	type tc struct {
		delay time.Duration
	}

	tests := map[string]tc{
		"zero delay":     {delay: 0},
		"negative delay": {delay: -time.Second},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			frames := NewManualFrames()
			tk := NewTicker(frames)

			runs := 0
			d := NewDebouncer(tk, tt.delay, func() { runs++ })

			d.Trigger()
			d.Trigger()

			if runs != 2 {
				t.Errorf("action ran %d times, want 2 synchronous runs", runs)
			}
			if frames.Requests() != 0 {
				t.Errorf("synchronous debounce requested %d frames, want 0", frames.Requests())
			}
		})
	}
}

func TestDebouncer_UnevenFrameIntervals(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	runs := 0
	d := NewDebouncer(tk, 100*time.Millisecond, func() { runs++ })

	d.Trigger()
	frames.Step(10 * time.Millisecond) // baseline
	frames.Step(40 * time.Millisecond) // 30ms elapsed
	frames.Step(80 * time.Millisecond) // 70ms elapsed
	if runs != 0 {
		t.Fatalf("action ran %d times at 70ms of a 100ms delay, want 0", runs)
	}

	frames.Step(120 * time.Millisecond) // 110ms elapsed
	if runs != 1 {
		t.Errorf("action ran %d times at 110ms of a 100ms delay, want 1", runs)
	}
}
