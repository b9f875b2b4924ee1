package grid

import (
	"testing"
	"time"
)

func TestTicker_ReadsBeforeWrites(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	var order []string
	tk.Schedule(PhaseWrite, NextKey(), func(time.Duration) { order = append(order, "write1") })
	tk.Schedule(PhaseRead, NextKey(), func(time.Duration) { order = append(order, "read1") })
	tk.Schedule(PhaseWrite, NextKey(), func(time.Duration) { order = append(order, "write2") })
	tk.Schedule(PhaseRead, NextKey(), func(time.Duration) { order = append(order, "read2") })

	frames.Step(0)

	want := []string{"read1", "read2", "write1", "write2"}
	if len(order) != len(want) {
		t.Fatalf("ran %d callbacks, want %d: %v", len(order), len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q (full order %v)", i, order[i], want[i], order)
		}
	}
}

func TestTicker_SameKeyReplaces(t *testing.T) {
	type tc struct {
		phase Phase
	}

	tests := map[string]tc{
		"read phase":  {phase: PhaseRead},
		"write phase": {phase: PhaseWrite},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			frames := NewManualFrames()
			tk := NewTicker(frames)
			key := NextKey()

			firstRan, secondRan := 0, 0
			tk.Schedule(tt.phase, key, func(time.Duration) { firstRan++ })
			tk.Schedule(tt.phase, key, func(time.Duration) { secondRan++ })

			frames.Step(0)

			if firstRan != 0 {
				t.Errorf("replaced callback ran %d times, want 0", firstRan)
			}
			if secondRan != 1 {
				t.Errorf("replacement callback ran %d times, want 1", secondRan)
			}
		})
	}
}

func TestTicker_ReplacementKeepsPosition(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	keyA, keyB := NextKey(), NextKey()
	var order []string
	tk.Schedule(PhaseRead, keyA, func(time.Duration) { order = append(order, "a-old") })
	tk.Schedule(PhaseRead, keyB, func(time.Duration) { order = append(order, "b") })
	tk.Schedule(PhaseRead, keyA, func(time.Duration) { order = append(order, "a-new") })

	frames.Step(0)

	if len(order) != 2 || order[0] != "a-new" || order[1] != "b" {
		t.Errorf("order = %v, want [a-new b]", order)
	}
}

func TestTicker_Cancel(t *testing.T) {
	type tc struct {
		schedule []Phase
		cancel   bool
		wantRuns int
	}

	tests := map[string]tc{
		"cancel removes both phases": {
			schedule: []Phase{PhaseRead, PhaseWrite},
			cancel:   true,
			wantRuns: 0,
		},
		"cancel with nothing pending is a no-op": {
			schedule: nil,
			cancel:   true,
			wantRuns: 0,
		},
		"no cancel runs both phases": {
			schedule: []Phase{PhaseRead, PhaseWrite},
			cancel:   false,
			wantRuns: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			frames := NewManualFrames()
			tk := NewTicker(frames)
			key := NextKey()

			runs := 0
			for _, phase := range tt.schedule {
				tk.Schedule(phase, key, func(time.Duration) { runs++ })
			}
			if tt.cancel {
				tk.Cancel(key)
			}

			frames.Step(0)

			if runs != tt.wantRuns {
				t.Errorf("ran %d callbacks, want %d", runs, tt.wantRuns)
			}
		})
	}
}

func TestTicker_LazyStartAutoStop(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	if frames.Requests() != 0 {
		t.Fatalf("ticker requested %d frames before any registration, want 0", frames.Requests())
	}

	tk.Schedule(PhaseRead, NextKey(), func(time.Duration) {})
	if frames.Requests() != 1 {
		t.Fatalf("ticker requested %d frames after registration, want 1", frames.Requests())
	}

	// One more registration while armed must not request another frame.
	tk.Schedule(PhaseWrite, NextKey(), func(time.Duration) {})
	if frames.Requests() != 1 {
		t.Fatalf("ticker requested %d frames while armed, want 1", frames.Requests())
	}

	frames.Step(0)

	// Both lanes drained; the ticker must go idle.
	if frames.Requests() != 1 {
		t.Errorf("ticker requested %d frames after going idle, want 1", frames.Requests())
	}

	// Re-arm on the next registration.
	tk.Schedule(PhaseRead, NextKey(), func(time.Duration) {})
	if frames.Requests() != 2 {
		t.Errorf("ticker requested %d frames after re-registration, want 2", frames.Requests())
	}
}

func TestTicker_ReadSchedulesWriteSameFrame(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	var order []string
	tk.Schedule(PhaseRead, NextKey(), func(time.Duration) {
		order = append(order, "read")
		tk.Schedule(PhaseWrite, NextKey(), func(time.Duration) {
			order = append(order, "write-from-read")
		})
	})

	frames.Step(0)

	if len(order) != 2 || order[1] != "write-from-read" {
		t.Errorf("order = %v, want [read write-from-read]", order)
	}
}

func TestTicker_RegistrationDuringDispatchDefers(t *testing.T) {
	type tc struct {
		during Phase // phase whose dispatch registers
		target Phase // phase registered for
	}

	tests := map[string]tc{
		"read registered during read phase":   {during: PhaseRead, target: PhaseRead},
		"write registered during write phase": {during: PhaseWrite, target: PhaseWrite},
		"read registered during write phase":  {during: PhaseWrite, target: PhaseRead},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			frames := NewManualFrames()
			tk := NewTicker(frames)

			nestedRuns := 0
			tk.Schedule(tt.during, NextKey(), func(time.Duration) {
				tk.Schedule(tt.target, NextKey(), func(time.Duration) { nestedRuns++ })
			})

			frames.Step(0)
			if nestedRuns != 0 {
				t.Fatalf("nested callback ran in its own frame, want deferral")
			}

			frames.Step(16 * time.Millisecond)
			if nestedRuns != 1 {
				t.Errorf("nested callback ran %d times after next frame, want 1", nestedRuns)
			}
		})
	}
}

func TestTicker_ReArmsWhileWorkPending(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	runs := 0
	var keep func(time.Duration)
	key := NextKey()
	keep = func(time.Duration) {
		runs++
		if runs < 3 {
			tk.Schedule(PhaseRead, key, keep)
		}
	}
	tk.Schedule(PhaseRead, key, keep)

	for i := range 4 {
		frames.Step(time.Duration(i*16) * time.Millisecond)
	}

	if runs != 3 {
		t.Errorf("self-rescheduling callback ran %d times, want 3", runs)
	}
	if frames.Pending() != 0 {
		t.Errorf("%d frame requests still pending after work finished, want 0", frames.Pending())
	}
}

func TestTicker_Reset(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	runs := 0
	tk.Schedule(PhaseRead, NextKey(), func(time.Duration) { runs++ })
	tk.Schedule(PhaseWrite, NextKey(), func(time.Duration) { runs++ })
	tk.Reset()

	frames.Step(0)

	if runs != 0 {
		t.Errorf("ran %d callbacks after Reset, want 0", runs)
	}
}

func TestTicker_NilCallbackIgnored(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	tk.Schedule(PhaseRead, NextKey(), nil)

	if frames.Requests() != 0 {
		t.Errorf("nil callback armed the ticker: %d frame requests, want 0", frames.Requests())
	}
}

func TestTicker_TimestampPassedThrough(t *testing.T) {
	frames := NewManualFrames()
	tk := NewTicker(frames)

	var got time.Duration
	tk.Schedule(PhaseRead, NextKey(), func(now time.Duration) { got = now })

	want := 42 * time.Millisecond
	frames.Step(want)

	if got != want {
		t.Errorf("callback timestamp = %v, want %v", got, want)
	}
}
