package phasetimer

import (
	"testing"
	"time"

	"pomodoro/internal/core/model"
)

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *manualClock) Now() time.Time {
	return clock.now
}

func (clock *manualClock) Advance(d time.Duration) {
	clock.now = clock.now.Add(d)
}

func newTestTimer(workMinutes, breakMinutes int) (*PhaseTimer, *manualClock) {
	clock := newManualClock()
	timer := New(model.TimerConfig{
		Work:  time.Duration(workMinutes) * time.Minute,
		Break: time.Duration(breakMinutes) * time.Minute,
	}, clock)
	return timer, clock
}

func TestNew_StartsIdleInWork(t *testing.T) {
	timer, _ := newTestTimer(25, 5)

	if timer.CurrentPhase() != PhaseWork {
		t.Errorf("expected work phase, got %s", timer.CurrentPhase())
	}
	if timer.Running() {
		t.Error("expected timer to be idle")
	}
	if got := timer.FormattedRemaining(); got != "25:00" {
		t.Errorf("expected 25:00, got %s", got)
	}
}

func TestPauseStart_NoElapsedTimeKeepsDuration(t *testing.T) {
	for _, minutes := range []int{1, 7, 25, 120} {
		timer, _ := newTestTimer(minutes, 5)
		want := time.Duration(minutes) * time.Minute

		for i := 0; i < 50; i++ {
			timer.Start()
			timer.Pause()
		}

		if got := timer.Remaining(); got != want {
			t.Errorf("work=%dm: expected remaining %v, got %v", minutes, want, got)
		}
	}
}

func TestPause_KeepsSubSecondPrecision(t *testing.T) {
	timer, clock := newTestTimer(25, 5)

	for i := 0; i < 10; i++ {
		timer.Start()
		clock.Advance(300 * time.Millisecond)
		timer.Pause()
	}

	want := 25*time.Minute - 3*time.Second
	if got := timer.Remaining(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStart_IsNoOpWhileRunning(t *testing.T) {
	timer, clock := newTestTimer(25, 5)

	timer.Start()
	clock.Advance(10 * time.Second)
	timer.Start()

	if got := timer.Remaining(); got != 1490*time.Second {
		t.Errorf("expected 1490s, got %v", got)
	}
}

func TestPause_IsNoOpWhileIdle(t *testing.T) {
	timer, clock := newTestTimer(25, 5)
	events := 0
	timer.SetOnEvent(func(Event) { events++ })

	clock.Advance(time.Minute)
	timer.Pause()

	if events != 0 {
		t.Errorf("expected no events, got %d", events)
	}
	if got := timer.Remaining(); got != 25*time.Minute {
		t.Errorf("expected 25m, got %v", got)
	}
}

func TestTick_IgnoredWhileIdle(t *testing.T) {
	timer, clock := newTestTimer(1, 1)

	clock.Advance(2 * time.Minute)
	if timer.Tick() {
		t.Fatal("expected idle tick to do nothing")
	}
	if timer.CurrentPhase() != PhaseWork {
		t.Errorf("expected work phase, got %s", timer.CurrentPhase())
	}
}

func TestTick_UsesWallClockNotTickCount(t *testing.T) {
	timer, clock := newTestTimer(25, 5)

	timer.Start()
	clock.Advance(3 * time.Second)
	timer.Tick()

	if got := timer.FormattedRemaining(); got != "24:57" {
		t.Errorf("expected 24:57 after a stalled host, got %s", got)
	}
}

func TestTick_SwitchesExactlyOnce(t *testing.T) {
	timer, clock := newTestTimer(25, 5)
	switches := 0
	timer.SetOnEvent(func(event Event) {
		if event.Type == EventPhaseChange {
			switches++
		}
	})

	timer.Start()
	clock.Advance(1500 * time.Second)
	for i := 0; i < 5; i++ {
		timer.Tick()
	}

	if switches != 1 {
		t.Fatalf("expected one phase switch, got %d", switches)
	}
	if got := timer.Remaining(); got != 5*time.Minute {
		t.Errorf("expected full break duration, got %v", got)
	}
}

func TestReset_FromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*PhaseTimer, *manualClock)
		phase Phase
	}{
		{
			name:  "idle",
			setup: func(*PhaseTimer, *manualClock) {},
			phase: PhaseWork,
		},
		{
			name: "running",
			setup: func(timer *PhaseTimer, clock *manualClock) {
				timer.Start()
				clock.Advance(90 * time.Second)
			},
			phase: PhaseWork,
		},
		{
			name: "paused",
			setup: func(timer *PhaseTimer, clock *manualClock) {
				timer.Start()
				clock.Advance(90 * time.Second)
				timer.Pause()
			},
			phase: PhaseWork,
		},
		{
			name: "running break",
			setup: func(timer *PhaseTimer, clock *manualClock) {
				timer.Skip()
				timer.Start()
				clock.Advance(time.Minute)
			},
			phase: PhaseBreak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer, clock := newTestTimer(25, 5)
			tt.setup(timer, clock)

			timer.Reset()

			if timer.Running() {
				t.Error("expected timer to be stopped")
			}
			if timer.Started() {
				t.Error("expected started flag cleared")
			}
			if timer.CurrentPhase() != tt.phase {
				t.Errorf("expected phase %s, got %s", tt.phase, timer.CurrentPhase())
			}
			if got, want := timer.Remaining(), timer.DurationFor(tt.phase); got != want {
				t.Errorf("expected remaining %v, got %v", want, got)
			}
		})
	}
}

func TestConfigure_WhileRunningStopsAndResets(t *testing.T) {
	timer, clock := newTestTimer(25, 5)
	timer.Start()
	clock.Advance(time.Minute)

	timer.Configure(50, 10)

	if timer.Running() {
		t.Error("expected configure to stop the timer")
	}
	if got := timer.FormattedRemaining(); got != "50:00" {
		t.Errorf("expected 50:00, got %s", got)
	}
	work, brk := timer.Durations()
	if work != 50*time.Minute || brk != 10*time.Minute {
		t.Errorf("unexpected durations %v/%v", work, brk)
	}
}

func TestConfigure_KeepsCurrentPhase(t *testing.T) {
	timer, _ := newTestTimer(25, 5)
	timer.Skip()

	timer.Configure(30, 15)

	if timer.CurrentPhase() != PhaseBreak {
		t.Fatalf("expected break phase, got %s", timer.CurrentPhase())
	}
	if got := timer.FormattedRemaining(); got != "15:00" {
		t.Errorf("expected 15:00, got %s", got)
	}
}

func TestSkip_FlipsPhaseStopped(t *testing.T) {
	timer, clock := newTestTimer(25, 5)
	timer.Start()
	clock.Advance(time.Minute)

	timer.Skip()

	if timer.CurrentPhase() != PhaseBreak {
		t.Errorf("expected break phase, got %s", timer.CurrentPhase())
	}
	if timer.Running() {
		t.Error("expected skip to stop the timer")
	}
	if got := timer.FormattedRemaining(); got != "05:00" {
		t.Errorf("expected 05:00, got %s", got)
	}

	timer.Skip()
	if timer.CurrentPhase() != PhaseWork {
		t.Errorf("expected work phase, got %s", timer.CurrentPhase())
	}
}

func TestProgress(t *testing.T) {
	timer, clock := newTestTimer(10, 5)
	if got := timer.Progress(); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}

	timer.Start()
	clock.Advance(5 * time.Minute)
	if got := timer.Progress(); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}

	clock.Advance(time.Hour)
	if got := timer.Progress(); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestEvents(t *testing.T) {
	timer, clock := newTestTimer(1, 1)
	var got []EventType
	timer.SetOnEvent(func(event Event) {
		got = append(got, event.Type)
	})

	timer.Start()
	clock.Advance(30 * time.Second)
	timer.Pause()
	timer.Start()
	clock.Advance(30 * time.Second)
	timer.Tick()
	timer.Reset()
	timer.Configure(2, 2)

	want := []EventType{EventStarted, EventPaused, EventStarted, EventPhaseChange, EventReset, EventConfigured}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestObserverMayQueryTimer(t *testing.T) {
	timer, clock := newTestTimer(1, 1)
	var label string
	timer.SetOnEvent(func(Event) {
		label = timer.FormattedRemaining()
	})

	timer.Start()
	clock.Advance(time.Minute)
	timer.Tick()

	if label != "01:00" {
		t.Errorf("expected observer to read 01:00, got %s", label)
	}
}

func TestEndToEnd_WorkExpiresIntoBreak(t *testing.T) {
	timer, clock := newTestTimer(25, 5)

	timer.Start()
	clock.Advance(1500 * time.Second)
	timer.Tick()

	if timer.CurrentPhase() != PhaseBreak {
		t.Errorf("expected break phase, got %s", timer.CurrentPhase())
	}
	if got := timer.FormattedRemaining(); got != "05:00" {
		t.Errorf("expected 05:00, got %s", got)
	}
	if timer.Running() {
		t.Error("expected break not to auto-start")
	}
}

func TestEndToEnd_PausedTimeDoesNotCount(t *testing.T) {
	timer, clock := newTestTimer(25, 5)
	switches := 0
	timer.SetOnEvent(func(event Event) {
		if event.Type == EventPhaseChange {
			switches++
		}
	})

	timer.Start()
	clock.Advance(10 * time.Second)
	timer.Pause()
	clock.Advance(1000 * time.Second)
	timer.Start()

	clock.Advance(1489 * time.Second)
	if timer.Tick() {
		t.Fatal("switched one second early")
	}

	clock.Advance(time.Second)
	if !timer.Tick() {
		t.Fatal("expected phase switch")
	}
	timer.Tick()

	if switches != 1 {
		t.Errorf("expected exactly one switch, got %d", switches)
	}
	if timer.CurrentPhase() != PhaseBreak {
		t.Errorf("expected break phase, got %s", timer.CurrentPhase())
	}
}
