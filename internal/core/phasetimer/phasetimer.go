// Package phasetimer implements the Pomodoro countdown: a Work/Break state
// machine whose remaining time is derived from an absolute target instant
// rather than decremented per tick.
//
// Notes:
//   - Remaining time while running is always target - now, so a late or
//     skipped tick never accumulates drift. Tick only decides whether the
//     phase expired.
//   - Pause keeps the exact remainder (nanoseconds), not whole seconds, so
//     repeated pause/resume cycles do not round away time.
//   - The host calls every method from its UI goroutine. The mutex only
//     guards against tray and watcher callbacks that arrive elsewhere.
package phasetimer

import (
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// PhaseTimer is the Work/Break countdown state machine.
type PhaseTimer struct {
	mu            sync.Mutex
	clock         Clock
	phase         Phase
	workDuration  time.Duration
	breakDuration time.Duration
	running       bool
	started       bool
	target        time.Time
	remaining     time.Duration
	onEvent       func(Event)
}

// New creates an idle PhaseTimer in the Work phase. A nil clock uses
// SystemClock.
func New(config model.TimerConfig, clock Clock) *PhaseTimer {
	if clock == nil {
		clock = SystemClock
	}
	timer := &PhaseTimer{
		clock:         clock,
		phase:         PhaseWork,
		workDuration:  config.Work,
		breakDuration: config.Break,
	}
	timer.remaining = timer.durationForLocked(timer.phase)
	return timer
}

// SetOnEvent registers the single observer notified after each transition.
func (timer *PhaseTimer) SetOnEvent(handler func(Event)) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.onEvent = handler
}

// Start begins or resumes the countdown. It is a no-op while running.
func (timer *PhaseTimer) Start() {
	timer.mu.Lock()
	if timer.running {
		timer.mu.Unlock()
		return
	}
	now := timer.clock.Now()
	timer.target = now.Add(timer.remaining)
	timer.running = true
	timer.started = true
	event := timer.eventLocked(EventStarted, now)
	timer.mu.Unlock()

	timer.emit(event)
}

// Pause freezes the countdown. It is a no-op while idle.
func (timer *PhaseTimer) Pause() {
	timer.mu.Lock()
	if !timer.running {
		timer.mu.Unlock()
		return
	}
	now := timer.clock.Now()
	timer.remaining = timer.remainingAtLocked(now)
	timer.running = false
	timer.target = time.Time{}
	event := timer.eventLocked(EventPaused, now)
	timer.mu.Unlock()

	timer.emit(event)
}

// Reset stops the countdown and restores the full duration of the current
// phase.
func (timer *PhaseTimer) Reset() {
	timer.mu.Lock()
	now := timer.clock.Now()
	timer.resetLocked()
	event := timer.eventLocked(EventReset, now)
	timer.mu.Unlock()

	timer.emit(event)
}

// Tick recomputes the remaining time from the wall clock. When the countdown
// reaches zero the timer switches to the other phase, stopped, and Tick
// returns true. Ticks while idle do nothing.
func (timer *PhaseTimer) Tick() bool {
	timer.mu.Lock()
	if !timer.running {
		timer.mu.Unlock()
		return false
	}
	now := timer.clock.Now()
	remaining := timer.remainingAtLocked(now)
	if remaining > 0 {
		timer.remaining = remaining
		timer.mu.Unlock()
		return false
	}

	timer.switchPhaseLocked()
	event := timer.eventLocked(EventPhaseChange, now)
	timer.mu.Unlock()

	timer.emit(event)
	return true
}

// Skip ends the current phase early and moves to the other one, stopped.
func (timer *PhaseTimer) Skip() {
	timer.mu.Lock()
	now := timer.clock.Now()
	timer.switchPhaseLocked()
	event := timer.eventLocked(EventPhaseChange, now)
	timer.mu.Unlock()

	timer.emit(event)
}

// Configure replaces both durations, given in minutes, and resets. Callers
// validate the ranges.
func (timer *PhaseTimer) Configure(workMinutes, breakMinutes int) {
	timer.SetDurations(time.Duration(workMinutes)*time.Minute, time.Duration(breakMinutes)*time.Minute)
}

// SetDurations replaces both durations and resets.
func (timer *PhaseTimer) SetDurations(work, brk time.Duration) {
	timer.mu.Lock()
	now := timer.clock.Now()
	timer.workDuration = work
	timer.breakDuration = brk
	timer.resetLocked()
	event := timer.eventLocked(EventConfigured, now)
	timer.mu.Unlock()

	timer.emit(event)
}

// Remaining returns the time left in the current phase, never negative.
func (timer *PhaseTimer) Remaining() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.running {
		return timer.remainingAtLocked(timer.clock.Now())
	}
	return timer.remaining
}

// FormattedRemaining returns Remaining as mm:ss.
func (timer *PhaseTimer) FormattedRemaining() string {
	return FormatRemaining(timer.Remaining())
}

// CurrentPhase returns the active phase.
func (timer *PhaseTimer) CurrentPhase() Phase {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.phase
}

// Running reports whether the countdown is advancing.
func (timer *PhaseTimer) Running() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.running
}

// Started reports whether the current phase instance has been started since
// the last reset or phase switch.
func (timer *PhaseTimer) Started() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.started
}

// Durations returns the configured work and break durations.
func (timer *PhaseTimer) Durations() (time.Duration, time.Duration) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.workDuration, timer.breakDuration
}

// DurationFor returns the full duration of phase.
func (timer *PhaseTimer) DurationFor(phase Phase) time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.durationForLocked(phase)
}

// Progress returns the elapsed fraction of the current phase in [0, 1].
func (timer *PhaseTimer) Progress() float64 {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	total := timer.durationForLocked(timer.phase)
	if total <= 0 {
		return 1
	}
	remaining := timer.remaining
	if timer.running {
		remaining = timer.remainingAtLocked(timer.clock.Now())
	}
	progress := float64(total-remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (timer *PhaseTimer) resetLocked() {
	timer.running = false
	timer.started = false
	timer.target = time.Time{}
	timer.remaining = timer.durationForLocked(timer.phase)
}

func (timer *PhaseTimer) switchPhaseLocked() {
	timer.phase = timer.phase.Other()
	timer.resetLocked()
}

func (timer *PhaseTimer) remainingAtLocked(now time.Time) time.Duration {
	remaining := timer.target.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (timer *PhaseTimer) durationForLocked(phase Phase) time.Duration {
	if phase == PhaseBreak {
		return timer.breakDuration
	}
	return timer.workDuration
}

func (timer *PhaseTimer) eventLocked(eventType EventType, now time.Time) Event {
	remaining := timer.remaining
	if timer.running {
		remaining = timer.remainingAtLocked(now)
	}
	return Event{
		Type:      eventType,
		Phase:     timer.phase,
		Remaining: remaining,
		At:        now,
	}
}

func (timer *PhaseTimer) emit(event Event) {
	timer.mu.Lock()
	handler := timer.onEvent
	timer.mu.Unlock()
	if handler != nil {
		handler(event)
	}
}
