package phasetimer

import "time"

// Phase is the active countdown mode.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Other returns the phase that follows p.
func (p Phase) Other() Phase {
	if p == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// EventType defines the type of PhaseTimer event.
type EventType string

const (
	EventStarted     EventType = "started"
	EventPaused      EventType = "paused"
	EventReset       EventType = "reset"
	EventConfigured  EventType = "configured"
	EventPhaseChange EventType = "phase_change"
)

// Event reports a PhaseTimer transition to its observer.
type Event struct {
	Type      EventType
	Phase     Phase
	Remaining time.Duration
	At        time.Time
}
