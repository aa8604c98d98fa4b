package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines persisted user preferences.
type Settings struct {
	WorkDuration  time.Duration
	BreakDuration time.Duration
	Geometry      model.Geometry
}

// DefaultSettings returns 25 minutes of work and 5 of break.
func DefaultSettings() Settings {
	config := model.DefaultTimerConfig()
	return Settings{
		WorkDuration:  config.Work,
		BreakDuration: config.Break,
	}
}

// TimerConfig converts settings to a PhaseTimer configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Work:  settings.WorkDuration,
		Break: settings.BreakDuration,
	}
}

// WorkMinutes returns the work duration in whole minutes.
func (settings Settings) WorkMinutes() int {
	return int(settings.WorkDuration / time.Minute)
}

// BreakMinutes returns the break duration in whole minutes.
func (settings Settings) BreakMinutes() int {
	return int(settings.BreakDuration / time.Minute)
}
