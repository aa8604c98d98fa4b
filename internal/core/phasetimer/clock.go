package phasetimer

import "time"

// Clock provides wall-clock reads. Tests inject a manual clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
