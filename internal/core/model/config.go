package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration bounds accepted by the settings form.
const (
	MinWorkMinutes  = 1
	MaxWorkMinutes  = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60

	DefaultWorkSeconds  = 1500
	DefaultBreakSeconds = 300
)

// TimerConfig holds the phase durations of a PhaseTimer.
type TimerConfig struct {
	Work  time.Duration
	Break time.Duration
}

// DefaultTimerConfig returns the classic 25/5 split.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Work:  DefaultWorkSeconds * time.Second,
		Break: DefaultBreakSeconds * time.Second,
	}
}

// WorkInRange reports whether seconds is an accepted work duration: a whole
// number of minutes within the form bounds.
func WorkInRange(seconds int) bool {
	return wholeMinutesIn(seconds, MinWorkMinutes, MaxWorkMinutes)
}

// BreakInRange reports whether seconds is an accepted break duration.
func BreakInRange(seconds int) bool {
	return wholeMinutesIn(seconds, MinBreakMinutes, MaxBreakMinutes)
}

func wholeMinutesIn(seconds, minMinutes, maxMinutes int) bool {
	return seconds%60 == 0 && seconds >= minMinutes*60 && seconds <= maxMinutes*60
}

// Geometry is the persisted window size. It is stored as an opaque
// "<width>x<height>" blob.
type Geometry struct {
	Width  float32
	Height float32
}

// IsZero reports whether no geometry was recorded.
func (geometry Geometry) IsZero() bool {
	return geometry.Width <= 0 || geometry.Height <= 0
}

// MarshalText encodes the geometry blob.
func (geometry Geometry) MarshalText() ([]byte, error) {
	if geometry.IsZero() {
		return []byte{}, nil
	}
	width := strconv.FormatFloat(float64(geometry.Width), 'f', -1, 32)
	height := strconv.FormatFloat(float64(geometry.Height), 'f', -1, 32)
	return []byte(width + "x" + height), nil
}

// UnmarshalText decodes a blob written by MarshalText. An empty blob yields
// the zero Geometry.
func (geometry *Geometry) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*geometry = Geometry{}
		return nil
	}
	widthText, heightText, ok := strings.Cut(raw, "x")
	if !ok {
		return fmt.Errorf("parse geometry %q: missing separator", raw)
	}
	width, err := strconv.ParseFloat(widthText, 32)
	if err != nil {
		return fmt.Errorf("parse geometry width: %w", err)
	}
	height, err := strconv.ParseFloat(heightText, 32)
	if err != nil {
		return fmt.Errorf("parse geometry height: %w", err)
	}
	*geometry = Geometry{Width: float32(width), Height: float32(height)}
	return nil
}
