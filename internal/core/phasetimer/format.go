package phasetimer

import (
	"fmt"
	"time"
)

// FormatRemaining renders a duration as mm:ss, rounded to the nearest second
// and clamped at 00:00.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
