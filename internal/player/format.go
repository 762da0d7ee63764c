package player

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as m:ss, flooring to whole seconds. Values that
// are not a finite non-negative number render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	mins := int64(math.Floor(seconds / 60))
	secs := int64(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Progress returns the playback position as a 0-100 percentage, or 0 when
// the duration is unknown.
func Progress(currentTime, duration float64) float64 {
	p := currentTime / duration * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}
