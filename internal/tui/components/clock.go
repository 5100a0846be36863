package components

import (
	"fmt"
	"math"
)

// FormatClock renders seconds as "mm:ss". Minutes are not wrapped into
// hours and fractional seconds are dropped. Negative and NaN inputs render
// as "00:00".
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if math.IsInf(seconds, 1) {
		return "--:--"
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatProgress renders the "current / total" readout
func FormatProgress(current, duration float64) string {
	return FormatClock(current) + " / " + FormatClock(duration)
}
