package overlay

import (
	"fmt"
	"math"
)

// FormatSeconds renders elapsed seconds as MM:SS.CC in compact mode or
// MM:SS.mmm otherwise. Negative or non-finite input renders as zero, and
// input beyond the int64 millisecond range saturates.
func FormatSeconds(seconds float64, compact bool) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	var totalMillis int64 = math.MaxInt64
	if ms := math.Floor(seconds*1000 + 0.5); ms < math.MaxInt64 {
		totalMillis = int64(ms)
	}
	minutes := totalMillis / 60000
	secs := (totalMillis / 1000) % 60
	millis := totalMillis % 1000

	if compact {
		return fmt.Sprintf("%02d:%02d.%02d", minutes, secs, millis/10)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}

// PlaceholderText is the label text shown before the first update.
func PlaceholderText(compact bool) string {
	return FormatSeconds(0, compact)
}
