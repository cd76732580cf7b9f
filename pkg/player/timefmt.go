package player

import (
	"fmt"
	"math"
	"time"
)

// FormatTime renders a position in seconds as "MM:SS". Minutes keep
// counting past the hour so long recordings never wrap. NaN, infinities
// and negative values render as "00:00".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "00:00"
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// formatClock renders the transport label, current position over total
// duration.
func formatClock(position, duration time.Duration) string {
	return FormatTime(position.Seconds()) + " / " + FormatTime(duration.Seconds())
}
