package player

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_Formats(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{7.9, "00:07"},
		{59, "00:59"},
		{60, "01:00"},
		{61.5, "01:01"},
		{3599, "59:59"},
		{3600, "60:00"}, // minutes keep counting past the hour
		{7325, "122:05"},
		{-3, "00:00"},
		{math.NaN(), "00:00"},
		{math.Inf(1), "00:00"},
		{math.Inf(-1), "00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTime(tc.seconds), "seconds=%v", tc.seconds)
	}
}

func TestFormatTime_MonotonicOverFiniteInput(t *testing.T) {
	prev := -1
	for s := 0.0; s <= 7200; s += 0.25 {
		label := FormatTime(s)
		var minutes, seconds int
		_, err := fmt.Sscanf(label, "%d:%d", &minutes, &seconds)
		require.NoError(t, err, "FormatTime(%v) = %q", s, label)

		total := minutes*60 + seconds
		require.GreaterOrEqual(t, total, prev, "label went backwards at %vs", s)
		require.Less(t, seconds, 60, "seconds field overflowed at %vs", s)
		prev = total
	}
}

func TestFormatClock_Label(t *testing.T) {
	assert.Equal(t, "01:05 / 10:00", formatClock(65*time.Second, 10*time.Minute))
	assert.Equal(t, "00:00 / 00:00", formatClock(0, 0))
}
