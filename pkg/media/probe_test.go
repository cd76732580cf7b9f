package media

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSource_ReportsStreamProperties(t *testing.T) {
	path := makeClip(t)

	p, err := ProbeSource(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 64, p.Width)
	assert.Equal(t, 48, p.Height)
	assert.Equal(t, "mjpeg", p.Codec)
	assert.InDelta(t, 10.0, p.FrameRate, 0.01)
	assert.InDelta(t, 1.0, p.Duration.Seconds(), 0.2)
	assert.Greater(t, p.SizeBytes, int64(0))
}

func TestProbeSource_MissingFile(t *testing.T) {
	requireFFmpeg(t)

	_, err := ProbeSource(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrCodeSourceError, me.Code)
	assert.Equal(t, "probe", me.Op)
}

func TestParseProbe_PicksVideoStream(t *testing.T) {
	raw := ffprobeOutput{
		Format: ffprobeFormat{Duration: "12.5", Size: "1024", BitRate: "800000"},
		Streams: []ffprobeStream{
			{CodecName: "aac"},
			{Width: 1280, Height: 720, CodecName: "h264", RFrameRate: "30000/1001"},
		},
	}

	p, err := parseProbe(raw)
	require.NoError(t, err)
	assert.Equal(t, 1280, p.Width)
	assert.Equal(t, 720, p.Height)
	assert.Equal(t, "h264", p.Codec)
	assert.InDelta(t, 29.97, p.FrameRate, 0.001)
	assert.Equal(t, 12500*time.Millisecond, p.Duration)
	assert.Equal(t, int64(1024), p.SizeBytes)
	assert.Equal(t, int64(800000), p.BitRate)
}

func TestParseProbe_NoVideoStream(t *testing.T) {
	_, err := parseProbe(ffprobeOutput{Format: ffprobeFormat{Duration: "1.0"}})
	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrCodeSourceError, me.Code)
}

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30000/1001", 29.97},
		{"25/1", 25},
		{"24", 24},
		{"0/0", 0},
		{"", 0},
		{"x/y", 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, parseFrameRate(tc.in), 0.001, "input %q", tc.in)
	}
}
