package media

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_PlaysThroughToEnd(t *testing.T) {
	path := makeClip(t)
	e := NewEngine(path)
	defer e.Close()

	events := make(chan Event, 256)
	e.Listen(func(ev Event) { events <- ev })

	require.NoError(t, e.Load())

	loaded := waitFor[EventLoaded](t, events)
	assert.Equal(t, 64, loaded.Width)
	assert.Equal(t, 48, loaded.Height)
	assert.InDelta(t, 1.0, loaded.Duration.Seconds(), 0.2)
	assert.InDelta(t, 10.0, loaded.FrameRate, 0.01)

	first := waitFor[EventFrame](t, events)
	assert.Equal(t, time.Duration(0), first.Position, "first frame arrives before playback")

	require.NoError(t, e.Play())
	waitFor[EventPlay](t, events)
	waitFor[EventEnded](t, events)
	assert.InDelta(t, loaded.Duration.Seconds(), e.Position().Seconds(), 0.2)
}

func TestEngine_SeekEmitsSeeked(t *testing.T) {
	path := makeClip(t)
	e := NewEngine(path)
	defer e.Close()

	events := make(chan Event, 256)
	e.Listen(func(ev Event) { events <- ev })

	require.NoError(t, e.Load())
	waitFor[EventLoaded](t, events)
	waitFor[EventFrame](t, events)

	require.NoError(t, e.SeekTo(500*time.Millisecond))
	assert.Equal(t, 500*time.Millisecond, e.Position(), "position moves before the decoder catches up")

	seeked := waitFor[EventSeeked](t, events)
	assert.Equal(t, 500*time.Millisecond, seeked.Position)
}

func TestEngine_SeekClampsToDuration(t *testing.T) {
	path := makeClip(t)
	e := NewEngine(path)
	defer e.Close()

	events := make(chan Event, 256)
	e.Listen(func(ev Event) { events <- ev })

	require.NoError(t, e.Load())
	loaded := waitFor[EventLoaded](t, events)

	require.NoError(t, e.SeekTo(time.Hour))
	seeked := waitFor[EventSeeked](t, events)
	assert.LessOrEqual(t, seeked.Position, loaded.Duration)
	assert.LessOrEqual(t, e.Position(), loaded.Duration)
}

func TestEngine_LoopingRestartsFromStart(t *testing.T) {
	path := makeClip(t)
	e := NewEngine(path)
	defer e.Close()

	events := make(chan Event, 256)
	e.Listen(func(ev Event) { events <- ev })

	require.NoError(t, e.Load())
	require.NoError(t, e.SetLooping(true))
	require.NoError(t, e.Play())

	deadline := time.After(15 * time.Second)
	sawLate := false
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case EventEnded:
				t.Fatal("looping playback reported ended")
			case EventError:
				t.Fatalf("pipeline error: %v", ev.Err)
			case EventTime:
				if ev.Position > 700*time.Millisecond {
					sawLate = true
				}
				if sawLate && ev.Position < 300*time.Millisecond {
					return
				}
			}
		case <-deadline:
			t.Fatal("timed out waiting for loop restart")
		}
	}
}

func TestEngine_ReportsMissingSource(t *testing.T) {
	requireFFmpeg(t)
	e := NewEngine(filepath.Join(t.TempDir(), "missing.mp4"))
	defer e.Close()

	events := make(chan Event, 16)
	e.Listen(func(ev Event) { events <- ev })

	require.NoError(t, e.Load())
	fail := waitFor[EventError](t, events)
	assert.Equal(t, ErrCodeSourceError, fail.Code)
	assert.Error(t, fail.Err)
}

func TestEngine_CloseIsIdempotent(t *testing.T) {
	path := makeClip(t)
	e := NewEngine(path)

	require.NoError(t, e.Load())
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	assert.ErrorIs(t, e.Play(), ErrClosed)
	assert.ErrorIs(t, e.Pause(), ErrClosed)
	assert.ErrorIs(t, e.Load(), ErrClosed)
	assert.ErrorIs(t, e.SeekTo(0), ErrClosed)
}

func TestEngine_VolumeAndLooping(t *testing.T) {
	e := NewEngine("unused.mp4")
	defer e.Close()

	require.NoError(t, e.SetVolume(1.5))
	assert.Equal(t, 1.0, e.Volume())
	require.NoError(t, e.SetVolume(-1))
	assert.Equal(t, 0.0, e.Volume())
	require.NoError(t, e.SetLooping(true))
}
