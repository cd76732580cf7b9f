package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameStream_DecodesAllFrames(t *testing.T) {
	path := makeClip(t)

	s, err := OpenFrameStream(context.Background(), path, 0, 0)
	require.NoError(t, err)
	defer s.Close()

	frame, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 64, frame.Bounds().Dx())
	assert.Equal(t, 48, frame.Bounds().Dy())

	count := 1
	for {
		_, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 10, count)
}

func TestFrameStream_StartOffsetSkipsFrames(t *testing.T) {
	path := makeClip(t)

	s, err := OpenFrameStream(context.Background(), path, 500*time.Millisecond, 0)
	require.NoError(t, err)
	defer s.Close()

	count := 0
	for {
		_, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.InDelta(t, 5, count, 1)
}

func TestFrameStream_CloseStopsNext(t *testing.T) {
	path := makeClip(t)

	s, err := OpenFrameStream(context.Background(), path, 0, 0)
	require.NoError(t, err)

	_, err = s.Next()
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Next()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFrameStream_BadSource(t *testing.T) {
	requireFFmpeg(t)

	s, err := OpenFrameStream(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"), 0, 0)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Next()
	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrCodeSourceError, me.Code)
	assert.NotEmpty(t, me.Stderr)
}
