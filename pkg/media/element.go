// Package media decodes video sources into frames and reports playback
// progress. [Engine] is the ffmpeg-backed default; [Scripted] is a
// hand-driven element for tests.
//
// Elements run their decode pipelines on background goroutines and hand
// every event to the function registered with [RegisterDispatch], so event
// handlers always run on the host's frame loop.
package media

import "time"

// Element is a playback backend.
//
// Register listeners with Listen before calling Load to avoid missing
// events. All methods are safe to call from any goroutine.
type Element interface {
	// Listen registers handler for playback events and returns a function
	// that removes it.
	Listen(handler func(Event)) func()

	// Load starts probing and decoding the source. It returns quickly;
	// progress and failures arrive as events.
	Load() error

	// Play starts or resumes playback. Playing a finished source restarts
	// it from the beginning.
	Play() error

	// Pause suspends playback, keeping the current frame.
	Pause() error

	// SeekTo moves playback to position, clamped to the media duration.
	SeekTo(position time.Duration) error

	// SetVolume sets the playback volume, clamped to [0, 1].
	SetVolume(volume float64) error

	// SetLooping controls whether playback restarts when the end of the
	// source is reached. A looping element never reports [EventEnded].
	SetLooping(looping bool) error

	// Position reports the current playback position.
	Position() time.Duration

	// Duration reports the media duration, or zero before metadata loads.
	Duration() time.Duration

	// Close stops decoding and releases the pipeline. Close is idempotent;
	// other methods return [ErrClosed] afterwards.
	Close() error
}
