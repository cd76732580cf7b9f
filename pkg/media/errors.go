package media

import (
	"errors"
	"strings"
)

// Error codes carried by [EventError] and [Error].
const (
	// ErrCodeSourceError marks a source that could not be opened or probed.
	ErrCodeSourceError = "source_error"
	// ErrCodeDecoderError marks a failure while decoding frames.
	ErrCodeDecoderError = "decoder_error"
	// ErrCodePlaybackFailed marks a playback control that could not be applied.
	ErrCodePlaybackFailed = "playback_failed"
)

// ErrClosed is returned by element operations after Close.
var ErrClosed = errors.New("media: element closed")

// Error describes a failure in the decode pipeline.
type Error struct {
	Op     string // failing operation, such as "probe" or "stream"
	Code   string // one of the ErrCode constants
	Stderr string // trailing decoder diagnostics, when captured
	Err    error  // underlying error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("media: ")
	b.WriteString(e.Op)
	if e.Code != "" {
		b.WriteString(": ")
		b.WriteString(e.Code)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Stderr != "" {
		b.WriteString(" (")
		b.WriteString(e.Stderr)
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }
