package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_FormatsOpCodeAndStderr(t *testing.T) {
	err := &Error{
		Op:     "probe",
		Code:   ErrCodeSourceError,
		Stderr: "missing.mp4: No such file or directory",
		Err:    errors.New("exit status 1"),
	}
	assert.Equal(t,
		"media: probe: source_error: exit status 1 (missing.mp4: No such file or directory)",
		err.Error())
}

func TestError_FormatsWithoutOptionalParts(t *testing.T) {
	err := &Error{Op: "stream", Code: ErrCodeDecoderError}
	assert.Equal(t, "media: stream: decoder_error", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &Error{Op: "stream", Code: ErrCodeDecoderError, Err: inner}
	assert.ErrorIs(t, err, inner)
}
