package media

import (
	"image"
	"time"
)

// Event is a playback notification from an [Element]. Handlers receive
// events on the frame loop; see [RegisterDispatch].
type Event interface {
	mediaEvent()
}

// EventLoaded reports that source metadata is known.
type EventLoaded struct {
	Duration  time.Duration
	Width     int
	Height    int
	FrameRate float64
}

// EventFrame carries a decoded frame. The image is owned by the receiver
// and stays valid until the next frame arrives.
type EventFrame struct {
	Image    *image.RGBA
	Position time.Duration
}

// EventPlay reports that playback started or resumed.
type EventPlay struct{}

// EventPause reports that playback was suspended.
type EventPause struct{}

// EventTime reports playback progress. It is throttled, unlike the
// per-frame position on [EventFrame].
type EventTime struct {
	Position time.Duration
}

// EventSeeked reports that a seek finished and playback continues from
// Position.
type EventSeeked struct {
	Position time.Duration
}

// EventEnded reports that playback reached the end of a non-looping source.
type EventEnded struct{}

// EventError reports a pipeline failure. Code is one of the ErrCode
// constants.
type EventError struct {
	Code string
	Err  error
}

func (EventLoaded) mediaEvent() {}
func (EventFrame) mediaEvent()  {}
func (EventPlay) mediaEvent()   {}
func (EventPause) mediaEvent()  {}
func (EventTime) mediaEvent()   {}
func (EventSeeked) mediaEvent() {}
func (EventEnded) mediaEvent()  {}
func (EventError) mediaEvent()  {}
