package media

import (
	"image"
	"sync"
	"time"
)

// Scripted is an [Element] for tests. It decodes nothing: metadata, frames,
// and progress appear only when the test emits them. Control methods
// acknowledge themselves with the matching event, the way a real backend
// does.
type Scripted struct {
	mu        sync.Mutex
	listeners map[int]func(Event)
	nextID    int
	calls     []string
	duration  time.Duration
	position  time.Duration
	playing   bool
	looping   bool
	volume    float64
	closed    bool
}

var _ Element = (*Scripted)(nil)

// NewScripted creates an idle scripted element.
func NewScripted() *Scripted {
	return &Scripted{
		listeners: make(map[int]func(Event)),
		volume:    1,
	}
}

// Listen implements [Element].
func (s *Scripted) Listen(handler func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = handler
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Load implements [Element]. Metadata arrives only when the test calls
// EmitLoaded.
func (s *Scripted) Load() error {
	return s.record("load")
}

// Play implements [Element].
func (s *Scripted) Play() error {
	if err := s.record("play"); err != nil {
		return err
	}
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
	s.emit(EventPlay{})
	return nil
}

// Pause implements [Element].
func (s *Scripted) Pause() error {
	if err := s.record("pause"); err != nil {
		return err
	}
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
	s.emit(EventPause{})
	return nil
}

// SeekTo implements [Element]. The seek completes immediately.
func (s *Scripted) SeekTo(position time.Duration) error {
	if err := s.record("seek"); err != nil {
		return err
	}
	s.mu.Lock()
	if position < 0 {
		position = 0
	}
	if s.duration > 0 && position > s.duration {
		position = s.duration
	}
	s.position = position
	s.mu.Unlock()
	s.emit(EventSeeked{Position: position})
	return nil
}

// SetVolume implements [Element].
func (s *Scripted) SetVolume(volume float64) error {
	if err := s.record("volume"); err != nil {
		return err
	}
	s.mu.Lock()
	s.volume = min(1, max(0, volume))
	s.mu.Unlock()
	return nil
}

// SetLooping implements [Element].
func (s *Scripted) SetLooping(looping bool) error {
	if err := s.record("loop"); err != nil {
		return err
	}
	s.mu.Lock()
	s.looping = looping
	s.mu.Unlock()
	return nil
}

// Position implements [Element].
func (s *Scripted) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Duration implements [Element].
func (s *Scripted) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Close implements [Element].
func (s *Scripted) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.calls = append(s.calls, "close")
	return nil
}

// EmitLoaded publishes metadata, as if probing finished.
func (s *Scripted) EmitLoaded(duration time.Duration, width, height int) {
	s.mu.Lock()
	s.duration = duration
	s.mu.Unlock()
	s.emit(EventLoaded{Duration: duration, Width: width, Height: height})
}

// EmitFrame publishes a decoded frame at the given position.
func (s *Scripted) EmitFrame(img *image.RGBA, position time.Duration) {
	s.setPosition(position)
	s.emit(EventFrame{Image: img, Position: position})
}

// EmitTime publishes a progress update.
func (s *Scripted) EmitTime(position time.Duration) {
	s.setPosition(position)
	s.emit(EventTime{Position: position})
}

// EmitEnded moves the position to the end and publishes [EventEnded].
func (s *Scripted) EmitEnded() {
	s.mu.Lock()
	s.position = s.duration
	s.playing = false
	s.mu.Unlock()
	s.emit(EventEnded{})
}

// EmitError publishes a pipeline failure.
func (s *Scripted) EmitError(code string, err error) {
	s.emit(EventError{Code: code, Err: err})
}

// Calls reports the element methods invoked so far, in order.
func (s *Scripted) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Playing reports whether the last control event was a play.
func (s *Scripted) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Looping reports the value set by SetLooping.
func (s *Scripted) Looping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.looping
}

// Volume reports the value set by SetVolume.
func (s *Scripted) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *Scripted) record(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.calls = append(s.calls, op)
	return nil
}

func (s *Scripted) setPosition(position time.Duration) {
	s.mu.Lock()
	s.position = position
	s.mu.Unlock()
}

func (s *Scripted) emit(ev Event) {
	s.mu.Lock()
	handlers := make([]func(Event), 0, len(s.listeners))
	for _, h := range s.listeners {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()
	dispatch(func() {
		for _, h := range handlers {
			h(ev)
		}
	})
}
