package media

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

const (
	defaultFrameRate   = 30.0
	timeUpdateInterval = 250 * time.Millisecond
)

// Engine is the ffmpeg-backed [Element]. It probes the source, decodes its
// first video stream, and paces frames in real time on a background
// goroutine.
type Engine struct {
	// Rate overrides the probed frame rate when positive. Set it before
	// calling Load.
	Rate float64

	src string

	mu        sync.Mutex
	cond      *sync.Cond
	listeners map[int]func(Event)
	nextID    int
	probe     Probe
	loaded    bool
	playing   bool
	looping   bool
	closed    bool
	volume    float64
	position  time.Duration
	seekTo    time.Duration
	seeking   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

var _ Element = (*Engine)(nil)

// NewEngine creates an engine for src without touching it. Call Load to
// start the pipeline.
func NewEngine(src string) *Engine {
	e := &Engine{
		src:       src,
		listeners: make(map[int]func(Event)),
		volume:    1,
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Listen implements [Element].
func (e *Engine) Listen(handler func(Event)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = handler
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Load implements [Element]. The first Load starts the decode goroutine;
// later calls are no-ops.
func (e *Engine) Load() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.cancel != nil {
		e.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.mu.Unlock()
	go e.run(ctx)
	return nil
}

// Play implements [Element].
func (e *Engine) Play() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.playing {
		e.mu.Unlock()
		return nil
	}
	e.playing = true
	if e.loaded && !e.seeking && e.probe.Duration > 0 && e.position >= e.probe.Duration {
		// Replaying a finished source restarts from the beginning.
		e.seeking = true
		e.seekTo = 0
	}
	e.cond.Broadcast()
	e.mu.Unlock()
	e.emit(EventPlay{})
	return nil
}

// Pause implements [Element].
func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if !e.playing {
		e.mu.Unlock()
		return nil
	}
	e.playing = false
	e.mu.Unlock()
	e.emit(EventPause{})
	return nil
}

// SeekTo implements [Element]. The position is observable through Position
// immediately; [EventSeeked] follows once the decoder has caught up.
func (e *Engine) SeekTo(position time.Duration) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if position < 0 {
		position = 0
	}
	if e.loaded && e.probe.Duration > 0 && position > e.probe.Duration {
		position = e.probe.Duration
	}
	e.seekTo = position
	e.seeking = true
	e.position = position
	e.cond.Broadcast()
	e.mu.Unlock()
	return nil
}

// SetVolume implements [Element].
func (e *Engine) SetVolume(volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.volume = min(1, max(0, volume))
	return nil
}

// Volume reports the volume set by SetVolume.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetLooping implements [Element].
func (e *Engine) SetLooping(looping bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.looping = looping
	return nil
}

// Position implements [Element].
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// Duration implements [Element].
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.probe.Duration
}

// Close implements [Element]. It stops the decode goroutine and waits for
// it to exit.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	cancel := e.cancel
	done := e.done
	e.cond.Broadcast()
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return nil
}

func (e *Engine) emit(ev Event) {
	e.mu.Lock()
	handlers := make([]func(Event), 0, len(e.listeners))
	for _, h := range e.listeners {
		handlers = append(handlers, h)
	}
	e.mu.Unlock()
	if len(handlers) == 0 {
		return
	}
	dispatch(func() {
		for _, h := range handlers {
			h(ev)
		}
	})
}

func (e *Engine) setPosition(pos time.Duration) {
	e.mu.Lock()
	if !e.seeking {
		e.position = pos
	}
	e.mu.Unlock()
}

// fail reports a pipeline failure unless the engine is shutting down.
func (e *Engine) fail(err error, fallback string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrClosed) {
		return
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.playing = false
	e.mu.Unlock()
	code := fallback
	var me *Error
	if errors.As(err, &me) && me.Code != "" {
		code = me.Code
	}
	e.emit(EventError{Code: code, Err: err})
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	probe, err := ProbeSource(ctx, e.src)
	if err != nil {
		e.fail(err, ErrCodeSourceError)
		return
	}
	e.mu.Lock()
	e.probe = probe
	e.loaded = true
	e.mu.Unlock()
	e.emit(EventLoaded{
		Duration:  probe.Duration,
		Width:     probe.Width,
		Height:    probe.Height,
		FrameRate: probe.FrameRate,
	})

	rate := e.Rate
	if rate <= 0 {
		rate = probe.FrameRate
	}
	if rate <= 0 {
		rate = defaultFrameRate
	}
	step := time.Duration(float64(time.Second) / rate)
	dur := probe.Duration

	stream, err := OpenFrameStream(ctx, e.src, 0, rate)
	if err != nil {
		e.fail(err, ErrCodeDecoderError)
		return
	}
	defer func() {
		if stream != nil {
			stream.Close()
		}
	}()

	// The first frame gives the view something to paint before playback
	// starts.
	frame, err := stream.Next()
	if err != nil {
		if errors.Is(err, ErrClosed) || ctx.Err() != nil {
			return
		}
		e.fail(err, ErrCodeDecoderError)
		return
	}
	e.emit(EventFrame{Image: frame, Position: 0})

	var (
		pos      time.Duration
		lastTime time.Duration
		next     = time.Now()
	)
	for {
		waited := false
		e.mu.Lock()
		for !e.playing && !e.seeking && !e.closed {
			e.cond.Wait()
			waited = true
		}
		if e.closed {
			e.mu.Unlock()
			return
		}
		if e.seeking {
			target := e.seekTo
			e.seeking = false
			e.mu.Unlock()
			stream.Close()
			stream, err = OpenFrameStream(ctx, e.src, target, rate)
			if err != nil {
				e.fail(err, ErrCodeDecoderError)
				return
			}
			pos = target
			lastTime = target
			frame, err := stream.Next()
			switch {
			case err == nil:
				e.emit(EventFrame{Image: frame, Position: pos})
			case errors.Is(err, io.EOF):
				// Seeking to the very end yields no frame.
			case errors.Is(err, ErrClosed) || ctx.Err() != nil:
				return
			default:
				e.fail(err, ErrCodeDecoderError)
				return
			}
			e.emit(EventSeeked{Position: pos})
			next = time.Now()
			continue
		}
		e.mu.Unlock()
		if waited {
			next = time.Now()
		}

		next = next.Add(step)
		if d := time.Until(next); d > 0 {
			timer := time.NewTimer(d)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		frame, err := stream.Next()
		if errors.Is(err, io.EOF) {
			e.mu.Lock()
			looping := e.looping
			e.mu.Unlock()
			if looping {
				stream.Close()
				stream, err = OpenFrameStream(ctx, e.src, 0, rate)
				if err != nil {
					e.fail(err, ErrCodeDecoderError)
					return
				}
				pos = 0
				lastTime = 0
				e.setPosition(0)
				e.emit(EventTime{Position: 0})
				next = time.Now()
				continue
			}
			end := dur
			if end == 0 {
				end = pos
			}
			pos = end
			lastTime = end
			e.mu.Lock()
			e.playing = false
			if !e.seeking {
				e.position = end
			}
			e.mu.Unlock()
			e.emit(EventTime{Position: end})
			e.emit(EventEnded{})
			continue
		}
		if err != nil {
			if errors.Is(err, ErrClosed) || ctx.Err() != nil {
				return
			}
			e.fail(err, ErrCodeDecoderError)
			return
		}

		pos += step
		if dur > 0 && pos > dur {
			pos = dur
		}
		e.setPosition(pos)
		e.emit(EventFrame{Image: frame, Position: pos})
		if pos-lastTime >= timeUpdateInterval {
			lastTime = pos
			e.emit(EventTime{Position: pos})
		}
	}
}
