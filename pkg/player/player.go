// Package player implements the video player widget: a fixed-size scene
// subtree combining the frame surface, poster, center play/pause overlay,
// loading spinner and the bottom transport row, driven by a playback state
// machine over {empty, loading, playing, paused}.
//
// The widget is single-threaded. Every method runs on the host's
// frame-loop goroutine; media backends deliver their events to that
// goroutine through the scene dispatch queue.
package player

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/go-vidview/vidview/pkg/geometry"
	"github.com/go-vidview/vidview/pkg/media"
	"github.com/go-vidview/vidview/pkg/scene"
	"github.com/rs/zerolog"
)

// seekEndEpsilon is how close to the end a position still counts as ended
// when play is requested; such plays restart from the beginning.
const seekEndEpsilon = 250 * time.Millisecond

// Player is a self-contained video widget: a letterboxed frame surface, an
// optional poster, center play/pause buttons, a loading spinner and a
// bottom transport row with seek bar, time label, download and fullscreen
// controls.
//
// Create with [New], mount with [Player.Attach], release with
// [Player.Destroy]. All methods must be called on the frame-loop
// goroutine. Media backends run their own goroutines and hand events to
// that goroutine through the dispatch queue; hosts wire this up once with
//
//	media.RegisterDispatch(scene.Dispatch)
//
// and drain the queue every frame.
type Player struct {
	cfg    Config
	log    zerolog.Logger
	client *http.Client

	// ctx scopes the poster and download fetches to the widget's life;
	// Destroy cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	view   *view
	parent *scene.Container

	element media.Element
	unsubs  []func()

	status          Status
	controlsVisible bool
	pauseSilentOnce bool
	ended           bool
	destroyed       bool

	duration time.Duration
	position time.Duration
	frame    *image.RGBA

	renderTicker  *scene.Ticker
	spinnerTicker *scene.Ticker
	spinnerMark   time.Duration
}

// New builds a player from the configuration. The layout and the scene
// nodes are created here; the media element is not touched until
// [Player.Attach].
func New(cfg Config) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Player{
		cfg:             cfg,
		log:             cfg.logger(),
		client:          http.DefaultClient,
		status:          StatusEmpty,
		controlsVisible: cfg.ControlsVisible,
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	l := ComputeLayout(geometry.Size{Width: cfg.Width, Height: cfg.Height}, cfg.Progress)
	p.view = newView(cfg, l)
	p.renderTicker = scene.NewTicker(p.renderFrame)
	p.spinnerTicker = scene.NewTicker(p.advanceSpinner)
	p.wireTaps()
	p.view.applyVisibility(p.status, p.controlsVisible, p.cfg)
	p.view.setClock(0, 0)
	p.view.setProgress(0)
	return p, nil
}

// Root returns the widget's top-level node. Hosts position it within the
// parent container.
func (p *Player) Root() *scene.Container {
	return p.view.root
}

// Status returns the widget's current state.
func (p *Player) Status() Status {
	return p.status
}

// Duration returns the media duration, or zero before metadata arrives.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	return p.position
}

// Attach mounts the widget under parent, creates the media element and
// starts loading. Event handlers are wired before Load so nothing is
// missed.
func (p *Player) Attach(parent *scene.Container) error {
	if p.destroyed {
		return errors.New("player: destroyed")
	}
	if parent == nil {
		return errors.New("player: nil parent")
	}
	if p.parent != nil {
		return errors.New("player: already attached")
	}
	p.parent = parent
	parent.AddChild(p.view.root)

	p.element = p.cfg.newElement()
	p.unsubs = append(p.unsubs, p.element.Listen(p.handleEvent))
	if err := p.element.Load(); err != nil {
		return fmt.Errorf("player: load %s: %w", p.cfg.Src, err)
	}
	if p.cfg.Poster != "" {
		go p.loadPoster(p.cfg.Poster)
	}
	return nil
}

// Play starts or resumes playback. A play at the end of the media, or
// within a quarter second of it, restarts from the beginning: the position
// is reset first and playback begins once the element acknowledges the
// seek.
func (p *Player) Play() {
	if p.destroyed || p.element == nil {
		return
	}
	if p.ended || p.nearEnd() {
		p.restart()
		return
	}
	if p.duration == 0 {
		p.setStatus(StatusLoading, false)
	}
	if err := p.element.Play(); err != nil {
		p.log.Debug().Err(err).Msg("play failed")
	}
}

// Pause halts playback. The last decoded frame stays on the surface.
func (p *Player) Pause() {
	if p.destroyed || p.element == nil {
		return
	}
	if err := p.element.Pause(); err != nil {
		p.log.Debug().Err(err).Msg("pause failed")
	}
}

// PauseSilently pauses without invoking the OnPause hook. The suppression
// is one-shot: it covers the next pause transition and is then cleared.
func (p *Player) PauseSilently() {
	if p.destroyed || p.element == nil {
		return
	}
	p.pauseSilentOnce = true
	if err := p.element.Pause(); err != nil {
		p.log.Debug().Err(err).Msg("pause failed")
	}
}

// SeekTo moves playback to the given position. The element clamps it to
// the valid range.
func (p *Player) SeekTo(position time.Duration) {
	if p.destroyed || p.element == nil {
		return
	}
	p.ended = false
	if err := p.element.SeekTo(position); err != nil {
		p.log.Debug().Err(err).Msg("seek failed")
	}
}

// SetVolume forwards the playback volume to the element, which clamps it to
// the unit range.
func (p *Player) SetVolume(volume float64) {
	if p.destroyed || p.element == nil {
		return
	}
	if err := p.element.SetVolume(volume); err != nil {
		p.log.Debug().Err(err).Msg("set volume failed")
	}
}

// SetLooping controls whether the element restarts at the end of the media
// instead of reporting it. A looping source never reaches the ended state.
func (p *Player) SetLooping(looping bool) {
	if p.destroyed || p.element == nil {
		return
	}
	if err := p.element.SetLooping(looping); err != nil {
		p.log.Debug().Err(err).Msg("set looping failed")
	}
}

// SetControlsVisible flips the master switch for the bottom control row.
// Off forces every bottom control to opacity zero and strips its
// hit-testability regardless of its own switch; on restores each control's
// configured value. The center buttons are unaffected.
func (p *Player) SetControlsVisible(visible bool) {
	if p.destroyed {
		return
	}
	p.controlsVisible = visible
	p.view.applyVisibility(p.status, p.controlsVisible, p.cfg)
}

// Destroy tears the widget down: stops the tickers, aborts in-flight
// fetches, detaches all event listeners, closes the media element and
// removes the nodes from the parent. Destroy is idempotent; calling it
// again is a no-op.
func (p *Player) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.cancel()

	p.renderTicker.Stop()
	p.spinnerTicker.Stop()
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
	if p.element != nil {
		if err := p.element.Close(); err != nil {
			p.log.Debug().Err(err).Msg("element close failed")
		}
		p.element = nil
	}
	if p.parent != nil {
		p.parent.RemoveChild(p.view.root)
		p.parent = nil
	}
}

// nearEnd reports whether the position is within seekEndEpsilon of the
// known duration.
func (p *Player) nearEnd() bool {
	return p.duration > 0 && p.position >= p.duration-seekEndEpsilon
}

// restart seeks back to the start and plays once the seek lands. The
// completion listener detaches itself after the first seek event; if the
// element never reports one, Destroy releases it.
func (p *Player) restart() {
	p.ended = false
	p.setStatus(StatusLoading, false)

	var stop func()
	stop = p.element.Listen(func(ev media.Event) {
		if _, ok := ev.(media.EventSeeked); !ok {
			return
		}
		stop()
		if p.destroyed {
			return
		}
		if err := p.element.Play(); err != nil {
			p.log.Debug().Err(err).Msg("play after restart failed")
		}
	})
	p.unsubs = append(p.unsubs, stop)

	if err := p.element.SeekTo(0); err != nil {
		p.log.Debug().Err(err).Msg("seek to start failed")
	}
}

func (p *Player) wireTaps() {
	v := p.view
	v.centerPlay.SetOnTap(func(geometry.Offset) { p.Play() })
	v.centerPause.SetOnTap(func(geometry.Offset) { p.Pause() })
	v.bottomToggle.SetOnTap(func(geometry.Offset) { p.toggleTapped() })
	v.track.SetOnTap(p.trackTapped)
	v.download.SetOnTap(func(geometry.Offset) { p.downloadTapped() })
	v.fullscreen.SetOnTap(func(geometry.Offset) { p.fullscreenTapped() })
}

func (p *Player) toggleTapped() {
	if p.status == StatusPlaying {
		p.Pause()
	} else {
		p.Play()
	}
}

// trackTapped seeks to the tapped fraction of the bar. The coordinates are
// local to the track, so the exact edges land on zero and the full
// duration. Without a known duration or a visible bar width the tap is
// ignored.
func (p *Player) trackTapped(local geometry.Offset) {
	width := p.view.track.Size().Width
	if p.duration <= 0 || width <= 0 {
		return
	}
	ratio := geometry.Clamp01(local.X / width)
	p.SeekTo(time.Duration(ratio * float64(p.duration)))
}

func (p *Player) fullscreenTapped() {
	if p.cfg.Hooks.OnFullScreen != nil {
		p.cfg.Hooks.OnFullScreen()
	}
}

func (p *Player) downloadTapped() {
	go p.runDownload()
}

// handleEvent drives the state machine from element events. It runs on
// the frame-loop goroutine via the dispatch queue.
func (p *Player) handleEvent(ev media.Event) {
	if p.destroyed {
		return
	}
	switch ev := ev.(type) {
	case media.EventLoaded:
		p.duration = ev.Duration
		p.view.applyPlacement(geometry.Size{Width: float64(ev.Width), Height: float64(ev.Height)})
		p.refreshTransport()

	case media.EventFrame:
		p.position = ev.Position
		p.frame = ev.Image
		p.view.showFrame(ev.Image)
		if p.status == StatusEmpty {
			// The cover frame: swap out the poster and rest in paused.
			p.view.poster.SetVisible(false)
			p.setStatus(StatusPaused, true)
			p.refreshTransport()
		}

	case media.EventPlay:
		p.ended = false
		p.setStatus(StatusPlaying, false)

	case media.EventPause:
		p.setStatus(StatusPaused, false)

	case media.EventTime:
		p.position = ev.Position
		p.refreshTransport()
		if p.cfg.Hooks.OnTimeUpdate != nil {
			p.cfg.Hooks.OnTimeUpdate(ev.Position)
		}

	case media.EventSeeked:
		p.position = ev.Position
		p.refreshTransport()

	case media.EventEnded:
		p.ended = true
		if p.duration > 0 {
			p.position = p.duration
		}
		p.refreshTransport()
		p.setStatus(StatusPaused, true)
		if p.cfg.Hooks.OnEnded != nil {
			p.cfg.Hooks.OnEnded()
		}

	case media.EventError:
		p.log.Debug().Str("code", ev.Code).Err(ev.Err).Msg("media error")
	}
}

// setStatus moves the state machine, manages the tickers and re-applies
// visibility. A silent transition skips the OnPlay/OnPause hooks; a pause
// may also be silenced by the one-shot flag from [Player.PauseSilently],
// which is cleared only when it did the silencing.
func (p *Player) setStatus(next Status, silent bool) {
	prev := p.status
	p.status = next

	switch next {
	case StatusPlaying:
		p.spinnerTicker.Stop()
		if !p.renderTicker.IsActive() {
			p.renderTicker.Start()
		}
		if !silent && prev != StatusPlaying && p.cfg.Hooks.OnPlay != nil {
			p.cfg.Hooks.OnPlay()
		}

	case StatusPaused:
		p.renderTicker.Stop()
		p.spinnerTicker.Stop()
		suppressed := silent
		if !suppressed && p.pauseSilentOnce {
			p.pauseSilentOnce = false
			suppressed = true
		}
		if !suppressed && prev != StatusPaused && p.cfg.Hooks.OnPause != nil {
			p.cfg.Hooks.OnPause()
		}

	case StatusLoading:
		p.renderTicker.Stop()
		if !p.spinnerTicker.IsActive() {
			p.spinnerMark = 0
			p.spinnerTicker.Start()
		}
	}

	p.view.applyVisibility(p.status, p.controlsVisible, p.cfg)
}

// renderFrame is the render-loop body while playing: repaint the newest
// decoded frame and refresh the transport row.
func (p *Player) renderFrame(time.Duration) {
	p.view.showFrame(p.frame)
	p.refreshTransport()
}

// advanceSpinner converts the ticker's absolute elapsed time into the
// per-frame delta the spinner animates by.
func (p *Player) advanceSpinner(elapsed time.Duration) {
	p.view.spinner.Advance(elapsed - p.spinnerMark)
	p.spinnerMark = elapsed
}

// refreshTransport recomputes the seek bar fill and the time label.
func (p *Player) refreshTransport() {
	ratio := 0.0
	if p.duration > 0 {
		ratio = float64(p.position) / float64(p.duration)
	}
	p.view.setProgress(ratio)
	p.view.setClock(p.position, p.duration)
}
