package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
	"github.com/go-vidview/vidview/pkg/media"
	"github.com/rs/zerolog"
)

// ProgressStyle controls the geometry and colors of the seek bar.
type ProgressStyle struct {
	// Height is the bar thickness in logical pixels.
	Height float64 `yaml:"height"`

	// BottomOffset is the distance from the container's bottom edge to the
	// vertical center of the bottom control row.
	BottomOffset float64 `yaml:"bottom_offset"`

	// SideMargin insets the bottom control row from both container edges.
	SideMargin float64 `yaml:"side_margin"`

	// CornerRadius rounds the bar ends.
	CornerRadius float64 `yaml:"corner_radius"`

	// PlayedColor fills the elapsed portion of the bar.
	PlayedColor canvas.Color `yaml:"played_color"`

	// TrackColor fills the remaining portion.
	TrackColor canvas.Color `yaml:"track_color"`

	// Visible shows the bar whenever the bottom controls are shown.
	Visible bool `yaml:"visible"`

	// Hittable enables tap-to-seek on the bar.
	Hittable bool `yaml:"hittable"`
}

// DefaultProgressStyle returns the stock seek bar look: a thin white bar on
// a translucent track.
func DefaultProgressStyle() ProgressStyle {
	return ProgressStyle{
		Height:       4,
		BottomOffset: 22,
		SideMargin:   16,
		CornerRadius: 2,
		PlayedColor:  canvas.ColorWhite,
		TrackColor:   canvas.ColorWhite.WithAlpha(0.3),
		Visible:      true,
		Hittable:     true,
	}
}

// Hooks carries the host's playback callbacks. Every hook is optional and
// is invoked on the frame-loop goroutine.
type Hooks struct {
	// OnPlay fires when playback starts or resumes.
	OnPlay func()

	// OnPause fires when playback pauses, unless the pause was silenced
	// with [Player.PauseSilently].
	OnPause func()

	// OnTimeUpdate fires when the playback position advances, at most a
	// few times per second.
	OnTimeUpdate func(position time.Duration)

	// OnEnded fires when playback reaches the end of the media.
	OnEnded func()

	// OnFullScreen fires when the fullscreen control is tapped. The host
	// owns the actual window transition.
	OnFullScreen func()
}

// Config describes a player widget. Width, Height and Src are required;
// [NewConfig] fills every optional field with a usable default.
//
// The yaml tags let host applications keep player settings in a config
// file. Function fields are skipped when marshaling.
type Config struct {
	// Width and Height fix the widget size in logical pixels.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Src is the media source, a URL or a local path.
	Src string `yaml:"src"`

	// Poster is an optional image URL shown until the first frame arrives.
	Poster string `yaml:"poster"`

	// ResizeMode selects how the poster fills the widget: "cover" (the
	// default) crops, "contain" letterboxes.
	ResizeMode string `yaml:"resize_mode"`

	// ControlsVisible is the master switch for the bottom control row. The
	// center play/pause buttons are not affected by it.
	ControlsVisible bool `yaml:"controls_visible"`

	// DownloadVisible shows the download control in the bottom row.
	DownloadVisible bool `yaml:"download_visible"`

	// FullscreenVisible shows the fullscreen control in the bottom row.
	FullscreenVisible bool `yaml:"fullscreen_visible"`

	// Progress styles the seek bar.
	Progress ProgressStyle `yaml:"progress"`

	// DownloadDir receives fetched media files. Empty uses the system
	// temp directory.
	DownloadDir string `yaml:"download_dir"`

	// Hooks are the host's playback callbacks.
	Hooks Hooks `yaml:"-"`

	// OpenURL opens a URL in the host environment, typically a browser.
	// It is the fallback when a direct download fetch fails.
	OpenURL func(url string) error `yaml:"-"`

	// NewElement overrides how the media element is built. Nil uses the
	// ffmpeg engine.
	NewElement func(src string) media.Element `yaml:"-"`

	// Logger receives debug logs. Nil disables logging.
	Logger *zerolog.Logger `yaml:"-"`
}

// NewConfig returns a Config for the given size and source with every
// optional field defaulted: cover resize, all controls visible, the stock
// progress style.
func NewConfig(width, height float64, src string) Config {
	return Config{
		Width:             width,
		Height:            height,
		Src:               src,
		ResizeMode:        "cover",
		ControlsVisible:   true,
		DownloadVisible:   true,
		FullscreenVisible: true,
		Progress:          DefaultProgressStyle(),
	}
}

// Validate reports whether the configuration can produce a working widget.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("player: size %gx%g is not positive", c.Width, c.Height)
	}
	if c.Src == "" {
		return errors.New("player: src is required")
	}
	switch c.ResizeMode {
	case "", "cover", "contain":
	default:
		return fmt.Errorf("player: unknown resize mode %q", c.ResizeMode)
	}
	return nil
}

// posterFit maps ResizeMode to the image fit mode. The empty string means
// the caller skipped NewConfig; it keeps the cover default.
func (c Config) posterFit() geometry.FitMode {
	if c.ResizeMode == "" {
		return geometry.FitCover
	}
	return geometry.ParseFitMode(c.ResizeMode)
}

// logger returns the configured logger or a disabled one.
func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}

// newElement builds the media element for Src.
func (c Config) newElement() media.Element {
	if c.NewElement != nil {
		return c.NewElement(c.Src)
	}
	return media.NewEngine(c.Src)
}
