package player

import (
	"image"
	"time"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
	"github.com/go-vidview/vidview/pkg/scene"
)

// Overlay palette. The chrome matches the stock dark look of the widget.
const (
	backdropColor = canvas.Color(0xFF1A1A1A)
	scrimColor    = canvas.Color(0x99000000)
	chromeColor   = canvas.ColorWhite
)

// view owns the scene nodes of one widget instance. It is pure
// presentation: the player mutates it through small setters and the
// visibility pass, and never reads state back out of it.
//
// Children are added in paint order; the tap router walks them topmost
// first, so the fill bar sits above the track without stealing its taps
// (it has no handler) and the controls sit above the surface.
type view struct {
	root     *scene.Container
	backdrop *scene.RectNode
	surface  *scene.SurfaceNode
	poster   *scene.ImageNode

	centerPlay  *scene.Container
	centerPause *scene.Container
	spinner     *scene.SpinnerNode

	bottomToggle *scene.IconNode
	track        *scene.RectNode
	fill         *scene.RectNode
	timeLabel    *scene.TextNode
	download     *scene.IconNode
	fullscreen   *scene.IconNode

	layout    Layout
	placement geometry.DrawPlacement
}

func newView(cfg Config, l Layout) *view {
	v := &view{layout: l}
	box := l.Container.Size()

	v.root = scene.NewContainer(box)
	v.root.ClipChildren = true

	v.backdrop = scene.NewRectNode(backdropColor)
	v.backdrop.SetSize(box)

	v.surface = scene.NewSurfaceNode()

	v.poster = scene.NewImageNode(cfg.posterFit())
	v.poster.SetSize(box)
	v.poster.SetVisible(false)

	v.centerPlay = centerButton(l.CenterButton, scene.IconPlay)
	v.centerPause = centerButton(l.CenterButton, scene.IconPause)

	v.spinner = scene.NewSpinnerNode(chromeColor)
	v.spinner.SetPosition(l.Spinner.Origin())
	v.spinner.SetSize(l.Spinner.Size())

	v.track = scene.NewRectNode(cfg.Progress.TrackColor)
	v.track.CornerRadius = cfg.Progress.CornerRadius
	v.track.SetPosition(l.Track.Origin())
	v.track.SetSize(l.Track.Size())

	v.fill = scene.NewRectNode(cfg.Progress.PlayedColor)
	v.fill.CornerRadius = cfg.Progress.CornerRadius
	v.fill.SetPosition(l.Track.Origin())
	v.fill.SetSize(geometry.Size{Height: l.Track.Height()})

	v.timeLabel = scene.NewTextNode(canvas.TextStyle{Size: timeTextSize, Color: chromeColor})
	v.timeLabel.SetPosition(l.TimeLabel.Origin())

	v.bottomToggle = scene.NewIconNode(scene.IconPlay, chromeColor)
	v.bottomToggle.SetPosition(l.BottomToggle.Origin())
	v.bottomToggle.SetSize(l.BottomToggle.Size())

	v.download = scene.NewIconNode(scene.IconDownload, chromeColor)
	v.download.SetPosition(l.Download.Origin())
	v.download.SetSize(l.Download.Size())

	v.fullscreen = scene.NewIconNode(scene.IconFullscreen, chromeColor)
	v.fullscreen.SetPosition(l.Fullscreen.Origin())
	v.fullscreen.SetSize(l.Fullscreen.Size())

	v.root.AddChild(v.backdrop)
	v.root.AddChild(v.surface)
	v.root.AddChild(v.poster)
	v.root.AddChild(v.centerPlay)
	v.root.AddChild(v.centerPause)
	v.root.AddChild(v.spinner)
	v.root.AddChild(v.track)
	v.root.AddChild(v.fill)
	v.root.AddChild(v.timeLabel)
	v.root.AddChild(v.bottomToggle)
	v.root.AddChild(v.download)
	v.root.AddChild(v.fullscreen)
	return v
}

// centerButton builds a circular scrim with a glyph on top. The tap
// handler goes on the button container itself.
func centerButton(bounds geometry.Rect, kind scene.IconKind) *scene.Container {
	button := scene.NewContainer(bounds.Size())
	button.SetPosition(bounds.Origin())
	button.SetTouchable(true)

	circle := scene.NewRectNode(scrimColor)
	circle.SetSize(bounds.Size())
	circle.CornerRadius = bounds.Width() / 2
	button.AddChild(circle)

	icon := scene.NewIconNode(kind, chromeColor)
	icon.SetSize(bounds.Size())
	button.AddChild(icon)
	return button
}

// applyPlacement sizes the drawing surface for the native video size and
// centers it in the container. The placement fixes the letterbox bands for
// the rest of the widget's life.
func (v *view) applyPlacement(video geometry.Size) {
	v.placement = geometry.ComputePlacement(v.layout.Container.Size(), video)
	v.surface.Configure(v.placement.Surface, v.placement.Scale)

	shown := v.surface.Size()
	box := v.layout.Container.Size()
	v.surface.SetPosition(geometry.Offset{
		X: (box.Width - shown.Width) / 2,
		Y: (box.Height - shown.Height) / 2,
	})
}

// showFrame copies a decoded frame onto the surface at the letterbox
// offset. Frames arriving before the placement is known are dropped.
func (v *view) showFrame(frame *image.RGBA) {
	if frame == nil {
		return
	}
	cv := v.surface.Canvas()
	if cv == nil {
		return
	}
	cv.DrawImageRect(frame, geometry.Rect{}, v.placement.DrawRect(), canvas.FilterQualityLow)
}

// setProgress sets the fill bar to the played fraction of the track.
func (v *view) setProgress(ratio float64) {
	ratio = geometry.Clamp01(ratio)
	v.fill.SetSize(geometry.Size{
		Width:  v.layout.Track.Width() * ratio,
		Height: v.layout.Track.Height(),
	})
}

// setClock updates the "position / duration" label.
func (v *view) setClock(position, duration time.Duration) {
	v.timeLabel.SetText(formatClock(position, duration))
}

// applyVisibility composes each control's presentation. Visibility follows
// the state machine AND the control's own configured sub-switch; the master
// switch rides a separate channel, forcing every bottom control to opacity
// zero and hit-testability off while leaving the visibility flags alone.
// The center buttons and the spinner ignore the master switch.
func (v *view) applyVisibility(status Status, master bool, cfg Config) {
	v.centerPlay.SetVisible(status == StatusEmpty || status == StatusPaused)
	v.centerPause.SetVisible(status == StatusPlaying)
	v.spinner.SetVisible(status == StatusLoading)

	bar := status != StatusEmpty
	v.bottomToggle.SetVisible(bar)
	v.track.SetVisible(bar && cfg.Progress.Visible)
	v.fill.SetVisible(bar && cfg.Progress.Visible)
	v.timeLabel.SetVisible(bar)
	v.download.SetVisible(bar && cfg.DownloadVisible)
	v.fullscreen.SetVisible(bar && cfg.FullscreenVisible)

	alpha := 0.0
	if master {
		alpha = 1
	}
	v.bottomToggle.SetOpacity(alpha)
	v.track.SetOpacity(alpha)
	v.fill.SetOpacity(alpha)
	v.timeLabel.SetOpacity(alpha)
	v.download.SetOpacity(alpha)
	v.fullscreen.SetOpacity(alpha)

	v.bottomToggle.SetTouchable(master && bar)
	v.track.SetTouchable(master && bar && cfg.Progress.Visible && cfg.Progress.Hittable)
	v.download.SetTouchable(master && bar && cfg.DownloadVisible)
	v.fullscreen.SetTouchable(master && bar && cfg.FullscreenVisible)

	if status == StatusPlaying {
		v.bottomToggle.Kind = scene.IconPause
	} else {
		v.bottomToggle.Kind = scene.IconPlay
	}
}
