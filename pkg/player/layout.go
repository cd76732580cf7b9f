package player

import "github.com/go-vidview/vidview/pkg/geometry"

// Pixel metrics of the overlay chrome. The bottom row hangs off the
// container's bottom edge; the center buttons and the spinner sit at the
// middle.
const (
	centerButtonSize = 64
	spinnerSize      = 48
	barIconSize      = 22
	barGap           = 10
	timeLabelWidth   = 96
	timeLabelHeight  = 16
	timeTextSize     = 12
)

// Layout holds the rectangle of every child node in container coordinates.
// It is derived once from the container size and the progress style; the
// widget never relayouts.
type Layout struct {
	Container    geometry.Rect
	CenterButton geometry.Rect
	Spinner      geometry.Rect
	BottomToggle geometry.Rect
	Track        geometry.Rect
	TimeLabel    geometry.Rect
	Download     geometry.Rect
	Fullscreen   geometry.Rect
}

// ComputeLayout places the overlay chrome inside a container of the given
// size. The bottom row reads, left to right: play/pause toggle, seek bar,
// time label, download, fullscreen. The bar absorbs whatever width remains
// and collapses to zero when the container is too narrow for it.
func ComputeLayout(size geometry.Size, style ProgressStyle) Layout {
	l := Layout{Container: geometry.RectFromSize(size)}

	center := l.Container.Center()
	l.CenterButton = centeredRect(center, centerButtonSize, centerButtonSize)
	l.Spinner = centeredRect(center, spinnerSize, spinnerSize)

	rowY := size.Height - style.BottomOffset
	l.BottomToggle = centeredRect(geometry.Offset{X: style.SideMargin + barIconSize/2, Y: rowY}, barIconSize, barIconSize)

	rightEdge := size.Width - style.SideMargin
	l.Fullscreen = centeredRect(geometry.Offset{X: rightEdge - barIconSize/2, Y: rowY}, barIconSize, barIconSize)
	l.Download = centeredRect(geometry.Offset{X: l.Fullscreen.Left - barGap - barIconSize/2, Y: rowY}, barIconSize, barIconSize)
	l.TimeLabel = centeredRect(geometry.Offset{X: l.Download.Left - barGap - timeLabelWidth/2, Y: rowY}, timeLabelWidth, timeLabelHeight)

	trackLeft := l.BottomToggle.Right + barGap
	trackRight := l.TimeLabel.Left - barGap
	if trackRight < trackLeft {
		trackRight = trackLeft
	}
	l.Track = geometry.Rect{
		Left:   trackLeft,
		Top:    rowY - style.Height/2,
		Right:  trackRight,
		Bottom: rowY + style.Height/2,
	}
	return l
}

func centeredRect(center geometry.Offset, width, height float64) geometry.Rect {
	return geometry.RectFromLTWH(center.X-width/2, center.Y-height/2, width, height)
}
