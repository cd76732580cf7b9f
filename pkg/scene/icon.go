package scene

import (
	"fmt"
	"math"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// IconKind selects the glyph an [IconNode] draws.
type IconKind int

const (
	IconPlay IconKind = iota
	IconPause
	IconDownload
	IconFullscreen
)

// String returns a human-readable representation of the icon kind.
func (k IconKind) String() string {
	switch k {
	case IconPlay:
		return "play"
	case IconPause:
		return "pause"
	case IconDownload:
		return "download"
	case IconFullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("IconKind(%d)", int(k))
	}
}

// IconNode draws a vector glyph scaled to its bounds.
type IconNode struct {
	BaseNode

	Kind  IconKind
	Color canvas.Color
}

// NewIconNode creates an icon node with the given glyph and color.
func NewIconNode(kind IconKind, color canvas.Color) *IconNode {
	return &IconNode{BaseNode: NewBaseNode(), Kind: kind, Color: color}
}

func (n *IconNode) Paint(c canvas.Canvas) {
	s := n.Size()
	if s.IsEmpty() {
		return
	}
	paint := canvas.FillPaint(n.Color)
	w, h := s.Width, s.Height

	switch n.Kind {
	case IconPlay:
		p := canvas.NewPath()
		p.MoveTo(0.30*w, 0.20*h)
		p.LineTo(0.30*w, 0.80*h)
		p.LineTo(0.84*w, 0.50*h)
		p.Close()
		c.DrawPath(p, paint)

	case IconPause:
		c.DrawRect(geometry.RectFromLTWH(0.28*w, 0.20*h, 0.14*w, 0.60*h), paint)
		c.DrawRect(geometry.RectFromLTWH(0.58*w, 0.20*h, 0.14*w, 0.60*h), paint)

	case IconDownload:
		c.DrawRect(geometry.RectFromLTWH(0.44*w, 0.12*h, 0.12*w, 0.40*h), paint)
		p := canvas.NewPath()
		p.MoveTo(0.25*w, 0.50*h)
		p.LineTo(0.75*w, 0.50*h)
		p.LineTo(0.50*w, 0.76*h)
		p.Close()
		c.DrawPath(p, paint)
		c.DrawRect(geometry.RectFromLTWH(0.20*w, 0.84*h, 0.60*w, 0.08*h), paint)

	case IconFullscreen:
		t := 0.10 * math.Min(w, h) // bracket thickness
		arm := 0.30
		// Top-left
		c.DrawRect(geometry.RectFromLTWH(0.15*w, 0.15*h, arm*w, t), paint)
		c.DrawRect(geometry.RectFromLTWH(0.15*w, 0.15*h, t, arm*h), paint)
		// Top-right
		c.DrawRect(geometry.RectFromLTWH(0.85*w-arm*w, 0.15*h, arm*w, t), paint)
		c.DrawRect(geometry.RectFromLTWH(0.85*w-t, 0.15*h, t, arm*h), paint)
		// Bottom-left
		c.DrawRect(geometry.RectFromLTWH(0.15*w, 0.85*h-t, arm*w, t), paint)
		c.DrawRect(geometry.RectFromLTWH(0.15*w, 0.85*h-arm*h, t, arm*h), paint)
		// Bottom-right
		c.DrawRect(geometry.RectFromLTWH(0.85*w-arm*w, 0.85*h-t, arm*w, t), paint)
		c.DrawRect(geometry.RectFromLTWH(0.85*w-t, 0.85*h-arm*h, t, arm*h), paint)
	}
}
