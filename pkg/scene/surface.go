package scene

import (
	"image"
	"math"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// SurfaceNode is the pixel surface video frames are painted into.
//
// The surface has a logical pixel size, which frames are drawn against, and
// a visual scale; on screen the node occupies logical size times scale.
// Letterboxing works by making the logical surface taller or wider than the
// frame and centering the frame within it.
type SurfaceNode struct {
	BaseNode

	logical geometry.Size
	scale   float64
	buf     *canvas.Software
}

// NewSurfaceNode creates an unconfigured surface.
func NewSurfaceNode() *SurfaceNode {
	return &SurfaceNode{BaseNode: NewBaseNode(), scale: 1}
}

// Configure sets the logical surface size and visual scale. The backing
// pixels are reallocated when the logical size changes, which clears them.
// The node's on-screen size becomes logical times scale.
func (n *SurfaceNode) Configure(logical geometry.Size, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	n.scale = scale
	if logical != n.logical {
		n.logical = logical
		n.buf = nil
		w := int(math.Round(logical.Width))
		h := int(math.Round(logical.Height))
		if w > 0 && h > 0 {
			n.buf = canvas.NewSoftware(w, h)
		}
	}
	n.SetSize(geometry.Size{Width: logical.Width * scale, Height: logical.Height * scale})
}

// Logical returns the logical pixel size of the surface.
func (n *SurfaceNode) Logical() geometry.Size {
	return n.logical
}

// Scale returns the visual scale applied when presenting the surface.
func (n *SurfaceNode) Scale() float64 {
	return n.scale
}

// Canvas returns the draw target for the surface's logical pixels, or nil
// before Configure allocates one.
func (n *SurfaceNode) Canvas() canvas.Canvas {
	if n.buf == nil {
		return nil
	}
	return n.buf
}

// Image returns the surface pixels, or nil before Configure allocates them.
func (n *SurfaceNode) Image() *image.RGBA {
	if n.buf == nil {
		return nil
	}
	return n.buf.Image()
}

func (n *SurfaceNode) Paint(c canvas.Canvas) {
	if n.buf == nil {
		return
	}
	c.DrawImageRect(n.buf.Image(), geometry.Rect{}, geometry.RectFromSize(n.Size()), canvas.FilterQualityLow)
}
