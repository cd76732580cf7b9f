package scene

import (
	"image"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// ImageNode draws an image fitted into its bounds while preserving the
// image's aspect ratio.
type ImageNode struct {
	BaseNode

	Fit     geometry.FitMode
	Quality canvas.FilterQuality

	img image.Image
}

// NewImageNode creates an empty image node with the given fit mode.
func NewImageNode(fit geometry.FitMode) *ImageNode {
	return &ImageNode{
		BaseNode: NewBaseNode(),
		Fit:      fit,
		Quality:  canvas.FilterQualityLow,
	}
}

// SetImage replaces the displayed image. Nil clears the node.
func (n *ImageNode) SetImage(img image.Image) {
	n.img = img
}

// Image returns the displayed image, or nil.
func (n *ImageNode) Image() image.Image {
	return n.img
}

func (n *ImageNode) Paint(c canvas.Canvas) {
	if n.img == nil {
		return
	}
	b := n.img.Bounds()
	intrinsic := geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	src, dst := geometry.FitRects(n.Fit, intrinsic, n.Size())
	if src.IsEmpty() || dst.IsEmpty() {
		return
	}
	c.DrawImageRect(n.img, src, dst, n.Quality)
}
