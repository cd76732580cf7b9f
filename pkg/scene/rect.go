package scene

import (
	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// RectNode fills its bounds with a solid color, optionally rounded.
type RectNode struct {
	BaseNode

	Color canvas.Color

	// CornerRadius rounds all four corners when positive.
	CornerRadius float64
}

// NewRectNode creates a rectangle node in the given color.
func NewRectNode(color canvas.Color) *RectNode {
	return &RectNode{BaseNode: NewBaseNode(), Color: color}
}

func (n *RectNode) Paint(c canvas.Canvas) {
	r := geometry.RectFromSize(n.Size())
	if n.CornerRadius > 0 {
		rr := geometry.RRectFromRectAndRadius(r, geometry.CircularRadius(n.CornerRadius))
		c.DrawRRect(rr, canvas.FillPaint(n.Color))
		return
	}
	c.DrawRect(r, canvas.FillPaint(n.Color))
}
