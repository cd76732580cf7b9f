package scene

import (
	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// opacityCanvas scales the alpha of every paint color by a fixed factor
// before delegating to the wrapped canvas. [Render] installs one per node
// with partial opacity; nesting wraps again, so the factors multiply down
// the tree. Image blits pass through unscaled.
type opacityCanvas struct {
	canvas.Canvas
	alpha float64
}

func (o opacityCanvas) scale(p canvas.Paint) canvas.Paint {
	p.Color = p.Color.ScaleAlpha(o.alpha)
	return p
}

func (o opacityCanvas) DrawRect(rect geometry.Rect, paint canvas.Paint) {
	o.Canvas.DrawRect(rect, o.scale(paint))
}

func (o opacityCanvas) DrawRRect(rrect geometry.RRect, paint canvas.Paint) {
	o.Canvas.DrawRRect(rrect, o.scale(paint))
}

func (o opacityCanvas) DrawCircle(center geometry.Offset, radius float64, paint canvas.Paint) {
	o.Canvas.DrawCircle(center, radius, o.scale(paint))
}

func (o opacityCanvas) DrawLine(start, end geometry.Offset, paint canvas.Paint) {
	o.Canvas.DrawLine(start, end, o.scale(paint))
}

func (o opacityCanvas) DrawPath(path *canvas.Path, paint canvas.Paint) {
	o.Canvas.DrawPath(path, o.scale(paint))
}

func (o opacityCanvas) DrawText(layout *canvas.TextLayout, position geometry.Offset) {
	if layout == nil {
		return
	}
	faded := layout.WithColor(layout.Style().Color.ScaleAlpha(o.alpha))
	o.Canvas.DrawText(faded, position)
}
