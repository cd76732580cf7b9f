package canvas

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-vidview/vidview/pkg/geometry"
)

// drawState is the saved transform and clip of a Software canvas.
type drawState struct {
	tx, ty float64
	sx, sy float64
	clip   image.Rectangle
}

// Software rasterizes drawing commands into an in-memory RGBA image.
//
// The transform supports translation and scaling. Fills and paths are
// antialiased; rectangle fills are pixel-aligned. Not safe for concurrent
// use; all drawing happens on the frame loop.
type Software struct {
	img   *image.RGBA
	state drawState
	stack []drawState
}

var _ Canvas = (*Software)(nil)

// NewSoftware creates a software canvas backed by a fresh RGBA image of the
// given pixel size.
func NewSoftware(width, height int) *Software {
	return NewSoftwareFor(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewSoftwareFor creates a software canvas that draws into img.
func NewSoftwareFor(img *image.RGBA) *Software {
	return &Software{
		img:   img,
		state: drawState{sx: 1, sy: 1, clip: img.Bounds()},
	}
}

// Image returns the backing image. The pixels reflect all drawing so far.
func (c *Software) Image() *image.RGBA {
	return c.img
}

// Save pushes the current transform and clip state.
func (c *Software) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the most recent transform and clip state.
func (c *Software) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// Translate moves the origin by the given offset.
func (c *Software) Translate(dx, dy float64) {
	c.state.tx += dx * c.state.sx
	c.state.ty += dy * c.state.sy
}

// Scale scales the coordinate system by the given factors.
func (c *Software) Scale(sx, sy float64) {
	c.state.sx *= sx
	c.state.sy *= sy
}

// ClipRect restricts future drawing to the given rectangle.
func (c *Software) ClipRect(rect geometry.Rect) {
	c.state.clip = c.state.clip.Intersect(devicePixels(c.mapRect(rect)))
}

// Clear fills the entire canvas with the given color, ignoring clip and
// transform.
func (c *Software) Clear(color Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, xdraw.Src)
}

// DrawRect draws a rectangle with the provided paint.
func (c *Software) DrawRect(rect geometry.Rect, paint Paint) {
	if paint.Style == PaintStyleStroke {
		c.strokeRect(rect, paint)
		return
	}
	c.fillDevice(devicePixels(c.mapRect(rect)), paint.Color)
}

// strokeRect draws the four edge bands of a rectangle outline, inside the
// rectangle bounds.
func (c *Software) strokeRect(rect geometry.Rect, paint Paint) {
	w := paint.strokeWidth()
	fill := FillPaint(paint.Color)
	c.DrawRect(geometry.RectFromLTWH(rect.Left, rect.Top, rect.Width(), w), fill)
	c.DrawRect(geometry.RectFromLTWH(rect.Left, rect.Bottom-w, rect.Width(), w), fill)
	c.DrawRect(geometry.RectFromLTWH(rect.Left, rect.Top+w, w, rect.Height()-2*w), fill)
	c.DrawRect(geometry.RectFromLTWH(rect.Right-w, rect.Top+w, w, rect.Height()-2*w), fill)
}

// DrawRRect draws a rounded rectangle with the provided paint.
func (c *Software) DrawRRect(rrect geometry.RRect, paint Paint) {
	if rrect.Radius.X <= 0 && rrect.Radius.Y <= 0 {
		c.DrawRect(rrect.Rect, paint)
		return
	}
	c.DrawPath(roundedRectPath(rrect), paint)
}

// DrawCircle draws a circle with the provided paint. Stroked circles are
// drawn as a ring centered on the radius.
func (c *Software) DrawCircle(center geometry.Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	if paint.Style == PaintStyleStroke {
		half := paint.strokeWidth() / 2
		p := circlePath(center, radius+half, false)
		appendCirclePath(p, center, math.Max(radius-half, 0), true)
		c.DrawPath(p, paint)
		return
	}
	c.DrawPath(circlePath(center, radius, false), paint)
}

// DrawLine draws a line segment with the provided paint.
func (c *Software) DrawLine(start, end geometry.Offset, paint Paint) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := paint.strokeWidth() / 2
	nx := -dy / length * half
	ny := dx / length * half

	p := NewPath()
	p.MoveTo(start.X+nx, start.Y+ny)
	p.LineTo(end.X+nx, end.Y+ny)
	p.LineTo(end.X-nx, end.Y-ny)
	p.LineTo(start.X-nx, start.Y-ny)
	p.Close()
	c.DrawPath(p, paint)
}

// DrawPath fills a path with the paint color using the nonzero winding rule.
func (c *Software) DrawPath(path *Path, paint Paint) {
	if path == nil || path.IsEmpty() || paint.Color.Alpha() == 0 {
		return
	}

	bounds := devicePixels(c.mapRect(pathBounds(path))).Intersect(c.state.clip)
	if bounds.Empty() {
		return
	}

	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.DrawOp = xdraw.Over
	ox := float64(bounds.Min.X)
	oy := float64(bounds.Min.Y)
	open := false

	at := func(i int, args []float64) (float32, float32) {
		x, y := c.mapPoint(args[i], args[i+1])
		return float32(x - ox), float32(y - oy)
	}
	for _, cmd := range path.Commands {
		switch cmd.Op {
		case PathOpMoveTo:
			if open {
				z.ClosePath()
			}
			x, y := at(0, cmd.Args)
			z.MoveTo(x, y)
			open = true
		case PathOpLineTo:
			x, y := at(0, cmd.Args)
			z.LineTo(x, y)
		case PathOpQuadTo:
			bx, by := at(0, cmd.Args)
			cx, cy := at(2, cmd.Args)
			z.QuadTo(bx, by, cx, cy)
		case PathOpCubicTo:
			bx, by := at(0, cmd.Args)
			cx, cy := at(2, cmd.Args)
			dx, dy := at(4, cmd.Args)
			z.CubeTo(bx, by, cx, cy, dx, dy)
		case PathOpClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(c.img, bounds, image.NewUniform(paint.Color.NRGBA()), image.Point{})
}

// DrawText draws a measured text layout with its top-left at position. The
// face is resolved at the effective device size so scaled text stays crisp.
func (c *Software) DrawText(layout *TextLayout, position geometry.Offset) {
	if layout == nil || layout.text == "" || layout.style.Color.Alpha() == 0 {
		return
	}
	face, err := faceForSize(layout.style.Size * c.state.sy)
	if err != nil {
		return
	}
	dst, ok := c.img.SubImage(c.state.clip).(*image.RGBA)
	if !ok || dst.Bounds().Empty() {
		return
	}
	x, y := c.mapPoint(position.X, position.Y)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(layout.style.Color.NRGBA()),
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToFixed(x),
			Y: floatToFixed(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(layout.text)
}

// DrawImage draws an image with its top-left corner at the given position.
func (c *Software) DrawImage(img image.Image, position geometry.Offset) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := geometry.RectFromLTWH(position.X, position.Y, float64(b.Dx()), float64(b.Dy()))
	c.DrawImageRect(img, geometry.Rect{}, dst, FilterQualityLow)
}

// DrawImageRect draws the src region of an image into dst with the given
// sampling quality.
func (c *Software) DrawImageRect(img image.Image, src, dst geometry.Rect, quality FilterQuality) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if src.IsEmpty() {
		src = geometry.Rect{
			Left: float64(b.Min.X), Top: float64(b.Min.Y),
			Right: float64(b.Max.X), Bottom: float64(b.Max.Y),
		}
	}
	sr := devicePixels(src)
	dr := devicePixels(c.mapRect(dst))
	if sr.Empty() || dr.Empty() {
		return
	}

	// Crop to the clip, slicing the source proportionally.
	if clipped := dr.Intersect(c.state.clip); clipped != dr {
		if clipped.Empty() {
			return
		}
		fx := float64(sr.Dx()) / float64(dr.Dx())
		fy := float64(sr.Dy()) / float64(dr.Dy())
		sr = image.Rect(
			sr.Min.X+roundPixel(float64(clipped.Min.X-dr.Min.X)*fx),
			sr.Min.Y+roundPixel(float64(clipped.Min.Y-dr.Min.Y)*fy),
			sr.Max.X-roundPixel(float64(dr.Max.X-clipped.Max.X)*fx),
			sr.Max.Y-roundPixel(float64(dr.Max.Y-clipped.Max.Y)*fy),
		)
		dr = clipped
		if sr.Empty() {
			return
		}
	}

	// Same-size blits skip the scaler; this is the hot path when a video
	// frame is copied into the surface at its native size.
	if dr.Dx() == sr.Dx() && dr.Dy() == sr.Dy() {
		xdraw.Draw(c.img, dr, img, sr.Min, xdraw.Over)
		return
	}
	scalerFor(quality).Scale(c.img, dr, img, sr, xdraw.Over, nil)
}

// Size returns the size of the canvas in pixels.
func (c *Software) Size() geometry.Size {
	b := c.img.Bounds()
	return geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *Software) mapPoint(x, y float64) (float64, float64) {
	return c.state.tx + x*c.state.sx, c.state.ty + y*c.state.sy
}

func (c *Software) mapRect(r geometry.Rect) geometry.Rect {
	l, t := c.mapPoint(r.Left, r.Top)
	rr, b := c.mapPoint(r.Right, r.Bottom)
	return geometry.Rect{Left: l, Top: t, Right: rr, Bottom: b}
}

// fillDevice fills a device-space rectangle, honoring the clip.
func (c *Software) fillDevice(r image.Rectangle, col Color) {
	r = r.Intersect(c.state.clip)
	if r.Empty() || col.Alpha() == 0 {
		return
	}
	xdraw.Draw(c.img, r, image.NewUniform(col.NRGBA()), image.Point{}, xdraw.Over)
}

func scalerFor(quality FilterQuality) xdraw.Interpolator {
	switch quality {
	case FilterQualityNone:
		return xdraw.NearestNeighbor
	case FilterQualityMedium:
		return xdraw.BiLinear
	case FilterQualityHigh:
		return xdraw.CatmullRom
	default:
		return xdraw.ApproxBiLinear
	}
}

func devicePixels(r geometry.Rect) image.Rectangle {
	return image.Rect(roundPixel(r.Left), roundPixel(r.Top), roundPixel(r.Right), roundPixel(r.Bottom))
}

func roundPixel(v float64) int {
	return int(math.Round(v))
}

// pathBounds returns the bounding box of all command points. Control points
// bound their curves, so this never under-estimates.
func pathBounds(p *Path) geometry.Rect {
	first := true
	var b geometry.Rect
	for _, cmd := range p.Commands {
		for i := 0; i+1 < len(cmd.Args); i += 2 {
			x, y := cmd.Args[i], cmd.Args[i+1]
			if first {
				b = geometry.Rect{Left: x, Top: y, Right: x, Bottom: y}
				first = false
				continue
			}
			b.Left = math.Min(b.Left, x)
			b.Top = math.Min(b.Top, y)
			b.Right = math.Max(b.Right, x)
			b.Bottom = math.Max(b.Bottom, y)
		}
	}
	return b
}

// roundedRectPath builds a rounded rectangle outline with quarter-circle
// corners approximated by quadratic curves.
func roundedRectPath(rr geometry.RRect) *Path {
	r := rr.Rect
	rad := math.Min(rr.Radius.X, math.Min(r.Width(), r.Height())/2)
	p := NewPath()
	p.MoveTo(r.Left+rad, r.Top)
	p.LineTo(r.Right-rad, r.Top)
	p.QuadTo(r.Right, r.Top, r.Right, r.Top+rad)
	p.LineTo(r.Right, r.Bottom-rad)
	p.QuadTo(r.Right, r.Bottom, r.Right-rad, r.Bottom)
	p.LineTo(r.Left+rad, r.Bottom)
	p.QuadTo(r.Left, r.Bottom, r.Left, r.Bottom-rad)
	p.LineTo(r.Left, r.Top+rad)
	p.QuadTo(r.Left, r.Top, r.Left+rad, r.Top)
	p.Close()
	return p
}

// circlePath builds a circle from four cubic curves.
func circlePath(center geometry.Offset, radius float64, reverse bool) *Path {
	p := NewPath()
	appendCirclePath(p, center, radius, reverse)
	return p
}

// appendCirclePath appends a circle subpath. A reversed subpath unwinds an
// enclosing one under the nonzero rule, cutting a hole.
func appendCirclePath(p *Path, center geometry.Offset, radius float64, reverse bool) {
	if radius <= 0 {
		return
	}
	const kappa = 0.5522847498
	cx, cy := center.X, center.Y
	r := radius
	k := r * kappa
	p.MoveTo(cx+r, cy)
	if reverse {
		p.CubicTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		p.CubicTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		p.CubicTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		p.CubicTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	} else {
		p.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		p.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		p.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		p.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	}
	p.Close()
}
