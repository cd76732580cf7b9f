package canvas

import (
	"image"

	"github.com/go-vidview/vidview/pkg/geometry"
)

// Op is a recorded drawing operation.
type Op interface {
	// Replay executes the operation on the given canvas.
	Replay(c Canvas)
}

// Recorder captures drawing commands as a list of operations.
//
// It backs paint-order assertions in tests and lets a recorded frame be
// replayed onto any other [Canvas].
type Recorder struct {
	size geometry.Size
	ops  []Op
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder creates a recorder reporting the given canvas size.
func NewRecorder(size geometry.Size) *Recorder {
	return &Recorder{size: size}
}

// Ops returns the operations recorded so far, in draw order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Reset discards all recorded operations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Replay executes the recorded operations onto another canvas.
func (r *Recorder) Replay(c Canvas) {
	for _, op := range r.ops {
		op.Replay(c)
	}
}

func (r *Recorder) Save() {
	r.ops = append(r.ops, OpSave{})
}

func (r *Recorder) Restore() {
	r.ops = append(r.ops, OpRestore{})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.ops = append(r.ops, OpTranslate{DX: dx, DY: dy})
}

func (r *Recorder) Scale(sx, sy float64) {
	r.ops = append(r.ops, OpScale{SX: sx, SY: sy})
}

func (r *Recorder) ClipRect(rect geometry.Rect) {
	r.ops = append(r.ops, OpClipRect{Rect: rect})
}

func (r *Recorder) Clear(color Color) {
	r.ops = append(r.ops, OpClear{Color: color})
}

func (r *Recorder) DrawRect(rect geometry.Rect, paint Paint) {
	r.ops = append(r.ops, OpRect{Rect: rect, Paint: paint})
}

func (r *Recorder) DrawRRect(rrect geometry.RRect, paint Paint) {
	r.ops = append(r.ops, OpRRect{RRect: rrect, Paint: paint})
}

func (r *Recorder) DrawCircle(center geometry.Offset, radius float64, paint Paint) {
	r.ops = append(r.ops, OpCircle{Center: center, Radius: radius, Paint: paint})
}

func (r *Recorder) DrawLine(start, end geometry.Offset, paint Paint) {
	r.ops = append(r.ops, OpLine{Start: start, End: end, Paint: paint})
}

func (r *Recorder) DrawPath(path *Path, paint Paint) {
	r.ops = append(r.ops, OpPath{Path: path, Paint: paint})
}

func (r *Recorder) DrawText(layout *TextLayout, position geometry.Offset) {
	r.ops = append(r.ops, OpText{Layout: layout, Position: position})
}

func (r *Recorder) DrawImage(img image.Image, position geometry.Offset) {
	r.ops = append(r.ops, OpImage{Image: img, Position: position})
}

func (r *Recorder) DrawImageRect(img image.Image, src, dst geometry.Rect, quality FilterQuality) {
	r.ops = append(r.ops, OpImageRect{Image: img, Src: src, Dst: dst, Quality: quality})
}

func (r *Recorder) Size() geometry.Size {
	return r.size
}

// OpSave records a Save call.
type OpSave struct{}

// OpRestore records a Restore call.
type OpRestore struct{}

// OpTranslate records a Translate call.
type OpTranslate struct{ DX, DY float64 }

// OpScale records a Scale call.
type OpScale struct{ SX, SY float64 }

// OpClipRect records a ClipRect call.
type OpClipRect struct{ Rect geometry.Rect }

// OpClear records a Clear call.
type OpClear struct{ Color Color }

// OpRect records a DrawRect call.
type OpRect struct {
	Rect  geometry.Rect
	Paint Paint
}

// OpRRect records a DrawRRect call.
type OpRRect struct {
	RRect geometry.RRect
	Paint Paint
}

// OpCircle records a DrawCircle call.
type OpCircle struct {
	Center geometry.Offset
	Radius float64
	Paint  Paint
}

// OpLine records a DrawLine call.
type OpLine struct {
	Start, End geometry.Offset
	Paint      Paint
}

// OpPath records a DrawPath call.
type OpPath struct {
	Path  *Path
	Paint Paint
}

// OpText records a DrawText call.
type OpText struct {
	Layout   *TextLayout
	Position geometry.Offset
}

// OpImage records a DrawImage call.
type OpImage struct {
	Image    image.Image
	Position geometry.Offset
}

// OpImageRect records a DrawImageRect call.
type OpImageRect struct {
	Image    image.Image
	Src, Dst geometry.Rect
	Quality  FilterQuality
}

func (o OpSave) Replay(c Canvas)      { c.Save() }
func (o OpRestore) Replay(c Canvas)   { c.Restore() }
func (o OpTranslate) Replay(c Canvas) { c.Translate(o.DX, o.DY) }
func (o OpScale) Replay(c Canvas)     { c.Scale(o.SX, o.SY) }
func (o OpClipRect) Replay(c Canvas)  { c.ClipRect(o.Rect) }
func (o OpClear) Replay(c Canvas)     { c.Clear(o.Color) }
func (o OpRect) Replay(c Canvas)      { c.DrawRect(o.Rect, o.Paint) }
func (o OpRRect) Replay(c Canvas)     { c.DrawRRect(o.RRect, o.Paint) }
func (o OpCircle) Replay(c Canvas)    { c.DrawCircle(o.Center, o.Radius, o.Paint) }
func (o OpLine) Replay(c Canvas)      { c.DrawLine(o.Start, o.End, o.Paint) }
func (o OpPath) Replay(c Canvas)      { c.DrawPath(o.Path, o.Paint) }
func (o OpText) Replay(c Canvas)      { c.DrawText(o.Layout, o.Position) }
func (o OpImage) Replay(c Canvas)     { c.DrawImage(o.Image, o.Position) }
func (o OpImageRect) Replay(c Canvas) { c.DrawImageRect(o.Image, o.Src, o.Dst, o.Quality) }
