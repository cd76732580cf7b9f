package scene

import (
	"math"
	"time"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// spinnerTurnsPerSecond is the rotation speed of the loading arc.
const spinnerTurnsPerSecond = 0.9

// SpinnerNode draws an indeterminate loading arc. The frame loop advances
// the rotation with [SpinnerNode.Advance] while the node is visible.
type SpinnerNode struct {
	BaseNode

	Color canvas.Color

	// Thickness is the ring thickness in pixels; 0 uses a tenth of the
	// node's smaller dimension.
	Thickness float64

	angle float64
}

// NewSpinnerNode creates a spinner in the given color.
func NewSpinnerNode(color canvas.Color) *SpinnerNode {
	return &SpinnerNode{BaseNode: NewBaseNode(), Color: color}
}

// Advance rotates the arc by the elapsed frame time.
func (n *SpinnerNode) Advance(elapsed time.Duration) {
	n.angle = math.Mod(n.angle+elapsed.Seconds()*spinnerTurnsPerSecond*2*math.Pi, 2*math.Pi)
}

func (n *SpinnerNode) Paint(c canvas.Canvas) {
	s := n.Size()
	if s.IsEmpty() {
		return
	}
	outer := math.Min(s.Width, s.Height) / 2
	thickness := n.Thickness
	if thickness <= 0 {
		thickness = outer / 5
	}
	inner := math.Max(outer-thickness, 0)
	center := geometry.Offset{X: s.Width / 2, Y: s.Height / 2}

	// Three-quarter arc starting at the current rotation.
	p := arcRingPath(center, outer, inner, n.angle, 1.5*math.Pi)
	c.DrawPath(p, canvas.FillPaint(n.Color))
}

// arcRingPath builds a closed ring sector: along the outer radius from start
// through sweep radians, then back along the inner radius.
func arcRingPath(center geometry.Offset, outer, inner, start, sweep float64) *canvas.Path {
	segments := int(math.Ceil(sweep / (math.Pi / 24)))
	if segments < 1 {
		segments = 1
	}
	p := canvas.NewPath()
	for i := 0; i <= segments; i++ {
		a := start + sweep*float64(i)/float64(segments)
		x := center.X + math.Cos(a)*outer
		y := center.Y + math.Sin(a)*outer
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	for i := segments; i >= 0; i-- {
		a := start + sweep*float64(i)/float64(segments)
		p.LineTo(center.X+math.Cos(a)*inner, center.Y+math.Sin(a)*inner)
	}
	p.Close()
	return p
}
