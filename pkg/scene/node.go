// Package scene provides the retained node tree the player is built from.
//
// Nodes carry position, size, visibility, opacity, and an optional tap
// handler. A [Container] paints its children in insertion order (later
// children on top) and routes taps to the topmost visible handler under
// the point. Backend goroutines never touch nodes directly; they hand work
// to the frame loop with [Dispatch].
package scene

import (
	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// Node is an element of the retained scene tree.
//
// All node methods are called on the frame loop.
type Node interface {
	// Position returns the node's offset within its parent.
	Position() geometry.Offset

	// SetPosition moves the node within its parent.
	SetPosition(p geometry.Offset)

	// Size returns the node's extent.
	Size() geometry.Size

	// SetSize resizes the node.
	SetSize(s geometry.Size)

	// Bounds returns the node's rectangle in parent coordinates.
	Bounds() geometry.Rect

	// Visible reports whether the node is painted and hit-testable.
	Visible() bool

	// SetVisible shows or hides the node and everything under it.
	SetVisible(v bool)

	// Opacity returns the node's paint opacity.
	Opacity() float64

	// SetOpacity sets the paint opacity, clamped to [0, 1]. At zero the
	// node and everything under it is skipped; in between, the alpha of
	// every paint color underneath is scaled by it. Opacity never affects
	// hit-testing; pair it with SetTouchable to take a node out of tap
	// routing.
	SetOpacity(a float64)

	// Touchable reports whether the node accepts taps.
	Touchable() bool

	// SetTouchable enables or disables tap handling.
	SetTouchable(v bool)

	// OnTap returns the tap handler, or nil.
	OnTap() func(p geometry.Offset)

	// SetOnTap installs a tap handler. The handler receives the tap point
	// in the node's local coordinates.
	SetOnTap(handler func(p geometry.Offset))

	// Paint draws the node's content with the origin at its top-left.
	// The parent applies the node's position before calling.
	Paint(c canvas.Canvas)
}

// BaseNode implements the attribute surface of [Node]. Concrete nodes embed
// it and add a Paint method.
type BaseNode struct {
	position  geometry.Offset
	size      geometry.Size
	visible   bool
	opacity   float64
	touchable bool
	onTap     func(geometry.Offset)
}

// NewBaseNode returns a visible, fully opaque, non-touchable base.
func NewBaseNode() BaseNode {
	return BaseNode{visible: true, opacity: 1}
}

func (n *BaseNode) Position() geometry.Offset {
	return n.position
}

func (n *BaseNode) SetPosition(p geometry.Offset) {
	n.position = p
}

func (n *BaseNode) Size() geometry.Size {
	return n.size
}

func (n *BaseNode) SetSize(s geometry.Size) {
	n.size = s
}

func (n *BaseNode) Bounds() geometry.Rect {
	return geometry.RectFromLTWH(n.position.X, n.position.Y, n.size.Width, n.size.Height)
}

func (n *BaseNode) Visible() bool {
	return n.visible
}

func (n *BaseNode) SetVisible(v bool) {
	n.visible = v
}

func (n *BaseNode) Opacity() float64 {
	return n.opacity
}

func (n *BaseNode) SetOpacity(a float64) {
	n.opacity = geometry.Clamp01(a)
}

func (n *BaseNode) Touchable() bool {
	return n.touchable
}

func (n *BaseNode) SetTouchable(v bool) {
	n.touchable = v
}

func (n *BaseNode) OnTap() func(p geometry.Offset) {
	return n.onTap
}

func (n *BaseNode) SetOnTap(handler func(p geometry.Offset)) {
	n.onTap = handler
}

// Render paints a node onto the canvas at its position, honoring visibility
// and opacity. Partial opacity is composited into the alpha of every paint
// color under the node; nested partial opacities multiply.
func Render(n Node, c canvas.Canvas) {
	if n == nil || !n.Visible() {
		return
	}
	alpha := n.Opacity()
	if alpha <= 0 {
		return
	}
	if alpha < 1 {
		c = opacityCanvas{Canvas: c, alpha: alpha}
	}
	c.Save()
	pos := n.Position()
	c.Translate(pos.X, pos.Y)
	n.Paint(c)
	c.Restore()
}
