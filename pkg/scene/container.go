package scene

import (
	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// Container groups child nodes. Children paint in insertion order, so later
// children appear on top, and taps route to the topmost handler first.
type Container struct {
	BaseNode

	// ClipChildren restricts painting to the container's bounds.
	ClipChildren bool

	children []Node
}

// NewContainer creates an empty container with the given size.
func NewContainer(size geometry.Size) *Container {
	c := &Container{BaseNode: NewBaseNode()}
	c.SetSize(size)
	return c
}

// AddChild appends a node above all current children.
func (c *Container) AddChild(n Node) {
	if n == nil {
		return
	}
	c.children = append(c.children, n)
}

// RemoveChild detaches a node. Nodes not in the container are ignored.
func (c *Container) RemoveChild(n Node) {
	for i, child := range c.children {
		if child == n {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// RemoveAll detaches every child.
func (c *Container) RemoveAll() {
	c.children = nil
}

// Children returns the child list in paint order. The slice is shared;
// callers must not mutate it.
func (c *Container) Children() []Node {
	return c.children
}

// Paint draws all visible children in order.
func (c *Container) Paint(cv canvas.Canvas) {
	if c.ClipChildren {
		cv.Save()
		defer cv.Restore()
		cv.ClipRect(geometry.RectFromSize(c.Size()))
	}
	for _, child := range c.children {
		Render(child, cv)
	}
}

// DispatchTap routes a tap at p, in the container's local coordinates, to
// the topmost visible node under the point that has a tap handler. It
// returns true once a handler consumed the tap; nodes below it never see
// the event. When no child consumes it, the container's own handler runs.
func (c *Container) DispatchTap(p geometry.Offset) bool {
	for i := len(c.children) - 1; i >= 0; i-- {
		child := c.children[i]
		if !child.Visible() || !child.Bounds().Contains(p) {
			continue
		}
		local := p.Sub(child.Position())
		if inner, ok := child.(*Container); ok {
			if inner.DispatchTap(local) {
				return true
			}
			continue
		}
		if child.Touchable() {
			if handler := child.OnTap(); handler != nil {
				handler(local)
				return true
			}
		}
	}
	if c.Touchable() {
		if handler := c.OnTap(); handler != nil {
			handler(p)
			return true
		}
	}
	return false
}
