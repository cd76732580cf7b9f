package scene

import (
	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// TextNode draws a single line of text. Setting the text re-measures it and
// sizes the node to the layout bounds.
type TextNode struct {
	BaseNode

	style  canvas.TextStyle
	layout *canvas.TextLayout
}

// NewTextNode creates an empty text node with the given style.
func NewTextNode(style canvas.TextStyle) *TextNode {
	return &TextNode{BaseNode: NewBaseNode(), style: style}
}

// SetText replaces the displayed string, re-measuring when it changed.
func (n *TextNode) SetText(s string) {
	if n.layout != nil && n.layout.Text() == s {
		return
	}
	n.layout = canvas.LayoutText(s, n.style)
	n.SetSize(n.layout.Size())
}

// Text returns the displayed string.
func (n *TextNode) Text() string {
	if n.layout == nil {
		return ""
	}
	return n.layout.Text()
}

func (n *TextNode) Paint(c canvas.Canvas) {
	if n.layout == nil {
		return
	}
	c.DrawText(n.layout, geometry.Offset{})
}
