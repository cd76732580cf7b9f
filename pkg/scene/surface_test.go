package scene

import (
	"testing"
	"time"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
)

// TestSurfaceNode_Configure verifies buffer allocation, on-screen sizing,
// and reallocation behavior.
func TestSurfaceNode_Configure(t *testing.T) {
	n := NewSurfaceNode()
	if n.Canvas() != nil {
		t.Fatal("expected no canvas before Configure")
	}

	n.Configure(geometry.Size{Width: 320, Height: 240}, 0.5)
	if n.Canvas() == nil {
		t.Fatal("expected a canvas after Configure")
	}
	if got := n.Size(); got.Width != 160 || got.Height != 120 {
		t.Errorf("expected on-screen size 160x120, got %+v", got)
	}
	if n.Scale() != 0.5 {
		t.Errorf("expected scale 0.5, got %v", n.Scale())
	}

	// Draw a pixel, then reconfigure with the same logical size: the
	// buffer must survive.
	n.Canvas().DrawRect(geometry.RectFromLTWH(0, 0, 1, 1), canvas.FillPaint(canvas.ColorWhite))
	n.Configure(geometry.Size{Width: 320, Height: 240}, 1)
	if got := n.Image().RGBAAt(0, 0); got.R != 0xFF {
		t.Error("expected pixels to survive a scale-only reconfigure")
	}
	if got := n.Size(); got.Width != 320 || got.Height != 240 {
		t.Errorf("expected on-screen size 320x240 at scale 1, got %+v", got)
	}

	// A new logical size reallocates and clears.
	n.Configure(geometry.Size{Width: 100, Height: 100}, 1)
	if got := n.Image().RGBAAt(0, 0); got.R != 0 {
		t.Error("expected fresh pixels after a logical resize")
	}
}

// TestSurfaceNode_PaintPresentsBuffer verifies the surface presents its
// pixels scaled to the node's on-screen size.
func TestSurfaceNode_PaintPresentsBuffer(t *testing.T) {
	n := NewSurfaceNode()
	n.Configure(geometry.Size{Width: 40, Height: 40}, 0.5)

	rec := canvas.NewRecorder(geometry.Size{Width: 20, Height: 20})
	Render(n, rec)

	var presented *canvas.OpImageRect
	for _, op := range rec.Ops() {
		if ir, ok := op.(canvas.OpImageRect); ok {
			presented = &ir
			break
		}
	}
	if presented == nil {
		t.Fatal("expected the surface to present its image")
	}
	if presented.Dst.Width() != 20 || presented.Dst.Height() != 20 {
		t.Errorf("expected the image presented at 20x20, got %+v", presented.Dst)
	}
}

// TestTextNode_SetTextMeasures verifies text nodes size themselves to the
// measured layout and skip redundant re-measures.
func TestTextNode_SetTextMeasures(t *testing.T) {
	n := NewTextNode(canvas.TextStyle{Size: 12, Color: canvas.ColorWhite})
	if n.Text() != "" {
		t.Errorf("expected empty text initially, got %q", n.Text())
	}

	n.SetText("00:07 / 01:30")
	if n.Size().Width <= 0 || n.Size().Height <= 0 {
		t.Errorf("expected positive measured size, got %+v", n.Size())
	}
	first := n.Size()

	n.SetText("00:07 / 01:30")
	if n.Size() != first {
		t.Error("expected unchanged size when the text did not change")
	}

	n.SetText("00:08 / 01:30")
	if n.Text() != "00:08 / 01:30" {
		t.Errorf("expected updated text, got %q", n.Text())
	}
}

// TestSpinnerNode_AdvanceWraps verifies the rotation stays bounded and the
// spinner paints a path.
func TestSpinnerNode_AdvanceWraps(t *testing.T) {
	n := NewSpinnerNode(canvas.ColorWhite)
	n.SetSize(geometry.Size{Width: 48, Height: 48})

	for i := 0; i < 100; i++ {
		n.Advance(250 * time.Millisecond)
	}
	if n.angle < 0 || n.angle >= 2*3.15 {
		t.Errorf("expected angle wrapped into one turn, got %v", n.angle)
	}

	rec := canvas.NewRecorder(geometry.Size{Width: 48, Height: 48})
	Render(n, rec)
	foundPath := false
	for _, op := range rec.Ops() {
		if _, ok := op.(canvas.OpPath); ok {
			foundPath = true
		}
	}
	if !foundPath {
		t.Error("expected the spinner to draw an arc path")
	}
}

// TestIconNode_PaintsGlyphs verifies each glyph emits draw operations.
func TestIconNode_PaintsGlyphs(t *testing.T) {
	for _, kind := range []IconKind{IconPlay, IconPause, IconDownload, IconFullscreen} {
		n := NewIconNode(kind, canvas.ColorWhite)
		n.SetSize(geometry.Size{Width: 24, Height: 24})

		rec := canvas.NewRecorder(geometry.Size{Width: 24, Height: 24})
		Render(n, rec)

		ops := 0
		for _, op := range rec.Ops() {
			switch op.(type) {
			case canvas.OpPath, canvas.OpRect:
				ops++
			}
		}
		if ops == 0 {
			t.Errorf("%v: expected draw operations", kind)
		}
	}
}
