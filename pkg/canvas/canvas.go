// Package canvas provides the 2D drawing surface the player paints into.
//
// The [Canvas] interface records or renders drawing commands. [Software]
// rasterizes them into an in-memory RGBA image, which is how video frames
// and controls reach the screen; [Recorder] captures them for inspection.
package canvas

import (
	"image"

	"github.com/go-vidview/vidview/pkg/geometry"
)

// FilterQuality controls image sampling quality during scaling.
type FilterQuality int

const (
	FilterQualityNone   FilterQuality = iota // Nearest neighbor (pixelated)
	FilterQualityLow                         // Approximate bilinear
	FilterQualityMedium                      // Bilinear
	FilterQualityHigh                        // Bicubic (Catmull-Rom)
)

// Canvas records or renders drawing commands.
//
// The coordinate system supports translation and uniform or per-axis
// scaling. Rotation is not part of the surface model.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Scale scales the coordinate system by the given factors.
	Scale(sx, sy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect geometry.Rect)

	// Clear fills the entire canvas with the given color, ignoring
	// the current clip and transform.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect geometry.Rect, paint Paint)

	// DrawRRect draws a rounded rectangle with the provided paint.
	DrawRRect(rrect geometry.RRect, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center geometry.Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end geometry.Offset, paint Paint)

	// DrawPath fills a path with the provided paint color using the
	// nonzero winding rule.
	DrawPath(path *Path, paint Paint)

	// DrawText draws a measured text layout with its top-left corner
	// at the given position.
	DrawText(layout *TextLayout, position geometry.Offset)

	// DrawImage draws an image with its top-left corner at the given position.
	DrawImage(img image.Image, position geometry.Offset)

	// DrawImageRect draws the src region of an image into dst with the
	// given sampling quality. A zero src selects the entire image.
	DrawImageRect(img image.Image, src, dst geometry.Rect, quality FilterQuality)

	// Size returns the size of the canvas in pixels.
	Size() geometry.Size
}
