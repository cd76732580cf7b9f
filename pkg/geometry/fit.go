package geometry

import "fmt"

// FitMode controls how an image is scaled within a box while preserving its
// aspect ratio.
type FitMode int

const (
	// FitContain scales the image to fit entirely within the box,
	// leaving blank bands on one axis when the ratios differ.
	FitContain FitMode = iota
	// FitCover scales the image to fill the box completely,
	// cropping one axis when the ratios differ.
	FitCover
)

// String returns a human-readable representation of the fit mode.
func (f FitMode) String() string {
	switch f {
	case FitContain:
		return "contain"
	case FitCover:
		return "cover"
	default:
		return fmt.Sprintf("FitMode(%d)", int(f))
	}
}

// ParseFitMode maps the configuration strings "contain" and "cover" to a
// FitMode. Unknown values fall back to FitContain.
func ParseFitMode(s string) FitMode {
	if s == "cover" {
		return FitCover
	}
	return FitContain
}

// FitRects computes the source region of an image with the given intrinsic
// size and the destination region within box, for the given fit mode. The
// image is always centered. An empty intrinsic size yields two empty rects.
func FitRects(fit FitMode, intrinsic, box Size) (src, dst Rect) {
	if intrinsic.IsEmpty() || box.IsEmpty() {
		return Rect{}, Rect{}
	}
	fullSrc := RectFromSize(intrinsic)

	switch fit {
	case FitCover:
		scale := max(box.Width/intrinsic.Width, box.Height/intrinsic.Height)
		scaledW := intrinsic.Width * scale
		scaledH := intrinsic.Height * scale
		// Centered crop, converted back to source coordinates.
		srcX := (scaledW - box.Width) / 2 / scale
		srcY := (scaledH - box.Height) / 2 / scale
		srcW := box.Width / scale
		srcH := box.Height / scale
		return RectFromLTWH(srcX, srcY, srcW, srcH), RectFromSize(box)

	default: // FitContain
		scale := min(box.Width/intrinsic.Width, box.Height/intrinsic.Height)
		drawW := intrinsic.Width * scale
		drawH := intrinsic.Height * scale
		dx := (box.Width - drawW) / 2
		dy := (box.Height - drawH) / 2
		return fullSrc, RectFromLTWH(dx, dy, drawW, drawH)
	}
}

// DrawPlacement describes where video pixel data is copied within the
// drawing surface and how the surface is presented in the container.
//
// Rather than scaling the frame, the surface's logical size is expanded on
// one axis to match the container's aspect ratio and the frame is centered
// within it; the whole surface is then presented at Scale so its width
// matches the container width exactly.
type DrawPlacement struct {
	// Surface is the logical size of the drawing surface.
	Surface Size
	// Offset is the top-left corner at which the frame is copied,
	// in surface coordinates. At most one component is non-zero.
	Offset Offset
	// Video is the native frame size; the frame is copied unscaled.
	Video Size
	// Scale converts surface coordinates to container coordinates.
	Scale float64
}

// DrawRect returns the frame's destination rectangle in surface coordinates.
func (p DrawPlacement) DrawRect() Rect {
	return RectFromLTWH(p.Offset.X, p.Offset.Y, p.Video.Width, p.Video.Height)
}

// ComputePlacement derives the letterboxed draw placement for a video of the
// given native size inside the container.
//
// When either size is empty no scaling is applied: the surface matches the
// native frame and the frame is drawn at the origin. Otherwise exactly one
// axis of the surface is expanded: logical height when the video is wider
// than the container (top/bottom letterbox), logical width when it is
// narrower (left/right letterbox). Equal ratios expand nothing.
func ComputePlacement(container, video Size) DrawPlacement {
	p := DrawPlacement{Surface: video, Video: video, Scale: 1}
	if container.IsEmpty() || video.IsEmpty() {
		return p
	}

	videoRatio := video.AspectRatio()
	containerRatio := container.AspectRatio()

	if videoRatio > containerRatio {
		// Video is proportionally wider: grow the surface vertically and
		// center the frame between the top and bottom bands.
		p.Surface = Size{Width: video.Width, Height: video.Width / containerRatio}
		p.Offset = Offset{Y: (p.Surface.Height - video.Height) / 2}
	} else {
		// Video is proportionally narrower (or equal): grow the surface
		// horizontally and center the frame between the side bands. Equal
		// ratios leave the surface at the native size with a zero offset.
		p.Surface = Size{Width: video.Height * containerRatio, Height: video.Height}
		p.Offset = Offset{X: (p.Surface.Width - video.Width) / 2}
	}
	p.Scale = container.Width / p.Surface.Width
	return p
}
