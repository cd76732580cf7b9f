package canvas

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-vidview/vidview/pkg/geometry"
)

// defaultFontSize is used when no font size is specified.
const defaultFontSize = 14

// TextStyle describes how a run of text is drawn.
type TextStyle struct {
	Size  float64 // Font size in logical pixels; 0 uses the default
	Color Color
}

// TextLayout is a measured, single-line run of text ready for drawing.
//
// Layouts are created with [LayoutText] and are immutable afterwards.
type TextLayout struct {
	text   string
	style  TextStyle
	size   geometry.Size
	ascent float64
}

// LayoutText measures text with the given style. The returned layout's size
// covers the full ascent and descent of the face, so stacked layouts of the
// same style share a consistent line height.
func LayoutText(text string, style TextStyle) *TextLayout {
	if style.Size <= 0 {
		style.Size = defaultFontSize
	}
	l := &TextLayout{text: text, style: style}
	face, err := faceForSize(style.Size)
	if err != nil {
		return l
	}
	metrics := face.Metrics()
	l.size = geometry.Size{
		Width:  fixedToFloat(font.MeasureString(face, text)),
		Height: fixedToFloat(metrics.Ascent + metrics.Descent),
	}
	l.ascent = fixedToFloat(metrics.Ascent)
	return l
}

// Text returns the laid-out string.
func (l *TextLayout) Text() string {
	return l.text
}

// Style returns the style the layout was measured with.
func (l *TextLayout) Style() TextStyle {
	return l.style
}

// WithColor returns a copy of the layout that draws in a different color.
// The measured metrics carry over; color never affects them.
func (l *TextLayout) WithColor(c Color) *TextLayout {
	cp := *l
	cp.style.Color = c
	return &cp
}

// Size returns the measured bounds of the text.
func (l *TextLayout) Size() geometry.Size {
	return l.size
}

var (
	fontOnce   sync.Once
	fontSource *opentype.Font
	fontErr    error

	faceMu sync.Mutex
	faces  = map[float64]font.Face{}
)

// faceForSize returns a cached face for the bundled font at the given size.
func faceForSize(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fontSource, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	faces[size] = f
	return f, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
