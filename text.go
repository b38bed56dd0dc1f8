package alienkitty

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("%w: parse font: %w", ErrAssetLoad, err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

var (
	boldSourceOnce sync.Once
	boldSource     *text.GoTextFaceSource
	boldSourceErr  error
)

// LoadBoldFont returns the bundled bold sans face at the given size.
func LoadBoldFont(size float64) (*TTFFont, error) {
	boldSourceOnce.Do(func() {
		boldSource, boldSourceErr = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	})
	if boldSourceErr != nil {
		return nil, fmt.Errorf("%w: bundled bold font: %w", ErrAssetLoad, boldSourceErr)
	}
	face := &text.GoTextFace{Source: boldSource, Size: size}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: boldSource,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in logical pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// TextBlock holds text content, formatting, and a cached rendering.
type TextBlock struct {
	Content string
	Font    *TTFFont
	Color   Color

	// Rendering cache
	image         *ebiten.Image
	renderedText  string
	renderedFont  *TTFFont
	renderedColor Color
}

// NewTextBlock creates a text block.
func NewTextBlock(content string, font *TTFFont, c Color) *TextBlock {
	return &TextBlock{Content: content, Font: font, Color: c}
}

// Measure returns the block's size in logical pixels.
func (tb *TextBlock) Measure() (w, h float64) {
	if tb.Font == nil || tb.Content == "" {
		return 0, 0
	}
	return tb.Font.MeasureString(tb.Content)
}

// Image returns the rendered text, re-rendering only when content, font, or
// color changed. The scale argument is the device pixel ratio; the image is
// rasterized at that density. Returns nil for empty blocks.
func (tb *TextBlock) Image(scale float64) *ebiten.Image {
	w, h := tb.Measure()
	if w == 0 || h == 0 {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	pw, ph := atLeastOne(w*scale)+1, atLeastOne(h*scale)+1

	if tb.image != nil && tb.renderedText == tb.Content && tb.renderedFont == tb.Font &&
		tb.renderedColor == tb.Color {
		b := tb.image.Bounds()
		if b.Dx() == pw && b.Dy() == ph {
			return tb.image
		}
	}

	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != pw || b.Dy() != ph {
			tb.image.Deallocate()
			tb.image = nil
		} else {
			tb.image.Clear()
		}
	}
	if tb.image == nil {
		tb.image = ebiten.NewImage(pw, ph)
	}

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.ColorScale.Scale(
		float32(tb.Color.R*tb.Color.A),
		float32(tb.Color.G*tb.Color.A),
		float32(tb.Color.B*tb.Color.A),
		float32(tb.Color.A),
	)
	op.LineSpacing = tb.Font.lh
	text.Draw(tb.image, tb.Content, tb.Font.face, op)

	tb.renderedText = tb.Content
	tb.renderedFont = tb.Font
	tb.renderedColor = tb.Color
	return tb.image
}

// Dispose releases the cached rendering.
func (tb *TextBlock) Dispose() {
	if tb.image != nil {
		tb.image.Deallocate()
		tb.image = nil
	}
}
