package alienkitty

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// artDensity is the density procedural sprites are rasterized at. Canvases
// downsample them to the display density.
const artDensity = 3

var (
	fillImage    *ebiten.Image
	fillSubImage *ebiten.Image
)

// ensureFillImage returns the opaque white source used for path fills. The
// 1px border keeps linear filtering from sampling outside the white area.
func ensureFillImage() *ebiten.Image {
	if fillSubImage == nil {
		fillImage = ebiten.NewImage(3, 3)
		pix := make([]byte, 4*3*3)
		for i := range pix {
			pix[i] = 0xff
		}
		fillImage.WritePixels(pix)
		fillSubImage = fillImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return fillSubImage
}

// fillPolygon fills a convex polygon given in logical units, scaled by s.
func fillPolygon(dst *ebiten.Image, pts []Vec2, s float64, c Color) {
	if len(pts) < 3 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(pts[0].X*s), float32(pts[0].Y*s))
	for _, pt := range pts[1:] {
		p.LineTo(float32(pt.X*s), float32(pt.Y*s))
	}
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	a := float32(clamp(c.A, 0, 1))
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clamp(c.R, 0, 1)) * a
		vs[i].ColorG = float32(clamp(c.G, 0, 1)) * a
		vs[i].ColorB = float32(clamp(c.B, 0, 1)) * a
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	dst.DrawTriangles(vs, is, ensureFillImage(), op)
}

// ellipse returns n points on the ellipse centered at (cx, cy), optionally
// restricted to the arc between from and to radians.
func ellipse(cx, cy, rx, ry float64, from, to float64, n int) []Vec2 {
	pts := make([]Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		t := from + (to-from)*float64(i)/float64(n)
		pts = append(pts, Vec2{cx + rx*math.Cos(t), cy + ry*math.Sin(t)})
	}
	return pts
}

// DrawKittyBody rasterizes the default kitty: ears, head, and open eyes.
func DrawKittyBody(body, eyes Color) *ebiten.Image {
	s := float64(artDensity)
	img := ebiten.NewImage(KittyWidth*artDensity, KittyHeight*artDensity)

	fillPolygon(img, []Vec2{{8, 34}, {16, 2}, {40, 20}}, s, body)
	fillPolygon(img, []Vec2{{50, 20}, {76, 4}, {82, 34}}, s, body)
	fillPolygon(img, ellipse(45, 48, 38, 34, 0, 2*math.Pi, 64), s, body)

	fillPolygon(img, ellipse(44, 33, 12, 7, 0, 2*math.Pi, 40), s, eyes)
	fillPolygon(img, ellipse(67, 33, 9, 6, 0, 2*math.Pi, 32), s, eyes)

	hl := body
	hl.A *= 0.8
	vector.DrawFilledCircle(img, float32(40*s), float32(31*s), float32(2*s), hl.toRGBA(), true)
	vector.DrawFilledCircle(img, float32(64*s), float32(31*s), float32(1.5*s), hl.toRGBA(), true)

	// Nose.
	fillPolygon(img, []Vec2{{52, 52}, {58, 52}, {55, 56}}, s, eyes)
	return img
}

// DrawKittyEyelid rasterizes the default eyelid: a lid that is flat on top
// and rounded below, anchored at its top edge.
func DrawKittyEyelid(c Color) *ebiten.Image {
	s := float64(artDensity)
	img := ebiten.NewImage(24*artDensity, 14*artDensity)
	pts := []Vec2{{0, 0}, {24, 0}}
	pts = append(pts, ellipse(12, 0, 12, 14, 0, math.Pi, 32)...)
	fillPolygon(img, pts, s, c)
	return img
}

// DefaultKittySprites returns procedurally drawn sprites in the given colors.
// Both are drawn opaque; translucency is applied by the sprite showing them.
func DefaultKittySprites(body, eyes Color) KittySprites {
	body.A, eyes.A = 1, 1
	return KittySprites{
		Body:   DrawKittyBody(body, eyes),
		Eyelid: DrawKittyEyelid(body),
	}
}
