package alienkitty

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	// Transform maps image pixels to world units.
	Transform [6]float64
	Color     Color
	BlendMode BlendMode
	image     *ebiten.Image
}

// whitePixel is a shared 1x1 white image used to draw solid sprites.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// traverse walks the node tree depth-first in child order, updating
// transforms and emitting commands for visible renderable nodes.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, density float64) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			s.emitSprite(n)
		case NodeTypeText:
			s.emitText(n, density)
		}
	}

	for _, child := range n.children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute, density)
	}
}

func (s *Scene) emitSprite(n *Node) {
	img := n.customImage
	w, h := nodeDimensions(n)
	if img == nil {
		if w <= 0 || h <= 0 {
			return
		}
		img = ensureWhitePixel()
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		w, h = iw, ih
	}
	scale := [6]float64{w / iw, 0, 0, h / ih, 0, 0}
	s.commands = append(s.commands, RenderCommand{
		Transform: multiplyAffine(n.worldTransform, scale),
		Color:     Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha},
		BlendMode: n.BlendMode,
		image:     img,
	})
}

func (s *Scene) emitText(n *Node, density float64) {
	if n.Text == nil {
		return
	}
	img := n.Text.Image(density)
	if img == nil {
		return
	}
	inv := 1 / density
	scale := [6]float64{inv, 0, 0, inv, 0, 0}
	s.commands = append(s.commands, RenderCommand{
		Transform: multiplyAffine(n.worldTransform, scale),
		Color:     Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha},
		BlendMode: n.BlendMode,
		image:     img,
	})
}

// submit draws the emitted commands in order through the view matrix.
func (s *Scene) submit(target *ebiten.Image, view [6]float64) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		m := multiplyAffine(view, cmd.Transform)
		op.GeoM.Reset()
		op.GeoM.SetElement(0, 0, m[0])
		op.GeoM.SetElement(1, 0, m[1])
		op.GeoM.SetElement(0, 1, m[2])
		op.GeoM.SetElement(1, 1, m[3])
		op.GeoM.SetElement(0, 2, m[4])
		op.GeoM.SetElement(1, 2, m[5])

		a := float32(cmd.Color.A)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
		op.Blend = cmd.BlendMode.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		target.DrawImage(cmd.image, &op)
	}
}
