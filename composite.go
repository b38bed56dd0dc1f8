package alienkitty

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Defaults for CompositeOptions.
const (
	DefaultUVStrength     = 0.05
	DefaultChromaStrength = 0.025
	DefaultFadeInMs       = 1000
)

// CompositeOptions configures the warp and chromatic shift.
type CompositeOptions struct {
	// UVStrength scales the flow displacement of the sample position.
	UVStrength float64
	// ChromaStrength scales the red/blue channel separation by flow speed.
	ChromaStrength float64
	// Sign selects push (uv - flow) or pull (uv + flow) displacement.
	Sign UVSign
	// Background clears the scene target before the scene pass.
	Background Color
}

// DefaultCompositeOptions returns the stock composite settings.
func DefaultCompositeOptions() CompositeOptions {
	return CompositeOptions{
		UVStrength:     DefaultUVStrength,
		ChromaStrength: DefaultChromaStrength,
		Sign:           UVPush,
		Background:     Color{0, 0, 0, 1},
	}
}

// Compositor renders the scene into an owned offscreen target, then draws it
// to the screen through the flow warp and chromatic shift.
type Compositor struct {
	opts   CompositeOptions
	target renderTarget

	// Alpha mixes the final image with the background color, 0 being pure
	// background. Used for the startup fade-in.
	Alpha float64

	uniforms   map[string]any
	background [4]float32
	shaderOp ebiten.DrawRectShaderOptions
	copyOp   ebiten.DrawImageOptions
}

// NewCompositor creates a compositor with a 1x1 target.
func NewCompositor(opts CompositeOptions) *Compositor {
	if opts.Sign == "" {
		opts.Sign = UVPush
	}
	c := &Compositor{
		opts:     opts,
		Alpha:    1,
		uniforms: make(map[string]any, 6),
	}
	bg := opts.Background.toRGBA()
	c.background = [4]float32{float32(bg.R) / 255, float32(bg.G) / 255, float32(bg.B) / 255, float32(bg.A) / 255}
	c.shaderOp.Blend = ebiten.BlendCopy
	c.target.resize(1, 1)
	return c
}

// Resize reallocates the offscreen target at w×h device pixels.
func (c *Compositor) Resize(w, h int) {
	c.target.resize(w, h)
}

// Size returns the offscreen target size.
func (c *Compositor) Size() (int, int) {
	return c.target.size()
}

// Target returns the offscreen scene image.
func (c *Compositor) Target() *ebiten.Image {
	return c.target.image
}

// Render draws scene through cam into the offscreen target, then composites
// it into screen using flow. A flow texture whose size differs from the
// target is ignored and the scene is copied unwarped.
func (c *Compositor) Render(screen *ebiten.Image, scene *Scene, cam *Camera, flow *ebiten.Image) {
	if c.target.image == nil {
		return
	}
	c.RenderScene(scene, cam)
	c.Composite(screen, flow)
}

// RenderScene runs the first pass: clear to the background, then draw the
// scene graph.
func (c *Compositor) RenderScene(scene *Scene, cam *Camera) {
	if c.target.image == nil {
		return
	}
	c.target.image.Fill(c.opts.Background.toRGBA())
	if scene != nil {
		scene.Draw(c.target.image, cam)
	}
}

// Composite runs the second pass: a full-screen overwrite of screen. While
// Alpha is below 1 the result is mixed toward the background color.
func (c *Compositor) Composite(screen *ebiten.Image, flow *ebiten.Image) {
	src := c.target.image
	if src == nil {
		return
	}
	w, h := c.target.size()
	alpha := float32(clamp(c.Alpha, 0, 1))

	if flow == nil || flow.Bounds().Dx() != w || flow.Bounds().Dy() != h {
		c.copyOp.ColorScale.Reset()
		c.copyOp.Blend = ebiten.BlendCopy
		if alpha < 1 {
			screen.Fill(c.opts.Background.toRGBA())
			c.copyOp.ColorScale.Scale(alpha, alpha, alpha, alpha)
			c.copyOp.Blend = ebiten.BlendSourceOver
		}
		screen.DrawImage(src, &c.copyOp)
		return
	}

	sign := float32(-1)
	if c.opts.Sign == UVPull {
		sign = 1
	}
	c.uniforms["UVStrength"] = float32(c.opts.UVStrength)
	c.uniforms["ChromaStrength"] = float32(c.opts.ChromaStrength)
	c.uniforms["Sign"] = sign
	c.uniforms["Center"] = float32(flowCenter)
	c.uniforms["DeadZone"] = float32(flowLSB)
	c.uniforms["Fade"] = alpha
	c.uniforms["Background"] = c.background[:]

	c.shaderOp.Images[0] = src
	c.shaderOp.Images[1] = flow
	c.shaderOp.Uniforms = c.uniforms
	screen.DrawRectShader(w, h, ensureCompositeShader(), &c.shaderOp)
	c.shaderOp.Images[0] = nil
	c.shaderOp.Images[1] = nil
}

// Dispose frees the offscreen target.
func (c *Compositor) Dispose() {
	c.target.release()
}
