package alienkitty

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Kitty dimensions in logical pixels.
const (
	KittyWidth  = 90
	KittyHeight = 86

	// kittyLift raises the kitty above the vertical center.
	kittyLift = 65
	// labelGap separates the kitty from its label.
	labelGap = 10
	// LabelText is the caption drawn under the kitty.
	LabelText = "EST. 2020"
	// LabelSize is the caption font size in logical pixels.
	LabelSize = 10.5
)

// Blink timings in seconds.
const (
	blinkMaxWait   = 10.0
	blinkClose     = 0.12
	blinkOpen      = 0.18
	blinkSlowClose = 0.18
	blinkSlowOpen  = 0.24
)

// canvasObject is an image placed on a KittyCanvas. Size and position are in
// logical pixels; the pivot is an offset from the top-left.
type canvasObject struct {
	image          *ebiten.Image
	width, height  float64
	x, y           float64
	pX, pY         float64
	rotation       float64 // degrees
	scaleX, scaleY float64
	opacity        float64
}

// BlinkState is the phase of a Blinker.
type BlinkState uint8

const (
	BlinkIdle BlinkState = iota
	BlinkClosing
	BlinkOpening
)

func (s BlinkState) String() string {
	switch s {
	case BlinkClosing:
		return "closing"
	case BlinkOpening:
		return "opening"
	default:
		return "idle"
	}
}

// Blinker drives the eyelid animation: idle for a random wait, then one of
// two blink variants, then idle again.
type Blinker struct {
	eyelid1, eyelid2 *canvasObject

	rng     *rand.Rand
	state   BlinkState
	wait    float64
	variant int
	tracks  [2]*tweenTrack
	running bool
}

func newBlinker(eyelid1, eyelid2 *canvasObject, rng *rand.Rand) *Blinker {
	return &Blinker{eyelid1: eyelid1, eyelid2: eyelid2, rng: rng}
}

// Start begins the idle/blink cycle.
func (b *Blinker) Start() {
	if b.running {
		return
	}
	b.running = true
	b.idle()
}

// Stop halts the cycle, leaving the eyelids where they are.
func (b *Blinker) Stop() {
	b.running = false
	b.tracks = [2]*tweenTrack{}
	b.state = BlinkIdle
}

// State returns the current phase.
func (b *Blinker) State() BlinkState { return b.state }

// Variant returns the blink variant in progress or last played (0 or 1).
func (b *Blinker) Variant() int { return b.variant }

// Wait returns the idle time left before the next blink, in seconds.
func (b *Blinker) Wait() float64 { return b.wait }

func (b *Blinker) idle() {
	b.state = BlinkIdle
	b.tracks = [2]*tweenTrack{}
	b.wait = float64(b.rng.IntN(int(blinkMaxWait*1000)+1)) / 1000
}

// Blink starts the given variant immediately.
func (b *Blinker) Blink(variant int) {
	b.variant = variant & 1
	close2, open2 := float32(blinkClose), float32(blinkOpen)
	if b.variant == 1 {
		close2, open2 = blinkSlowClose, blinkSlowOpen
	}
	e1, e2 := b.eyelid1, b.eyelid2
	b.tracks[0] = newTweenTrack(ease.OutCubic,
		tweenStep{fields: []*float64{&e1.scaleY}, to: []float64{1.5}, duration: blinkClose},
		tweenStep{fields: []*float64{&e1.scaleY}, to: []float64{0.01}, duration: blinkOpen},
	)
	b.tracks[1] = newTweenTrack(ease.OutCubic,
		tweenStep{fields: []*float64{&e2.scaleX, &e2.scaleY}, to: []float64{1.3, 1.3}, duration: close2},
		tweenStep{fields: []*float64{&e2.scaleX, &e2.scaleY}, to: []float64{1, 0.01}, duration: open2},
	)
	b.state = BlinkClosing
}

// Update advances the cycle by dt seconds. It reports whether the eyelids
// moved and need redrawing.
func (b *Blinker) Update(dt float64) bool {
	if !b.running {
		return false
	}
	if b.state == BlinkIdle {
		b.wait -= dt
		if b.wait > 0 {
			return false
		}
		b.Blink(b.rng.IntN(2))
		dt = 0
	}

	opening := true
	done := true
	for _, t := range b.tracks {
		t.update(float32(dt))
		if t.step() < 1 {
			opening = false
		}
		if !t.done() {
			done = false
		}
	}
	switch {
	case done:
		b.idle()
	case opening:
		b.state = BlinkOpening
	}
	return true
}

// KittySprites are the source images for the kitty canvas. Each image may be
// rasterized at any density; it is scaled to its logical size when drawn.
type KittySprites struct {
	Body   *ebiten.Image
	Eyelid *ebiten.Image
}

// KittyCanvas composes the body and two eyelids into a texture, redrawing
// only while the eyelids move.
type KittyCanvas struct {
	rt      *RenderTexture
	width   float64
	height  float64
	density float64

	body, eyelid1, eyelid2 canvasObject

	blinker     *Blinker
	needsUpdate bool
}

// NewKittyCanvas creates the canvas at 1x density.
func NewKittyCanvas(sprites KittySprites, rng *rand.Rand) *KittyCanvas {
	c := &KittyCanvas{
		width:   KittyWidth,
		height:  KittyHeight,
		density: 1,
	}
	c.body = canvasObject{image: sprites.Body, width: KittyWidth, height: KittyHeight, scaleX: 1, scaleY: 1, opacity: 1}
	c.eyelid1 = canvasObject{image: sprites.Eyelid, width: 24, height: 14, x: 35, y: 25, pX: 12, scaleX: 1.5, scaleY: 0.01, opacity: 1}
	c.eyelid2 = canvasObject{image: sprites.Eyelid, width: 24, height: 14, x: 53, y: 26, scaleX: 1, scaleY: 0.01, opacity: 1}
	c.blinker = newBlinker(&c.eyelid1, &c.eyelid2, rng)
	c.rt = NewRenderTexture(KittyWidth, KittyHeight)
	c.redraw()
	return c
}

// Resize rasterizes the canvas at the given device pixel ratio.
func (c *KittyCanvas) Resize(dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	c.density = dpr
	c.rt.Resize(atLeastOne(c.width*dpr), atLeastOne(c.height*dpr))
	c.redraw()
}

// Update advances the blink and redraws when the eyelids moved.
func (c *KittyCanvas) Update(dt float64) {
	if c.blinker.Update(dt) {
		c.needsUpdate = true
	}
	if c.needsUpdate {
		c.redraw()
		c.needsUpdate = false
	}
}

// Blinker returns the eyelid animation driver.
func (c *KittyCanvas) Blinker() *Blinker { return c.blinker }

// Image returns the canvas texture. It changes identity on Resize.
func (c *KittyCanvas) Image() *ebiten.Image { return c.rt.Image() }

// Density returns the current rasterization density.
func (c *KittyCanvas) Density() float64 { return c.density }

// Dispose stops the blink and frees the texture.
func (c *KittyCanvas) Dispose() {
	c.blinker.Stop()
	c.rt.Dispose()
}

func (c *KittyCanvas) redraw() {
	if c.rt.Image() == nil {
		return
	}
	c.rt.Clear()
	c.drawObject(&c.body)
	c.drawObject(&c.eyelid1)
	c.drawObject(&c.eyelid2)
}

func (c *KittyCanvas) drawObject(o *canvasObject) {
	if o.image == nil {
		return
	}
	b := o.image.Bounds()
	dx := float64(b.Dx()) / o.width
	dy := float64(b.Dy()) / o.height
	c.rt.DrawImageColored(o.image, RenderTextureDrawOpts{
		X:        o.x + o.pX,
		Y:        o.y + o.pY,
		PivotX:   o.pX * dx,
		PivotY:   o.pY * dy,
		ScaleX:   o.scaleX / dx,
		ScaleY:   o.scaleY / dy,
		Rotation: o.rotation * math.Pi / 180,
		Alpha:    o.opacity,
		Density:  c.density,
	})
}

// Kitty is the scene view: the canvas sprite, an invisible hit area, and the
// caption, grouped so that hits resolve to the group.
type Kitty struct {
	node   *Node
	canvas *KittyCanvas
	sprite *Node
	hit    *Node
	label  *Node
}

// NewKitty builds the view. labelColor tints the caption only; the canvas
// sprite draws opaque. A nil font omits the caption.
func NewKitty(canvas *KittyCanvas, font *TTFFont, labelColor Color) *Kitty {
	k := &Kitty{canvas: canvas}

	k.node = NewGroup("alienkitty")
	k.node.Visible = false

	k.sprite = NewSprite("alienkitty.canvas", canvas.Image())
	k.sprite.Width, k.sprite.Height = KittyWidth, KittyHeight
	k.node.AddChild(k.sprite)

	k.hit = NewSprite("alienkitty.hit", nil)
	k.hit.Width, k.hit.Height = KittyWidth, KittyHeight
	k.hit.Renderable = false
	k.node.AddChild(k.hit)

	if font != nil {
		block := NewTextBlock(LabelText, font, labelColor)
		k.label = NewText("alienkitty.label", block)
		w, h := block.Measure()
		k.label.SetPosition(math.Round((KittyWidth-w)/2), KittyHeight+labelGap)
		k.node.AddChild(k.label)
		k.hit.Height = KittyHeight + labelGap + h
	}

	k.node.OnUpdate = func(dt float64) {
		if !k.node.Visible {
			return
		}
		k.canvas.Update(dt)
	}
	return k
}

// Node returns the group node to add to a scene.
func (k *Kitty) Node() *Node { return k.node }

// Hit returns the node to register with a HitTester.
func (k *Kitty) Hit() *Node { return k.hit }

// Canvas returns the kitty canvas.
func (k *Kitty) Canvas() *KittyCanvas { return k.canvas }

// Resize centers the kitty horizontally and lifts it above the vertical
// center, then rasterizes the canvas for dpr.
func (k *Kitty) Resize(width, height, dpr float64) {
	k.node.SetPosition((width-KittyWidth)/2, (height-KittyHeight)/2-kittyLift)
	k.canvas.Resize(dpr)
	k.sprite.SetImage(k.canvas.Image())
}

// AnimateIn shows the kitty and starts blinking.
func (k *Kitty) AnimateIn() {
	k.node.Visible = true
	k.canvas.Blinker().Start()
}

// Dispose removes the view from the scene and frees its textures.
func (k *Kitty) Dispose() {
	if k.label != nil && k.label.Text != nil {
		k.label.Text.Dispose()
	}
	k.canvas.Dispose()
	k.node.Dispose()
}
