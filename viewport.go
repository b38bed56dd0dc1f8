package alienkitty

// Uniforms are the per-frame values shared by every render stage. They are
// written only by Viewport; readers fetch them each frame.
type Uniforms struct {
	Resolution Vec2 // device pixels
	TexelSize  Vec2 // 1 / Resolution
	Aspect     float64
	Time       float64 // seconds
	Frame      int
}

// Viewport owns the world camera and the shared per-frame uniforms.
type Viewport struct {
	width, height float64 // logical (CSS) pixels
	dpr           float64
	pixelW        int
	pixelH        int

	camera   *Camera
	uniforms Uniforms
}

// NewViewport creates a 1x1 viewport; call Resize before the first frame.
func NewViewport() *Viewport {
	v := &Viewport{camera: &Camera{}}
	v.Resize(1, 1, 1)
	return v
}

// Resize recomputes the camera projection and resolution uniforms. It is
// idempotent and tolerates zero or negative input.
func (v *Viewport) Resize(width, height, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	width = float64(atLeastOne(width))
	height = float64(atLeastOne(height))

	v.width, v.height, v.dpr = width, height, dpr
	v.pixelW = atLeastOne(width * dpr)
	v.pixelH = atLeastOne(height * dpr)

	cam := v.camera
	cam.SetProjection(-width/2, width/2, -height/2, height/2)
	cam.X = width / 2
	cam.Y = height / 2
	cam.Viewport = Rect{Width: float64(v.pixelW), Height: float64(v.pixelH)}
	cam.MarkDirty()

	w, h := float64(v.pixelW), float64(v.pixelH)
	v.uniforms.Resolution = Vec2{w, h}
	v.uniforms.TexelSize = Vec2{1 / w, 1 / h}
	v.uniforms.Aspect = w / h
}

// Update writes the time and frame uniforms.
func (v *Viewport) Update(ft FrameTime) {
	v.uniforms.Time = ft.Time
	v.uniforms.Frame = ft.Frame
}

// Uniforms returns the current uniform values.
func (v *Viewport) Uniforms() Uniforms {
	return v.uniforms
}

// Camera returns the world camera.
func (v *Viewport) Camera() *Camera {
	return v.camera
}

// Size returns the logical size and device pixel ratio.
func (v *Viewport) Size() (width, height, dpr float64) {
	return v.width, v.height, v.dpr
}

// PixelSize returns the device-pixel resolution.
func (v *Viewport) PixelSize() (w, h int) {
	return v.pixelW, v.pixelH
}
