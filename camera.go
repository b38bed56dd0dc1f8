package alienkitty

// Camera is an orthographic 2D camera. The projection bounds are offsets from
// the camera position in world units; the viewport is the device-pixel
// rectangle they map onto. World Y grows downward, matching screen space, so
// the GL-style Y flip is folded into the bounds (Top < Bottom).
type Camera struct {
	// X and Y are the world-space position the bounds are relative to.
	X, Y float64

	// Projection bounds relative to (X, Y).
	Left, Right, Top, Bottom float64

	// Viewport is the device-pixel rectangle this camera renders into.
	Viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// NewCamera creates a camera whose world units equal viewport pixels, with
// the world origin at the viewport's top-left.
func NewCamera(viewport Rect) *Camera {
	c := &Camera{Viewport: viewport}
	c.SetProjection(-viewport.Width/2, viewport.Width/2, -viewport.Height/2, viewport.Height/2)
	c.X = viewport.Width / 2
	c.Y = viewport.Height / 2
	return c
}

// SetProjection replaces the orthographic bounds.
func (c *Camera) SetProjection(left, right, top, bottom float64) {
	c.Left, c.Right, c.Top, c.Bottom = left, right, top, bottom
	c.dirty = true
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// computeViewMatrix recomputes the cached world-to-viewport matrix if dirty.
//
//	screen = (world - (X+Left, Y+Top)) * (vpW/(Right-Left), vpH/(Bottom-Top)) + vpOrigin
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	spanX := c.Right - c.Left
	spanY := c.Bottom - c.Top
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	sx := c.Viewport.Width / spanX
	sy := c.Viewport.Height / spanY
	tx := c.Viewport.X - (c.X+c.Left)*sx
	ty := c.Viewport.Y - (c.Y+c.Top)*sy

	c.viewMatrix = [6]float64{sx, 0, 0, sy, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to device-pixel coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts device-pixel coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle covered by the camera.
func (c *Camera) VisibleBounds() Rect {
	return Rect{
		X:      c.X + min(c.Left, c.Right),
		Y:      c.Y + min(c.Top, c.Bottom),
		Width:  abs(c.Right - c.Left),
		Height: abs(c.Bottom - c.Top),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
