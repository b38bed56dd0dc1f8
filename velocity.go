package alienkitty

// Defaults for VelocityTracker.
const (
	DefaultBreakpoint      = 1000
	DefaultVelocityFloorMs = 14
	DefaultSmallMultiplier = 2
)

// inactivePosition is the normalized position reported while the pointer is
// at rest. It lies outside [0,1]² so the flow splat lands off-surface.
var inactivePosition = Vec2{-1, -1}

// TrackerConfig configures a VelocityTracker.
type TrackerConfig struct {
	// Breakpoint is the logical width below which SmallMultiplier applies.
	Breakpoint float64
	// FloorMs is the minimum time delta used when computing velocity.
	FloorMs float64
	// SmallMultiplier is the sensitivity on viewports narrower than Breakpoint.
	SmallMultiplier float64
}

// DefaultTrackerConfig returns the stock tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Breakpoint:      DefaultBreakpoint,
		FloorMs:         DefaultVelocityFloorMs,
		SmallMultiplier: DefaultSmallMultiplier,
	}
}

// VelocityTracker turns pointer samples into a normalized position and a
// time-normalized velocity that decays to rest one frame after motion stops.
type VelocityTracker struct {
	cfg TrackerConfig

	width, height float64

	pos        Vec2
	velocity   Vec2
	lastRaw    Vec2
	lastTimeMs float64
	hasLast    bool
	multiplier float64
	active     bool
}

// NewVelocityTracker creates a tracker at rest with a 1x1 surface.
func NewVelocityTracker(cfg TrackerConfig) *VelocityTracker {
	if cfg.FloorMs <= 0 {
		cfg.FloorMs = DefaultVelocityFloorMs
	}
	if cfg.SmallMultiplier <= 0 {
		cfg.SmallMultiplier = DefaultSmallMultiplier
	}
	t := &VelocityTracker{
		cfg:        cfg,
		pos:        inactivePosition,
		multiplier: 1,
	}
	t.Resize(1, 1)
	return t
}

// OnPointerMove records a pointer sample. The first sample after construction
// or an idle reset only seeds the baseline, so its velocity is zero.
func (t *VelocityTracker) OnPointerMove(e PointerEvent) {
	raw := e.Position()

	t.pos = Vec2{raw.X / t.width, 1 - raw.Y/t.height}

	if !t.hasLast {
		t.hasLast = true
		t.lastTimeMs = e.TimestampMs
		t.lastRaw = raw
	}

	d := raw.Sub(t.lastRaw)
	t.lastRaw = raw

	dt := max(t.cfg.FloorMs, e.TimestampMs-t.lastTimeMs)
	t.lastTimeMs = e.TimestampMs

	t.velocity = Vec2{d.X / dt * t.multiplier, d.Y / dt * t.multiplier}
	t.active = true
}

// Update runs once per frame before the flow step. If no sample arrived since
// the previous call, the tracker goes to rest.
func (t *VelocityTracker) Update() {
	if !t.active {
		t.pos = inactivePosition
		t.velocity = Vec2{}
		t.hasLast = false
	}
	t.active = false
}

// Resize stores the surface size and picks the sensitivity multiplier. A
// width equal to the breakpoint counts as large.
func (t *VelocityTracker) Resize(width, height float64) {
	t.width = float64(atLeastOne(width))
	t.height = float64(atLeastOne(height))
	if t.width < t.cfg.Breakpoint {
		t.multiplier = t.cfg.SmallMultiplier
	} else {
		t.multiplier = 1
	}
}

// Position returns the normalized pointer position with Y up, or (-1, -1)
// while at rest.
func (t *VelocityTracker) Position() Vec2 {
	return t.pos
}

// Velocity returns the pointer velocity in logical pixels per millisecond,
// scaled by the multiplier. Y follows screen space (down is positive).
func (t *VelocityTracker) Velocity() Vec2 {
	return t.velocity
}

// Multiplier returns the current sensitivity multiplier.
func (t *VelocityTracker) Multiplier() float64 {
	return t.multiplier
}

// Active reports whether a sample arrived since the last Update.
func (t *VelocityTracker) Active() bool {
	return t.active
}
