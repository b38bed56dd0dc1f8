package alienkitty

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Defaults for FlowOptions.
const (
	DefaultFlowFalloff     = 0.098
	DefaultFlowAlpha       = 0.25
	DefaultFlowDissipation = 0.8
	DefaultFlowActiveBlend = 0.5
	DefaultFlowIdleBlend   = 0.1
)

// flowCenter is the stored 8-bit value that decodes to exactly zero.
const flowCenter = 128.0 / 255.0

// flowLSB is the smallest representable step of a decoded flow value.
const flowLSB = 2.0 / 255.0

// FlowOptions configures the flow simulation.
type FlowOptions struct {
	// Falloff is the splat radius in aspect-corrected UV units.
	Falloff float64
	// Alpha scales the strength of each splat.
	Alpha float64
	// Dissipation multiplies the previous field every step. Must be in [0, 1).
	Dissipation float64
	// ActiveBlend is the easing factor toward a non-zero target velocity.
	ActiveBlend float64
	// IdleBlend is the easing factor toward a zero target velocity.
	IdleBlend float64
}

// DefaultFlowOptions returns the stock flow configuration.
func DefaultFlowOptions() FlowOptions {
	return FlowOptions{
		Falloff:     DefaultFlowFalloff,
		Alpha:       DefaultFlowAlpha,
		Dissipation: DefaultFlowDissipation,
		ActiveBlend: DefaultFlowActiveBlend,
		IdleBlend:   DefaultFlowIdleBlend,
	}
}

// FlowStep carries the inputs for one simulation step.
type FlowStep struct {
	// Position is the pointer position in normalized coordinates, Y up.
	Position Vec2
	// Velocity is the eased pointer velocity. Y is down-positive and is
	// flipped when stamped.
	Velocity Vec2
	// Aspect is width / height of the surface.
	Aspect float64

	Falloff     float64
	Alpha       float64
	Dissipation float64
}

// stamp returns the value injected at full weight: (vx, -vy, speed).
func (s FlowStep) stamp() (vx, vy, speed float64) {
	m := math.Min(1, s.Velocity.Len())
	inv := 1 - m
	return s.Velocity.X, -s.Velocity.Y, 1 - inv*inv*inv
}

// weight returns the splat weight at normalized point (u, v).
func (s FlowStep) weight(u, v float64) float64 {
	dx := (u - s.Position.X) * s.Aspect
	dy := v - s.Position.Y
	return (1 - smoothstep(0, s.Falloff, hypot(dx, dy))) * s.Alpha
}

// deadZone returns the magnitude below which an 8-bit stored value would be
// held in place by rounding instead of decaying.
func (s FlowStep) deadZone() float64 {
	d := s.Dissipation
	if d >= 1 {
		return flowLSB
	}
	return (0.5/(1-d) + 0.5) * flowLSB
}

// FlowBackend stores the flow field and applies simulation steps.
type FlowBackend interface {
	// Resize discards the field and reallocates it at w×h cells, all zero.
	Resize(w, h int)
	// Step decays the field and adds the splat described by step.
	Step(step FlowStep)
	// Texture returns the field encoded as a biased RGBA texture.
	Texture() *ebiten.Image
	// Size returns the field dimensions in cells.
	Size() (w, h int)
	// Dispose releases GPU resources.
	Dispose()
}

// FlowSimulator eases pointer velocity and drives a FlowBackend.
type FlowSimulator struct {
	opts     FlowOptions
	backend  FlowBackend
	velocity Vec2
	position Vec2
	disposed bool
}

// NewFlowSimulator creates a simulator over backend. Zero fields in opts take
// their defaults.
func NewFlowSimulator(opts FlowOptions, backend FlowBackend) *FlowSimulator {
	def := DefaultFlowOptions()
	if opts.Falloff <= 0 {
		opts.Falloff = def.Falloff
	}
	if opts.Alpha <= 0 {
		opts.Alpha = def.Alpha
	}
	if opts.ActiveBlend <= 0 {
		opts.ActiveBlend = def.ActiveBlend
	}
	if opts.IdleBlend <= 0 {
		opts.IdleBlend = def.IdleBlend
	}
	if opts.Dissipation <= 0 || opts.Dissipation >= 1 {
		opts.Dissipation = def.Dissipation
	}
	return &FlowSimulator{opts: opts, backend: backend, position: inactivePosition}
}

// Options returns the effective options.
func (f *FlowSimulator) Options() FlowOptions { return f.opts }

// Backend returns the underlying backend.
func (f *FlowSimulator) Backend() FlowBackend { return f.backend }

// Resize reallocates the field. Previous contents are discarded.
func (f *FlowSimulator) Resize(w, h int) {
	if f.disposed {
		return
	}
	f.backend.Resize(w, h)
}

// Step eases the stored velocity toward target and advances the field by one
// step with a splat at pos.
func (f *FlowSimulator) Step(pos, target Vec2, aspect float64) {
	if f.disposed {
		return
	}
	blend := f.opts.IdleBlend
	if target.X != 0 || target.Y != 0 {
		blend = f.opts.ActiveBlend
	}
	f.velocity = f.velocity.Lerp(target, blend)
	f.position = pos
	f.backend.Step(FlowStep{
		Position:    pos,
		Velocity:    f.velocity,
		Aspect:      aspect,
		Falloff:     f.opts.Falloff,
		Alpha:       f.opts.Alpha,
		Dissipation: f.opts.Dissipation,
	})
}

// Velocity returns the eased velocity used by the last step.
func (f *FlowSimulator) Velocity() Vec2 { return f.velocity }

// Texture returns the current flow texture.
func (f *FlowSimulator) Texture() *ebiten.Image {
	return f.backend.Texture()
}

// Dispose releases the backend.
func (f *FlowSimulator) Dispose() {
	if f.disposed {
		return
	}
	f.disposed = true
	f.backend.Dispose()
}
