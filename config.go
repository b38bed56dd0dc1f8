package alienkitty

import (
	"fmt"
	"io/fs"

	"github.com/goccy/go-yaml"
	css "github.com/mazznoer/csscolorparser"
)

// UVSign selects the direction of the flow displacement.
type UVSign string

const (
	// UVPush samples behind the motion: uv - flow*k.
	UVPush UVSign = "push"
	// UVPull samples ahead of the motion: uv + flow*k.
	UVPull UVSign = "pull"
)

// TouchMode selects whether the device is treated as touch-primary.
type TouchMode string

const (
	TouchAuto TouchMode = "auto"
	TouchOn   TouchMode = "true"
	TouchOff  TouchMode = "false"
)

// FlowConfig configures the flow simulation.
type FlowConfig struct {
	Falloff     float64         `yaml:"falloff"`
	Alpha       float64         `yaml:"alpha"`
	Dissipation float64         `yaml:"dissipation"`
	ActiveBlend float64         `yaml:"activeBlend"`
	IdleBlend   float64         `yaml:"idleBlend"`
	Backend     FlowBackendKind `yaml:"backend"`
}

// CompositeConfig configures the warp and chromatic shift.
type CompositeConfig struct {
	UVStrength     float64 `yaml:"uvStrength"`
	ChromaStrength float64 `yaml:"chromaStrength"`
	Sign           UVSign  `yaml:"sign"`
}

// HitTestSettings configures hover and click resolution.
type HitTestSettings struct {
	RatePerSecond    float64 `yaml:"ratePerSecond"`
	ClickMaxMs       float64 `yaml:"clickMaxMs"`
	ClickMaxDistance float64 `yaml:"clickMaxDistance"`
}

// AssetConfig names optional files that replace the built-in art.
type AssetConfig struct {
	KittyBody   string `yaml:"kittyBody"`
	KittyEyelid string `yaml:"kittyEyelid"`
	LabelFont   string `yaml:"labelFont"`
}

// Config is the full application configuration.
type Config struct {
	Title        string `yaml:"title"`
	WindowWidth  int    `yaml:"windowWidth"`
	WindowHeight int    `yaml:"windowHeight"`

	BackgroundColor string `yaml:"backgroundColor"`
	UIColor         string `yaml:"uiColor"`

	Breakpoint      float64 `yaml:"breakpoint"`
	VelocityFloorMs float64 `yaml:"velocityFloorMs"`
	SmallMultiplier float64 `yaml:"smallMultiplier"`

	Flow      FlowConfig      `yaml:"flow"`
	Composite CompositeConfig `yaml:"composite"`
	HitTest   HitTestSettings `yaml:"hitTest"`

	TouchPrimary TouchMode `yaml:"touchPrimary"`
	ContactEmail string    `yaml:"contactEmail"`
	FadeInMs     float64   `yaml:"fadeInMs"`

	Assets AssetConfig `yaml:"assets"`
	Debug  bool        `yaml:"debug"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	flow := DefaultFlowOptions()
	return Config{
		Title:           "Alien Kitty",
		WindowWidth:     1280,
		WindowHeight:    800,
		BackgroundColor: "#000",
		UIColor:         "rgba(255, 255, 255, 0.94)",
		Breakpoint:      DefaultBreakpoint,
		VelocityFloorMs: DefaultVelocityFloorMs,
		SmallMultiplier: DefaultSmallMultiplier,
		Flow: FlowConfig{
			Falloff:     flow.Falloff,
			Alpha:       flow.Alpha,
			Dissipation: flow.Dissipation,
			ActiveBlend: flow.ActiveBlend,
			IdleBlend:   flow.IdleBlend,
			Backend:     FlowBackendGPU,
		},
		Composite: CompositeConfig{
			UVStrength:     DefaultUVStrength,
			ChromaStrength: DefaultChromaStrength,
			Sign:           UVPush,
		},
		HitTest: HitTestSettings{
			RatePerSecond:    DefaultHitTestRate,
			ClickMaxMs:       DefaultClickMaxMs,
			ClickMaxDistance: DefaultClickMaxDistance,
		},
		TouchPrimary: TouchAuto,
		ContactEmail: "hello@alienkitty.com",
		FadeInMs:     DefaultFadeInMs,
	}
}

// LoadConfig reads a YAML file from fsys and overlays it on DefaultConfig.
// The result is validated.
func LoadConfig(fsys fs.FS, path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return cfg, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range or unparsable field.
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
	}
	switch {
	case c.Breakpoint <= 0:
		return bad("breakpoint must be positive, got %v", c.Breakpoint)
	case c.VelocityFloorMs <= 0:
		return bad("velocityFloorMs must be positive, got %v", c.VelocityFloorMs)
	case c.SmallMultiplier <= 0:
		return bad("smallMultiplier must be positive, got %v", c.SmallMultiplier)
	case c.Flow.Dissipation <= 0 || c.Flow.Dissipation >= 1:
		return bad("flow.dissipation must be in (0, 1), got %v", c.Flow.Dissipation)
	case c.Flow.Falloff <= 0:
		return bad("flow.falloff must be positive, got %v", c.Flow.Falloff)
	case c.Flow.Alpha <= 0:
		return bad("flow.alpha must be positive, got %v", c.Flow.Alpha)
	case c.Flow.ActiveBlend <= 0 || c.Flow.ActiveBlend > 1:
		return bad("flow.activeBlend must be in (0, 1], got %v", c.Flow.ActiveBlend)
	case c.Flow.IdleBlend <= 0 || c.Flow.IdleBlend > 1:
		return bad("flow.idleBlend must be in (0, 1], got %v", c.Flow.IdleBlend)
	case c.Flow.Backend != FlowBackendGPU && c.Flow.Backend != FlowBackendCPU:
		return bad("flow.backend must be %q or %q, got %q", FlowBackendGPU, FlowBackendCPU, c.Flow.Backend)
	case c.Composite.Sign != UVPush && c.Composite.Sign != UVPull:
		return bad("composite.sign must be %q or %q, got %q", UVPush, UVPull, c.Composite.Sign)
	case c.HitTest.RatePerSecond <= 0:
		return bad("hitTest.ratePerSecond must be positive, got %v", c.HitTest.RatePerSecond)
	case c.HitTest.ClickMaxMs <= 0:
		return bad("hitTest.clickMaxMs must be positive, got %v", c.HitTest.ClickMaxMs)
	case c.HitTest.ClickMaxDistance <= 0:
		return bad("hitTest.clickMaxDistance must be positive, got %v", c.HitTest.ClickMaxDistance)
	case c.FadeInMs < 0:
		return bad("fadeInMs must not be negative, got %v", c.FadeInMs)
	}
	switch c.TouchPrimary {
	case TouchAuto, TouchOn, TouchOff, "":
	default:
		return bad("touchPrimary must be auto, true or false, got %q", c.TouchPrimary)
	}
	if _, err := ParseColor(c.BackgroundColor); err != nil {
		return bad("backgroundColor: %v", err)
	}
	if _, err := ParseColor(c.UIColor); err != nil {
		return bad("uiColor: %v", err)
	}
	return nil
}

// ParseColor parses a CSS color string.
func ParseColor(s string) (Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// FlowOptions returns the flow settings as simulator options.
func (c Config) FlowOptions() FlowOptions {
	return FlowOptions{
		Falloff:     c.Flow.Falloff,
		Alpha:       c.Flow.Alpha,
		Dissipation: c.Flow.Dissipation,
		ActiveBlend: c.Flow.ActiveBlend,
		IdleBlend:   c.Flow.IdleBlend,
	}
}

// TrackerConfig returns the velocity tracker settings.
func (c Config) TrackerConfig() TrackerConfig {
	return TrackerConfig{
		Breakpoint:      c.Breakpoint,
		FloorMs:         c.VelocityFloorMs,
		SmallMultiplier: c.SmallMultiplier,
	}
}

// HitTestConfig returns the hit tester settings. touch is the detected
// touch-primary state used when TouchPrimary is auto.
func (c Config) HitTestConfig(touch bool) HitTestConfig {
	switch c.TouchPrimary {
	case TouchOn:
		touch = true
	case TouchOff:
		touch = false
	}
	return HitTestConfig{
		RatePerSecond:    c.HitTest.RatePerSecond,
		ClickMaxMs:       c.HitTest.ClickMaxMs,
		ClickMaxDistance: c.HitTest.ClickMaxDistance,
		TouchPrimary:     touch,
	}
}
