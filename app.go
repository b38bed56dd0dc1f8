package alienkitty

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// AppOptions carries the collaborators an App does not build itself. Zero
// values select the Ebitengine-backed defaults.
type AppOptions struct {
	// FS resolves asset overrides named in Config.Assets.
	FS fs.FS
	// Pointer supplies raw input. Defaults to EbitenPointerSource.
	Pointer PointerSource
	// Cursor switches the pointer affordance. Defaults to EbitenCursor.
	Cursor CursorSetter
	// Rand drives the blink timing. Defaults to a time-seeded source.
	Rand *rand.Rand
	// TouchPrimary is the detected device class, used when the config says
	// auto.
	TouchPrimary bool
	// OnContact is called with Config.ContactEmail when the kitty is clicked.
	OnContact func(address string)
	// FlowBackend overrides the backend named in the config.
	FlowBackend FlowBackend
}

// App is the render/flow pipeline: viewport, views, input, flow simulation,
// and the composite stage, stepped in a fixed order once per frame.
type App struct {
	cfg     Config
	opts    AppOptions
	session string

	bg, ui Color

	viewport   *Viewport
	scene      *Scene
	overlay    *Scene
	tracker    *VelocityTracker
	flow       *FlowSimulator
	compositor *Compositor
	hits       *HitTester
	pointer    PointerSource

	assets Assets
	kitty  *Kitty
	fps    *Node

	events      []PointerEvent
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	fade    *TweenGroup
	fadeVal float64

	ready    bool
	readyErr error
	started  bool
	disposed bool

	debug bool
	stats frameStats
}

// NewApp validates cfg and builds the pipeline. Views are created by Ready.
func NewApp(cfg Config, opts AppOptions) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, _ := ParseColor(cfg.BackgroundColor)
	ui, _ := ParseColor(cfg.UIColor)

	if opts.Pointer == nil {
		opts.Pointer = NewEbitenPointerSource()
	}
	if opts.Cursor == nil {
		opts.Cursor = EbitenCursor{}
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	backend := opts.FlowBackend
	if backend == nil {
		backend = NewFlowBackend(cfg.Flow.Backend)
	}

	a := &App{
		cfg:           cfg,
		opts:          opts,
		session:       uuid.NewString(),
		bg:            bg,
		ui:            ui,
		viewport:      NewViewport(),
		scene:         NewScene(),
		overlay:       NewScene(),
		tracker:       NewVelocityTracker(cfg.TrackerConfig()),
		flow:          NewFlowSimulator(cfg.FlowOptions(), backend),
		pointer:       opts.Pointer,
		ScreenshotDir: "screenshots",
	}
	a.compositor = NewCompositor(CompositeOptions{
		UVStrength:     cfg.Composite.UVStrength,
		ChromaStrength: cfg.Composite.ChromaStrength,
		Sign:           cfg.Composite.Sign,
		Background:     bg,
	})
	a.compositor.Alpha = 0
	a.hits = NewHitTester(cfg.HitTestConfig(opts.TouchPrimary), a.viewport, opts.Cursor)

	a.SetDebugMode(cfg.Debug)
	return a, nil
}

// Session returns the id used to tag log lines and screenshots.
func (a *App) Session() string { return a.session }

// Ready loads assets and builds the views. On failure every GPU resource
// built so far is released and the App cannot be started.
func (a *App) Ready(ctx context.Context) error {
	if a.disposed {
		return ErrDisposed
	}
	if a.ready {
		return nil
	}
	assets, err := LoadAssets(ctx, a.opts.FS, a.cfg.Assets, a.ui, a.bg)
	if err != nil {
		a.readyErr = err
		a.Dispose()
		return fmt.Errorf("ready: %w", err)
	}
	a.assets = assets

	canvas := NewKittyCanvas(assets.Sprites, a.opts.Rand)
	a.kitty = NewKitty(canvas, assets.Font, a.ui)
	a.kitty.Node().OnClick = a.onKittyClick
	a.kitty.Node().OnHover = a.onKittyHover
	a.scene.Root().AddChild(a.kitty.Node())
	a.hits.Add(a.kitty.Hit())

	a.fps = NewStatsWidget(&a.stats, a.flow.Backend())
	a.fps.Visible = a.debug
	a.overlay.Root().AddChild(a.fps)

	w, h, dpr := a.viewport.Size()
	a.Resize(w, h, dpr)

	a.ready = true
	if a.debug {
		debugLogf(a.session, "ready (flow backend %s)", a.cfg.Flow.Backend)
	}
	return nil
}

// Start fades the pipeline in and starts the kitty blinking. It fails with
// ErrNotReady when Ready has not succeeded.
func (a *App) Start() error {
	if a.readyErr != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, a.readyErr)
	}
	if a.disposed {
		return ErrDisposed
	}
	if !a.ready {
		return ErrNotReady
	}
	if a.started {
		return nil
	}
	a.started = true
	a.kitty.AnimateIn()

	a.fadeVal = 0
	if a.cfg.FadeInMs > 0 {
		a.fade = TweenValues([]*float64{&a.fadeVal}, []float64{1}, float32(a.cfg.FadeInMs/1000), ease.OutSine)
	} else {
		a.fadeVal = 1
	}
	a.compositor.Alpha = a.fadeVal
	return nil
}

// Resize applies a new logical size and device pixel ratio to the viewport,
// views, tracker, offscreen target, and flow texture together.
func (a *App) Resize(width, height, dpr float64) {
	if a.disposed {
		return
	}
	a.viewport.Resize(width, height, dpr)
	w, h, d := a.viewport.Size()
	if a.kitty != nil {
		a.kitty.Resize(w, h, d)
	}
	a.tracker.Resize(w, h)

	pw, ph := a.viewport.PixelSize()
	a.compositor.Resize(pw, ph)
	a.flow.Resize(pw, ph)

	if a.fps != nil {
		a.fps.SetPosition(8, 8)
	}
	if a.debug {
		debugLogf(a.session, "resize %vx%v @%v -> %dx%d px", w, h, d, pw, ph)
	}
}

// Frame advances the pipeline by one display refresh. The order is fixed:
// viewport, views, input, throttled hit test, tracker decay, flow step.
func (a *App) Frame(ft FrameTime) {
	if a.disposed || !a.ready {
		return
	}
	a.viewport.Update(ft)

	if a.fade != nil {
		if a.fade.Update(float32(ft.Delta / 1000)) {
			a.fade = nil
		}
		a.compositor.Alpha = a.fadeVal
	}
	a.scene.Update(ft)
	a.overlay.Update(ft)

	if a.testRunner != nil {
		a.testRunner.step(a)
	}
	a.pollInput(ft)

	a.hits.Update(ft)
	a.tracker.Update()

	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}
	a.flow.Step(a.tracker.Position(), a.tracker.Velocity(), a.viewport.Uniforms().Aspect)
	if a.debug {
		a.stats.flow += time.Since(t0)
		a.stats.hitTests += a.hits.Tests()
		a.stats.frames++
		a.stats.flush(a.session, ft.Time)
	}
}

// pollInput feeds this frame's pointer events to the tracker and hit tester.
// Real input comes first, then at most one injected event.
func (a *App) pollInput(ft FrameTime) {
	_, _, dpr := a.viewport.Size()
	a.events = a.pointer.Poll(ft, dpr, a.events[:0])
	a.events, _ = a.popInjected(ft, a.events)
	autoTouch := a.cfg.TouchPrimary == TouchAuto || a.cfg.TouchPrimary == ""

	moved := false
	for _, e := range a.events {
		if autoTouch && len(e.Touches) > 0 {
			a.hits.SetTouchPrimary(true)
		}
		switch e.Kind {
		case PointerMove:
			a.tracker.OnPointerMove(e)
			moved = true
		case PointerDown:
			if !moved {
				a.tracker.OnPointerMove(e)
			}
		}
		a.hits.OnPointer(e)
	}
}

// Draw renders the scene pass and the composite pass into screen, then the
// debug overlay.
func (a *App) Draw(screen *ebiten.Image) {
	if a.disposed || !a.ready {
		return
	}
	cam := a.viewport.Camera()

	// The scene pass records its own timing.
	a.compositor.RenderScene(a.scene, cam)

	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}
	a.compositor.Composite(screen, a.flow.Texture())
	if a.debug {
		a.stats.composite += time.Since(t0)
		a.overlay.Draw(screen, cam)
	}
	a.flushScreenshots(screen)
}

// SetDebugMode toggles stderr diagnostics, disposed-node checks, and the FPS
// widget.
func (a *App) SetDebugMode(enabled bool) {
	a.debug = enabled
	a.scene.SetDebugMode(enabled)
	a.scene.stats = &a.stats
	if a.fps != nil {
		a.fps.Visible = enabled
	}
	if enabled {
		debugLogf(a.session, "debug mode on")
	}
}

// Viewport returns the viewport state.
func (a *App) Viewport() *Viewport { return a.viewport }

// Scene returns the scene graph drawn by the scene pass.
func (a *App) Scene() *Scene { return a.scene }

// Tracker returns the pointer velocity tracker.
func (a *App) Tracker() *VelocityTracker { return a.tracker }

// Flow returns the flow simulator.
func (a *App) Flow() *FlowSimulator { return a.flow }

// Compositor returns the composite stage.
func (a *App) Compositor() *Compositor { return a.compositor }

// HitTester returns the input hit-test layer.
func (a *App) HitTester() *HitTester { return a.hits }

// Kitty returns the kitty view, or nil before Ready.
func (a *App) Kitty() *Kitty { return a.kitty }

// Config returns the configuration the App was built with.
func (a *App) Config() Config { return a.cfg }

// Disposed reports whether Dispose has been called.
func (a *App) Disposed() bool { return a.disposed }

// Dispose detaches input and tick work first, then frees the flow buffers,
// the offscreen target, and the views. Safe to call more than once.
func (a *App) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.ready = false

	a.hits.Dispose()
	a.testRunner = nil
	a.injectQueue = nil
	a.fade = nil

	a.flow.Dispose()
	a.compositor.Dispose()
	if a.kitty != nil {
		a.kitty.Dispose()
		a.kitty = nil
	}
	if a.fps != nil {
		if img := a.fps.Image(); img != nil {
			img.Deallocate()
		}
		a.fps.Dispose()
		a.fps = nil
	}
	a.assets.Dispose()
	if a.debug {
		debugLogf(a.session, "disposed")
	}
}

func (a *App) onKittyClick() {
	if a.debug {
		debugLogf(a.session, "click %s", a.cfg.ContactEmail)
	}
	if a.opts.OnContact != nil && a.cfg.ContactEmail != "" {
		a.opts.OnContact(a.cfg.ContactEmail)
	}
}

func (a *App) onKittyHover(e HoverEvent) {
	if a.debug {
		debugLogf(a.session, "hover %s %s", e.Type, e.Node.Name)
	}
}
