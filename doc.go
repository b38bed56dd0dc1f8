// Package alienkitty is a small full-screen rendering pipeline for
// [Ebitengine]: a pointer-driven flow field distorts a scene through a
// chromatic-aberration composite.
//
// # Quick start
//
// Build an [App] from a [Config], load its assets with [App.Ready], then hand
// it to [Run], which opens a window and drives the loop:
//
//	app, err := alienkitty.NewApp(alienkitty.DefaultConfig(), alienkitty.AppOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := app.Ready(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//	if err := alienkitty.Run(app, alienkitty.DefaultRunConfig(app.Config())); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, wrap the App with [NewGame] or call [App.Frame] and
// [App.Draw] from your own [ebiten.Game].
//
// # Frame order
//
// Each [App.Frame] runs the stages in a fixed order: [Viewport], scene
// update, pointer input, the throttled [HitTester], [VelocityTracker] decay,
// and one [FlowSimulator] step. [App.Draw] renders the scene into an
// offscreen target and composites it through the flow texture.
//
// # Flow field
//
// The flow texture stores velocity in its red and green channels and a
// speed term in blue, biased so that 128 means zero. The GPU backend runs a
// ping-pong Kage pass. [CPUFlowBackend] does the same arithmetic in float32
// and is used by tests and headless runs.
//
// # Scene graph
//
// Every visual element is a [Node]. Children inherit their parent's
// transform and alpha. The kitty view is built from a [KittyCanvas] whose
// eyelids are animated by a [Blinker] using tweens (via [gween]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package alienkitty
