package alienkitty

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable lets the user resize the window. Defaults to true via
	// DefaultRunConfig.
	Resizable bool
	// OnFrame is called after every App.Frame, before drawing. Returning an
	// error ends the loop.
	OnFrame func(a *App, ft FrameTime) error
}

// DefaultRunConfig derives window settings from cfg.
func DefaultRunConfig(cfg Config) RunConfig {
	return RunConfig{
		Title:     cfg.Title,
		Width:     cfg.WindowWidth,
		Height:    cfg.WindowHeight,
		Resizable: true,
	}
}

// Game adapts an App to ebiten.Game. Layout reports the window size in
// device pixels and resizes the App whenever the size or scale changes.
type Game struct {
	app     *App
	clock   *Clock
	onFrame func(a *App, ft FrameTime) error

	w, h int
	dpr  float64
}

// NewGame wraps app. The App must already be Ready.
func NewGame(app *App, onFrame func(a *App, ft FrameTime) error) *Game {
	return &Game{app: app, clock: NewClock(nil), onFrame: onFrame}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.app.Disposed() {
		return ebiten.Termination
	}
	ft := g.clock.Tick()
	g.app.Frame(ft)
	if g.onFrame != nil {
		return g.onFrame(g.app, ft)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.app.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// LayoutF implements ebiten.LayoutFer so the screen is allocated at device
// resolution.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = m.DeviceScaleFactor()
	}
	w, h := int(outsideWidth), int(outsideHeight)
	if w != g.w || h != g.h || dpr != g.dpr {
		g.w, g.h, g.dpr = w, h, dpr
		g.app.Resize(outsideWidth, outsideHeight, dpr)
	}
	pw, ph := g.app.Viewport().PixelSize()
	return float64(pw), float64(ph)
}

// Run opens a window and drives app until the window closes or OnFrame
// returns an error. The App is disposed on return.
func Run(app *App, cfg RunConfig) error {
	defer app.Dispose()

	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := app.Start(); err != nil {
		return err
	}
	err := ebiten.RunGame(NewGame(app, cfg.OnFrame))
	if err == ebiten.Termination {
		return nil
	}
	return err
}
