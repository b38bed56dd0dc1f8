package alienkitty

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsPanelColor is the translucent panel behind the overlay text.
var statsPanelColor = color.RGBA{0, 0, 0, 160}

// NewStatsWidget creates the debug overlay node: FPS and TPS, the flow field
// size, and the last per-second timing summary from stats. It refreshes about
// every half second.
func NewStatsWidget(stats *frameStats, flow FlowBackend) *Node {
	img := ebiten.NewImage(220, 64)
	node := NewSprite("stats_widget", img)

	var sinceRefresh float64
	node.OnUpdate = func(dt float64) {
		sinceRefresh += dt
		if sinceRefresh < 0.5 {
			return
		}
		sinceRefresh = 0
		img.Fill(statsPanelColor)
		ebitenutil.DebugPrint(img, statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), stats, flow))
	}
	return node
}

// statsText formats the overlay body.
func statsText(fps, tps float64, stats *frameStats, flow FlowBackend) string {
	s := fmt.Sprintf("FPS: %.1f TPS: %.1f", fps, tps)
	if flow != nil {
		w, h := flow.Size()
		s += fmt.Sprintf("\nflow field %dx%d", w, h)
	}
	if stats != nil && stats.summary != "" {
		s += "\n" + stats.summary
	}
	return s
}
