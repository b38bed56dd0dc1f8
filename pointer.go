package alienkitty

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerMove PointerKind = iota // position changed
	PointerDown                    // primary button pressed or first touch began
	PointerUp                      // primary button released or last touch ended
)

// PointerEvent is one raw pointer sample in logical (CSS) pixels.
type PointerEvent struct {
	Kind        PointerKind
	X, Y        float64
	Touches     []Vec2 // active touch points, first touch first
	TimestampMs float64
}

// Position returns the first touch point when the event carries touches,
// otherwise the mouse position.
func (e PointerEvent) Position() Vec2 {
	if len(e.Touches) > 0 {
		return e.Touches[0]
	}
	return Vec2{e.X, e.Y}
}

// PointerSource yields the pointer events that happened since the previous
// poll. dpr converts device pixels to logical pixels.
type PointerSource interface {
	Poll(ft FrameTime, dpr float64, buf []PointerEvent) []PointerEvent
}

// EbitenPointerSource polls the mouse and touch state from Ebitengine.
type EbitenPointerSource struct {
	touchIDs []ebiten.TouchID
	touches  []Vec2
	last     Vec2
	pressed  bool
	touching bool
	seeded   bool
}

// NewEbitenPointerSource creates a pointer source for the running game.
func NewEbitenPointerSource() *EbitenPointerSource {
	return &EbitenPointerSource{}
}

// Poll implements PointerSource.
func (s *EbitenPointerSource) Poll(ft FrameTime, dpr float64, buf []PointerEvent) []PointerEvent {
	if dpr <= 0 {
		dpr = 1
	}
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.touches = s.touches[:0]
	for _, id := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		s.touches = append(s.touches, Vec2{float64(tx) / dpr, float64(ty) / dpr})
	}

	var pos Vec2
	if len(s.touches) > 0 {
		pos = s.touches[0]
	} else if s.touching {
		// Touch just ended: keep the last touch position, not the stale cursor.
		pos = s.last
	} else {
		cx, cy := ebiten.CursorPosition()
		pos = Vec2{float64(cx) / dpr, float64(cy) / dpr}
	}
	pressed := len(s.touches) > 0 || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	mk := func(kind PointerKind) PointerEvent {
		e := PointerEvent{Kind: kind, X: pos.X, Y: pos.Y, TimestampMs: ft.Ms()}
		if len(s.touches) > 0 {
			e.Touches = append([]Vec2(nil), s.touches...)
		}
		return e
	}

	if !s.seeded {
		s.seeded = true
		s.last = pos
	} else if pos != s.last {
		buf = append(buf, mk(PointerMove))
		s.last = pos
	}
	if pressed && !s.pressed {
		buf = append(buf, mk(PointerDown))
	} else if !pressed && s.pressed {
		buf = append(buf, mk(PointerUp))
	}
	s.pressed = pressed
	s.touching = len(s.touches) > 0
	return buf
}
