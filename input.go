package alienkitty

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Defaults for HitTestConfig.
const (
	DefaultHitTestRate      = 10
	DefaultClickMaxMs       = 250
	DefaultClickMaxDistance = 50
)

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// CursorSetter switches the pointer affordance shown over interactive nodes.
type CursorSetter interface {
	SetPointerCursor(pointer bool)
}

// EbitenCursor sets the system cursor shape through Ebitengine.
type EbitenCursor struct{}

// SetPointerCursor shows the hand cursor when pointer is true.
func (EbitenCursor) SetPointerCursor(pointer bool) {
	if pointer {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

// HitTestConfig configures a HitTester.
type HitTestConfig struct {
	// RatePerSecond is how often hover is re-evaluated.
	RatePerSecond float64
	// ClickMaxMs is the longest press that still counts as a click.
	ClickMaxMs float64
	// ClickMaxDistance is the largest press-to-release displacement, in
	// logical pixels, that still counts as a click.
	ClickMaxDistance float64
	// TouchPrimary disables throttled hover tests. Presses still hit-test.
	TouchPrimary bool
}

// DefaultHitTestConfig returns the stock hit-test configuration.
func DefaultHitTestConfig() HitTestConfig {
	return HitTestConfig{
		RatePerSecond:    DefaultHitTestRate,
		ClickMaxMs:       DefaultClickMaxMs,
		ClickMaxDistance: DefaultClickMaxDistance,
	}
}

// InteractionType identifies a resolved interaction.
type InteractionType uint8

const (
	EventHoverOver InteractionType = iota
	EventHoverOut
	EventClick
)

func (t InteractionType) String() string {
	switch t {
	case EventHoverOver:
		return "over"
	case EventHoverOut:
		return "out"
	default:
		return "click"
	}
}

// InteractionEvent is a hover transition or click as seen by an EventSink.
// X and Y are the pointer position in logical pixels.
type InteractionEvent struct {
	Type        InteractionType
	Node        *Node
	X, Y        float64
	TimestampMs float64
}

// EventSink receives every interaction the HitTester resolves, after the
// node callbacks have run.
type EventSink interface {
	EmitEvent(InteractionEvent)
}

// hitEntry pairs a registered node with the node reported when it is hit.
type hitEntry struct {
	node  *Node
	owner *Node
}

// HitTester resolves the pointer against registered nodes at a throttled rate
// and turns the result into hover transitions and clicks.
type HitTester struct {
	cfg      HitTestConfig
	viewport *Viewport
	cursor   CursorSetter
	entries  []hitEntry
	enabled  bool

	pointer    Vec2
	hasPointer bool
	lastTest   float64
	tested     bool

	hover *Node
	click *Node

	down       bool
	downTimeMs float64
	downPos    Vec2

	tests  int
	sink   EventSink
	lastMs float64
}

// NewHitTester creates a hit tester resolving pointer positions through
// viewport's camera. A nil cursor leaves the system cursor untouched.
func NewHitTester(cfg HitTestConfig, viewport *Viewport, cursor CursorSetter) *HitTester {
	def := DefaultHitTestConfig()
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = def.RatePerSecond
	}
	if cfg.ClickMaxMs <= 0 {
		cfg.ClickMaxMs = def.ClickMaxMs
	}
	if cfg.ClickMaxDistance <= 0 {
		cfg.ClickMaxDistance = def.ClickMaxDistance
	}
	return &HitTester{cfg: cfg, viewport: viewport, cursor: cursor, enabled: true}
}

// Add registers n for hit testing. Registration order is test order. When
// n's parent is a hit group, hits on n report the parent.
func (h *HitTester) Add(n *Node) {
	if n == nil {
		return
	}
	for _, e := range h.entries {
		if e.node == n {
			return
		}
	}
	owner := n
	if n.Parent != nil && n.Parent.HitGroup {
		owner = n.Parent
	}
	n.Interactable = true
	h.entries = append(h.entries, hitEntry{node: n, owner: owner})
}

// Remove unregisters n. If its owner is hovered and no other entry resolves
// to it, an "out" transition fires.
func (h *HitTester) Remove(n *Node) {
	var owner *Node
	for i, e := range h.entries {
		if e.node == n {
			owner = e.owner
			copy(h.entries[i:], h.entries[i+1:])
			h.entries[len(h.entries)-1] = hitEntry{}
			h.entries = h.entries[:len(h.entries)-1]
			break
		}
	}
	if owner == nil {
		return
	}
	for _, e := range h.entries {
		if e.owner == owner {
			return
		}
	}
	if h.click == owner {
		h.click = nil
	}
	if h.hover == owner {
		h.setHover(nil)
	}
}

// Len returns the number of registered nodes.
func (h *HitTester) Len() int { return len(h.entries) }

// Hovered returns the currently hovered owner, or nil.
func (h *HitTester) Hovered() *Node { return h.hover }

// SetEnabled turns input handling on or off. Disabling clears hover.
func (h *HitTester) SetEnabled(enabled bool) {
	if h.enabled == enabled {
		return
	}
	h.enabled = enabled
	if !enabled {
		h.down = false
		h.click = nil
		h.setHover(nil)
	}
}

// SetTouchPrimary switches throttled hover testing off for touch devices.
func (h *HitTester) SetTouchPrimary(touch bool) { h.cfg.TouchPrimary = touch }

// OnPointer records a pointer event. Presses hit-test immediately; releases
// apply the click rules.
func (h *HitTester) OnPointer(e PointerEvent) {
	if !h.enabled {
		return
	}
	pos := e.Position()
	h.pointer = pos
	h.hasPointer = true
	h.lastMs = e.TimestampMs

	switch e.Kind {
	case PointerDown:
		h.down = true
		h.downTimeMs = e.TimestampMs
		h.downPos = pos
		h.test()
		h.click = h.hover
	case PointerUp:
		if !h.down {
			return
		}
		h.down = false
		target := h.click
		h.click = nil
		if e.TimestampMs-h.downTimeMs > h.cfg.ClickMaxMs {
			return
		}
		if pos.Sub(h.downPos).Len() > h.cfg.ClickMaxDistance {
			return
		}
		if target != nil && target == h.hover {
			if target.OnClick != nil {
				target.OnClick()
			}
			h.emit(EventClick, target)
		}
	}
}

// Update re-evaluates hover when the throttle interval has elapsed.
func (h *HitTester) Update(ft FrameTime) {
	if !h.enabled || h.cfg.TouchPrimary {
		return
	}
	if h.tested && ft.Time-h.lastTest < 1/h.cfg.RatePerSecond {
		return
	}
	h.tested = true
	h.lastTest = ft.Time
	h.test()
}

// HitTest returns the owner of the first registered node containing the
// logical-pixel point (x, y), or nil.
func (h *HitTester) HitTest(x, y float64) *Node {
	wx, wy := x, y
	if h.viewport != nil {
		_, _, dpr := h.viewport.Size()
		wx, wy = h.viewport.Camera().ScreenToWorld(x*dpr, y*dpr)
	}
	for _, e := range h.entries {
		if !e.node.Interactable || !visibleInTree(e.node) {
			continue
		}
		lx, ly := e.node.WorldToLocal(wx, wy)
		if nodeContainsLocal(e.node, lx, ly) {
			return e.owner
		}
	}
	return nil
}

// Tests returns and resets the number of hit tests run since the last call.
func (h *HitTester) Tests() int {
	n := h.tests
	h.tests = 0
	return n
}

func (h *HitTester) test() {
	h.tests++
	var hit *Node
	if h.hasPointer {
		hit = h.HitTest(h.pointer.X, h.pointer.Y)
	}
	if hit != h.hover {
		h.setHover(hit)
	}
}

// setHover fires "out" on the previous target, then "over" on the new one.
func (h *HitTester) setHover(n *Node) {
	if n == h.hover {
		return
	}
	if prev := h.hover; prev != nil {
		h.hover = nil
		if prev.OnHover != nil {
			prev.OnHover(HoverEvent{Type: HoverOut, Node: prev})
		}
		h.emit(EventHoverOut, prev)
	}
	h.hover = n
	if n != nil {
		if n.OnHover != nil {
			n.OnHover(HoverEvent{Type: HoverOver, Node: n})
		}
		h.emit(EventHoverOver, n)
		if h.cursor != nil {
			h.cursor.SetPointerCursor(true)
		}
		return
	}
	if h.cursor != nil {
		h.cursor.SetPointerCursor(false)
	}
}

// SetEventSink routes resolved interactions to sink. Nil disables it.
func (h *HitTester) SetEventSink(sink EventSink) { h.sink = sink }

func (h *HitTester) emit(t InteractionType, n *Node) {
	if h.sink == nil {
		return
	}
	h.sink.EmitEvent(InteractionEvent{
		Type:        t,
		Node:        n,
		X:           h.pointer.X,
		Y:           h.pointer.Y,
		TimestampMs: h.lastMs,
	})
}

// Dispose clears hover and drops all registrations.
func (h *HitTester) Dispose() {
	h.setHover(nil)
	h.entries = nil
	h.click = nil
	h.enabled = false
	h.sink = nil
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's dimensions.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

func visibleInTree(n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible || p.disposed {
			return false
		}
	}
	return true
}
