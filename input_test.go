package alienkitty

import (
	"fmt"
	"testing"
)

type cursorRecorder struct {
	calls []bool
}

func (c *cursorRecorder) SetPointerCursor(pointer bool) {
	c.calls = append(c.calls, pointer)
}

// hitFixture builds a scene with a 1:1 viewport and a hit tester that logs
// hover transitions and clicks.
type hitFixture struct {
	scene  *Scene
	vp     *Viewport
	hits   *HitTester
	cursor *cursorRecorder
	log    []string
}

func newHitFixture(t *testing.T) *hitFixture {
	t.Helper()
	f := &hitFixture{scene: NewScene(), vp: NewViewport(), cursor: &cursorRecorder{}}
	f.vp.Resize(800, 600, 1)
	f.hits = NewHitTester(DefaultHitTestConfig(), f.vp, f.cursor)
	return f
}

func (f *hitFixture) box(name string, x, y, w, h float64) *Node {
	n := NewSprite(name, nil)
	n.Width, n.Height = w, h
	n.SetPosition(x, y)
	f.watch(n)
	f.scene.Root().AddChild(n)
	f.scene.UpdateTransforms()
	return n
}

func (f *hitFixture) watch(n *Node) {
	n.OnHover = func(e HoverEvent) {
		f.log = append(f.log, fmt.Sprintf("%s:%s", e.Type, e.Node.Name))
	}
	n.OnClick = func() {
		f.log = append(f.log, "click:"+n.Name)
	}
}

func (f *hitFixture) pointer(kind PointerKind, x, y, ms float64) {
	f.hits.OnPointer(PointerEvent{Kind: kind, X: x, Y: y, TimestampMs: ms})
}

func assertLog(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("log = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("log = %v, want %v", got, want)
		}
	}
}

func TestHitTestFirstAddedWins(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	b := f.box("B", 50, 0, 100, 100)
	f.hits.Add(a)
	f.hits.Add(b)

	for i := 0; i < 3; i++ {
		if got := f.hits.HitTest(75, 50); got != a {
			t.Fatalf("HitTest(75,50) = %v, want A", got)
		}
	}
	if got := f.hits.HitTest(125, 50); got != b {
		t.Errorf("HitTest(125,50) = %v, want B", got)
	}
	if got := f.hits.HitTest(400, 400); got != nil {
		t.Errorf("HitTest(400,400) = %v, want nil", got)
	}
}

func TestHoverTransitionOrder(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	b := f.box("B", 50, 0, 100, 100)
	f.hits.Add(a)
	f.hits.Add(b)

	f.pointer(PointerMove, 75, 50, 0)
	f.hits.Update(FrameTime{Time: 0})
	assertLog(t, f.log, "over:A")

	f.pointer(PointerMove, 125, 50, 100)
	f.hits.Update(FrameTime{Time: 0.1})
	assertLog(t, f.log, "over:A", "out:A", "over:B")

	f.pointer(PointerMove, 500, 500, 200)
	f.hits.Update(FrameTime{Time: 0.2})
	assertLog(t, f.log, "over:A", "out:A", "over:B", "out:B")

	wantCursor := []bool{true, true, false}
	if fmt.Sprint(f.cursor.calls) != fmt.Sprint(wantCursor) {
		t.Errorf("cursor calls = %v, want %v", f.cursor.calls, wantCursor)
	}
}

func TestHitTestThrottle(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	f.hits.Add(a)

	f.pointer(PointerMove, 50, 50, 0)
	f.hits.Update(FrameTime{Time: 1})
	f.pointer(PointerMove, 500, 500, 16)
	f.hits.Update(FrameTime{Time: 1.05})
	if f.hits.Hovered() != a {
		t.Error("hover changed before the throttle interval elapsed")
	}
	f.hits.Update(FrameTime{Time: 1.1})
	if f.hits.Hovered() != nil {
		t.Error("hover not cleared after the throttle interval")
	}
	if n := f.hits.Tests(); n != 2 {
		t.Errorf("Tests = %d, want 2", n)
	}
	if n := f.hits.Tests(); n != 0 {
		t.Errorf("Tests after reset = %d, want 0", n)
	}
}

func TestHitTestTouchPrimarySkipsHover(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	f.hits.Add(a)
	f.hits.SetTouchPrimary(true)

	f.pointer(PointerMove, 50, 50, 0)
	f.hits.Update(FrameTime{Time: 0})
	if f.hits.Hovered() != nil {
		t.Fatal("touch-primary should not run throttled hover tests")
	}

	// A tap still resolves and clicks.
	f.pointer(PointerDown, 50, 50, 10)
	f.pointer(PointerUp, 52, 50, 60)
	assertLog(t, f.log, "over:A", "click:A")
}

func TestClickGesture(t *testing.T) {
	tests := []struct {
		name   string
		upMs   float64
		upX    float64
		clicks bool
	}{
		{"short and close", 100, 120, true},
		{"too slow", 300, 100, false},
		{"moved too far", 50, 200, false},
		{"at the time limit", 250, 100, true},
		{"at the distance limit", 100, 150, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHitFixture(t)
			a := f.box("A", 0, 0, 400, 400)
			f.hits.Add(a)

			f.pointer(PointerDown, 100, 100, 0)
			f.pointer(PointerUp, tt.upX, 100, tt.upMs)

			clicked := len(f.log) > 0 && f.log[len(f.log)-1] == "click:A"
			if clicked != tt.clicks {
				t.Errorf("clicked = %v, want %v (log %v)", clicked, tt.clicks, f.log)
			}
		})
	}
}

func TestClickRequiresSameTarget(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	b := f.box("B", 100, 0, 100, 100)
	f.hits.Add(a)
	f.hits.Add(b)

	f.pointer(PointerDown, 90, 50, 0)
	f.pointer(PointerMove, 110, 50, 20)
	f.hits.Update(FrameTime{Time: 0})
	f.pointer(PointerUp, 110, 50, 40)

	for _, e := range f.log {
		if e == "click:A" || e == "click:B" {
			t.Fatalf("unexpected click, log %v", f.log)
		}
	}
}

func TestHitGroupResolvesToParent(t *testing.T) {
	f := newHitFixture(t)
	group := NewGroup("group")
	f.watch(group)
	f.scene.Root().AddChild(group)

	child := NewSprite("child", nil)
	child.Width, child.Height = 50, 50
	group.AddChild(child)
	group.SetPosition(200, 200)
	f.scene.UpdateTransforms()

	f.hits.Add(child)
	if got := f.hits.HitTest(225, 225); got != group {
		t.Fatalf("HitTest = %v, want group", got)
	}
	f.pointer(PointerDown, 225, 225, 0)
	f.pointer(PointerUp, 225, 225, 10)
	assertLog(t, f.log, "over:group", "click:group")
}

func TestRemoveHoveredFiresOut(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	f.hits.Add(a)
	f.pointer(PointerMove, 10, 10, 0)
	f.hits.Update(FrameTime{})

	f.hits.Remove(a)
	assertLog(t, f.log, "over:A", "out:A")
	if f.hits.Hovered() != nil {
		t.Error("hover not cleared after Remove")
	}
	if f.hits.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.hits.Len())
	}
}

func TestAddIsIdempotent(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 10, 10)
	f.hits.Add(a)
	f.hits.Add(a)
	if f.hits.Len() != 1 {
		t.Errorf("Len = %d, want 1", f.hits.Len())
	}
	if !a.Interactable {
		t.Error("Add should mark the node interactable")
	}
}

func TestEmptyRegistryIsIdle(t *testing.T) {
	f := newHitFixture(t)
	f.pointer(PointerMove, 10, 10, 0)
	f.hits.Update(FrameTime{})
	if f.hits.Hovered() != nil {
		t.Error("expected no hover with an empty registry")
	}
}

func TestHitTestSkipsInvisible(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	f.hits.Add(a)
	a.Visible = false
	if got := f.hits.HitTest(50, 50); got != nil {
		t.Errorf("HitTest = %v, want nil for invisible node", got)
	}
}

func TestHitTestDevicePixelRatio(t *testing.T) {
	f := newHitFixture(t)
	f.vp.Resize(400, 300, 2)
	a := f.box("A", 300, 200, 50, 50)
	f.hits.Add(a)
	if got := f.hits.HitTest(320, 220); got != a {
		t.Errorf("HitTest at dpr 2 = %v, want A", got)
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	f.hits.Add(a)
	f.pointer(PointerMove, 10, 10, 0)
	f.hits.Update(FrameTime{})

	f.hits.SetEnabled(false)
	assertLog(t, f.log, "over:A", "out:A")

	f.pointer(PointerDown, 10, 10, 0)
	f.pointer(PointerUp, 10, 10, 10)
	assertLog(t, f.log, "over:A", "out:A")
}

type sinkRecorder struct{ events []InteractionEvent }

func (s *sinkRecorder) EmitEvent(e InteractionEvent) { s.events = append(s.events, e) }

func TestEventSinkReceivesInteractions(t *testing.T) {
	f := newHitFixture(t)
	a := f.box("A", 0, 0, 100, 100)
	f.hits.Add(a)
	sink := &sinkRecorder{}
	f.hits.SetEventSink(sink)

	f.pointer(PointerDown, 10, 10, 0)
	f.pointer(PointerUp, 12, 10, 50)

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	if sink.events[0].Type != EventHoverOver || sink.events[1].Type != EventClick {
		t.Errorf("types = %v, %v", sink.events[0].Type, sink.events[1].Type)
	}
	if e := sink.events[1]; e.Node != a || e.X != 12 || e.TimestampMs != 50 {
		t.Errorf("click event = %+v", e)
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 10, CenterY: 10, Radius: 5}
	if !c.Contains(10, 15) {
		t.Error("edge point should be inside")
	}
	if c.Contains(16, 10) {
		t.Error("outside point reported inside")
	}
}
