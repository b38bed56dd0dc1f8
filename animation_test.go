package alienkitty

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenValuesReachesTarget(t *testing.T) {
	a, b := 0.0, 10.0
	g := TweenValues([]*float64{&a, &b}, []float64{1, 0}, 0.5, ease.Linear)

	if g.Update(0.25) {
		t.Fatal("finished too early")
	}
	if !approxEqual(a, 0.5, 1e-6) || !approxEqual(b, 5, 1e-5) {
		t.Errorf("midway = (%v,%v), want (0.5,5)", a, b)
	}
	if !g.Update(0.3) {
		t.Fatal("expected finished")
	}
	if a != 1 || b != 0 {
		t.Errorf("final = (%v,%v), want (1,0)", a, b)
	}
	if !g.Update(1) || !g.Done {
		t.Error("finished group should stay done")
	}
}

func TestTweenValuesCapsFields(t *testing.T) {
	v := make([]float64, 6)
	fields := make([]*float64, len(v))
	for i := range v {
		fields[i] = &v[i]
	}
	g := TweenValues(fields, []float64{1, 1, 1, 1, 1, 1}, 0.1, ease.Linear)
	g.Update(1)
	if v[3] != 1 || v[4] != 0 {
		t.Errorf("values = %v, want only the first 4 animated", v)
	}
}

func TestTweenAlphaStopsOnDisposedNode(t *testing.T) {
	n := NewSprite("n", nil)
	g := TweenAlpha(n, 0, 1, ease.Linear)
	g.Update(0.5)
	n.Dispose()
	if !g.Update(0.1) {
		t.Error("tween on a disposed node should finish")
	}
}

func TestTweenScaleMarksDirty(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	s.Root().AddChild(n)
	s.UpdateTransforms()

	g := TweenScale(n, 2, 3, 0.1, ease.Linear)
	g.Update(0.2)
	s.UpdateTransforms()
	wx, wy := n.LocalToWorld(1, 1)
	if !approxEqual(wx, 2, 1e-6) || !approxEqual(wy, 3, 1e-6) {
		t.Errorf("scaled corner = (%v,%v), want (2,3)", wx, wy)
	}
}

func TestTweenTrackPlaysStepsInOrder(t *testing.T) {
	v := 0.0
	tr := newTweenTrack(ease.Linear,
		tweenStep{fields: []*float64{&v}, to: []float64{1}, duration: 0.1},
		tweenStep{fields: []*float64{&v}, to: []float64{-1}, duration: 0.2},
	)
	tr.update(0.1)
	if tr.step() != 1 || v != 1 {
		t.Fatalf("after first leg step=%d v=%v", tr.step(), v)
	}
	tr.update(0.1)
	if !approxEqual(v, 0, 1e-6) {
		t.Errorf("midway through second leg v = %v, want 0", v)
	}
	tr.update(0.1)
	if !tr.done() || v != -1 {
		t.Errorf("done=%v v=%v, want done and -1", tr.done(), v)
	}
	tr.update(1) // no-op once done
}
