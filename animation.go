package alienkitty

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors and call Update(dt) each frame. If the target
// node is disposed, the group stops immediately.
//
// There is no global animation manager. Owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. Returns true once every tween has finished.
func (g *TweenGroup) Update(dt float32) bool {
	if g.Done {
		return true
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return true
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	return allDone
}

// TweenValues creates a TweenGroup animating each field to the matching
// target over duration seconds. At most 4 fields are used.
func TweenValues(fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: min(len(fields), len(to), 4)}
	for i := 0; i < g.count; i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
	}
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := TweenValues([]*float64{&node.ScaleX, &node.ScaleY}, []float64{toSX, toSY}, duration, fn)
	g.target = node
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := TweenValues([]*float64{&node.Alpha}, []float64{to}, duration, fn)
	g.target = node
	return g
}

// tweenStep is one leg of a tweenTrack.
type tweenStep struct {
	fields   []*float64
	to       []float64
	duration float32
}

// tweenTrack plays tween steps back to back. Each step starts from the values
// its predecessor left behind.
type tweenTrack struct {
	steps   []tweenStep
	index   int
	current *TweenGroup
	fn      ease.TweenFunc
}

func newTweenTrack(fn ease.TweenFunc, steps ...tweenStep) *tweenTrack {
	return &tweenTrack{steps: steps, fn: fn}
}

// update advances the track. Leftover time from a finished step is not
// carried into the next one.
func (t *tweenTrack) update(dt float32) {
	if t.done() {
		return
	}
	if t.current == nil {
		s := t.steps[t.index]
		t.current = TweenValues(s.fields, s.to, s.duration, t.fn)
	}
	if t.current.Update(dt) {
		t.current = nil
		t.index++
	}
}

// step returns the index of the step in progress.
func (t *tweenTrack) step() int { return t.index }

func (t *tweenTrack) done() bool { return t.index >= len(t.steps) }
