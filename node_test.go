package alienkitty

import (
	"testing"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewContainer("c")
	if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 {
		t.Errorf("defaults = scale(%v,%v) alpha %v", n.ScaleX, n.ScaleY, n.Alpha)
	}
	if !n.Visible || !n.Renderable || n.Interactable {
		t.Error("unexpected visibility/interaction defaults")
	}
	if n.ID == 0 {
		t.Error("ID should be assigned")
	}
	if NewContainer("d").ID == n.ID {
		t.Error("IDs should be unique")
	}
	if g := NewGroup("g"); !g.HitGroup || g.Type != NodeTypeContainer {
		t.Error("NewGroup should build a hit-group container")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.AddChild(c)
	b.AddChild(c)
	if c.Parent != b {
		t.Error("parent not updated")
	}
	if a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Errorf("children a=%d b=%d, want 0 and 1", a.NumChildren(), b.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		run  func()
	}{
		{"nil child", func() { NewContainer("a").AddChild(nil) }},
		{"cycle", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"self", func() {
			a := NewContainer("a")
			a.AddChild(a)
		}},
		{"remove foreign child", func() {
			NewContainer("a").RemoveChild(NewContainer("b"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.run()
		})
	}
}

func TestRemoveFromParent(t *testing.T) {
	p := NewContainer("p")
	c1 := NewContainer("c1")
	c2 := NewContainer("c2")
	p.AddChild(c1)
	p.AddChild(c2)
	c1.RemoveFromParent()
	if c1.Parent != nil || p.NumChildren() != 1 || p.Children()[0] != c2 {
		t.Error("RemoveFromParent did not detach the child")
	}
	c1.RemoveFromParent() // no-op
}

func TestDisposeRecursive(t *testing.T) {
	root := NewContainer("root")
	p := NewContainer("p")
	c := NewSprite("c", nil)
	c.OnClick = func() {}
	root.AddChild(p)
	p.AddChild(c)

	p.Dispose()
	if !p.IsDisposed() || !c.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node still attached")
	}
	if c.OnClick != nil || c.Parent != nil {
		t.Error("disposed child kept references")
	}
	p.Dispose() // idempotent
}

func TestDebugRejectsDisposedNode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := NewContainer("n")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed node in debug mode")
		}
	}()
	s.Root().AddChild(n)
}

func TestNodeDimensions(t *testing.T) {
	s := NewSprite("s", nil)
	if w, h := nodeDimensions(s); w != 0 || h != 0 {
		t.Errorf("empty sprite = %vx%v", w, h)
	}
	s.Width, s.Height = 20, 10
	if w, h := nodeDimensions(s); w != 20 || h != 10 {
		t.Errorf("sized sprite = %vx%v", w, h)
	}
	if w, h := nodeDimensions(NewContainer("c")); w != 0 || h != 0 {
		t.Errorf("container = %vx%v", w, h)
	}
}
