package alienkitty

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 64

// Scene owns the node tree and its render command buffer.
type Scene struct {
	root     *Node
	commands []RenderCommand
	debug    bool
	stats    *frameStats
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	return &Scene{
		root:     root,
		commands: make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update runs every node's OnUpdate in tree order, then refreshes world
// transforms so hit testing sees this frame's positions.
func (s *Scene) Update(ft FrameTime) {
	dt := ft.Delta / 1000
	updateNodes(s.root, dt)
	s.UpdateTransforms()
}

// UpdateTransforms refreshes world transforms and alpha for the whole tree.
func (s *Scene) UpdateTransforms() {
	updateWorldTransform(s.root, identityTransform, 1, false)
}

func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		updateNodes(child, dt)
	}
}

// Draw traverses the tree and draws it into target through cam. The target
// is not cleared.
func (s *Scene) Draw(target *ebiten.Image, cam *Camera) {
	s.commands = s.commands[:0]

	view := identityTransform
	if cam != nil {
		view = cam.computeViewMatrix()
	}
	density := abs(view[0])
	if density == 0 {
		density = 1
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.traverse(s.root, identityTransform, 1, false, density)
	s.submit(target, view)

	if s.debug && s.stats != nil {
		s.stats.scene += time.Since(t0)
		s.stats.commands += len(s.commands)
	}
}

// SetDebugMode enables or disables debug checks and per-frame stats.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set debug flag so that node
// operations, which lack a Scene pointer, can check it cheaply.
var globalDebug bool
