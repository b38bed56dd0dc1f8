package alienkitty

import "testing"

func TestGPUFlowBackendResize(t *testing.T) {
	b := NewGPUFlowBackend()
	defer b.Dispose()

	if w, h := b.Size(); w != 1 || h != 1 {
		t.Fatalf("initial size = %dx%d, want 1x1", w, h)
	}
	front, back := b.front, b.back

	b.Resize(0, -3)
	if w, h := b.Size(); w != 1 || h != 1 {
		t.Errorf("degenerate resize = %dx%d, want 1x1", w, h)
	}
	if b.front == nil || b.back == nil {
		t.Fatal("resize should allocate both buffers")
	}
	if b.front == front || b.back == back || b.front == b.back {
		t.Error("resize should reallocate both buffers separately")
	}

	b.Resize(64, 48)
	fb, bb := b.front.Bounds(), b.back.Bounds()
	if fb.Dx() != 64 || fb.Dy() != 48 || bb.Dx() != 64 || bb.Dy() != 48 {
		t.Errorf("buffers = %v and %v, want 64x48", fb, bb)
	}
	if w, h := b.Size(); w != 64 || h != 48 {
		t.Errorf("Size = %dx%d, want 64x48", w, h)
	}
}

func TestGPUFlowBackendStepSwaps(t *testing.T) {
	b := NewGPUFlowBackend()
	defer b.Dispose()
	b.Resize(32, 16)

	step := FlowStep{
		Position:    Vec2{0.5, 0.5},
		Velocity:    Vec2{0.3, 0},
		Aspect:      2,
		Falloff:     DefaultFlowFalloff,
		Alpha:       DefaultFlowAlpha,
		Dissipation: DefaultFlowDissipation,
	}
	for i := 0; i < 3; i++ {
		front, back := b.front, b.back
		b.Step(step)
		if b.Texture() != back {
			t.Fatalf("step %d: Texture should be the buffer just written", i)
		}
		if b.back != front {
			t.Fatalf("step %d: previous front should become the write target", i)
		}
		if b.shaderOp.Images[0] != nil {
			t.Fatalf("step %d: source image should be released after drawing", i)
		}
	}
}

func TestGPUFlowBackendDispose(t *testing.T) {
	b := NewGPUFlowBackend()
	b.Resize(8, 8)
	b.Dispose()
	b.Dispose()
	if b.front != nil || b.back != nil {
		t.Error("Dispose should release both buffers")
	}
	if b.Texture() != nil {
		t.Error("Texture after Dispose should be nil")
	}
	// Step on a disposed backend is a no-op.
	b.Step(FlowStep{Aspect: 1, Falloff: 0.1, Alpha: 0.25, Dissipation: 0.8})
}

func TestNewFlowBackendGPU(t *testing.T) {
	b := NewFlowBackend(FlowBackendGPU)
	defer b.Dispose()
	if _, ok := b.(*GPUFlowBackend); !ok {
		t.Errorf("NewFlowBackend(gpu) = %T", b)
	}
}
