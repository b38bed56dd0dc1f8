package alienkitty

import (
	"math"
	"testing"
)

func newCPUFlow(w, h int) (*FlowSimulator, *CPUFlowBackend) {
	b := NewCPUFlowBackend()
	sim := NewFlowSimulator(DefaultFlowOptions(), b)
	sim.Resize(w, h)
	return sim, b
}

func TestFlowStepStamp(t *testing.T) {
	tests := []struct {
		name      string
		v         Vec2
		wantSpeed float64
	}{
		{"rest", Vec2{}, 0},
		{"unit", Vec2{1, 0}, 1},
		{"half", Vec2{0, 0.5}, 1 - 0.125},
		{"clamped", Vec2{3, 4}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vx, vy, speed := FlowStep{Velocity: tt.v}.stamp()
			if vx != tt.v.X || vy != -tt.v.Y {
				t.Errorf("stamp xy = (%v,%v), want (%v,%v)", vx, vy, tt.v.X, -tt.v.Y)
			}
			if !approxEqual(speed, tt.wantSpeed, 1e-12) {
				t.Errorf("speed = %v, want %v", speed, tt.wantSpeed)
			}
		})
	}
}

func TestFlowStepWeight(t *testing.T) {
	s := FlowStep{Position: Vec2{0.5, 0.5}, Aspect: 2, Falloff: 0.1, Alpha: 0.25}
	if got := s.weight(0.5, 0.5); !approxEqual(got, 0.25, epsilon) {
		t.Errorf("center weight = %v, want alpha 0.25", got)
	}
	// 0.05 in u is 0.1 after aspect correction: the edge of the falloff.
	if got := s.weight(0.55, 0.5); got != 0 {
		t.Errorf("edge weight = %v, want 0", got)
	}
	if got := s.weight(0.5, 0.59); got <= 0 {
		t.Errorf("inside weight = %v, want > 0", got)
	}
}

func TestFlowDeadZoneExceedsDecayStall(t *testing.T) {
	s := FlowStep{Dissipation: DefaultFlowDissipation}
	dz := s.deadZone()
	// A stored value v stalls when v - v*d rounds away to less than half a
	// step. Anything at or above the dead zone must still move.
	stall := 0.5 * flowLSB / (1 - s.Dissipation)
	if dz <= stall {
		t.Errorf("dead zone %v does not cover stall threshold %v", dz, stall)
	}
}

func TestFlowEncodeZeroIsExact(t *testing.T) {
	if got := encodeFlow(0); got != 128 {
		t.Errorf("encodeFlow(0) = %d, want 128", got)
	}
	if got := decodeFlow(128); got != 0 {
		t.Errorf("decodeFlow(128) = %v, want 0", got)
	}
	if got := encodeFlow(10); got != 255 {
		t.Errorf("encodeFlow(10) = %d, want clamped 255", got)
	}
	if got := encodeFlow(-10); got != 0 {
		t.Errorf("encodeFlow(-10) = %d, want clamped 0", got)
	}
	for _, v := range []float32{-0.5, -0.1, 0.1, 0.5} {
		back := decodeFlow(encodeFlow(v))
		if math.Abs(back-float64(v)) > flowLSB/2+1e-9 {
			t.Errorf("round trip %v -> %v exceeds half a step", v, back)
		}
	}
}

func TestFlowSplatCenteredOnPointer(t *testing.T) {
	_, b := newCPUFlow(100, 100)
	b.Step(FlowStep{
		Position:    Vec2{0.25, 0.75},
		Velocity:    Vec2{1, 0.5},
		Aspect:      1,
		Falloff:     DefaultFlowFalloff,
		Alpha:       DefaultFlowAlpha,
		Dissipation: DefaultFlowDissipation,
	})

	// u=0.25 is column 24/25, v=0.75 is row 24/25 from the top.
	vx, vy, speed := b.At(24, 24)
	if vx <= 0 || vy >= 0 || speed <= 0 {
		t.Errorf("At(24,24) = (%v,%v,%v), want vx>0 vy<0 speed>0", vx, vy, speed)
	}
	if vx, _, _ := b.At(75, 75); vx != 0 {
		t.Errorf("far cell vx = %v, want 0", vx)
	}
	if peak := b.Peak(); peak > float32(DefaultFlowAlpha)+1e-6 {
		t.Errorf("peak %v exceeds alpha * |v|", peak)
	}
}

func TestFlowDissipationConvergence(t *testing.T) {
	_, b := newCPUFlow(64, 48)
	b.Step(FlowStep{
		Position: Vec2{0.5, 0.5}, Velocity: Vec2{2, -1}, Aspect: 64.0 / 48.0,
		Falloff: DefaultFlowFalloff, Alpha: DefaultFlowAlpha, Dissipation: DefaultFlowDissipation,
	})
	initial := float64(b.Peak())
	if initial == 0 {
		t.Fatal("splat produced an empty field")
	}

	const d = DefaultFlowDissipation
	for n := 1; n <= 30; n++ {
		b.Step(FlowStep{
			Position: inactivePosition, Aspect: 64.0 / 48.0,
			Falloff: DefaultFlowFalloff, Alpha: DefaultFlowAlpha, Dissipation: d,
		})
		bound := initial * math.Pow(d, float64(n))
		if got := float64(b.Peak()); got > bound*(1+1e-5) {
			t.Fatalf("after %d frames peak %v > bound %v", n, got, bound)
		}
	}
}

func TestFlowSimulatorIdleSplatLandsOffSurface(t *testing.T) {
	sim, b := newCPUFlow(32, 32)
	sim.Step(Vec2{0.5, 0.5}, Vec2{1, 1}, 1)
	initial := float64(b.Peak())

	for n := 1; n <= 10; n++ {
		// Eased velocity is still non-zero, but the splat is at (-1,-1).
		sim.Step(inactivePosition, Vec2{}, 1)
		bound := initial * math.Pow(DefaultFlowDissipation, float64(n))
		if got := float64(b.Peak()); got > bound*(1+1e-5) {
			t.Fatalf("frame %d: peak %v > %v", n, got, bound)
		}
	}
	if sim.Velocity() == (Vec2{}) {
		t.Error("eased velocity should approach zero gradually")
	}
}

func TestFlowSimulatorEasing(t *testing.T) {
	sim, _ := newCPUFlow(8, 8)

	sim.Step(Vec2{0.5, 0.5}, Vec2{1, 0}, 1)
	if got := sim.Velocity().X; !approxEqual(got, DefaultFlowActiveBlend, epsilon) {
		t.Errorf("after active step vx = %v, want %v", got, DefaultFlowActiveBlend)
	}
	sim.Step(Vec2{0.5, 0.5}, Vec2{1, 0}, 1)
	if got := sim.Velocity().X; !approxEqual(got, 0.75, epsilon) {
		t.Errorf("after second active step vx = %v, want 0.75", got)
	}
	sim.Step(inactivePosition, Vec2{}, 1)
	want := 0.75 * (1 - DefaultFlowIdleBlend)
	if got := sim.Velocity().X; !approxEqual(got, want, epsilon) {
		t.Errorf("after idle step vx = %v, want %v", got, want)
	}
}

func TestFlowSimulatorDefaults(t *testing.T) {
	sim := NewFlowSimulator(FlowOptions{Dissipation: 1.5}, NewCPUFlowBackend())
	if sim.Options() != DefaultFlowOptions() {
		t.Errorf("Options = %+v, want defaults", sim.Options())
	}
}

func TestFlowResizeClearsField(t *testing.T) {
	sim, b := newCPUFlow(16, 16)
	sim.Step(Vec2{0.5, 0.5}, Vec2{1, 0}, 1)
	sim.Resize(20, 10)
	if w, h := b.Size(); w != 20 || h != 10 {
		t.Errorf("Size = %dx%d, want 20x10", w, h)
	}
	if b.Peak() != 0 {
		t.Error("resize should discard the field")
	}
	sim.Resize(0, -3)
	if w, h := b.Size(); w != 1 || h != 1 {
		t.Errorf("Size = %dx%d, want 1x1", w, h)
	}
}

func TestFlowDisposeIsIdempotent(t *testing.T) {
	sim, _ := newCPUFlow(4, 4)
	sim.Dispose()
	sim.Dispose()
	sim.Step(Vec2{0.5, 0.5}, Vec2{1, 0}, 1) // no-op after dispose
}

func TestNewFlowBackendKind(t *testing.T) {
	if _, ok := NewFlowBackend(FlowBackendCPU).(*CPUFlowBackend); !ok {
		t.Error("cpu kind should build a CPUFlowBackend")
	}
}
