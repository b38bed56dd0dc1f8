package alienkitty

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Vec2 ---

func TestVec2Lerp(t *testing.T) {
	a := Vec2{0, 10}
	b := Vec2{10, 0}
	tests := []struct {
		t    float64
		want Vec2
	}{
		{0, Vec2{0, 10}},
		{0.5, Vec2{5, 5}},
		{1, Vec2{10, 0}},
	}
	for _, tt := range tests {
		got := a.Lerp(b, tt.t)
		if !approxEqual(got.X, tt.want.X, epsilon) || !approxEqual(got.Y, tt.want.Y, epsilon) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec2LenSub(t *testing.T) {
	d := Vec2{4, 6}.Sub(Vec2{1, 2})
	if d != (Vec2{3, 4}) {
		t.Errorf("Sub = %v, want (3,4)", d)
	}
	if !approxEqual(d.Len(), 5, epsilon) {
		t.Errorf("Len = %v, want 5", d.Len())
	}
}

// --- Color ---

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if c.A != 128 {
		t.Errorf("A = %d, want 128", c.A)
	}
	if c.R != c.A {
		t.Errorf("R = %d, want premultiplied %d", c.R, c.A)
	}
	if c.B != 0 {
		t.Errorf("B = %d, want 0", c.B)
	}
}

func TestHoverTypeString(t *testing.T) {
	if HoverOver.String() != "over" || HoverOut.String() != "out" {
		t.Errorf("got %q/%q", HoverOver, HoverOut)
	}
}
