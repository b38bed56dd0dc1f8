package alienkitty

import (
	"math"

	"golang.org/x/exp/constraints"
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func hypot(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// smoothstep matches the GLSL/Kage built-in for edge0 < edge1.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// atLeastOne rounds v to the nearest integer and clamps it to >= 1. Some hosts
// briefly report a zero-sized surface during layout.
func atLeastOne(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}
