package alienkitty

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// CPUFlowBackend keeps the flow field in float32 memory and uploads it to a
// texture on demand. Values are not quantized between steps.
type CPUFlowBackend struct {
	w, h   int
	field  []float32 // 3 per cell: vx, vy, speed
	pixels []byte
	tex    *ebiten.Image
	dirty  bool
	zero   bool
}

// NewCPUFlowBackend creates a CPU backend with a 1x1 field.
func NewCPUFlowBackend() *CPUFlowBackend {
	b := &CPUFlowBackend{}
	b.Resize(1, 1)
	return b
}

// Resize discards the field and reallocates it at w×h cells.
func (b *CPUFlowBackend) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	b.w, b.h = w, h
	b.field = make([]float32, w*h*3)
	b.pixels = nil
	if b.tex != nil {
		b.tex.Deallocate()
		b.tex = nil
	}
	b.dirty = true
	b.zero = true
}

// Size returns the field dimensions.
func (b *CPUFlowBackend) Size() (int, int) { return b.w, b.h }

// Step decays every cell and adds the splat. Only cells inside the splat's
// bounding box are evaluated for injection.
func (b *CPUFlowBackend) Step(step FlowStep) {
	d := float32(step.Dissipation)
	if !b.zero {
		nonzero := false
		for i, v := range b.field {
			v *= d
			if v != 0 {
				nonzero = true
			}
			b.field[i] = v
		}
		b.zero = !nonzero
	}
	b.dirty = true

	if step.Alpha <= 0 || step.Falloff <= 0 || step.Aspect <= 0 {
		return
	}
	vx, vy, speed := step.stamp()
	if vx == 0 && vy == 0 && speed == 0 {
		return
	}

	// Splat support in normalized units.
	ru := step.Falloff / step.Aspect
	rv := step.Falloff
	fw, fh := float64(b.w), float64(b.h)
	x0 := int(math.Floor((step.Position.X-ru)*fw - 0.5))
	x1 := int(math.Ceil((step.Position.X+ru)*fw - 0.5))
	// Row y maps to v = 1 - (y+0.5)/h.
	y0 := int(math.Floor((1-step.Position.Y-rv)*fh - 0.5))
	y1 := int(math.Ceil((1-step.Position.Y+rv)*fh - 0.5))
	x0, x1 = clamp(x0, 0, b.w-1), clamp(x1, 0, b.w-1)
	y0, y1 = clamp(y0, 0, b.h-1), clamp(y1, 0, b.h-1)
	if step.Position.X+ru < 0 || step.Position.X-ru > 1 ||
		step.Position.Y+rv < 0 || step.Position.Y-rv > 1 {
		return
	}

	for y := y0; y <= y1; y++ {
		v := 1 - (float64(y)+0.5)/fh
		row := y * b.w * 3
		for x := x0; x <= x1; x++ {
			u := (float64(x) + 0.5) / fw
			wgt := step.weight(u, v)
			if wgt <= 0 {
				continue
			}
			i := row + x*3
			b.field[i] += float32(vx * wgt)
			b.field[i+1] += float32(vy * wgt)
			b.field[i+2] += float32(speed * wgt)
			b.zero = false
		}
	}
}

// At returns the field value at cell (x, y), row 0 at the top.
func (b *CPUFlowBackend) At(x, y int) (vx, vy, speed float32) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return 0, 0, 0
	}
	i := (y*b.w + x) * 3
	return b.field[i], b.field[i+1], b.field[i+2]
}

// Peak returns the largest absolute component anywhere in the field.
func (b *CPUFlowBackend) Peak() float32 {
	var peak float32
	for _, v := range b.field {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Texture encodes the field into the biased 8-bit format and uploads it.
func (b *CPUFlowBackend) Texture() *ebiten.Image {
	if b.tex == nil {
		b.tex = ebiten.NewImageWithOptions(
			imageRect(b.w, b.h),
			&ebiten.NewImageOptions{Unmanaged: true},
		)
		b.dirty = true
	}
	if !b.dirty {
		return b.tex
	}
	if b.pixels == nil {
		b.pixels = make([]byte, b.w*b.h*4)
	}
	for c := 0; c < b.w*b.h; c++ {
		b.pixels[c*4] = encodeFlow(b.field[c*3])
		b.pixels[c*4+1] = encodeFlow(b.field[c*3+1])
		b.pixels[c*4+2] = encodeFlow(b.field[c*3+2])
		b.pixels[c*4+3] = 0xff
	}
	b.tex.WritePixels(b.pixels)
	b.dirty = false
	return b.tex
}

// Dispose releases the uploaded texture.
func (b *CPUFlowBackend) Dispose() {
	if b.tex != nil {
		b.tex.Deallocate()
		b.tex = nil
	}
	b.field = nil
	b.pixels = nil
}

// encodeFlow maps a decoded value to its biased 8-bit representation.
func encodeFlow(v float32) uint8 {
	s := float64(v)*0.5 + flowCenter
	return uint8(clamp(s, 0, 1)*255 + 0.5)
}

// decodeFlow is the inverse of encodeFlow.
func decodeFlow(b uint8) float64 {
	return (float64(b)/255 - flowCenter) * 2
}

// neutralFlowColor is the stored color of a zero cell.
var neutralFlowColor = color.RGBA{128, 128, 128, 255}
