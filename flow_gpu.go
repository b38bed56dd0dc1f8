package alienkitty

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// GPUFlowBackend ping-pongs the flow field between two 8-bit textures using
// a Kage shader. Each step reads the front buffer and writes the back buffer.
type GPUFlowBackend struct {
	w, h        int
	front, back *ebiten.Image

	uniforms map[string]any
	mouse    [2]float32
	velocity [2]float32
	shaderOp ebiten.DrawRectShaderOptions
}

// NewGPUFlowBackend creates a GPU backend with a 1x1 field.
func NewGPUFlowBackend() *GPUFlowBackend {
	b := &GPUFlowBackend{uniforms: make(map[string]any, 8)}
	b.shaderOp.Blend = ebiten.BlendCopy
	b.Resize(1, 1)
	return b
}

func imageRect(w, h int) image.Rectangle {
	return image.Rect(0, 0, w, h)
}

func (b *GPUFlowBackend) newBuffer() *ebiten.Image {
	img := ebiten.NewImageWithOptions(imageRect(b.w, b.h), &ebiten.NewImageOptions{Unmanaged: true})
	img.Fill(neutralFlowColor)
	return img
}

// Resize discards both buffers and reallocates them at w×h, filled with zero.
func (b *GPUFlowBackend) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	b.release()
	b.w, b.h = w, h
	b.front = b.newBuffer()
	b.back = b.newBuffer()
}

// Size returns the field dimensions.
func (b *GPUFlowBackend) Size() (int, int) { return b.w, b.h }

// Step runs the flow shader from front into back and swaps them.
func (b *GPUFlowBackend) Step(step FlowStep) {
	if b.front == nil {
		return
	}
	b.mouse = [2]float32{float32(step.Position.X), float32(step.Position.Y)}
	b.velocity = [2]float32{float32(step.Velocity.X), float32(step.Velocity.Y)}
	b.uniforms["Mouse"] = b.mouse[:]
	b.uniforms["Velocity"] = b.velocity[:]
	b.uniforms["Aspect"] = float32(step.Aspect)
	b.uniforms["Falloff"] = float32(step.Falloff)
	b.uniforms["Alpha"] = float32(step.Alpha)
	b.uniforms["Dissipation"] = float32(step.Dissipation)
	b.uniforms["Center"] = float32(flowCenter)
	b.uniforms["DeadZone"] = float32(step.deadZone())

	b.shaderOp.Images[0] = b.front
	b.shaderOp.Uniforms = b.uniforms
	b.back.DrawRectShader(b.w, b.h, ensureFlowStepShader(), &b.shaderOp)
	b.shaderOp.Images[0] = nil
	b.front, b.back = b.back, b.front
}

// Texture returns the most recently written buffer.
func (b *GPUFlowBackend) Texture() *ebiten.Image { return b.front }

// Dispose releases both buffers.
func (b *GPUFlowBackend) Dispose() { b.release() }

func (b *GPUFlowBackend) release() {
	if b.front != nil {
		b.front.Deallocate()
		b.front = nil
	}
	if b.back != nil {
		b.back.Deallocate()
		b.back = nil
	}
}

// FlowBackendKind names a FlowBackend implementation.
type FlowBackendKind string

const (
	FlowBackendGPU FlowBackendKind = "gpu"
	FlowBackendCPU FlowBackendKind = "cpu"
)

// NewFlowBackend returns the backend named by kind. Unknown kinds use the GPU.
func NewFlowBackend(kind FlowBackendKind) FlowBackend {
	if kind == FlowBackendCPU {
		return NewCPUFlowBackend()
	}
	return NewGPUFlowBackend()
}
