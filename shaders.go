package alienkitty

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Flow values are stored biased in 8-bit
// channels: stored = v*0.5 + Center, with Center = 128/255 so zero is exact.

const flowStepShaderSrc = `//kage:unit pixels
package main

var Mouse vec2
var Velocity vec2
var Aspect float
var Falloff float
var Alpha float
var Dissipation float
var Center float
var DeadZone float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	uv := (src - imageSrc0Origin()) / imageSrc0Size()
	uv.y = 1 - uv.y

	prev := (imageSrc0At(src).rgb - vec3(Center)) * 2

	cursor := uv - Mouse
	cursor.x *= Aspect

	stamp := vec3(Velocity.x, -Velocity.y, 1 - pow(1 - min(1, length(Velocity)), 3))
	weight := (1 - smoothstep(0, Falloff, length(cursor))) * Alpha

	v := prev*Dissipation + stamp*weight
	// Values that 8-bit rounding would hold in place are flushed to zero.
	v *= step(vec3(DeadZone), abs(v))
	return vec4(clamp(v*0.5+vec3(Center), vec3(0), vec3(1)), 1)
}
`

const compositeShaderSrc = `//kage:unit pixels
package main

var UVStrength float
var ChromaStrength float
var Sign float
var Center float
var DeadZone float
var Fade float
var Background vec4

func sceneAt(uv vec2) vec4 {
	p := vec2(uv.x, 1-uv.y) * imageSrc0Size()
	return imageSrc0At(p + imageSrc0Origin())
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	local := src - imageSrc0Origin()
	vuv := local / imageSrc0Size()
	vuv.y = 1 - vuv.y

	flow := (imageSrc1At(local+imageSrc1Origin()).rgb - vec3(Center)) * 2
	flow *= step(vec3(DeadZone), abs(flow))

	uv := vuv + Sign*flow.xy*UVStrength

	angle := length(vuv - vec2(0.5))
	amount := flow.z * ChromaStrength
	offset := vec2(cos(angle), sin(angle)) * amount

	r := sceneAt(uv + offset)
	g := sceneAt(uv)
	b := sceneAt(uv - offset)
	return mix(Background, vec4(r.r, g.g, b.b, g.a), Fade)
}
`

// --- Lazy shader compilation ---

var (
	flowStepShader  *ebiten.Shader
	compositeShader *ebiten.Shader
)

func ensureFlowStepShader() *ebiten.Shader {
	if flowStepShader == nil {
		s, err := ebiten.NewShader([]byte(flowStepShaderSrc))
		if err != nil {
			panic("alienkitty: failed to compile flow step shader: " + err.Error())
		}
		flowStepShader = s
	}
	return flowStepShader
}

func ensureCompositeShader() *ebiten.Shader {
	if compositeShader == nil {
		s, err := ebiten.NewShader([]byte(compositeShaderSrc))
		if err != nil {
			panic("alienkitty: failed to compile composite shader: " + err.Error())
		}
		compositeShader = s
	}
	return compositeShader
}
