package metaball

import (
	"sync"

	"github.com/gogpu/metaball/internal/shader"
)

// KernelWorkgroupSize is the edge length of the compute workgroup.
const KernelWorkgroupSize = 8

// KernelProgram is the generated GPU kernel. It is built once per process;
// scenes only ever change uniform values.
type KernelProgram struct {
	// Source is the WGSL source.
	Source string

	// SPIRV is the compiled form, nil when naga could not compile Source.
	SPIRV []uint32

	// Err records why SPIRV (or Source) is missing.
	Err error
}

var (
	kernelOnce sync.Once
	kernelProg KernelProgram
)

// kernelParams mirrors the constants of the CPU port into the template.
func kernelParams() shader.Params {
	return shader.Params{
		MaxStatic:        MaxStatic,
		MaxAnimated:      MaxAnimated,
		MaxSteps:         MaxSteps,
		WorkgroupSize:    KernelWorkgroupSize,
		RenderSpaceScale: RenderSpaceScale,
		RayStartDepth:    RayStartDepth,
		FarDistance:      farDistance,
		StaticBlend:      StaticBlend,
		AnimatedBlend:    AnimatedBlend,
		HitEpsilon:       HitEpsilon,
		MaxDistance:      MaxDistance,
		StepScale:        StepScale,
		NormalEpsilon:    NormalEpsilon,
		AONear:           aoNear,
		AOFar:            aoFar,
		AOStrength:       aoStrength,
		ToneKnee:         toneKnee,
		HighlightFalloff: highlightFalloff,
		HighlightWeight:  highlightWeight,
		MissGlowWeight:   missGlowWeight,
	}
}

// Kernel returns the process-wide kernel, building it on first use.
func Kernel() *KernelProgram {
	kernelOnce.Do(func() {
		prog, err := shader.Compile(kernelParams())
		if prog != nil {
			kernelProg.Source = prog.Source
			kernelProg.SPIRV = prog.SPIRV
		}
		kernelProg.Err = err
		if err != nil {
			Logger().Warn("metaball: kernel compilation incomplete", "err", err,
				"wgsl", kernelProg.Source != "")
			return
		}
		Logger().Debug("metaball: kernel built", "spirvWords", len(kernelProg.SPIRV))
	})
	return &kernelProg
}
