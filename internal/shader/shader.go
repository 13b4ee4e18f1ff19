package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/gogpu/naga"
)

//go:embed raymarch.wgsl.tmpl
var raymarchTemplate string

// EntryPoint is the compute entry point of the kernel.
const EntryPoint = "main"

// Params are the build-time constants of the kernel.
type Params struct {
	MaxStatic   int
	MaxAnimated int
	MaxSteps    int

	// WorkgroupSize is the edge length of the square compute workgroup.
	WorkgroupSize int

	RenderSpaceScale float32
	RayStartDepth    float32
	FarDistance      float32

	StaticBlend   float32
	AnimatedBlend float32

	HitEpsilon    float32
	MaxDistance   float32
	StepScale     float32
	NormalEpsilon float32

	AONear     float32
	AOFar      float32
	AOStrength float32

	ToneKnee         float32
	HighlightFalloff float32
	HighlightWeight  float32
	MissGlowWeight   float32
}

// templateData adds the unrolling ranges to Params.
type templateData struct {
	Params
	StaticSlots   []int
	AnimatedSlots []int
	Steps         []int
}

// Validate reports parameter combinations the kernel cannot express.
func (p Params) Validate() error {
	switch {
	case p.MaxStatic <= 0 || p.MaxAnimated <= 0:
		return errors.New("shader: slot capacities must be positive")
	case p.MaxSteps <= 0:
		return errors.New("shader: step count must be positive")
	case p.WorkgroupSize <= 0:
		return errors.New("shader: workgroup size must be positive")
	}
	return nil
}

var tmpl = template.Must(template.New("raymarch").Funcs(template.FuncMap{
	"f": formatFloat,
}).Parse(raymarchTemplate))

// formatFloat renders a WGSL f32 literal. WGSL requires a decimal point or
// exponent to type a literal as float.
func formatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Generate expands the kernel template.
func Generate(p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	err := tmpl.Execute(&b, templateData{
		Params:        p,
		StaticSlots:   indices(p.MaxStatic),
		AnimatedSlots: indices(p.MaxAnimated),
		Steps:         indices(p.MaxSteps),
	})
	if err != nil {
		return "", fmt.Errorf("shader: expand template: %w", err)
	}
	return b.String(), nil
}

// Program is a generated kernel.
type Program struct {
	// Source is the WGSL source.
	Source string

	// SPIRV is the naga output as little-endian words. Nil when compilation
	// failed.
	SPIRV []uint32
}

// Compile generates the kernel and compiles it to SPIR-V.
// On a naga failure the returned Program still carries the WGSL source
// together with the error, so callers able to consume WGSL directly can
// proceed.
func Compile(p Params) (*Program, error) {
	src, err := Generate(p)
	if err != nil {
		return nil, err
	}
	prog := &Program{Source: src}

	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return prog, fmt.Errorf("shader: compile raymarch kernel: %w", err)
	}
	prog.SPIRV = bytesToWords(spirvBytes)
	return prog, nil
}

// bytesToWords converts SPIR-V bytes to little-endian 32-bit words.
func bytesToWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
