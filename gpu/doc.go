// Package gpu registers a wgpu compute evaluator for the metaball kernel.
//
// Import it for its side effect:
//
//	import _ "github.com/gogpu/metaball/gpu"
//
// If GPU initialization fails (no Vulkan adapter, shader rejected by the
// driver) the registration is skipped with a warning and scenes render on the
// CPU. Frames the GPU cannot evaluate fall back to the CPU one at a time.
//
// Build with the nogpu tag to leave the GPU backend out entirely.
package gpu
