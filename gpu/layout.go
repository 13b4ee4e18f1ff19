//go:build !nogpu

package gpu

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/metaball"
)

// bindGroupLayoutEntries describes the kernel bindings: the uniform block at
// binding 0 and the packed RGBA output at binding 1.
func bindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
	}
}

// dispatchSize returns the workgroup counts covering a w×h target.
func dispatchSize(w, h uint32) (x, y uint32) {
	const wg = metaball.KernelWorkgroupSize
	return (w + wg - 1) / wg, (h + wg - 1) / wg
}

// pixelBufferSize is the byte size of one packed u32 per pixel.
func pixelBufferSize(w, h uint32) uint64 {
	return uint64(w) * uint64(h) * 4
}

// unpackPixels copies packed RGBA words (R in the low byte) into target,
// honoring its stride.
func unpackPixels(packed []byte, target metaball.RenderTarget) {
	w := target.Width
	for y := 0; y < target.Height; y++ {
		src := packed[y*w*4:]
		dst := target.Data[y*target.Stride:]
		for x := 0; x < w; x++ {
			val := binary.LittleEndian.Uint32(src[x*4:])
			i := x * 4
			dst[i+0] = uint8(val & 0xFF)         //nolint:gosec // masked to 8 bits
			dst[i+1] = uint8((val >> 8) & 0xFF)  //nolint:gosec // masked to 8 bits
			dst[i+2] = uint8((val >> 16) & 0xFF) //nolint:gosec // masked to 8 bits
			dst[i+3] = uint8((val >> 24) & 0xFF) //nolint:gosec // masked to 8 bits
		}
	}
}
