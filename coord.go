package metaball

// RenderSpaceScale is the factor applied to centred coordinates. The visible
// render-space area spans [-aspect, aspect] horizontally and [-1, 1] vertically.
const RenderSpaceScale = 2

// RayStartDepth is the Z offset the kernel marches from, toward -Z.
const RayStartDepth = 1

// centered is the single shared transform term. Both ToRenderSpace and
// RayOrigin go through it so the CPU proximity math and the kernel agree
// bit for bit. The WGSL kernel spells the same expression in the same order.
func centered(v, scale float32) float32 {
	return ((v - 0.5) * scale) * RenderSpaceScale
}

// ToRenderSpace converts a normalized authoring coordinate (0-1 per axis,
// origin bottom-left) into render space:
//
//	x = (nx - 0.5) * aspect * 2
//	y = (ny - 0.5) * 2
//	z = 0
func ToRenderSpace(nx, ny, aspect float32) Vec3 {
	return Vec3{X: centered(nx, aspect), Y: centered(ny, 1), Z: 0}
}

// RayOrigin returns the point the kernel marches from for a pixel whose
// normalized screen coordinate is uv: ((uv - 0.5) * [aspect, 1]) * 2 with
// the depth pushed back by RayStartDepth.
func RayOrigin(uv Vec2, aspect float32) Vec3 {
	return Vec3{X: centered(uv.X, aspect), Y: centered(uv.Y, 1), Z: RayStartDepth}
}

// RayDirection is the fixed marching direction (orthographic, toward -Z).
var RayDirection = Vec3{X: 0, Y: 0, Z: -1}

// PixelToNormalized converts a viewport pixel position (origin top-left,
// y down) into normalized coordinates (origin bottom-left, y up).
// A zero-sized viewport maps everything to the centre.
func PixelToNormalized(px, py float64, width, height int) Vec2 {
	if width <= 0 || height <= 0 {
		return Vec2{X: 0.5, Y: 0.5}
	}
	return Vec2{
		X: float32(px / float64(width)),
		Y: float32(1 - py/float64(height)),
	}
}

// PixelCenterUV returns the normalized screen coordinate of the centre of
// pixel (x, y) in a width×height target whose row 0 is the top row.
func PixelCenterUV(x, y, width, height int) Vec2 {
	return Vec2{
		X: (float32(x) + 0.5) / float32(width),
		Y: 1 - (float32(y)+0.5)/float32(height),
	}
}
