package metaball

import "github.com/chewxy/math32"

// Camera is the host camera the fullscreen quad is sized against.
type Camera struct {
	Position Vec3
	FOV      float32 // vertical field of view in degrees
	Aspect   float32
}

// DefaultCamera returns a camera five units in front of the origin with a
// 45° vertical field of view and a 16:9 aspect.
func DefaultCamera() *Camera {
	return &Camera{Position: Vec3{Z: 5}, FOV: 45, Aspect: 16.0 / 9.0}
}

// PlaneSize returns the world-space size of a plane at z = 0 that exactly
// fills the view: height = 2·tan(fov/2)·distance, width = height·aspect.
func (c *Camera) PlaneSize() (width, height float32) {
	dist := math32.Abs(c.Position.Z)
	height = 2 * math32.Tan(c.FOV*math32.Pi/360) * dist
	return height * c.Aspect, height
}

// FrameSource is the host's per-frame clock. OnFrame registers fn to run once
// per display frame with the frame delta and total elapsed time in seconds,
// and returns a function that deregisters it.
type FrameSource interface {
	OnFrame(fn func(delta, elapsed float64)) (cancel func())
}
