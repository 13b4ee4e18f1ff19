package metaball

import "github.com/chewxy/math32"

// Blend constants for the scene fold. Animated spheres use a tighter blend so
// they read as distinct blobs before merging. The cursor blend is the live
// smoothness uniform.
const (
	StaticBlend   = 0.3
	AnimatedBlend = 0.05
)

// farDistance seeds the scene fold so an empty scene never registers a hit.
const farDistance = 1e5

// SphereSDF returns the signed distance from p to a sphere of radius r
// centred at c. Negative values are inside.
func SphereSDF(p, c Vec3, r float32) float32 {
	return p.Sub(c).Length() - r
}

// SmoothMin is the polynomial smooth minimum:
//
//	h = max(k - |a-b|, 0) / k
//	smin = min(a, b) - h*h*k*0.25
//
// The result never exceeds min(a, b) for k >= 0. For k <= 0 it is exactly
// min(a, b).
func SmoothMin(a, b, k float32) float32 {
	m := math32.Min(a, b)
	if k <= 0 {
		return m
	}
	h := math32.Max(k-math32.Abs(a-b), 0) / k
	return m - h*h*k*0.25
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// HermiteEase is the cubic ease 3t^2 - 2t^3 for t in [0, 1].
func HermiteEase(t float32) float32 {
	return t * t * (3 - 2*t)
}

// Smoothstep maps x from [edge0, edge1] onto [0, 1] with a Hermite ease.
// Degenerate edges behave like a step at edge0.
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	return HermiteEase(Clamp((x-edge0)/(edge1-edge0), 0, 1))
}
