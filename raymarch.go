package metaball

import "github.com/chewxy/math32"

// Sphere tracer constants. The step count is fixed because the kernel
// cannot leave its loop early without diverging from neighbouring pixels.
const (
	MaxSteps      = 16
	HitEpsilon    = 0.001
	MaxDistance   = 5
	StepScale     = 0.9
	NormalEpsilon = 0.001
)

// Ambient occlusion sample offsets along the normal.
const (
	aoNear     = 0.03
	aoFar      = 0.06
	aoStrength = 3
)

// Compositing constants.
const (
	toneKnee         = 0.8
	highlightFalloff = 4
	highlightWeight  = 0.5
	missGlowWeight   = 0.6
)

// SceneSDF evaluates the composed field at p: the active static slots, then
// the active animated slots, then the cursor, each folded in with SmoothMin.
// Inactive slots are skipped, not zeroed.
func SceneSDF(u *UniformSet, p Vec3) float32 {
	d := float32(farDistance)
	for i := 0; i < MaxStatic; i++ {
		if u.activeStatic(i) {
			s := u.Static[i]
			d = SmoothMin(d, SphereSDF(p, s.Center, s.Radius), StaticBlend)
		}
	}
	for i := 0; i < MaxAnimated; i++ {
		if u.activeAnimated(i) {
			s := u.Animated[i]
			d = SmoothMin(d, SphereSDF(p, s.Center, s.Radius), AnimatedBlend)
		}
	}
	if u.CursorEnabled {
		d = SmoothMin(d, SphereSDF(p, u.Cursor.Center, u.Cursor.Radius), u.Smoothness)
	}
	return d
}

// MarchResult is the terminal state of one ray.
type MarchResult struct {
	Hit      bool
	Distance float32 // total distance travelled
	Point    Vec3    // ray position at termination
	Steps    int     // number of advancing steps taken
}

// Escaped reports whether the ray left the scene without a hit.
func (m MarchResult) Escaped() bool { return !m.Hit }

// March sphere-traces from ro along rd. The loop always runs MaxSteps
// iterations; once hit or escaped every further step contributes nothing.
// A ray that exhausts its budget without a hit counts as escaped.
func March(u *UniformSet, ro, rd Vec3) MarchResult {
	var (
		t       float32
		hit     bool
		escaped bool
		steps   int
	)
	for i := 0; i < MaxSteps; i++ {
		d := SceneSDF(u, ro.Add(rd.Mul(t)))
		if hit || escaped {
			continue
		}
		switch {
		case d < HitEpsilon:
			hit = true
		case t > MaxDistance:
			escaped = true
		default:
			t += StepScale * d
			steps++
		}
	}
	return MarchResult{Hit: hit, Distance: t, Point: ro.Add(rd.Mul(t)), Steps: steps}
}

// Normal returns the normalized central-difference gradient of the field.
func Normal(u *UniformSet, p Vec3) Vec3 {
	const e = NormalEpsilon
	dx := SceneSDF(u, Vec3{X: p.X + e, Y: p.Y, Z: p.Z}) - SceneSDF(u, Vec3{X: p.X - e, Y: p.Y, Z: p.Z})
	dy := SceneSDF(u, Vec3{X: p.X, Y: p.Y + e, Z: p.Z}) - SceneSDF(u, Vec3{X: p.X, Y: p.Y - e, Z: p.Z})
	dz := SceneSDF(u, Vec3{X: p.X, Y: p.Y, Z: p.Z + e}) - SceneSDF(u, Vec3{X: p.X, Y: p.Y, Z: p.Z - e})
	return Vec3{X: dx, Y: dy, Z: dz}.Normalize()
}

// AmbientOcclusion is a two-tap approximation along the normal, in [0, 1].
// 1 means unoccluded.
func AmbientOcclusion(u *UniformSet, p, n Vec3) float32 {
	occ := (aoNear - SceneSDF(u, p.Add(n.Mul(aoNear)))) +
		0.5*(aoFar-SceneSDF(u, p.Add(n.Mul(aoFar))))
	return Clamp(1-aoStrength*occ, 0, 1)
}

// SoftShadow always reports a fully lit point. Ray-marched shadows do not fit
// the per-pixel budget; this is the place to add them.
func SoftShadow(_ *UniformSet, _, _ Vec3) float32 {
	return 1
}

// CursorGlow is the radial glow around the cursor for a ray starting at ro.
// It does not depend on whether the ray hit anything.
func CursorGlow(u *UniformSet, ro Vec3) float32 {
	if !u.CursorEnabled {
		return 0
	}
	d := ro.XY().Sub(u.Cursor.Center.XY()).Length()
	return u.GlowIntensity * (1 - Smoothstep(0, u.GlowRadius, d))
}

// Shade lights a surface point reached after travelling dist along the ray.
func Shade(u *UniformSet, p Vec3, dist float32) Vec3 {
	n := Normal(u, p)
	v := RayDirection.Mul(-1)
	l := u.LightDirection
	h := l.Add(v).Normalize()

	ao := AmbientOcclusion(u, p, n)
	sh := SoftShadow(u, p, l)

	diffuse := math32.Max(n.Dot(l), 0) * u.Diffuse * ao * sh
	c := u.BaseColor.Vec().Mul(u.Ambient + diffuse)

	spec := u.Specular * math32.Pow(math32.Max(n.Dot(h), 0), u.SpecularPower) * sh
	c = c.Add(u.SpecularColor.Vec().Mul(spec))

	fresnel := u.FresnelIntensity * math32.Pow(1-math32.Max(n.Dot(v), 0), u.FresnelPower)
	c = c.Add(u.RimColor.Vec().Mul(fresnel))

	if u.CursorEnabled {
		hl := u.GlowIntensity * math32.Exp(-p.Sub(u.Cursor.Center).Length()*highlightFalloff) * highlightWeight
		c = c.Add(u.GlowColor.Vec().Mul(hl))
	}

	c = Vec3{
		X: math32.Pow(math32.Max(c.X, 0), u.Contrast),
		Y: math32.Pow(math32.Max(c.Y, 0), u.Contrast),
		Z: math32.Pow(math32.Max(c.Z, 0), u.Contrast),
	}
	c = Vec3{X: c.X / (c.X + toneKnee), Y: c.Y / (c.Y + toneKnee), Z: c.Z / (c.Z + toneKnee)}

	fog := 1 - math32.Exp(-dist*u.FogDensity)
	return c.Lerp(u.BackgroundColor.Vec(), fog)
}

// EvaluatePixel is the full per-pixel kernel for a normalized screen
// coordinate. Alpha is 1 on a hit, otherwise the glow intensity.
func EvaluatePixel(u *UniformSet, uv Vec2) RGBA {
	ro := RayOrigin(uv, u.Aspect)
	m := March(u, ro, RayDirection)
	glow := CursorGlow(u, ro)

	if m.Hit {
		c := Shade(u, m.Point, m.Distance).Add(u.GlowColor.Vec().Mul(glow))
		return RGBA{R: Clamp(c.X, 0, 1), G: Clamp(c.Y, 0, 1), B: Clamp(c.Z, 0, 1), A: 1}
	}
	c := u.GlowColor.Vec().Mul(glow * missGlowWeight)
	return RGBA{R: Clamp(c.X, 0, 1), G: Clamp(c.Y, 0, 1), B: Clamp(c.Z, 0, 1), A: Clamp(glow, 0, 1)}
}
