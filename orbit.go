package metaball

import "github.com/chewxy/math32"

// maxCenterDistance is the distance from the screen centre to a corner in
// normalized space.
const maxCenterDistance = 0.70710677

// MovementScale maps the pointer's distance from the screen centre to an
// orbit scale: a pointer at the centre yields maxScale, a pointer in a corner
// yields minScale.
func MovementScale(mouse Vec2, minScale, maxScale float32) float32 {
	d := mouse.Sub(Vec2{X: 0.5, Y: 0.5}).Length()
	closeness := 1 - Clamp(d/maxCenterDistance, 0, 1)
	return Mix(minScale, maxScale, closeness)
}

// OrbitAngle returns the orbit phase of an animated primitive at time t.
func OrbitAngle(p Primitive, t, animationSpeed float32) float32 {
	return t*p.OrbitSpeed*animationSpeed + p.PhaseOffset
}

// OrbitPosition resolves an animated primitive at time t.
//
// X mixes a double-rate sine with the base cosine; Y and Z follow the base
// rate with a quarter-turn offset between them, giving a 3D orbit instead of
// a flat ellipse. Every term has period 2π in the orbit angle.
func OrbitPosition(p Primitive, t, animationSpeed, scale float32) Vec3 {
	a := OrbitAngle(p, t, animationSpeed)
	r := p.OrbitRadius * scale
	return Vec3{
		X: r * (0.7*math32.Sin(2*a) + 0.3*math32.Cos(a)),
		Y: r * 0.8 * math32.Cos(a),
		Z: r * 0.5 * math32.Sin(a),
	}
}

// ProximityFactor returns clamp(1 - dist/threshold, 0, 1). A non-positive
// threshold degenerates to a step: 1 when dist is zero, else 0.
func ProximityFactor(dist, threshold float32) float32 {
	if threshold <= 0 {
		if dist <= 0 {
			return 1
		}
		return 0
	}
	return Clamp(1-dist/threshold, 0, 1)
}

// CursorRadius interpolates between minRadius and maxRadius by the eased
// proximity of cursor to the nearest static centre. With no static centres
// the cursor stays at minRadius.
func CursorRadius(cursor Vec3, statics []Vec3, minRadius, maxRadius, threshold float32) float32 {
	if len(statics) == 0 {
		return minRadius
	}
	closest := math32.Inf(1)
	for _, c := range statics {
		if d := cursor.Sub(c).Length(); d < closest {
			closest = d
		}
	}
	p := ProximityFactor(closest, threshold)
	return Mix(minRadius, maxRadius, HermiteEase(p))
}
