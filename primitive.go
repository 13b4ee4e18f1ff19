package metaball

import "fmt"

// Slot capacities of the kernel. The kernel unrolls one fold step per slot, so
// these are fixed when the shader is built.
const (
	MaxStatic   = 4
	MaxAnimated = 4
)

// Kind identifies how a primitive's position is resolved.
type Kind uint8

const (
	// KindStatic primitives sit at an authored position.
	KindStatic Kind = iota

	// KindAnimated primitives orbit the scene centre.
	KindAnimated

	// KindCursor is the sphere that follows the pointer.
	KindCursor
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindAnimated:
		return "animated"
	case KindCursor:
		return "cursor"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Primitive is a sphere contributing to the blended surface. Its identity is
// fixed once declared; only the resolved position and radius change per frame.
type Primitive struct {
	Kind   Kind
	Radius float32

	// Position is the authored location of a static primitive in [0,1]²,
	// origin bottom-left.
	Position Vec2

	// Anchor names a position preset (see PositionPresets). When set and
	// known it overrides Position.
	Anchor string

	// Orbit parameters of an animated primitive.
	OrbitRadius float32
	OrbitSpeed  float32
	PhaseOffset float32 // radians
}

// Static returns a static primitive at pos.
func Static(pos Vec2, radius float32) Primitive {
	return Primitive{Kind: KindStatic, Position: pos, Radius: radius}
}

// StaticAt returns a static primitive placed at a named position preset.
func StaticAt(anchor string, radius float32) Primitive {
	return Primitive{Kind: KindStatic, Anchor: anchor, Radius: radius}
}

// Animated returns an orbiting primitive.
func Animated(orbitRadius, speed, phase, radius float32) Primitive {
	return Primitive{
		Kind:        KindAnimated,
		Radius:      radius,
		OrbitRadius: orbitRadius,
		OrbitSpeed:  speed,
		PhaseOffset: phase,
	}
}

// Cursor returns the pointer-following primitive. radius is used when the
// proximity effect is disabled.
func Cursor(radius float32) Primitive {
	return Primitive{Kind: KindCursor, Radius: radius}
}

// PositionPresets maps anchor names to authoring-space positions.
var PositionPresets = map[string]Vec2{
	"center":       {X: 0.5, Y: 0.5},
	"top-left":     {X: 0.25, Y: 0.75},
	"top":          {X: 0.5, Y: 0.75},
	"top-right":    {X: 0.75, Y: 0.75},
	"left":         {X: 0.25, Y: 0.5},
	"right":        {X: 0.75, Y: 0.5},
	"bottom-left":  {X: 0.25, Y: 0.25},
	"bottom":       {X: 0.5, Y: 0.25},
	"bottom-right": {X: 0.75, Y: 0.25},
}

// Registry is the resolved primitive set of one scene instance.
//
// The authored list is kept verbatim. Evaluation uses the first MaxStatic
// static and the first MaxAnimated animated primitives in declaration order,
// plus the first cursor primitive.
type Registry struct {
	authored []Primitive
	static   []Primitive
	animated []Primitive
	cursor   Primitive
	hasCurs  bool
	dropped  int
}

// NewRegistry partitions prims by kind and applies slot capacities.
// Overflow is reported through the package logger, never as an error.
func NewRegistry(prims []Primitive) *Registry {
	r := &Registry{authored: append([]Primitive(nil), prims...)}
	var extraStatic, extraAnimated, extraCursor int

	for _, p := range prims {
		if p.Radius < 0 {
			p.Radius = 0
		}
		switch p.Kind {
		case KindStatic:
			if len(r.static) == MaxStatic {
				extraStatic++
				continue
			}
			p.Position = resolveAnchor(p)
			r.static = append(r.static, p)
		case KindAnimated:
			if len(r.animated) == MaxAnimated {
				extraAnimated++
				continue
			}
			r.animated = append(r.animated, p)
		case KindCursor:
			if r.hasCurs {
				extraCursor++
				continue
			}
			r.cursor = p
			r.hasCurs = true
		default:
			Logger().Warn("metaball: unknown primitive kind ignored", "kind", p.Kind)
			r.dropped++
		}
	}

	if extraStatic > 0 || extraAnimated > 0 {
		Logger().Warn("metaball: primitive capacity exceeded, extra primitives ignored",
			"static", len(r.static)+extraStatic, "animated", len(r.animated)+extraAnimated,
			"maxStatic", MaxStatic, "maxAnimated", MaxAnimated)
	}
	if extraCursor > 0 {
		Logger().Warn("metaball: only one cursor primitive is supported", "ignored", extraCursor)
	}
	r.dropped += extraStatic + extraAnimated + extraCursor
	return r
}

func resolveAnchor(p Primitive) Vec2 {
	if p.Anchor == "" {
		return p.Position
	}
	if pos, ok := PositionPresets[foldName(p.Anchor)]; ok {
		return pos
	}
	Logger().Warn("metaball: unknown position preset", "anchor", p.Anchor)
	return p.Position
}

// Authored returns a copy of the list as declared.
func (r *Registry) Authored() []Primitive {
	return append([]Primitive(nil), r.authored...)
}

// Static returns a copy of the evaluated static primitives with anchors
// resolved.
func (r *Registry) Static() []Primitive {
	return append([]Primitive(nil), r.static...)
}

// Animated returns a copy of the evaluated animated primitives.
func (r *Registry) Animated() []Primitive {
	return append([]Primitive(nil), r.animated...)
}

// Cursor returns the cursor primitive, if one was declared.
func (r *Registry) Cursor() (Primitive, bool) { return r.cursor, r.hasCurs }

// Dropped returns how many authored primitives are not evaluated.
func (r *Registry) Dropped() int { return r.dropped }

// StaticPositions projects the static primitives into render space.
func (r *Registry) StaticPositions(aspect float32) []Vec3 {
	out := make([]Vec3, len(r.static))
	for i, p := range r.static {
		out[i] = ToRenderSpace(p.Position.X, p.Position.Y, aspect)
	}
	return out
}
