package metaball

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindStatic, "static"},
		{KindAnimated, "animated"},
		{KindCursor, "cursor"},
		{Kind(9), "Kind(9)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestRegistryPartition(t *testing.T) {
	r := NewRegistry([]Primitive{
		Animated(0.5, 1, 0, 0.2),
		StaticAt("center", 0.4),
		Cursor(0.2),
		Static(V2(0.2, 0.3), 0.3),
		Animated(0.7, 2, 1, 0.1),
	})

	if n := len(r.Static()); n != 2 {
		t.Fatalf("len(Static()) = %d, want 2", n)
	}
	if n := len(r.Animated()); n != 2 {
		t.Fatalf("len(Animated()) = %d, want 2", n)
	}
	if _, ok := r.Cursor(); !ok {
		t.Fatal("Cursor() not found")
	}
	if got := r.Static()[0].Position; got != V2(0.5, 0.5) {
		t.Errorf("anchor not resolved: %v", got)
	}
	if got := r.Animated()[1].OrbitSpeed; got != 2 {
		t.Errorf("declaration order lost: second animated speed = %v", got)
	}
	if r.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", r.Dropped())
	}
	if len(r.Authored()) != 5 {
		t.Errorf("len(Authored()) = %d, want 5", len(r.Authored()))
	}
}

func TestRegistryAnchors(t *testing.T) {
	tests := []struct {
		anchor string
		pos    Vec2
		want   Vec2
	}{
		{"top-left", Vec2{}, V2(0.25, 0.75)},
		{"BOTTOM-RIGHT", Vec2{}, V2(0.75, 0.25)},
		{"nowhere", V2(0.1, 0.9), V2(0.1, 0.9)},
		{"", V2(0.3, 0.3), V2(0.3, 0.3)},
	}
	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			p := Static(tt.pos, 0.2)
			p.Anchor = tt.anchor
			r := NewRegistry([]Primitive{p})
			if got := r.Static()[0].Position; got != tt.want {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistryOverflowWarns(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	prims := make([]Primitive, 0, 8)
	for i := 0; i < 6; i++ {
		prims = append(prims, Static(V2(float32(i)/6, 0.5), 0.2))
	}
	prims = append(prims, Cursor(0.2), Cursor(0.3))

	r := NewRegistry(prims)
	if n := len(r.Static()); n != MaxStatic {
		t.Errorf("len(Static()) = %d, want %d", n, MaxStatic)
	}
	if r.Dropped() != 3 {
		t.Errorf("Dropped() = %d, want 3", r.Dropped())
	}
	if c, _ := r.Cursor(); c.Radius != 0.2 {
		t.Errorf("first cursor should win, got radius %v", c.Radius)
	}
	out := buf.String()
	if !strings.Contains(out, "capacity exceeded") {
		t.Errorf("missing capacity warning in %q", out)
	}
	if !strings.Contains(out, "only one cursor") {
		t.Errorf("missing cursor warning in %q", out)
	}
}

// Primitives past the slot capacity must have no influence on the field.
func TestRegistryOverflowHasNoInfluence(t *testing.T) {
	six := make([]Primitive, 0, 6)
	for i := 0; i < 6; i++ {
		six = append(six, Static(V2(0.1+float32(i)*0.15, 0.5), 0.25))
	}

	full := uniformsFor(NewRegistry(six), 1)
	capped := uniformsFor(NewRegistry(six[:MaxStatic]), 1)

	// Sample around the 5th and 6th primitives, where they would matter most.
	for _, p := range []Vec3{
		ToRenderSpace(six[4].Position.X, 0.5, 1),
		ToRenderSpace(six[5].Position.X, 0.5, 1),
		V3(0.5, 0.2, 0.1),
		V3(0.9, 0, 0),
	} {
		if a, b := SceneSDF(&full, p), SceneSDF(&capped, p); a != b {
			t.Errorf("SceneSDF(%v): six primitives %v, four primitives %v", p, a, b)
		}
	}
}

func TestRegistryAccessorsReturnCopies(t *testing.T) {
	r := NewRegistry([]Primitive{StaticAt("center", 0.3), Animated(0.2, 1, 0, 0.1)})
	r.Static()[0].Position = V2(0.9, 0.9)
	r.Animated()[0].OrbitSpeed = 7

	if got := r.Static()[0].Position; got != V2(0.5, 0.5) {
		t.Errorf("static position after caller edit = %v, want (0.5, 0.5)", got)
	}
	if got := r.Animated()[0].OrbitSpeed; got != 1 {
		t.Errorf("animated speed after caller edit = %v, want 1", got)
	}
}

func TestRegistryNegativeRadiusClamped(t *testing.T) {
	r := NewRegistry([]Primitive{Static(V2(0.5, 0.5), -1)})
	if got := r.Static()[0].Radius; got != 0 {
		t.Errorf("radius = %v, want 0", got)
	}
}

func TestStaticPositions(t *testing.T) {
	r := NewRegistry([]Primitive{StaticAt("right", 0.3)})
	got := r.StaticPositions(2)
	if len(got) != 1 || !nearVec3(got[0], V3(1, 0, 0)) {
		t.Errorf("StaticPositions(2) = %v, want [(1, 0, 0)]", got)
	}
}

// uniformsFor writes the static slots of r the way a scene does.
func uniformsFor(r *Registry, aspect float32) UniformSet {
	var u UniformSet
	u.Aspect = aspect
	u.StaticCount = len(r.Static())
	for i, c := range r.StaticPositions(aspect) {
		u.Static[i] = Sphere{Center: c, Radius: r.Static()[i].Radius}
	}
	return u
}
