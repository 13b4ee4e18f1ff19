package metaball

import "testing"

func TestDefaultSceneOptions(t *testing.T) {
	o := defaultSceneOptions()
	if o.animationSpeed != 1 || !o.proximity {
		t.Errorf("animationSpeed = %v, proximity = %v", o.animationSpeed, o.proximity)
	}
	if o.radiusMin != 0.15 || o.radiusMax != 0.35 || o.proximityThreshold != 1.5 {
		t.Errorf("proximity defaults = %v/%v/%v", o.radiusMin, o.radiusMax, o.proximityThreshold)
	}
	if o.movementMin != 0.6 || o.movementMax != 1.2 {
		t.Errorf("movement defaults = %v/%v", o.movementMin, o.movementMax)
	}
	if o.camera == nil {
		t.Error("default options have no camera")
	}
}

func TestSceneOptions(t *testing.T) {
	o := defaultSceneOptions()
	for _, opt := range []SceneOption{
		WithPreset("neon"),
		WithSmoothness(-1),
		WithMovementScale(0.5, 2),
		WithProximity(false, 0.1, 0.2, 3),
		WithMouseSmoothing(0.5),
		WithUserAgent("ua"),
		WithCoreCount(2),
		WithWorkers(3),
		WithViewport(640, 480),
	} {
		opt(&o)
	}

	if o.preset != "neon" {
		t.Errorf("preset = %q", o.preset)
	}
	if !o.hasSmoothness || o.smoothness != 0 {
		t.Errorf("negative smoothness should clamp to 0, got %v", o.smoothness)
	}
	if o.movementMin != 0.5 || o.movementMax != 2 {
		t.Errorf("movement = %v/%v", o.movementMin, o.movementMax)
	}
	if o.proximity || o.radiusMin != 0.1 || o.radiusMax != 0.2 || o.proximityThreshold != 3 {
		t.Error("WithProximity not applied")
	}
	if o.mouseSmoothing != 0.5 || o.userAgent != "ua" || o.cores != 2 || o.workers != 3 {
		t.Error("scalar options not applied")
	}
	if o.width != 640 || o.height != 480 {
		t.Errorf("viewport = %dx%d", o.width, o.height)
	}
}

func TestWithPrimitivesCopies(t *testing.T) {
	prims := []Primitive{Cursor(0.2)}
	o := defaultSceneOptions()
	WithPrimitives(prims...)(&o)
	prims[0].Radius = 9
	if o.primitives[0].Radius != 0.2 {
		t.Error("WithPrimitives aliases the caller's slice")
	}
}

func TestNewSceneRejectsInvalidBounds(t *testing.T) {
	tests := []struct {
		name string
		opt  SceneOption
	}{
		{"radius inverted", WithProximity(true, 0.5, 0.1, 1)},
		{"radius negative", WithProximity(true, -0.1, 0.1, 1)},
		{"movement inverted", WithMovementScale(2, 1)},
		{"negative workers", WithWorkers(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s, err := NewScene(tt.opt); err == nil {
				s.Close()
				t.Error("NewScene() succeeded, want error")
			}
		})
	}
}
