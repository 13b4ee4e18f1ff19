package metaball

import "runtime"

// SceneOption configures a Scene during creation.
//
// Example:
//
//	sc, err := metaball.NewScene(
//	    metaball.WithPreset("neon"),
//	    metaball.WithPrimitives(
//	        metaball.StaticAt("center", 0.4),
//	        metaball.Animated(0.8, 0.5, 0, 0.2),
//	        metaball.Cursor(0.2),
//	    ),
//	    metaball.WithViewport(1280, 720),
//	)
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	primitives []Primitive
	preset     string

	// smoothness overrides the preset's cursor blend when set.
	smoothness    float32
	hasSmoothness bool

	animationSpeed float32
	movementMin    float32
	movementMax    float32

	proximity          bool
	radiusMin          float32
	radiusMax          float32
	proximityThreshold float32

	mouseSmoothing float32

	userAgent string
	cores     int
	workers   int

	evaluator Evaluator
	camera    *Camera
	width     int
	height    int
}

func defaultSceneOptions() sceneOptions {
	return sceneOptions{
		animationSpeed:     1,
		movementMin:        0.6,
		movementMax:        1.2,
		proximity:          true,
		radiusMin:          0.15,
		radiusMax:          0.35,
		proximityThreshold: 1.5,
		mouseSmoothing:     DefaultMouseSmoothing,
		cores:              runtime.NumCPU(),
		camera:             DefaultCamera(),
	}
}

// WithPrimitives sets the authored primitive list.
func WithPrimitives(prims ...Primitive) SceneOption {
	return func(o *sceneOptions) {
		o.primitives = append([]Primitive(nil), prims...)
	}
}

// WithPreset selects the initial preset by name. The default is
// "holographic", or "minimal" on low-power devices.
func WithPreset(name string) SceneOption {
	return func(o *sceneOptions) {
		o.preset = name
	}
}

// WithSmoothness sets the cursor blend constant, overriding the preset's.
func WithSmoothness(k float32) SceneOption {
	return func(o *sceneOptions) {
		o.smoothness = max(k, 0)
		o.hasSmoothness = true
	}
}

// WithAnimationSpeed scales the orbit speed of every animated primitive.
func WithAnimationSpeed(speed float32) SceneOption {
	return func(o *sceneOptions) {
		o.animationSpeed = speed
	}
}

// WithMovementScale sets the orbit scale bounds. A pointer in a corner
// yields minScale, a pointer at the centre maxScale.
func WithMovementScale(minScale, maxScale float32) SceneOption {
	return func(o *sceneOptions) {
		o.movementMin, o.movementMax = minScale, maxScale
	}
}

// WithProximity configures the cursor radius effect. When enabled the cursor
// radius grows from radiusMin to radiusMax as it approaches a static sphere
// closer than threshold. When disabled the cursor keeps its authored radius.
func WithProximity(enabled bool, radiusMin, radiusMax, threshold float32) SceneOption {
	return func(o *sceneOptions) {
		o.proximity = enabled
		o.radiusMin, o.radiusMax = radiusMin, radiusMax
		o.proximityThreshold = threshold
	}
}

// WithMouseSmoothing sets the per-frame pointer interpolation factor.
// 1 disables smoothing.
func WithMouseSmoothing(s float32) SceneOption {
	return func(o *sceneOptions) {
		o.mouseSmoothing = s
	}
}

// WithUserAgent supplies the user agent used for device classification.
func WithUserAgent(ua string) SceneOption {
	return func(o *sceneOptions) {
		o.userAgent = ua
	}
}

// WithCoreCount overrides the logical core count used for device
// classification. The default is runtime.NumCPU().
func WithCoreCount(n int) SceneOption {
	return func(o *sceneOptions) {
		o.cores = n
	}
}

// WithWorkers sets the CPU evaluator's worker count. The default is
// GOMAXPROCS.
func WithWorkers(n int) SceneOption {
	return func(o *sceneOptions) {
		o.workers = n
	}
}

// WithEvaluator sets a scene-owned evaluator tried before the CPU path.
// The scene closes it on Close. Without this option the registered
// evaluator, if any, is used and left open.
func WithEvaluator(e Evaluator) SceneOption {
	return func(o *sceneOptions) {
		o.evaluator = e
	}
}

// WithCamera sets the initial camera. nil leaves the scene without a camera;
// ticks are skipped until SetCamera provides one.
func WithCamera(c *Camera) SceneOption {
	return func(o *sceneOptions) {
		o.camera = c
	}
}

// WithViewport sets the initial viewport size in pixels.
func WithViewport(width, height int) SceneOption {
	return func(o *sceneOptions) {
		o.width, o.height = width, height
	}
}
