package metaball

import (
	"errors"
	"fmt"
)

// ErrSceneClosed is returned when rendering a closed scene.
var ErrSceneClosed = errors.New("metaball: scene closed")

// Scene composes the metaball surface. It owns the UniformSet and pushes
// per-frame values into it; the kernel is built once and never rebuilt.
//
// A Scene has a single writer: Tick, PointerMove, Resize, SetPreset and
// SetPrimitives must be called from one goroutine (the host's frame loop).
// Render evaluates a snapshot copy, so the next frame's updates never leak
// into a frame being evaluated.
type Scene struct {
	opts    sceneOptions
	profile DeviceProfile

	registry *Registry
	mouse    *MouseTracker
	uniforms UniformSet
	preset   Preset

	camera        *Camera
	width, height int
	planeW        float32
	planeH        float32

	kernel    *KernelProgram
	cpu       *CPUEvaluator
	evaluator Evaluator
	ownsEval  bool

	cancel         func()
	frames         uint64
	skipped        uint64
	warnedNoCamera bool
	closed         bool
}

// NewScene builds a scene. The device profile is classified once here.
func NewScene(opts ...SceneOption) (*Scene, error) {
	o := defaultSceneOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		opts:    o,
		profile: ClassifyDevice(o.userAgent, o.cores),
		mouse:   NewMouseTracker(o.mouseSmoothing),
		kernel:  Kernel(),
	}
	Logger().Info("metaball: device profile", "profile", s.profile.String(),
		"cores", s.profile.Cores, "mobile", s.profile.Mobile)

	s.cpu = NewCPUEvaluator(o.workers, s.profile.RenderScale())
	if o.evaluator != nil {
		if err := o.evaluator.Init(); err != nil {
			Logger().Warn("metaball: evaluator init failed, using CPU", "name", o.evaluator.Name(), "err", err)
		} else {
			s.evaluator = o.evaluator
			s.ownsEval = true
		}
	} else {
		s.evaluator = RegisteredEvaluator()
	}

	s.uniforms.AnimationSpeed = o.animationSpeed
	s.uniforms.RadiusMin = o.radiusMin
	s.uniforms.RadiusMax = o.radiusMax
	s.uniforms.ProximityThreshold = o.proximityThreshold

	name := o.preset
	if name == "" {
		name = PresetHolographic
		if s.profile.LowPower {
			name = PresetMinimal
		}
	}
	if !s.SetPreset(name) {
		s.SetPreset(PresetHolographic)
	}

	if o.camera != nil {
		s.SetCamera(o.camera)
	}
	if o.width > 0 && o.height > 0 {
		s.Resize(o.width, o.height)
	}
	s.SetPrimitives(o.primitives)
	return s, nil
}

func (o *sceneOptions) validate() error {
	switch {
	case o.radiusMin < 0 || o.radiusMax < o.radiusMin:
		return fmt.Errorf("metaball: invalid cursor radius bounds [%g, %g]", o.radiusMin, o.radiusMax)
	case o.movementMax < o.movementMin:
		return fmt.Errorf("metaball: invalid movement scale bounds [%g, %g]", o.movementMin, o.movementMax)
	case o.workers < 0:
		return fmt.Errorf("metaball: negative worker count %d", o.workers)
	}
	return nil
}

// SetPrimitives replaces the whole primitive set atomically.
func (s *Scene) SetPrimitives(prims []Primitive) {
	s.registry = NewRegistry(prims)
	u := &s.uniforms
	u.StaticCount = len(s.registry.static)
	u.AnimatedCount = len(s.registry.animated)
	_, u.CursorEnabled = s.registry.Cursor()
	s.writeStatic(s.aspect())
}

// SetPreset applies the named preset. An unknown name leaves every uniform
// untouched and returns false.
func (s *Scene) SetPreset(name string) bool {
	p, ok := LookupPreset(name)
	if !ok {
		Logger().Warn("metaball: unknown preset", "name", name, "known", PresetNames())
		return false
	}
	if s.profile.LowPower {
		p = p.Reduced()
	}
	s.uniforms.ApplyPreset(p)
	if s.opts.hasSmoothness {
		s.uniforms.Smoothness = s.opts.smoothness
	}
	s.preset = p
	return true
}

// SetCamera sets the host camera. The scene keeps its own copy and adjusts
// the copy's aspect on resize; c is not modified. nil suspends frame updates.
func (s *Scene) SetCamera(c *Camera) {
	if c == nil {
		s.camera = nil
		return
	}
	cam := *c
	c = &cam
	s.camera = c
	s.warnedNoCamera = false
	if s.width > 0 && s.height > 0 {
		c.Aspect = float32(s.width) / float32(s.height)
	}
	if s.uniforms.Aspect == 0 {
		s.uniforms.Aspect = c.Aspect
	}
	s.planeW, s.planeH = c.PlaneSize()
}

// Resize handles a viewport change. It updates the aspect, the resolution
// and the fullscreen plane size. Primitive positions are recomputed on the
// next tick, not here.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		Logger().Debug("metaball: ignoring degenerate resize", "width", width, "height", height)
		return
	}
	s.width, s.height = width, height
	s.mouse.SetViewport(width, height)

	aspect := float32(width) / float32(height)
	s.uniforms.Aspect = aspect
	s.uniforms.Resolution = Vec2{X: float32(width), Y: float32(height)}
	if s.camera != nil {
		s.camera.Aspect = aspect
		s.planeW, s.planeH = s.camera.PlaneSize()
	}
}

// PointerMove records a pointer or touch position in viewport pixels.
func (s *Scene) PointerMove(px, py float64) {
	s.mouse.MoveTo(px, py)
}

// SetPointer records a pointer position in normalized coordinates.
func (s *Scene) SetPointer(n Vec2) {
	s.mouse.SetTarget(n)
}

// Attach registers Tick with the host frame clock. A previous attachment is
// cancelled first.
func (s *Scene) Attach(src FrameSource) {
	s.detach()
	s.cancel = src.OnFrame(s.Tick)
}

func (s *Scene) detach() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Tick runs one CPU update: smooth the pointer, resolve every primitive and
// write the results into the UniformSet. Without a camera the tick is
// skipped.
func (s *Scene) Tick(delta, elapsed float64) {
	if s.closed {
		return
	}
	if s.camera == nil {
		s.skipped++
		if !s.warnedNoCamera {
			Logger().Debug("metaball: no camera, skipping frame updates")
			s.warnedNoCamera = true
		}
		return
	}

	u := &s.uniforms
	aspect := s.aspect()
	t := float32(elapsed)

	s.mouse.Update()
	u.Time = t
	u.MovementScale = MovementScale(s.mouse.Position(), s.opts.movementMin, s.opts.movementMax)

	s.writeStatic(aspect)
	for i, p := range s.registry.animated {
		u.Animated[i] = Sphere{
			Center: OrbitPosition(p, t, u.AnimationSpeed, u.MovementScale),
			Radius: p.Radius,
		}
	}

	if cur, ok := s.registry.Cursor(); ok {
		world := s.mouse.World(aspect)
		radius := cur.Radius
		if s.opts.proximity {
			var centers [MaxStatic]Vec3
			for i := 0; i < u.StaticCount; i++ {
				centers[i] = u.Static[i].Center
			}
			radius = CursorRadius(world, centers[:u.StaticCount], u.RadiusMin, u.RadiusMax, u.ProximityThreshold)
		}
		u.Cursor = Sphere{Center: world, Radius: radius}
	}
	s.frames++
}

func (s *Scene) writeStatic(aspect float32) {
	for i, p := range s.registry.static {
		s.uniforms.Static[i] = Sphere{
			Center: ToRenderSpace(p.Position.X, p.Position.Y, aspect),
			Radius: p.Radius,
		}
	}
}

// aspect is the viewport aspect, or the camera's before the first resize.
func (s *Scene) aspect() float32 {
	if s.uniforms.Aspect > 0 {
		return s.uniforms.Aspect
	}
	if s.camera != nil && s.camera.Aspect > 0 {
		return s.camera.Aspect
	}
	return 1
}

// Render evaluates the current uniforms into pm. The configured evaluator is
// tried first; on any error the CPU evaluator renders the frame.
func (s *Scene) Render(pm *Pixmap) error {
	if s.closed {
		return ErrSceneClosed
	}
	target := pm.Target()
	snap := s.uniforms
	snap.Resolution = Vec2{X: float32(target.Width), Y: float32(target.Height)}

	if s.evaluator != nil {
		err := s.evaluator.Evaluate(target, &snap)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("metaball: evaluator failed, falling back to CPU",
				"name", s.evaluator.Name(), "err", err)
		}
	}
	if err := s.cpu.Evaluate(target, &snap); err != nil {
		return fmt.Errorf("metaball: cpu evaluation: %w", err)
	}
	return nil
}

// Close deregisters the frame callback and releases evaluator resources.
// Close is safe to call multiple times.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.detach()
	s.cpu.Close()
	if s.ownsEval {
		s.evaluator.Close()
	}
	s.evaluator = nil
}

// Uniforms returns a copy of the current uniform values.
func (s *Scene) Uniforms() UniformSet { return s.uniforms }

// CursorWorld returns the cursor's render-space position.
func (s *Scene) CursorWorld() Vec3 { return s.uniforms.Cursor.Center }

// CursorRadius returns the cursor's current radius.
func (s *Scene) CursorRadius() float32 { return s.uniforms.Cursor.Radius }

// MousePosition returns the smoothed normalized pointer position.
func (s *Scene) MousePosition() Vec2 { return s.mouse.Position() }

// PrimitivePositions returns the resolved active static then animated spheres.
func (s *Scene) PrimitivePositions() []Sphere {
	u := &s.uniforms
	out := make([]Sphere, 0, u.StaticCount+u.AnimatedCount)
	out = append(out, u.Static[:u.StaticCount]...)
	return append(out, u.Animated[:u.AnimatedCount]...)
}

// Registry returns the resolved primitive registry.
func (s *Scene) Registry() *Registry { return s.registry }

// PlaneSize returns the world-space size of the fullscreen quad.
func (s *Scene) PlaneSize() (width, height float32) { return s.planeW, s.planeH }

// Preset returns the applied preset, including low-power reductions.
func (s *Scene) Preset() Preset { return s.preset }

// Profile returns the device profile chosen at construction.
func (s *Scene) Profile() DeviceProfile { return s.profile }

// Camera returns a copy of the current camera, or nil.
func (s *Scene) Camera() *Camera {
	if s.camera == nil {
		return nil
	}
	c := *s.camera
	return &c
}

// Frames returns the number of completed ticks.
func (s *Scene) Frames() uint64 { return s.frames }

// SkippedFrames returns the number of ticks skipped for lack of a camera.
func (s *Scene) SkippedFrames() uint64 { return s.skipped }

// ShaderSource returns the WGSL kernel the scene evaluates on the GPU.
func (s *Scene) ShaderSource() string { return s.kernel.Source }

// EvaluatorName returns the name of the evaluator tried first.
func (s *Scene) EvaluatorName() string {
	if s.evaluator != nil {
		return s.evaluator.Name()
	}
	return s.cpu.Name()
}
