package metaball

// DefaultMouseSmoothing is the per-frame interpolation factor applied to the
// tracked pointer.
const DefaultMouseSmoothing = 0.1

// MouseTracker samples the pointer once per frame and exponentially smooths
// it. Positions are normalized (0-1 per axis, origin bottom-left).
//
// The zero value is not ready for use; call NewMouseTracker.
type MouseTracker struct {
	target     Vec2
	current    Vec2
	smoothness float32
	width      int
	height     int
}

// NewMouseTracker creates a tracker parked at the screen centre.
// smoothness is clamped into (0, 1]; 1 disables interpolation.
func NewMouseTracker(smoothness float32) *MouseTracker {
	center := Vec2{X: 0.5, Y: 0.5}
	return &MouseTracker{
		target:     center,
		current:    center,
		smoothness: clampSmoothness(smoothness),
	}
}

func clampSmoothness(s float32) float32 {
	if !(s > 0) {
		return DefaultMouseSmoothing
	}
	if s > 1 {
		return 1
	}
	return s
}

// SetViewport records the viewport size used to normalize pixel input.
func (m *MouseTracker) SetViewport(width, height int) {
	m.width, m.height = width, height
}

// MoveTo sets the target from a viewport pixel position (origin top-left).
// Input is ignored until a viewport size is known.
func (m *MouseTracker) MoveTo(px, py float64) {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.target = PixelToNormalized(px, py, m.width, m.height)
}

// SetTarget sets the target in normalized coordinates.
func (m *MouseTracker) SetTarget(n Vec2) {
	m.target = n
}

// SetSmoothness changes the interpolation factor, clamped into (0, 1].
func (m *MouseTracker) SetSmoothness(s float32) {
	m.smoothness = clampSmoothness(s)
}

// Update advances the smoothed position by one frame.
func (m *MouseTracker) Update() {
	m.current = m.current.Lerp(m.target, m.smoothness)
}

// Snap jumps the smoothed position to the target.
func (m *MouseTracker) Snap() {
	m.current = m.target
}

// Target returns the raw pointer position.
func (m *MouseTracker) Target() Vec2 { return m.target }

// Position returns the smoothed pointer position.
func (m *MouseTracker) Position() Vec2 { return m.current }

// Smoothness returns the interpolation factor.
func (m *MouseTracker) Smoothness() float32 { return m.smoothness }

// World returns the smoothed position projected into render space.
func (m *MouseTracker) World(aspect float32) Vec3 {
	return ToRenderSpace(m.current.X, m.current.Y, aspect)
}
