package metaball

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates an evaluator cannot render the current frame.
// The scene transparently falls back to the CPU evaluator.
var ErrFallbackToCPU = errors.New("metaball: falling back to CPU evaluation")

// RenderTarget provides pixel buffer access for evaluator output.
// Data holds straight (non-premultiplied) RGBA, 4 bytes per pixel,
// laid out row by row with the given Stride. Row 0 is the top of the image.
type RenderTarget struct {
	Data          []uint8
	Width, Height int
	Stride        int // bytes per row
}

// Evaluator runs the ray-marching kernel once per covered pixel.
//
// Every invocation is a pure function of the uniform snapshot and the pixel
// coordinate. Implementations must not retain the snapshot pointer past the
// call.
//
// GPU backends register themselves via blank import:
//
//	import _ "github.com/gogpu/metaball/gpu"
type Evaluator interface {
	// Name returns the evaluator name (e.g., "cpu", "wgpu").
	Name() string

	// Init acquires evaluator resources. Called once during registration.
	Init() error

	// Close releases evaluator resources. In-flight work is allowed to complete.
	Close()

	// Evaluate renders one frame into target.
	// Returns ErrFallbackToCPU if the frame cannot be evaluated.
	Evaluate(target RenderTarget, u *UniformSet) error
}

var (
	evalMu sync.RWMutex
	eval   Evaluator
)

// RegisterEvaluator registers an evaluator for optional GPU rendering.
//
// Only one evaluator can be registered. Subsequent calls replace the previous
// one. Init is called during registration; if it fails the evaluator is not
// registered and the error is returned.
func RegisterEvaluator(e Evaluator) error {
	if e == nil {
		return errors.New("metaball: evaluator must not be nil")
	}
	if err := e.Init(); err != nil {
		return err
	}
	propagateLogger(e, Logger())

	evalMu.Lock()
	old := eval
	eval = e
	evalMu.Unlock()
	if old != nil {
		old.Close()
	}
	Logger().Info("metaball: evaluator registered", "name", e.Name())
	return nil
}

// RegisteredEvaluator returns the currently registered evaluator, or nil.
func RegisteredEvaluator() Evaluator {
	return registeredEvaluator()
}

func registeredEvaluator() Evaluator {
	evalMu.RLock()
	e := eval
	evalMu.RUnlock()
	return e
}

// CloseEvaluator closes and unregisters the registered evaluator.
func CloseEvaluator() {
	evalMu.Lock()
	e := eval
	eval = nil
	evalMu.Unlock()
	if e != nil {
		e.Close()
	}
}
