package metaball

import (
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/metaball/internal/parallel"
)

// bandsPerWorker oversubscribes the pool so work stealing can balance rows
// that march further than others.
const bandsPerWorker = 4

// CPUEvaluator runs the kernel port on a worker pool. It is always
// available and is the fallback for GPU evaluators.
//
// With a render scale below 1 the frame is evaluated at reduced resolution
// and upscaled bilinearly into the target.
type CPUEvaluator struct {
	pool  *parallel.WorkerPool
	scale float64

	mu      sync.Mutex
	scratch *image.NRGBA
}

var _ Evaluator = (*CPUEvaluator)(nil)

// NewCPUEvaluator creates a CPU evaluator. workers <= 0 uses GOMAXPROCS.
// renderScale is clamped to (0, 1]; non-positive values mean 1.
func NewCPUEvaluator(workers int, renderScale float64) *CPUEvaluator {
	if !(renderScale > 0) || renderScale > 1 {
		renderScale = 1
	}
	return &CPUEvaluator{
		pool:  parallel.NewWorkerPool(workers),
		scale: renderScale,
	}
}

// Name returns "cpu".
func (e *CPUEvaluator) Name() string { return "cpu" }

// Init is a no-op; the pool starts in NewCPUEvaluator.
func (e *CPUEvaluator) Init() error { return nil }

// Close stops the worker pool.
func (e *CPUEvaluator) Close() { e.pool.Close() }

// RenderScale returns the fraction of the target resolution evaluated.
func (e *CPUEvaluator) RenderScale() float64 { return e.scale }

// Evaluate renders one frame into target.
func (e *CPUEvaluator) Evaluate(target RenderTarget, u *UniformSet) error {
	if target.Width <= 0 || target.Height <= 0 {
		return nil
	}
	if e.scale >= 1 {
		e.evaluate(target, u)
		return nil
	}

	w := max(1, int(math.Round(float64(target.Width)*e.scale)))
	h := max(1, int(math.Round(float64(target.Height)*e.scale)))

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scratch == nil || e.scratch.Rect.Dx() != w || e.scratch.Rect.Dy() != h {
		e.scratch = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	e.evaluate(RenderTarget{Data: e.scratch.Pix, Width: w, Height: h, Stride: e.scratch.Stride}, u)

	dst := &image.NRGBA{
		Pix:    target.Data,
		Stride: target.Stride,
		Rect:   image.Rect(0, 0, target.Width, target.Height),
	}
	draw.BiLinear.Scale(dst, dst.Rect, e.scratch, e.scratch.Rect, draw.Src, nil)
	return nil
}

func (e *CPUEvaluator) evaluate(target RenderTarget, u *UniformSet) {
	w, h := target.Width, target.Height
	e.pool.ForEachBand(h, bandsPerWorker, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			row := target.Data[y*target.Stride:]
			for x := 0; x < w; x++ {
				c := EvaluatePixel(u, PixelCenterUV(x, y, w, h)).NRGBA()
				i := x * 4
				row[i+0] = c.R
				row[i+1] = c.G
				row[i+2] = c.B
				row[i+3] = c.A
			}
		}
	})
}
