package metaball

import (
	"bytes"
	"testing"
)

func renderCPU(t *testing.T, e *CPUEvaluator, u *UniformSet, w, h int) *Pixmap {
	t.Helper()
	pm := NewPixmap(w, h)
	u.Resolution = V2(float32(w), float32(h))
	if err := e.Evaluate(pm.Target(), u); err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}
	return pm
}

func TestCPUEvaluatorCoverage(t *testing.T) {
	e := NewCPUEvaluator(2, 1)
	defer e.Close()

	u := singleSphere(0.5)
	pm := renderCPU(t, e, u, 16, 16)

	if a := pm.Image().NRGBAAt(8, 8).A; a != 255 {
		t.Errorf("centre alpha = %d, want 255", a)
	}
	if a := pm.Image().NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

// Row 0 is the top of the image: a sphere above the centre lands in the
// upper half.
func TestCPUEvaluatorOrientation(t *testing.T) {
	e := NewCPUEvaluator(1, 1)
	defer e.Close()

	u := singleSphere(0.3)
	u.Static[0].Center = ToRenderSpace(0.5, 0.8, 1)
	pm := renderCPU(t, e, u, 20, 20)

	if a := pm.Image().NRGBAAt(10, 4).A; a != 255 {
		t.Errorf("upper pixel alpha = %d, want 255", a)
	}
	if a := pm.Image().NRGBAAt(10, 16).A; a != 0 {
		t.Errorf("lower pixel alpha = %d, want 0", a)
	}
}

func TestCPUEvaluatorDeterministicAcrossWorkers(t *testing.T) {
	u := singleSphere(0.6)
	u.CursorEnabled = true
	u.Cursor = Sphere{Center: V3(0.4, 0.2, 0), Radius: 0.3}

	one := NewCPUEvaluator(1, 1)
	defer one.Close()
	many := NewCPUEvaluator(8, 1)
	defer many.Close()

	a := renderCPU(t, one, u, 33, 17)
	b := renderCPU(t, many, u, 33, 17)
	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("worker count changed the rendered frame")
	}
}

func TestCPUEvaluatorReducedScale(t *testing.T) {
	e := NewCPUEvaluator(2, 0.5)
	defer e.Close()
	if e.RenderScale() != 0.5 {
		t.Fatalf("RenderScale() = %v, want 0.5", e.RenderScale())
	}

	u := singleSphere(0.5)
	pm := renderCPU(t, e, u, 32, 32)
	if a := pm.Image().NRGBAAt(16, 16).A; a != 255 {
		t.Errorf("centre alpha = %d, want 255", a)
	}
	if a := pm.Image().NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestCPUEvaluatorScaleClamped(t *testing.T) {
	for _, s := range []float64{0, -1, 2} {
		e := NewCPUEvaluator(1, s)
		if e.RenderScale() != 1 {
			t.Errorf("NewCPUEvaluator(scale=%v).RenderScale() = %v, want 1", s, e.RenderScale())
		}
		e.Close()
	}
}

func TestCPUEvaluatorEmptyTarget(t *testing.T) {
	e := NewCPUEvaluator(1, 1)
	defer e.Close()
	if err := e.Evaluate(RenderTarget{}, singleSphere(0.5)); err != nil {
		t.Errorf("Evaluate(empty) = %v, want nil", err)
	}
}
