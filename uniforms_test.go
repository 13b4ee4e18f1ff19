package metaball

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestUniformSizeMatchesLayout(t *testing.T) {
	if UniformSize != cellCount*16 {
		t.Errorf("UniformSize = %d, want %d cells of 16 bytes", UniformSize, cellCount)
	}
	if cellCursor != MaxStatic+MaxAnimated {
		t.Errorf("cursor cell = %d, want %d", cellCursor, MaxStatic+MaxAnimated)
	}
}

func readCell(buf *[UniformSize]byte, cell int) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[cell*16+i*4:]))
	}
	return out
}

func TestUniformSetEncode(t *testing.T) {
	var u UniformSet
	u.Static[1] = Sphere{Center: V3(1, 2, 3), Radius: 0.5}
	u.Animated[0] = Sphere{Center: V3(-1, 0, 0.25), Radius: 0.1}
	u.Cursor = Sphere{Center: V3(0.3, 0.4, 0), Radius: 0.2}
	u.Time = 2.5
	u.Aspect = 1.5
	u.Resolution = V2(300, 200)
	u.StaticCount = 2
	u.AnimatedCount = 1
	u.CursorEnabled = true
	u.Smoothness = 0.6
	u.BaseColor = RGB{R: 0.1, G: 0.2, B: 0.3}

	var buf [UniformSize]byte
	u.Encode(&buf)

	tests := []struct {
		name string
		cell int
		want [4]float32
	}{
		{"static 1", cellStatic + 1, [4]float32{1, 2, 3, 0.5}},
		{"animated 0", cellAnimated, [4]float32{-1, 0, 0.25, 0.1}},
		{"cursor", cellCursor, [4]float32{0.3, 0.4, 0, 0.2}},
		{"frame", cellFrame, [4]float32{2.5, 1.5, 300, 200}},
		{"counts", cellCounts, [4]float32{2, 1, 1, 0.6}},
		{"base color", cellBaseColor, [4]float32{0.1, 0.2, 0.3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readCell(&buf, tt.cell); got != tt.want {
				t.Errorf("cell %d = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestApplyPresetNormalizesLight(t *testing.T) {
	var u UniformSet
	u.Time = 7
	u.StaticCount = 3

	p, _ := LookupPreset(PresetHolographic)
	u.ApplyPreset(p)

	if l := u.LightDirection.Length(); !near(l, 1) {
		t.Errorf("light direction length = %v, want 1", l)
	}
	if u.Smoothness != p.Smoothness || u.GlowRadius != p.CursorGlowRadius {
		t.Error("ApplyPreset did not copy cursor parameters")
	}
	if u.Time != 7 || u.StaticCount != 3 {
		t.Error("ApplyPreset touched frame state")
	}
}
