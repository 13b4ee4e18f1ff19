package metaball

import (
	"encoding/binary"
	"math"
)

// Sphere is a resolved primitive: a render-space centre and a radius.
type Sphere struct {
	Center Vec3
	Radius float32
}

// UniformSet is the live bridge between the per-frame CPU update and the
// per-pixel kernel. It has a fixed size: slots beyond the active counts keep
// stale values and are excluded by the counts, never by zeroing.
type UniformSet struct {
	Time       float32
	Aspect     float32
	Resolution Vec2

	Static        [MaxStatic]Sphere
	Animated      [MaxAnimated]Sphere
	Cursor        Sphere
	StaticCount   int
	AnimatedCount int
	CursorEnabled bool

	// Smoothness is the cursor blend constant.
	Smoothness     float32
	MovementScale  float32
	AnimationSpeed float32

	ProximityThreshold float32
	RadiusMin          float32
	RadiusMax          float32

	Ambient          float32
	Diffuse          float32
	Specular         float32
	SpecularPower    float32
	FresnelPower     float32
	FresnelIntensity float32
	Contrast         float32
	FogDensity       float32

	GlowRadius    float32
	GlowIntensity float32

	LightDirection  Vec3
	BaseColor       RGB
	SpecularColor   RGB
	RimColor        RGB
	BackgroundColor RGB
	GlowColor       RGB
}

// UniformSize is the encoded size in bytes: 21 vec4<f32> cells.
const UniformSize = 21 * 16

// Cell indices of the encoded layout. They must match the Uniforms struct
// in the kernel template.
const (
	cellStatic     = 0
	cellAnimated   = cellStatic + MaxStatic
	cellCursor     = cellAnimated + MaxAnimated
	cellFrame      = cellCursor + 1
	cellCounts     = cellFrame + 1
	cellMotion     = cellCounts + 1
	cellEffects    = cellMotion + 1
	cellLighting   = cellEffects + 1
	cellLighting2  = cellLighting + 1
	cellLightDir   = cellLighting2 + 1
	cellBaseColor  = cellLightDir + 1
	cellSpecColor  = cellBaseColor + 1
	cellRimColor   = cellSpecColor + 1
	cellBackground = cellRimColor + 1
	cellGlowColor  = cellBackground + 1
	cellCount      = cellGlowColor + 1
)

// ApplyPreset copies every preset constant into the set. Geometry, counts
// and time are left untouched.
func (u *UniformSet) ApplyPreset(p Preset) {
	u.Ambient = p.Ambient
	u.Diffuse = p.Diffuse
	u.Specular = p.Specular
	u.SpecularPower = p.SpecularPower
	u.FresnelPower = p.FresnelPower
	u.FresnelIntensity = p.FresnelIntensity
	u.Contrast = p.Contrast
	u.FogDensity = p.FogDensity
	u.Smoothness = p.Smoothness
	u.GlowRadius = p.CursorGlowRadius
	u.GlowIntensity = p.CursorGlowIntensity
	u.LightDirection = p.LightDirection.Normalize()
	u.BaseColor = p.BaseColor
	u.SpecularColor = p.SpecularColor
	u.RimColor = p.RimColor
	u.BackgroundColor = p.BackgroundColor
	u.GlowColor = p.GlowColor
}

// Encode writes the kernel layout into dst. dst is caller-owned so the GPU
// upload path reuses one buffer for the life of the scene.
func (u *UniformSet) Encode(dst *[UniformSize]byte) {
	for i, s := range u.Static {
		putCell(dst, cellStatic+i, s.Center.X, s.Center.Y, s.Center.Z, s.Radius)
	}
	for i, s := range u.Animated {
		putCell(dst, cellAnimated+i, s.Center.X, s.Center.Y, s.Center.Z, s.Radius)
	}
	putCell(dst, cellCursor, u.Cursor.Center.X, u.Cursor.Center.Y, u.Cursor.Center.Z, u.Cursor.Radius)
	putCell(dst, cellFrame, u.Time, u.Aspect, u.Resolution.X, u.Resolution.Y)

	var cursor float32
	if u.CursorEnabled {
		cursor = 1
	}
	putCell(dst, cellCounts, float32(u.StaticCount), float32(u.AnimatedCount), cursor, u.Smoothness)
	putCell(dst, cellMotion, u.MovementScale, u.AnimationSpeed, u.RadiusMin, u.RadiusMax)
	putCell(dst, cellEffects, u.ProximityThreshold, u.GlowRadius, u.GlowIntensity, u.FogDensity)
	putCell(dst, cellLighting, u.Ambient, u.Diffuse, u.Specular, u.SpecularPower)
	putCell(dst, cellLighting2, u.FresnelPower, u.FresnelIntensity, u.Contrast, 0)
	putCell(dst, cellLightDir, u.LightDirection.X, u.LightDirection.Y, u.LightDirection.Z, 0)
	putColor(dst, cellBaseColor, u.BaseColor)
	putColor(dst, cellSpecColor, u.SpecularColor)
	putColor(dst, cellRimColor, u.RimColor)
	putColor(dst, cellBackground, u.BackgroundColor)
	putColor(dst, cellGlowColor, u.GlowColor)
}

func putCell(dst *[UniformSize]byte, cell int, x, y, z, w float32) {
	off := cell * 16
	binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(dst[off+4:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(dst[off+8:], math.Float32bits(z))
	binary.LittleEndian.PutUint32(dst[off+12:], math.Float32bits(w))
}

func putColor(dst *[UniformSize]byte, cell int, c RGB) {
	putCell(dst, cell, c.R, c.G, c.B, 1)
}

// activeStatic reports whether static slot i participates in the fold.
func (u *UniformSet) activeStatic(i int) bool { return i < u.StaticCount }

// activeAnimated reports whether animated slot i participates in the fold.
func (u *UniformSet) activeAnimated(i int) bool { return i < u.AnimatedCount }
