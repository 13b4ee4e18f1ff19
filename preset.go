package metaball

import (
	"sort"

	"golang.org/x/text/cases"
)

// Preset is an immutable bundle of lighting, color and quality constants.
// Applying a preset copies its fields into the live UniformSet without
// touching the kernel.
type Preset struct {
	Name string

	Ambient          float32
	Diffuse          float32
	Specular         float32
	SpecularPower    float32
	FresnelPower     float32
	FresnelIntensity float32
	Contrast         float32
	FogDensity       float32

	// Smoothness is the cursor blend constant.
	Smoothness float32

	CursorGlowRadius    float32
	CursorGlowIntensity float32

	LightDirection  Vec3
	BaseColor       RGB
	SpecularColor   RGB
	RimColor        RGB
	BackgroundColor RGB
	GlowColor       RGB
}

// Default preset names.
const (
	PresetHolographic = "holographic"
	PresetMinimal     = "minimal"
	PresetMoody       = "moody"
	PresetNeon        = "neon"
	PresetSunset      = "sunset"
)

var presets = map[string]Preset{
	PresetHolographic: {
		Name:    PresetHolographic,
		Ambient: 0.25, Diffuse: 0.7, Specular: 0.9, SpecularPower: 48,
		FresnelPower: 2.5, FresnelIntensity: 0.8, Contrast: 1.1, FogDensity: 0.08,
		Smoothness:       0.6,
		CursorGlowRadius: 0.45, CursorGlowIntensity: 0.7,
		LightDirection:  Vec3{X: 0.5, Y: 0.8, Z: 0.6},
		BaseColor:       Hex("#6ec8ff"),
		SpecularColor:   Hex("#ffffff"),
		RimColor:        Hex("#ff7ae6"),
		BackgroundColor: Hex("#0a0f1e"),
		GlowColor:       Hex("#9ad8ff"),
	},
	PresetMinimal: {
		Name:    PresetMinimal,
		Ambient: 0.35, Diffuse: 0.6, Specular: 0.3, SpecularPower: 16,
		FresnelPower: 3, FresnelIntensity: 0.2, Contrast: 1, FogDensity: 0,
		Smoothness:       0.4,
		CursorGlowRadius: 0.3, CursorGlowIntensity: 0.3,
		LightDirection:  Vec3{X: 0.3, Y: 1, Z: 0.5},
		BaseColor:       Hex("#e8e8e8"),
		SpecularColor:   Hex("#ffffff"),
		RimColor:        Hex("#bbbbbb"),
		BackgroundColor: Hex("#f4f4f4"),
		GlowColor:       Hex("#ffffff"),
	},
	PresetMoody: {
		Name:    PresetMoody,
		Ambient: 0.08, Diffuse: 0.9, Specular: 0.6, SpecularPower: 64,
		FresnelPower: 4, FresnelIntensity: 0.5, Contrast: 1.4, FogDensity: 0.25,
		Smoothness:       0.5,
		CursorGlowRadius: 0.35, CursorGlowIntensity: 0.5,
		LightDirection:  Vec3{X: -0.6, Y: 0.9, Z: 0.4},
		BaseColor:       Hex("#4a3b6b"),
		SpecularColor:   Hex("#d0c8ff"),
		RimColor:        Hex("#7b5cff"),
		BackgroundColor: Hex("#050308"),
		GlowColor:       Hex("#7b5cff"),
	},
	PresetNeon: {
		Name:    PresetNeon,
		Ambient: 0.15, Diffuse: 0.5, Specular: 1.2, SpecularPower: 96,
		FresnelPower: 1.5, FresnelIntensity: 1.2, Contrast: 1.2, FogDensity: 0.12,
		Smoothness:       0.7,
		CursorGlowRadius: 0.6, CursorGlowIntensity: 1,
		LightDirection:  Vec3{X: 0, Y: 1, Z: 1},
		BaseColor:       Hex("#1aff9c"),
		SpecularColor:   Hex("#ffffff"),
		RimColor:        Hex("#ff2bd6"),
		BackgroundColor: Hex("#000000"),
		GlowColor:       Hex("#00e5ff"),
	},
	PresetSunset: {
		Name:    PresetSunset,
		Ambient: 0.3, Diffuse: 0.8, Specular: 0.5, SpecularPower: 24,
		FresnelPower: 2, FresnelIntensity: 0.6, Contrast: 1.05, FogDensity: 0.15,
		Smoothness:       0.5,
		CursorGlowRadius: 0.4, CursorGlowIntensity: 0.6,
		LightDirection:  Vec3{X: 0.8, Y: 0.4, Z: 0.6},
		BaseColor:       Hex("#ff8a50"),
		SpecularColor:   Hex("#fff2c4"),
		RimColor:        Hex("#ff3d6e"),
		BackgroundColor: Hex("#2b1030"),
		GlowColor:       Hex("#ffd27a"),
	},
}

// foldName normalizes a preset name for lookup.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// LookupPreset returns the named preset. Lookup ignores case.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[foldName(name)]
	return p, ok
}

// PresetNames returns the names of all built-in presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reduced returns a copy tuned for low-power devices: a smaller and dimmer
// cursor glow.
func (p Preset) Reduced() Preset {
	p.CursorGlowRadius *= 0.6
	p.CursorGlowIntensity *= 0.8
	return p
}
