package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/metaball"
)

// sceneFile is the TOML scene description.
//
//	preset = "neon"
//	animation_speed = 1.5
//
//	[[static]]
//	anchor = "center"
//	radius = 0.45
//
//	[[animated]]
//	orbit_radius = 0.8
//	speed = 0.6
//	radius = 0.2
//
//	[cursor]
//	radius = 0.2
type sceneFile struct {
	Preset         string   `toml:"preset"`
	Smoothness     *float32 `toml:"smoothness"`
	AnimationSpeed *float32 `toml:"animation_speed"`
	MouseSmoothing *float32 `toml:"mouse_smoothing"`

	Movement  *rangeConfig     `toml:"movement"`
	Proximity *proximityConfig `toml:"proximity"`

	Static   []staticConfig   `toml:"static"`
	Animated []animatedConfig `toml:"animated"`
	Cursor   *cursorConfig    `toml:"cursor"`
}

type rangeConfig struct {
	Min float32 `toml:"min"`
	Max float32 `toml:"max"`
}

type proximityConfig struct {
	Enabled   bool    `toml:"enabled"`
	RadiusMin float32 `toml:"radius_min"`
	RadiusMax float32 `toml:"radius_max"`
	Threshold float32 `toml:"threshold"`
}

type staticConfig struct {
	Anchor string  `toml:"anchor"`
	X      float32 `toml:"x"`
	Y      float32 `toml:"y"`
	Radius float32 `toml:"radius"`
}

type animatedConfig struct {
	OrbitRadius float32 `toml:"orbit_radius"`
	Speed       float32 `toml:"speed"`
	Phase       float32 `toml:"phase"`
	Radius      float32 `toml:"radius"`
}

type cursorConfig struct {
	Radius float32 `toml:"radius"`
}

// defaultScene is used when no scene file is given.
func defaultScene() sceneFile {
	return sceneFile{
		Static: []staticConfig{
			{Anchor: "center", Radius: 0.45},
			{Anchor: "top-left", Radius: 0.25},
			{Anchor: "bottom-right", Radius: 0.3},
		},
		Animated: []animatedConfig{
			{OrbitRadius: 0.9, Speed: 0.6, Radius: 0.18},
			{OrbitRadius: 0.6, Speed: -0.8, Phase: 2, Radius: 0.14},
		},
		Cursor: &cursorConfig{Radius: 0.2},
	}
}

// decodeScene parses a scene. Unknown keys are rejected so typos surface.
func decodeScene(r io.Reader) (sceneFile, error) {
	var sf sceneFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&sf); err != nil {
		return sceneFile{}, fmt.Errorf("decode scene: %w", err)
	}
	return sf, nil
}

func loadScene(path string) (sceneFile, error) {
	if path == "" {
		return defaultScene(), nil
	}
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return sceneFile{}, err
	}
	defer f.Close()
	return decodeScene(f)
}

// options converts the scene into scene options.
func (sf sceneFile) options() []metaball.SceneOption {
	prims := make([]metaball.Primitive, 0, len(sf.Static)+len(sf.Animated)+1)
	for _, s := range sf.Static {
		p := metaball.Static(metaball.V2(s.X, s.Y), s.Radius)
		p.Anchor = s.Anchor
		prims = append(prims, p)
	}
	for _, a := range sf.Animated {
		prims = append(prims, metaball.Animated(a.OrbitRadius, a.Speed, a.Phase, a.Radius))
	}
	if sf.Cursor != nil {
		prims = append(prims, metaball.Cursor(sf.Cursor.Radius))
	}

	opts := []metaball.SceneOption{metaball.WithPrimitives(prims...)}
	if sf.Preset != "" {
		opts = append(opts, metaball.WithPreset(sf.Preset))
	}
	if sf.Smoothness != nil {
		opts = append(opts, metaball.WithSmoothness(*sf.Smoothness))
	}
	if sf.AnimationSpeed != nil {
		opts = append(opts, metaball.WithAnimationSpeed(*sf.AnimationSpeed))
	}
	if sf.MouseSmoothing != nil {
		opts = append(opts, metaball.WithMouseSmoothing(*sf.MouseSmoothing))
	}
	if sf.Movement != nil {
		opts = append(opts, metaball.WithMovementScale(sf.Movement.Min, sf.Movement.Max))
	}
	if p := sf.Proximity; p != nil {
		opts = append(opts, metaball.WithProximity(p.Enabled, p.RadiusMin, p.RadiusMax, p.Threshold))
	}
	return opts
}
