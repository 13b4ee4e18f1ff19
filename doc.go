// Package metaball renders an interactive blended-sphere surface by ray
// marching a signed distance field.
//
// # Overview
//
// A Scene holds up to four static spheres, up to four animated spheres that
// orbit the centre, and one cursor sphere that follows the pointer. The
// spheres are blended with a polynomial smooth minimum, so they merge like
// liquid when they come close. A per-pixel kernel marches an orthographic
// ray through the field, lights the surface and adds a glow around the
// cursor.
//
// # Quick Start
//
//	sc, err := metaball.NewScene(
//	    metaball.WithPreset("neon"),
//	    metaball.WithPrimitives(
//	        metaball.StaticAt("center", 0.45),
//	        metaball.Animated(0.8, 0.6, 0, 0.2),
//	        metaball.Cursor(0.2),
//	    ),
//	    metaball.WithViewport(800, 600),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sc.Close()
//
//	pm := metaball.NewPixmap(800, 600)
//	sc.PointerMove(400, 300)
//	sc.Tick(1.0/60, 0)
//	_ = sc.Render(pm)
//	_ = pm.SavePNG("frame.png")
//
// # Evaluators
//
// The kernel is generated once as WGSL and compiled with naga. Importing
// the gpu sub-package registers a compute evaluator; without it, or when
// the GPU cannot evaluate a frame, the CPU evaluator runs a float32 port of
// the same kernel on a worker pool.
//
// # Coordinate System
//
// Authoring and pointer positions are normalized: (0,0) bottom-left, (1,1)
// top-right. Render space is centred on the origin and spans
// [-aspect, aspect] horizontally and [-1, 1] vertically. Rays start at
// z = 1 and march toward -z.
//
// # Threading
//
// A Scene is driven from one goroutine (the host frame loop). Render
// evaluates a copy of the uniforms, and the CPU evaluator fans rows out to
// a worker pool.
package metaball

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
