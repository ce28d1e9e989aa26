package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}, cameraOverrides)

	s := &Scene{
		Name:   "cornell",
		Camera: geometry.NewCamera(cameraConfig),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           150,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 4,
		},
		CameraConfig: cameraConfig,
	}

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	// Standard 555 unit box; every wall faces the interior
	const boxSize = 555.0
	floor := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), white)
	ceiling := geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	backWall := geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), white)
	leftWall := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red)
	rightWall := geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), green)
	s.AddShapes(floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light, slightly below the ceiling
	const lightSize = 130.0
	lightOffset := (boxSize - lightSize) / 2
	s.AddQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	// Tall rough-metal block and short white block
	s.AddShapes(
		geometry.NewBox(core.NewVec3(347.5, 165, 377.5), core.NewVec3(82.5, 165, 82.5),
			core.NewVec3(0, 15*math.Pi/180, 0), material.NewMetal(core.NewVec3(0.8, 0.8, 0.85), 0.25)),
		geometry.NewBox(core.NewVec3(212.5, 82.5, 147.5), core.NewVec3(82.5, 82.5, 82.5),
			core.NewVec3(0, -18*math.Pi/180, 0), white),
	)

	// Glass sphere resting on the short block
	s.AddShapes(geometry.NewSphere(core.NewVec3(212.5, 225, 147.5), 60, material.NewGlass(1.5, 0)))

	return s
}
