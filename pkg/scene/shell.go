package scene

import (
	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewShellScene shows hollow glass balls of increasing IOR in front of a
// checkered wall of colored tiles
func NewShellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(0, 1, 4),
		LookAt:      core.NewVec3(0, 0.7, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}, cameraOverrides)

	s := &Scene{
		Name:        "shell",
		Camera:      geometry.NewCamera(cameraConfig),
		TopColor:    core.NewVec3(0.9, 0.9, 1.0),
		BottomColor: core.NewVec3(0.3, 0.3, 0.3),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           200,
			MaxDepth:                  50,
			RussianRouletteMinBounces: 16,
		},
		CameraConfig: cameraConfig,
	}

	s.AddShapes(NewGroundQuad(core.NewVec3(0, 0, 0), 50, material.NewDiffuse(Linear(colornames.Gainsboro))))

	// Tile wall behind the spheres
	tiles := []material.Material{
		material.NewDiffuse(Linear(colornames.Darkorange)),
		material.NewDiffuse(Linear(colornames.Royalblue)),
	}
	const tileSize = 0.5
	for i := -6; i < 6; i++ {
		for j := 0; j < 6; j++ {
			corner := core.NewVec3(float64(i)*tileSize, float64(j)*tileSize, -1.5)
			s.AddShapes(geometry.NewQuad(corner, core.NewVec3(tileSize, 0, 0), core.NewVec3(0, tileSize, 0), tiles[(i+j+12)%2]))
		}
	}

	for i, ior := range []float64{1.2, 1.5, 2.0} {
		center := core.NewVec3(float64(i-1)*1.1, 0.5, 0)
		s.AddShapes(NewShell(center, 0.5, 0.45, ior)...)
	}

	s.AddDirectionalLight(core.NewVec3(0.3, -1, -0.5), core.NewVec3(1.5, 1.5, 1.4))

	return s
}
