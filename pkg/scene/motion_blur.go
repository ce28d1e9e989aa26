package scene

import (
	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewMotionBlurScene creates spheres moving during an open shutter
func NewMotionBlurScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:       core.NewVec3(0, 1.5, 5),
		LookAt:       core.NewVec3(0, 0.6, 0),
		Up:           core.NewVec3(0, 1, 0),
		Width:        400,
		AspectRatio:  16.0 / 9.0,
		VFov:         35.0,
		ShutterOpen:  0,
		ShutterClose: 1,
	}, cameraOverrides)

	s := &Scene{
		Name:        "motion-blur",
		Camera:      geometry.NewCamera(cameraConfig),
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           100,
			MaxDepth:                  20,
			RussianRouletteMinBounces: 5,
		},
		CameraConfig: cameraConfig,
	}

	s.AddShapes(NewGroundQuad(core.NewVec3(0, 0, 0), 100, material.NewDiffuse(Linear(colornames.Slategray))))

	// Left to right: falling, sliding and still
	s.AddShapes(
		geometry.NewMovingSphere(core.NewVec3(-1.6, 1.4, 0), core.NewVec3(-1.6, 0.5, 0), 0.5,
			material.NewDiffuse(Linear(colornames.Crimson))),
		geometry.NewMovingSphere(core.NewVec3(-0.4, 0.5, 0), core.NewVec3(0.6, 0.5, 0), 0.5,
			material.NewMetal(Linear(colornames.Silver), 0.1)),
		geometry.NewSphere(core.NewVec3(1.7, 0.5, 0), 0.5, material.NewPlastic(Linear(colornames.Teal), 0.2)),
	)

	s.AddPointLight(core.NewVec3(0, 4, 3), core.NewVec3(20, 20, 20))
	// Warm spot picking out the sliding sphere
	s.AddSpotLight(core.NewVec3(0.1, 5, -2), core.NewVec3(0.1, 0.5, 0), core.NewVec3(30, 24, 16), 20, 5)

	return s
}
