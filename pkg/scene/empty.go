package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// NewEmptyScene creates a scene with nothing but the sky
func NewEmptyScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       200,
		AspectRatio: 16.0 / 9.0,
		VFov:        60.0,
	}, cameraOverrides)

	return &Scene{
		Name:        "empty",
		Camera:      geometry.NewCamera(cameraConfig),
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           4,
			MaxDepth:                  1,
			RussianRouletteMinBounces: 1,
		},
		CameraConfig: cameraConfig,
	}
}
