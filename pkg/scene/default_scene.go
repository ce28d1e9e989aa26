package scene

import (
	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.05,
	}, cameraOverrides)

	s := &Scene{
		Name:        "default",
		Camera:      geometry.NewCamera(cameraConfig),
		TopColor:    core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		BottomColor: core.NewVec3(1.0, 1.0, 1.0), // White horizon
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           200,
			MaxDepth:                  50,
			RussianRouletteMinBounces: 20, // Glass needs many bounces
		},
		CameraConfig: cameraConfig,
	}

	ground := material.NewDiffuse(Linear(colornames.Olive).Multiply(1.3))
	blue := material.NewDiffuse(Linear(colornames.Royalblue))
	coatedRed := material.NewPlastic(Linear(colornames.Firebrick), 0.05)
	silver := material.NewMirror()
	gold := material.NewMetal(Linear(colornames.Goldenrod), 0.3)
	glass := material.NewGlass(1.5, 0)

	s.AddShapes(
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000, ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
	)

	// Hollow glass sphere with a blue sphere inside
	s.AddShapes(NewShell(core.NewVec3(-0.5, 0.25, -0.5), 0.25, 0.24, 1.5)...)
	s.AddShapes(geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, blue))

	s.AddSphereLight(core.NewVec3(30, 30.5, 15), 10, core.NewVec3(15.0, 14.0, 13.0))
	s.AddDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(0.4, 0.38, 0.35))

	return s
}

// NewShell returns the two spheres of a hollow glass ball: the outer surface
// with IOR ior and the inner surface with the reciprocal
func NewShell(center core.Vec3, outerRadius, innerRadius, ior float64) []geometry.Shape {
	return []geometry.Shape{
		geometry.NewSphere(center, outerRadius, material.NewGlass(ior, 0)),
		geometry.NewSphere(center, innerRadius, material.NewGlass(1/ior, 0)),
	}
}
