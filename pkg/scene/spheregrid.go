package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene lays out a grid of spheres sweeping the material
// parameters: hue along X, roughness along Z, alternating metal and dielectric rows
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.02,
	}, cameraOverrides)

	s := &Scene{
		Name:        "spheregrid",
		Camera:      geometry.NewCamera(cameraConfig),
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           100,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 12,
		},
		CameraConfig: cameraConfig,
	}

	s.AddSphereLight(core.NewVec3(20, 25, 20), 8, core.NewVec3(12.0, 11.5, 10.0))
	s.AddShapes(NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 1000, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))))

	const (
		gridSize   = 10
		targetArea = 9.0
	)
	spacing := targetArea / float64(gridSize-1)
	radius := spacing * 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2 + 4.5
			z := float64(j)*spacing - targetArea/2 + 4.5

			hue := float64(i) / float64(gridSize-1) * 360
			roughness := float64(j) / float64(gridSize-1)
			metallic := float64(j % 2)

			mat := material.NewSurface(material.SurfaceParams{
				Albedo:    oklchToRGB(0.65, 0.15, hue),
				Roughness: roughness,
				Metallic:  metallic,
				IOR:       1.5,
			})
			s.AddShapes(geometry.NewSphere(core.NewVec3(x, radius, z), radius, mat))
		}
	}

	return s
}
