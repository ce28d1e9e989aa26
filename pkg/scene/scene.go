package scene

import (
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering. It must not be
// modified after Preprocess; renders share it read-only across workers.
type Scene struct {
	Name           string
	Camera         *geometry.Camera
	Shapes         []geometry.Shape // Objects in the scene
	Lights         []lights.Light   // Delta lights used for direct lighting
	TopColor       core.Vec3        // Background radiance straight up
	BottomColor    core.Vec3        // Background radiance straight down
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
	BVH            *geometry.BVH // Acceleration structure for ray-object intersection
}

// SamplingConfig contains the recommended render settings for a scene
type SamplingConfig struct {
	SamplesPerPixel           int // Number of rays per pixel
	MaxDepth                  int // Maximum number of scattering events per path
	RussianRouletteMinBounces int // Bounces before Russian roulette can terminate a path
}

// Preprocess prepares the scene for rendering by building the BVH
func (s *Scene) Preprocess() error {
	s.BVH = geometry.NewBVH(s.Shapes)
	if s.Camera == nil {
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}

	lightTypes := make([]string, len(s.Lights))
	for i, light := range s.Lights {
		lightTypes[i] = string(light.Type())
	}

	stats := s.BVH.Stats()
	core.Logger().Debug("scene preprocessed",
		"scene", s.Name,
		"primitives", s.GetPrimitiveCount(),
		"lights", lightTypes,
		"bvh_nodes", stats.TotalNodes,
		"bvh_depth", stats.MaxDepth)
	return nil
}

// Hit returns the nearest intersection along the ray
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if s.BVH == nil {
		return nil, false
	}
	return s.BVH.Hit(ray, tMin, tMax)
}

// Background returns the radiance of the sky gradient seen along the ray
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1)
	return s.BottomColor.Lerp(s.TopColor, t)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// AddShapes appends shapes to the scene
func (s *Scene) AddShapes(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddSphereLight adds an emissive sphere
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.Shapes = append(s.Shapes, geometry.NewSphere(center, radius, material.NewLight(emission, 1)))
}

// AddQuadLight adds an emissive rectangle
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.Shapes = append(s.Shapes, geometry.NewQuad(corner, u, v, material.NewLight(emission, 1)))
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// AddSpotLight adds a point spot light with custom cone angle and falloff
func (s *Scene) AddSpotLight(from, to, intensity core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) {
	s.Lights = append(s.Lights, lights.NewSpotLight(from, to, intensity, coneAngleDegrees, coneDeltaAngleDegrees))
}

// AddDirectionalLight adds a light at infinity shining along direction
func (s *Scene) AddDirectionalLight(direction, radiance core.Vec3) {
	s.Lights = append(s.Lights, lights.NewDirectionalLight(direction, radiance))
}

// NewGroundQuad creates a large horizontal quad facing up, centered at the given point
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

// Linear converts an 8-bit sRGB color to linear albedo
func Linear(c color.Color) core.Vec3 {
	r, g, b, _ := c.RGBA()
	return core.NewVec3(srgbToLinear(r), srgbToLinear(g), srgbToLinear(b))
}

func srgbToLinear(v uint32) float64 {
	c := float64(v) / 0xffff
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// applyCameraOverrides merges an optional override into a preset camera
func applyCameraOverrides(base geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(base, overrides[0])
	}
	return base
}
