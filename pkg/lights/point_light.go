package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// PointLight emits Intensity uniformly in all directions with 1/r² falloff
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Type implements Light
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Illuminate implements Light
func (pl *PointLight) Illuminate(point core.Vec3) LightSample {
	return illuminateFrom(pl.Position, pl.Intensity, point)
}

// illuminateFrom applies inverse-square falloff from a point source
func illuminateFrom(position, intensity, point core.Vec3) LightSample {
	toLight := position.Subtract(point)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return noLight
	}
	distance := toLight.Length()

	return LightSample{
		Direction: toLight.Multiply(1 / distance),
		Distance:  distance,
		Radiance:  intensity.Multiply(1 / distSq),
	}
}
