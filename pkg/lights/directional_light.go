package lights

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DirectionalLight is a light at infinity, such as the sun
type DirectionalLight struct {
	toLight  core.Vec3
	Radiance core.Vec3
}

// NewDirectionalLight creates a light whose rays travel along direction
func NewDirectionalLight(direction, radiance core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		toLight:  direction.Normalize().Negate(),
		Radiance: radiance,
	}
}

// Type implements Light
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Illuminate implements Light
func (dl *DirectionalLight) Illuminate(point core.Vec3) LightSample {
	if dl.toLight.IsZero() {
		return noLight
	}
	return LightSample{
		Direction: dl.toLight,
		Distance:  math.Inf(1),
		Radiance:  dl.Radiance,
	}
}
