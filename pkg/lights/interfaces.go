package lights

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// LightType names a kind of light for logging and scene summaries
type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
	LightTypeDirectional LightType = "directional"
)

// Light is a delta light: it illuminates a point from exactly one direction
// and can never be hit by a sampled ray
type Light interface {
	Type() LightType

	// Illuminate returns the direction and radiance arriving at point.
	// A zero Radiance means the point is not lit.
	Illuminate(point core.Vec3) LightSample
}

// LightSample describes the light reaching a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from the shading point to the light
	Distance  float64   // Distance to the light, +Inf for directional lights
	Radiance  core.Vec3 // Incident radiance after falloff
}

// IsBlack reports whether the sample carries no light
func (s LightSample) IsBlack() bool {
	return s.Radiance.IsZero()
}

// noLight is returned for points the light cannot reach
var noLight = LightSample{Direction: core.NewVec3(0, 1, 0), Distance: math.Inf(1)}
