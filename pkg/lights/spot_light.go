package lights

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SpotLight is a point light restricted to a cone with a smooth edge
type SpotLight struct {
	position        core.Vec3 // Light position in world space
	direction       core.Vec3 // Normalized direction vector (from -> to)
	intensity       core.Vec3 // Light intensity/color
	cosTotalWidth   float64   // Cosine of total cone angle (outer edge)
	cosFalloffStart float64   // Cosine of falloff start angle (inner cone)
}

// NewSpotLight creates a spot light at from, aimed at to. coneAngleDegrees is
// the half-angle of the lit cone; the outer coneDeltaAngleDegrees of it fade out.
func NewSpotLight(from, to, intensity core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) *SpotLight {
	totalWidth := mgl64.DegToRad(coneAngleDegrees)
	falloffStart := mgl64.DegToRad(math.Max(0, coneAngleDegrees-coneDeltaAngleDegrees))

	return &SpotLight{
		position:        from,
		direction:       to.Subtract(from).Normalize(),
		intensity:       intensity,
		cosTotalWidth:   math.Cos(totalWidth),
		cosFalloffStart: math.Cos(falloffStart),
	}
}

// Type implements Light
func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Illuminate implements Light
func (sl *SpotLight) Illuminate(point core.Vec3) LightSample {
	sample := illuminateFrom(sl.position, sl.intensity, point)
	if sample.IsBlack() {
		return sample
	}

	cosAngle := sl.direction.Dot(sample.Direction.Negate())
	sample.Radiance = sample.Radiance.Multiply(sl.falloff(cosAngle))
	return sample
}

// falloff is 1 inside the inner cone, 0 outside the total width, and a
// quartic ramp in between
func (sl *SpotLight) falloff(cosAngle float64) float64 {
	if cosAngle < sl.cosTotalWidth {
		return 0
	}
	if cosAngle >= sl.cosFalloffStart {
		return 1
	}

	delta := (cosAngle - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * delta * delta
}
