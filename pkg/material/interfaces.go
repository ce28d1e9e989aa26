package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Material describes how light scatters from and is emitted by a surface
type Material interface {
	// Sample draws an outgoing direction for a ray arriving along rayIn.
	// Returns false when the surface absorbs the ray.
	Sample(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterSample, bool)

	// Evaluate returns the BSDF value and the sampling PDF for light leaving
	// towards wo (the viewer) after arriving from wi. Both are unit vectors
	// pointing away from the hit point.
	Evaluate(wo, wi core.Vec3, hit HitRecord) (core.Vec3, float64)

	// Emitted returns the radiance emitted at the hit point
	Emitted(hit HitRecord) core.Vec3
}

// ScatterSample contains the result of sampling a material
type ScatterSample struct {
	Direction   core.Vec3 // Unit direction of the scattered ray
	Value       core.Vec3 // BSDF value for the sampled pair of directions
	PDF         float64   // Solid angle density of Direction, always > 0
	Transmitted bool      // Direction passes through the surface
}

// Weight returns the Monte Carlo throughput factor Value·|cosθ|/PDF
func (s ScatterSample) Weight(normal core.Vec3) core.Vec3 {
	if s.PDF <= 0 {
		return core.Vec3{}
	}
	cosTheta := math.Abs(s.Direction.Dot(normal))
	return s.Value.Multiply(cosTheta / s.PDF)
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
