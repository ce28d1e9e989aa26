package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Parameter limits applied by NewSurface
const (
	MinRoughness = 0.02 // α = roughness² stays above 4e-4
	MinIOR       = 0.2
	MaxIOR       = 5.0
	iorEpsilon   = 1e-4 // keeps the relative IOR off exactly 1.0
)

// SurfaceParams are the user-facing parameters of a Surface
type SurfaceParams struct {
	Albedo       core.Vec3 // Base color, each channel in [0, 1]
	Emission     core.Vec3 // Emitted radiance
	Roughness    float64   // 0 = mirror-like, 1 = fully rough
	Metallic     float64   // 0 = dielectric, 1 = conductor
	IOR          float64   // Index of refraction of the inside relative to the outside
	Transmission float64   // Fraction of the dielectric part that is transparent
}

// Surface is the unified microfacet material. A single GGX distribution
// drives the metallic lobe, the specular coat of opaque dielectrics and
// rough transmission; opaque dielectrics add a Lambertian base.
type Surface struct {
	params SurfaceParams
	alpha  float64 // GGX width, roughness²
	f0     float64 // Normal-incidence reflectance of the dielectric coat

	kMetal      float64
	kDielectric float64
	kGlass      float64
}

// NewSurface creates a surface, clamping every parameter into its safe range
func NewSurface(p SurfaceParams) *Surface {
	p.Albedo = p.Albedo.Clamp(0, 1)
	p.Emission = p.Emission.Clamp(0, math.MaxFloat64)
	p.Roughness = clamp(p.Roughness, MinRoughness, 1)
	p.Metallic = clamp(p.Metallic, 0, 1)
	p.Transmission = clamp(p.Transmission, 0, 1)
	p.IOR = clampIOR(p.IOR)

	r := (p.IOR - 1) / (p.IOR + 1)

	return &Surface{
		params:      p,
		alpha:       p.Roughness * p.Roughness,
		f0:          r * r,
		kMetal:      p.Metallic,
		kDielectric: (1 - p.Metallic) * (1 - p.Transmission),
		kGlass:      (1 - p.Metallic) * p.Transmission,
	}
}

// NewDiffuse creates a matte surface with the given color
func NewDiffuse(albedo core.Vec3) *Surface {
	return NewSurface(SurfaceParams{Albedo: albedo, Roughness: 1, IOR: 1})
}

// NewMetal creates a conductor tinted by albedo
func NewMetal(albedo core.Vec3, roughness float64) *Surface {
	return NewSurface(SurfaceParams{Albedo: albedo, Roughness: roughness, Metallic: 1, IOR: 1.5})
}

// NewMirror creates a near-perfect white mirror
func NewMirror() *Surface {
	return NewMetal(core.NewVec3(1, 1, 1), 0)
}

// NewGlass creates a clear dielectric. Use the reciprocal IOR on the inner
// surface of a hollow object.
func NewGlass(ior, roughness float64) *Surface {
	return NewSurface(SurfaceParams{
		Albedo:       core.NewVec3(1, 1, 1),
		Roughness:    roughness,
		IOR:          ior,
		Transmission: 1,
	})
}

// NewPlastic creates a colored dielectric with a clear specular coat
func NewPlastic(albedo core.Vec3, roughness float64) *Surface {
	return NewSurface(SurfaceParams{Albedo: albedo, Roughness: roughness, IOR: 1.5})
}

// NewLight creates an emitter. The surface itself is black.
func NewLight(color core.Vec3, intensity float64) *Surface {
	return NewSurface(SurfaceParams{Emission: color.Multiply(intensity), Roughness: 1, IOR: 1})
}

// Params returns the clamped parameters the surface was built with
func (s *Surface) Params() SurfaceParams {
	return s.params
}

// Emitted implements Material. Emission is two-sided.
func (s *Surface) Emitted(hit HitRecord) core.Vec3 {
	return s.params.Emission
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return max(lo, min(hi, v))
}

func clampIOR(ior float64) float64 {
	ior = clamp(ior, MinIOR, MaxIOR)
	if math.Abs(ior-1) < iorEpsilon {
		if ior < 1 {
			return 1 - iorEpsilon
		}
		return 1 + iorEpsilon
	}
	return ior
}
