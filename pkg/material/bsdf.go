package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	minCosTheta = 1e-6  // Directions closer to the tangent plane carry no energy
	minPDF      = 1e-12 // Smaller densities are treated as impossible samples
)

// lobeSelection holds the probability of sampling each lobe for one wo
type lobeSelection struct {
	specular float64
	diffuse  float64
	glass    float64
	coatF    float64 // Fresnel of the dielectric coat at normal·wo
}

// selectLobes weighs lobes by their approximate reflectance seen from wo.
// ok is false when every lobe is black.
func (s *Surface) selectLobes(cosO float64) (lobeSelection, bool) {
	albedo := s.params.Albedo.Average()
	coatF := FresnelDielectric(cosO, s.params.IOR)

	specular := s.kMetal*albedo + s.kDielectric*coatF
	diffuse := s.kDielectric * (1 - coatF) * albedo
	glass := s.kGlass * albedo

	total := specular + diffuse + glass
	if total <= 0 || math.IsNaN(total) {
		return lobeSelection{}, false
	}
	return lobeSelection{
		specular: specular / total,
		diffuse:  diffuse / total,
		glass:    glass / total,
		coatF:    coatF,
	}, true
}

// relativeIOR returns eta = n_transmitted / n_incident for a ray arriving
// on the given side of the surface
func (s *Surface) relativeIOR(frontFace bool) float64 {
	if frontFace {
		return s.params.IOR
	}
	return 1 / s.params.IOR
}

// Sample implements Material
func (s *Surface) Sample(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterSample, bool) {
	if math.Abs(hit.Normal.LengthSquared()-1) > 1e-3 {
		return ScatterSample{}, false
	}

	frame := core.NewONB(hit.Normal)
	wo := frame.Local(rayIn.Direction.Negate().Normalize())
	if wo.Z < minCosTheta {
		return ScatterSample{}, false
	}

	lobes, ok := s.selectLobes(wo.Z)
	if !ok {
		return ScatterSample{}, false
	}
	eta := s.relativeIOR(hit.FrontFace)

	var wi core.Vec3
	u := sampler.Get1D()
	switch {
	case u < lobes.specular:
		h := sampleVisibleNormal(wo, s.alpha, sampler.Get2D())
		wi = reflect(wo, h)
		if wi.Z <= 0 {
			return ScatterSample{}, false
		}
	case u < lobes.specular+lobes.diffuse:
		wi = core.SampleCosineHemisphereLocal(sampler.Get2D())
	default:
		h := sampleVisibleNormal(wo, s.alpha, sampler.Get2D())
		if sampler.Get1D() < FresnelDielectric(wo.Dot(h), eta) {
			wi = reflect(wo, h)
			if wi.Z <= 0 {
				return ScatterSample{}, false
			}
		} else {
			refracted, ok := refract(wo, h, eta)
			if !ok || refracted.Z >= 0 {
				return ScatterSample{}, false
			}
			wi = refracted
		}
	}

	wi = wi.Normalize()
	value, pdf := s.evaluateLocal(wo, wi, eta, lobes)
	if pdf < minPDF || !value.IsFinite() || math.IsNaN(pdf) || math.IsInf(pdf, 0) {
		return ScatterSample{}, false
	}

	return ScatterSample{
		Direction:   frame.World(wi).Normalize(),
		Value:       value,
		PDF:         pdf,
		Transmitted: wi.Z < 0,
	}, true
}

// Evaluate implements Material
func (s *Surface) Evaluate(wo, wi core.Vec3, hit HitRecord) (core.Vec3, float64) {
	frame := core.NewONB(hit.Normal)
	woLocal := frame.Local(wo.Normalize())
	wiLocal := frame.Local(wi.Normalize())
	if woLocal.Z < minCosTheta {
		return core.Vec3{}, 0
	}

	lobes, ok := s.selectLobes(woLocal.Z)
	if !ok {
		return core.Vec3{}, 0
	}
	return s.evaluateLocal(woLocal, wiLocal, s.relativeIOR(hit.FrontFace), lobes)
}

// evaluateLocal sums every lobe's BSDF value and selection-weighted PDF.
// Sample and Evaluate both end here, so a sampled direction always reports
// exactly the density Evaluate would give it.
func (s *Surface) evaluateLocal(wo, wi core.Vec3, eta float64, lobes lobeSelection) (core.Vec3, float64) {
	cosO := wo.Z
	cosI := wi.Z
	if math.Abs(cosI) < minCosTheta {
		return core.Vec3{}, 0
	}

	albedo := s.params.Albedo
	var value core.Vec3
	var pdf float64

	if cosI > 0 {
		h := wo.Add(wi).Normalize()
		woh := wo.Dot(h)
		if woh > 0 && h.Z > 0 {
			d := ggxD(h, s.alpha)
			g := smithG2(wo, wi, s.alpha)
			microfacet := d * g / (4 * cosO * cosI)
			reflectPDF := visibleNormalPDF(wo, h, s.alpha) / (4 * woh)

			tint := albedo.Multiply(s.kMetal).Add(core.Splat(s.kDielectric * FresnelDielectric(woh, s.params.IOR)))
			value = value.Add(tint.Multiply(microfacet))
			pdf += lobes.specular * reflectPDF

			if s.kGlass > 0 {
				f := FresnelDielectric(woh, eta)
				value = value.Add(albedo.Multiply(s.kGlass * f * microfacet))
				pdf += lobes.glass * f * reflectPDF
			}
		}

		value = value.Add(albedo.Multiply(s.kDielectric * (1 - lobes.coatF) / math.Pi))
		pdf += lobes.diffuse * cosI / math.Pi
		return value, pdf
	}

	if s.kGlass <= 0 {
		return core.Vec3{}, 0
	}

	// Generalized half vector for refraction, flipped to the wo side
	h := wo.Add(wi.Multiply(eta))
	if h.LengthSquared() == 0 {
		return core.Vec3{}, 0
	}
	h = h.Normalize()
	if h.Z < 0 {
		h = h.Negate()
	}

	woh := wo.Dot(h)
	wih := wi.Dot(h)
	if woh <= 0 || wih >= 0 {
		return core.Vec3{}, 0
	}

	f := FresnelDielectric(woh, eta)
	if f >= 1 {
		return core.Vec3{}, 0
	}

	denom := wih + woh/eta
	denom *= denom
	if denom < minPDF {
		return core.Vec3{}, 0
	}

	d := ggxD(h, s.alpha)
	g := smithG2(wo, wi, s.alpha)
	// No 1/eta² radiance scaling: camera paths enter and leave glass through
	// air, so the factors cancel over the round trip
	transmit := d * g * math.Abs(wih*woh) / (cosO * math.Abs(cosI) * denom)

	value = albedo.Multiply(s.kGlass * (1 - f) * transmit)
	pdf = lobes.glass * (1 - f) * visibleNormalPDF(wo, h, s.alpha) * math.Abs(wih) / denom
	return value, pdf
}
