package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// hitAt builds a hit record on a surface with the given normal at the origin
func hitAt(normal core.Vec3, frontFace bool, m Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal.Normalize(),
		T:         1,
		FrontFace: frontFace,
		Material:  m,
	}
}

// incomingRay returns a ray arriving at the origin from the given elevation
// angle (degrees from the normal +Z)
func incomingRay(degrees float64) core.Ray {
	theta := degrees * math.Pi / 180
	from := core.NewVec3(math.Sin(theta), 0, math.Cos(theta))
	return core.NewRay(from, from.Negate())
}

// meanWeight estimates E[Value·|cos|/PDF] over n samples
func meanWeight(t *testing.T, m Material, hit HitRecord, ray core.Ray, n int) core.Vec3 {
	t.Helper()
	sampler := core.NewSeededSampler(42, 1)

	var sum core.Vec3
	for i := 0; i < n; i++ {
		sample, ok := m.Sample(ray, hit, sampler)
		if !ok {
			continue
		}
		w := sample.Weight(hit.Normal)
		if !w.IsFinite() || !w.IsNonNegative() {
			t.Fatalf("Invalid weight %v (value %v, pdf %g)", w, sample.Value, sample.PDF)
		}
		sum = sum.Add(w)
	}
	return sum.Multiply(1 / float64(n))
}

func TestSurface_DiffuseEnergyMatchesAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.5, 0.2)
	diffuse := NewDiffuse(albedo)
	hit := hitAt(core.NewVec3(0, 0, 1), true, diffuse)

	for _, angle := range []float64{0, 45, 75} {
		mean := meanWeight(t, diffuse, hit, incomingRay(angle), 50000)

		const tolerance = 0.01
		if mean.X > albedo.X+tolerance || mean.Y > albedo.Y+tolerance || mean.Z > albedo.Z+tolerance {
			t.Errorf("angle %.0f: diffuse reflected %v, more than albedo %v", angle, mean, albedo)
		}
		if mean.Subtract(albedo).Length() > 0.03 {
			t.Errorf("angle %.0f: diffuse reflected %v, expected close to albedo %v", angle, mean, albedo)
		}
	}
}

func TestSurface_MetalDoesNotExceedAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.6, 0.3)

	for _, roughness := range []float64{0, 0.1, 0.4, 1.0} {
		metal := NewMetal(albedo, roughness)
		hit := hitAt(core.NewVec3(0, 1, 0), true, metal)
		ray := core.NewRay(core.NewVec3(0.3, 1, 0), core.NewVec3(-0.3, -1, 0))

		mean := meanWeight(t, metal, hit, ray, 40000)

		const tolerance = 0.01
		if mean.X > albedo.X+tolerance || mean.Y > albedo.Y+tolerance || mean.Z > albedo.Z+tolerance {
			t.Errorf("roughness %.2f: metal reflected %v, more than albedo %v", roughness, mean, albedo)
		}
	}
}

func TestSurface_NoGainForAnyParameters(t *testing.T) {
	params := []SurfaceParams{
		{Albedo: core.NewVec3(1, 1, 1), Roughness: 0, IOR: 1.5, Transmission: 1},
		{Albedo: core.NewVec3(1, 1, 1), Roughness: 0.5, IOR: 1.5, Transmission: 1},
		{Albedo: core.NewVec3(1, 1, 1), Roughness: 0.2, IOR: 1 / 1.5, Transmission: 1},
		{Albedo: core.NewVec3(1, 1, 1), Roughness: 0.3, IOR: 1.5},
		{Albedo: core.NewVec3(0.7, 0.7, 0.7), Roughness: 0.7, Metallic: 0.5, IOR: 1.33, Transmission: 0.5},
		{Albedo: core.NewVec3(1, 0, 0), Roughness: 0.05, Metallic: 0.2, IOR: 2.4, Transmission: 0.3},
	}

	for i, p := range params {
		surface := NewSurface(p)
		for _, frontFace := range []bool{true, false} {
			hit := hitAt(core.NewVec3(0, 0, 1), frontFace, surface)
			for _, angle := range []float64{0, 30, 60, 85} {
				mean := meanWeight(t, surface, hit, incomingRay(angle), 20000)
				if mean.MaxComponent() > 1.05 {
					t.Errorf("params %d front=%t angle %.0f: mean weight %v exceeds 1", i, frontFace, angle, mean)
				}
			}
		}
	}
}

func TestSurface_SampleAgreesWithEvaluate(t *testing.T) {
	surfaces := map[string]*Surface{
		"diffuse": NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)),
		"plastic": NewPlastic(core.NewVec3(0.2, 0.4, 0.8), 0.3),
		"metal":   NewMetal(core.NewVec3(0.9, 0.8, 0.7), 0.25),
		"glass":   NewGlass(1.5, 0.2),
		"mixed": NewSurface(SurfaceParams{
			Albedo: core.NewVec3(0.6, 0.6, 0.6), Roughness: 0.5, Metallic: 0.3, IOR: 1.4, Transmission: 0.5,
		}),
	}

	for name, surface := range surfaces {
		t.Run(name, func(t *testing.T) {
			sampler := core.NewSeededSampler(3, 9)
			hit := hitAt(core.NewVec3(0, 0, 1), true, surface)
			ray := incomingRay(40)
			wo := ray.Direction.Negate().Normalize()

			for i := 0; i < 500; i++ {
				sample, ok := surface.Sample(ray, hit, sampler)
				if !ok {
					continue
				}
				value, pdf := surface.Evaluate(wo, sample.Direction, hit)

				if math.Abs(pdf-sample.PDF) > 1e-6*math.Max(1, sample.PDF) {
					t.Fatalf("PDF mismatch: sample %g, evaluate %g", sample.PDF, pdf)
				}
				if value.Subtract(sample.Value).Length() > 1e-6*math.Max(1, sample.Value.Length()) {
					t.Fatalf("Value mismatch: sample %v, evaluate %v", sample.Value, value)
				}
				if sample.Transmitted != (sample.Direction.Dot(hit.Normal) < 0) {
					t.Fatalf("Transmitted flag inconsistent with direction %v", sample.Direction)
				}
			}
		})
	}
}

func TestSurface_PDFIntegratesToAtMostOne(t *testing.T) {
	surfaces := map[string]*Surface{
		"diffuse": NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)),
		"plastic": NewPlastic(core.NewVec3(0.5, 0.5, 0.5), 0.8),
	}

	for name, surface := range surfaces {
		t.Run(name, func(t *testing.T) {
			sampler := core.NewSeededSampler(11, 0)
			hit := hitAt(core.NewVec3(0, 0, 1), true, surface)
			wo := core.NewVec3(0.5, 0, 1).Normalize()

			// Uniform sphere estimate of ∫ pdf dω
			const n = 200000
			var sum float64
			for i := 0; i < n; i++ {
				wi := core.SampleOnUnitSphere(sampler.Get2D())
				_, pdf := surface.Evaluate(wo, wi, hit)
				sum += pdf * 4 * math.Pi
			}
			integral := sum / n

			if integral > 1.03 || integral < 0.9 {
				t.Errorf("Expected PDF to integrate to ≈1, got %f", integral)
			}
		})
	}
}

func TestSurface_DiffusePDFIsCosineWeighted(t *testing.T) {
	diffuse := NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	hit := hitAt(core.NewVec3(0, 0, 1), true, diffuse)
	wo := core.NewVec3(0, 0, 1)

	for _, wi := range []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 1).Normalize(),
		core.NewVec3(0, 3, 1).Normalize(),
	} {
		value, pdf := diffuse.Evaluate(wo, wi, hit)
		expectedPDF := wi.Z / math.Pi
		if math.Abs(pdf-expectedPDF) > 1e-4 {
			t.Errorf("wi=%v: expected pdf %f, got %f", wi, expectedPDF, pdf)
		}
		expectedValue := 0.8 / math.Pi
		if math.Abs(value.X-expectedValue) > 1e-4 {
			t.Errorf("wi=%v: expected BSDF %f, got %f", wi, expectedValue, value.X)
		}
	}

	// Below the surface an opaque material neither reflects nor transmits
	value, pdf := diffuse.Evaluate(wo, core.NewVec3(0, 0, -1), hit)
	if !value.IsZero() || pdf != 0 {
		t.Errorf("Expected zero below the surface, got %v pdf=%f", value, pdf)
	}
}

func TestSurface_GlassTransmitsMostLightAtNormalIncidence(t *testing.T) {
	glass := NewGlass(1.5, 0)
	hit := hitAt(core.NewVec3(0, 0, 1), true, glass)
	sampler := core.NewSeededSampler(5, 5)
	ray := incomingRay(0)

	transmitted := 0
	const n = 5000
	for i := 0; i < n; i++ {
		sample, ok := glass.Sample(ray, hit, sampler)
		if !ok {
			continue
		}
		if sample.Transmitted {
			transmitted++
			// Smooth glass at normal incidence keeps going straight
			if sample.Direction.Dot(core.NewVec3(0, 0, -1)) < 0.99 {
				t.Fatalf("Expected near-straight refraction, got %v", sample.Direction)
			}
		}
	}

	// Fresnel reflectance at normal incidence for n=1.5 is 4%
	fraction := float64(transmitted) / n
	if math.Abs(fraction-0.96) > 0.015 {
		t.Errorf("Expected ≈96%% transmission, got %.3f", fraction)
	}
}

func TestSurface_RoughGlassTransmissionIsNotScaledByIOR(t *testing.T) {
	glass := NewGlass(1.5, 0.1)

	tests := []struct {
		name      string
		frontFace bool
	}{
		{"entering", true},
		{"leaving", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := hitAt(core.NewVec3(0, 0, 1), tt.frontFace, glass)
			sampler := core.NewSeededSampler(11, 3)

			const n = 20000
			var transmitted float64
			for i := 0; i < n; i++ {
				sample, ok := glass.Sample(incomingRay(0), hit, sampler)
				if !ok || !sample.Transmitted {
					continue
				}
				transmitted += sample.Weight(hit.Normal).X
			}

			// About 96% passes either way; eta² scaling would give 0.43 or 2.16
			mean := transmitted / n
			if mean < 0.85 || mean > 1.02 {
				t.Errorf("Expected transmitted weight ≈0.96, got %.3f", mean)
			}
		})
	}
}

func TestSurface_TotalInternalReflection(t *testing.T) {
	// Inside glass (back face) at 60° exceeds the critical angle of ~41.8°
	glass := NewGlass(1.5, 0)
	hit := hitAt(core.NewVec3(0, 0, 1), false, glass)
	sampler := core.NewSeededSampler(8, 8)

	for i := 0; i < 1000; i++ {
		sample, ok := glass.Sample(incomingRay(60), hit, sampler)
		if !ok {
			continue
		}
		if sample.Transmitted {
			t.Fatalf("Expected total internal reflection, got transmitted direction %v", sample.Direction)
		}
	}
}

func TestSurface_LightAbsorbsAndEmits(t *testing.T) {
	light := NewLight(core.NewVec3(1, 0.9, 0.8), 4)
	hit := hitAt(core.NewVec3(0, 0, 1), true, light)

	if _, ok := light.Sample(incomingRay(0), hit, core.NewSeededSampler(1, 1)); ok {
		t.Error("Expected black emitter to absorb")
	}
	emitted := light.Emitted(hit)
	if emitted.Subtract(core.NewVec3(4, 3.6, 3.2)).Length() > 1e-12 {
		t.Errorf("Unexpected emission %v", emitted)
	}
}

func TestSurface_GrazingAndDegenerateInputs(t *testing.T) {
	diffuse := NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewSeededSampler(2, 2)

	// Ray travelling exactly along the tangent plane
	hit := hitAt(core.NewVec3(0, 0, 1), true, diffuse)
	grazing := core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0))
	if _, ok := diffuse.Sample(grazing, hit, sampler); ok {
		t.Error("Expected grazing ray to be absorbed")
	}

	// Zero-length normal
	degenerate := HitRecord{Normal: core.Vec3{}, FrontFace: true, Material: diffuse}
	if _, ok := diffuse.Sample(incomingRay(0), degenerate, sampler); ok {
		t.Error("Expected degenerate normal to be absorbed")
	}
}
