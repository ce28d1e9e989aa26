package core

import (
	"math"
	"testing"
)

func TestSampleCosineHemisphere_AboveSurface(t *testing.T) {
	sampler := NewSeededSampler(42, 0)
	normal := NewVec3(0.3, 0.9, -0.1).Normalize()

	var cosSum float64
	const n = 20000
	for i := 0; i < n; i++ {
		dir := SampleCosineHemisphere(normal, sampler.Get2D())
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		cos := dir.Dot(normal)
		if cos < 0 {
			t.Fatalf("Sampled direction below surface: cos=%f", cos)
		}
		cosSum += cos
	}

	// E[cos] under a cos/π density is 2/3
	mean := cosSum / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine ≈ 0.667, got %f", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(7, 3)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 || p.X*p.X+p.Y*p.Y > 1+1e-12 {
			t.Fatalf("Point %v outside unit disk", p)
		}
	}

	center := SamplePointInUnitDisk(NewVec2(0.5, 0.5))
	if !center.IsZero() {
		t.Errorf("Expected disk center for (0.5, 0.5), got %v", center)
	}
}

func TestNewSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(1, 10)
	b := NewSeededSampler(1, 10)
	c := NewSeededSampler(1, 11)

	same := true
	differs := false
	for i := 0; i < 16; i++ {
		va, vb, vc := a.Get1D(), b.Get1D(), c.Get1D()
		if va != vb {
			same = false
		}
		if va != vc {
			differs = true
		}
	}

	if !same {
		t.Error("Expected identical sequences for identical seed and stream")
	}
	if !differs {
		t.Error("Expected different streams to produce different sequences")
	}
}
