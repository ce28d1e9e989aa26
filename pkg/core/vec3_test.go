package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"lerp", a.Lerp(b, 0.5), NewVec3(2.5, -1.5, 4.5)},
		{"clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if a.Dot(b) != 12 {
		t.Errorf("Expected dot product 12, got %f", a.Dot(b))
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector to be finite")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN vector to be reported as non-finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Expected Inf vector to be reported as non-finite")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(0, 0, -10), NewVec3(0, 0, 1), 0.25)
	p := ray.At(9)
	if p.Subtract(NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected (0,0,-1), got %v", p)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected ray time 0.25, got %f", ray.Time)
	}
}

func TestONB_Orthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 2, 3).Normalize(),
	}

	for _, n := range normals {
		basis := NewONB(n)
		if math.Abs(basis.U.Dot(basis.V)) > 1e-12 || math.Abs(basis.U.Dot(basis.W)) > 1e-12 || math.Abs(basis.V.Dot(basis.W)) > 1e-12 {
			t.Errorf("Basis for %v is not orthogonal: %+v", n, basis)
		}
		if basis.U.Cross(basis.V).Subtract(basis.W).Length() > 1e-9 {
			t.Errorf("Basis for %v is not right-handed: %+v", n, basis)
		}

		v := NewVec3(0.3, -0.2, 0.9)
		roundTrip := basis.World(basis.Local(v))
		if roundTrip.Subtract(v).Length() > 1e-12 {
			t.Errorf("Local/World round trip failed: %v -> %v", v, roundTrip)
		}
	}
}
