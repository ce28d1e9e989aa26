package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var testMaterial = material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Hit_FromOutside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-9) > 1e-9 {
		t.Errorf("Expected t=9, got t=%f", hit.T)
	}
	if !vecClose(hit.Normal, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected normal pointing back at the ray origin, got %v", hit.Normal)
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
	if hit.Material != material.Material(testMaterial) {
		t.Error("Expected hit record to carry the sphere material")
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !vecClose(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, 0.001, 0.5); isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if hit, isHit := sphere.Hit(ray, 3.5, 1000.0); isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// tMin past the near root returns the far root
	hit, isHit := sphere.Hit(ray, 1.5, 1000.0)
	if !isHit || math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected far root at t=3, got %v %v", hit, isHit)
	}
}

func TestSphere_Hit_Degenerate(t *testing.T) {
	zeroRadius := NewSphere(core.NewVec3(0, 0, 0), 0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	if _, isHit := zeroRadius.Hit(ray, 0.001, 1000); isHit {
		t.Error("Expected zero-radius sphere to never be hit")
	}

	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial)
	zeroDirection := core.NewRay(core.NewVec3(0, 0, -5), core.Vec3{})
	if _, isHit := sphere.Hit(zeroDirection, 0.001, 1000); isHit {
		t.Error("Expected zero-direction ray to miss")
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2, testMaterial)
	box := sphere.BoundingBox()

	if !vecClose(box.Min, core.NewVec3(-1, 0, 1), 1e-12) || !vecClose(box.Max, core.NewVec3(3, 4, 5), 1e-12) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

func TestMovingSphere_CenterAtTime(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), 0.5, testMaterial)

	tests := []struct {
		time     float64
		expected core.Vec3
	}{
		{0, core.NewVec3(0, 0, 0)},
		{0.5, core.NewVec3(1, 0, 0)},
		{1, core.NewVec3(2, 0, 0)},
	}
	for _, tt := range tests {
		if got := sphere.CenterAt(tt.time); !vecClose(got, tt.expected, 1e-12) {
			t.Errorf("time %.1f: expected center %v, got %v", tt.time, tt.expected, got)
		}
	}
}

func TestMovingSphere_HitDependsOnRayTime(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), 0.5, testMaterial)

	tests := []struct {
		name     string
		x        float64
		time     float64
		expected bool
	}{
		{"start position at time 0", 0, 0, true},
		{"end position at time 0", 2, 0, false},
		{"end position at time 1", 2, 1, true},
		{"start position at time 1", 0, 1, false},
		{"midpoint at time 0.5", 1, 0.5, true},
		{"midpoint at time 0", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRayAtTime(core.NewVec3(tt.x, 0, -5), core.NewVec3(0, 0, 1), tt.time)
			hit, isHit := sphere.Hit(ray, 0.001, 1000)
			if isHit != tt.expected {
				t.Fatalf("Expected hit=%t, got %t", tt.expected, isHit)
			}
			if isHit && math.Abs(hit.T-4.5) > 1e-9 {
				t.Errorf("Expected t=4.5, got %f", hit.T)
			}
		})
	}
}

func TestMovingSphere_BoundingBoxCoversMotion(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(2, 1, 0), 0.5, testMaterial)
	box := sphere.BoundingBox()

	if !vecClose(box.Min, core.NewVec3(-0.5, -0.5, -0.5), 1e-12) || !vecClose(box.Max, core.NewVec3(2.5, 1.5, 0.5), 1e-12) {
		t.Errorf("Unexpected bounding box %v", box)
	}
	for _, time := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if !box.Contains(sphere.CenterAt(time)) {
			t.Errorf("Bounding box does not contain center at time %.2f", time)
		}
	}
}
