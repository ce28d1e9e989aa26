package lights

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPointLight_InverseSquareFalloff(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 4, 0), core.NewVec3(16, 8, 4))

	tests := []struct {
		name     string
		point    core.Vec3
		distance float64
		radiance core.Vec3
	}{
		{"distance 4", core.NewVec3(0, 0, 0), 4, core.NewVec3(1, 0.5, 0.25)},
		{"distance 2", core.NewVec3(0, 2, 0), 2, core.NewVec3(4, 2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample := light.Illuminate(tt.point)
			if math.Abs(sample.Distance-tt.distance) > 1e-12 {
				t.Errorf("Expected distance %f, got %f", tt.distance, sample.Distance)
			}
			if sample.Radiance.Subtract(tt.radiance).Length() > 1e-12 {
				t.Errorf("Expected radiance %v, got %v", tt.radiance, sample.Radiance)
			}
			if sample.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
				t.Errorf("Expected direction towards the light, got %v", sample.Direction)
			}
		})
	}

	if !light.Illuminate(core.NewVec3(0, 4, 0)).IsBlack() {
		t.Error("Expected no light at the light position")
	}
}

func TestSpotLight_Cone(t *testing.T) {
	light := NewSpotLight(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 30, 10)

	tests := []struct {
		name     string
		point    core.Vec3
		expected float64
	}{
		{"on axis", core.NewVec3(0, 0, 0), 1},
		{"inside inner cone", core.NewVec3(math.Tan(10*math.Pi/180), 0, 0), 1},
		{"outside cone", core.NewVec3(math.Tan(45*math.Pi/180), 0, 0), 0},
		{"behind light", core.NewVec3(0, 2, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample := light.Illuminate(tt.point)
			distSq := tt.point.Subtract(core.NewVec3(0, 1, 0)).LengthSquared()
			got := sample.Radiance.X * distSq
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected falloff %f, got %f", tt.expected, got)
			}
		})
	}

	// Falloff region is strictly between 0 and 1
	edge := light.Illuminate(core.NewVec3(math.Tan(25*math.Pi/180), 0, 0))
	if edge.Radiance.X <= 0 || edge.Radiance.X >= 1 {
		t.Errorf("Expected partial light in falloff region, got %v", edge.Radiance)
	}
}

func TestDirectionalLight(t *testing.T) {
	light := NewDirectionalLight(core.NewVec3(0, -2, 0), core.NewVec3(3, 3, 3))

	for _, p := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(100, -5, 7)} {
		sample := light.Illuminate(p)
		if sample.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
			t.Errorf("Expected direction (0,1,0), got %v", sample.Direction)
		}
		if !math.IsInf(sample.Distance, 1) {
			t.Errorf("Expected infinite distance, got %f", sample.Distance)
		}
		if sample.Radiance != core.NewVec3(3, 3, 3) {
			t.Errorf("Expected constant radiance, got %v", sample.Radiance)
		}
	}

	if !NewDirectionalLight(core.Vec3{}, core.NewVec3(1, 1, 1)).Illuminate(core.Vec3{}).IsBlack() {
		t.Error("Expected degenerate direction to give no light")
	}
}
