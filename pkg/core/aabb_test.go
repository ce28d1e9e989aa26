package core

import "testing"

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0, 100, true},
		{"miss to the side", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), 0, 100, false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), 0, 100, true},
		{"parallel outside slab", NewRay(NewVec3(0.5, 1.5, -5), NewVec3(0, 0, 1)), 0, 100, false},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), 0, 100, false},
		{"tMax too short", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0, 3, false},
		{"diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), 0, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_UnionAndAxis(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(2, -1, 0), NewVec3(5, 0.5, 2))

	u := a.Union(b)
	if u.Min != NewVec3(0, -1, 0) || u.Max != NewVec3(5, 1, 2) {
		t.Errorf("Unexpected union %+v", u)
	}
	if !u.IsValid() {
		t.Error("Union should be valid")
	}
	if u.LongestAxis() != 0 {
		t.Errorf("Expected longest axis X, got %d", u.LongestAxis())
	}
	if !u.Contains(a.Center()) || !u.Contains(b.Center()) {
		t.Error("Union should contain both centers")
	}
}

func TestAABB_PadFlatBox(t *testing.T) {
	flat := NewAABBFromPoints(NewVec3(0, 1, 0), NewVec3(2, 1, 2))
	padded := flat.Pad()

	if padded.Size().Y <= 0 {
		t.Errorf("Expected padded box to have thickness, got %v", padded.Size())
	}
	if padded.Size().X != 2 || padded.Size().Z != 2 {
		t.Errorf("Pad should not change thick axes, got %v", padded.Size())
	}
	if !padded.Hit(NewRay(NewVec3(1, 5, 1), NewVec3(0, -1, 0)), 0, 100) {
		t.Error("Expected ray to hit padded flat box")
	}
}
