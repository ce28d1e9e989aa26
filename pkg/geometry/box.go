package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents a rectangular box made up of 6 quads with optional rotation
type Box struct {
	Center   core.Vec3 // Center point of the box
	Size     core.Vec3 // Half-extents along each local axis
	Rotation core.Vec3 // Rotation angles in radians about X, Y, Z (applied in that order)
	Material material.Material
	faces    ShapeList
	bbox     core.AABB
}

// NewBox creates a new box with the given center, half-extents, rotation, and material
func NewBox(center, size, rotation core.Vec3, mat material.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
		Material: mat,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box spanning min to max
func NewAxisAlignedBox(min, max core.Vec3, mat material.Material) *Box {
	center := min.Add(max).Multiply(0.5)
	size := max.Subtract(min).Multiply(0.5)
	return NewBox(center, size, core.Vec3{}, mat)
}

func (b *Box) generateFaces() {
	rotation := mgl64.Rotate3DZ(b.Rotation.Z).
		Mul3(mgl64.Rotate3DY(b.Rotation.Y)).
		Mul3(mgl64.Rotate3DX(b.Rotation.X))

	// Corners of the unit box, scaled, rotated and moved to the center
	var corners [8]core.Vec3
	for i := range corners {
		local := mgl64.Vec3{
			float64(2*(i&1) - 1),
			float64(2*(i>>1&1) - 1),
			float64(2*(i>>2&1) - 1),
		}
		local = mgl64.Vec3{local[0] * b.Size.X, local[1] * b.Size.Y, local[2] * b.Size.Z}
		world := rotation.Mul3x1(local)
		corners[i] = core.NewVec3(world[0], world[1], world[2]).Add(b.Center)
	}

	// Corner index bits: 1 = +X, 2 = +Y, 4 = +Z. Edges are ordered so U × V
	// points out of the box.
	faces := [6][3]int{
		{4, 5, 6}, // +Z
		{1, 0, 3}, // -Z
		{5, 1, 7}, // +X
		{0, 4, 2}, // -X
		{2, 6, 3}, // +Y
		{0, 1, 4}, // -Y
	}

	b.faces.Shapes = make([]Shape, 0, len(faces))
	for _, f := range faces {
		corner := corners[f[0]]
		u := corners[f[1]].Subtract(corner)
		v := corners[f[2]].Subtract(corner)
		b.faces.Shapes = append(b.faces.Shapes, NewQuad(corner, u, v, b.Material))
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...).Pad()
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}
