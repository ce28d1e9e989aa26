package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShapeList intersects every shape in turn. It is the brute-force reference
// the BVH must agree with.
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList wraps the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Hit returns the nearest hit over all shapes
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of all shape bounds
func (l *ShapeList) BoundingBox() core.AABB {
	return unionBounds(l.Shapes)
}

func unionBounds(shapes []Shape) core.AABB {
	if len(shapes) == 0 {
		return core.AABB{}
	}
	box := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
