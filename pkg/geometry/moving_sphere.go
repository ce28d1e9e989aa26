package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MovingSphere is a sphere whose center moves linearly from Center0 at
// time 0 to Center1 at time 1. Ray times outside [0, 1] extrapolate.
type MovingSphere struct {
	Center0  core.Vec3
	Center1  core.Vec3
	Radius   float64
	Material material.Material
}

// NewMovingSphere creates a sphere moving between two centers over the shutter interval
func NewMovingSphere(center0, center1 core.Vec3, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Radius:   math.Abs(radius),
		Material: mat,
	}
}

// CenterAt returns the sphere center at the given time
func (s *MovingSphere) CenterAt(time float64) core.Vec3 {
	return s.Center0.Lerp(s.Center1, time)
}

// Hit intersects the sphere at its position at ray.Time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(ray, s.CenterAt(ray.Time), s.Radius, s.Material, tMin, tMax)
}

// BoundingBox bounds the sphere at both ends of its motion
func (s *MovingSphere) BoundingBox() core.AABB {
	r := core.Splat(s.Radius)
	box0 := core.NewAABB(s.Center0.Subtract(r), s.Center0.Add(r))
	box1 := core.NewAABB(s.Center1.Subtract(r), s.Center1.Add(r))
	return box0.Union(box1)
}
