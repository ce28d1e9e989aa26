package core

import "math"

// ONB is an orthonormal basis whose W axis is a given normal
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a basis around n; n does not need to be normalized
func NewONB(n Vec3) ONB {
	w := n.Normalize()
	var a Vec3
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}
	v := w.Cross(a).Normalize()
	u := v.Cross(w)
	return ONB{U: u, V: v, W: w}
}

// World transforms local coordinates (x along U, y along V, z along W) to world space
func (b ONB) World(local Vec3) Vec3 {
	return b.U.Multiply(local.X).Add(b.V.Multiply(local.Y)).Add(b.W.Multiply(local.Z))
}

// Local expresses a world-space vector in this basis
func (b ONB) Local(world Vec3) Vec3 {
	return NewVec3(world.Dot(b.U), world.Dot(b.V), world.Dot(b.W))
}
