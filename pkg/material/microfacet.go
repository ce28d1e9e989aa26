package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// All functions in this file work in the local shading frame where the
// surface normal is +Z.

// ggxD is the Trowbridge-Reitz normal distribution
func ggxD(h core.Vec3, alpha float64) float64 {
	if h.Z <= 0 {
		return 0
	}
	a2 := alpha * alpha
	cos2 := h.Z * h.Z
	sin2 := h.X*h.X + h.Y*h.Y
	denom := cos2*a2 + sin2
	return a2 / (math.Pi * denom * denom)
}

// smithLambda is the Smith auxiliary function for GGX
func smithLambda(w core.Vec3, alpha float64) float64 {
	cos2 := w.Z * w.Z
	if cos2 == 0 {
		return math.Inf(1)
	}
	tan2 := math.Max(0, 1-cos2) / cos2
	return (math.Sqrt(1+alpha*alpha*tan2) - 1) / 2
}

// smithG1 is the masking term for a single direction
func smithG1(w core.Vec3, alpha float64) float64 {
	return 1 / (1 + smithLambda(w, alpha))
}

// smithG2 is the height-correlated masking-shadowing term
func smithG2(wo, wi core.Vec3, alpha float64) float64 {
	return 1 / (1 + smithLambda(wo, alpha) + smithLambda(wi, alpha))
}

// sampleVisibleNormal draws a microfacet normal from the distribution of
// normals visible from wo (wo.Z > 0), following Heitz 2018
func sampleVisibleNormal(wo core.Vec3, alpha float64, u core.Vec2) core.Vec3 {
	// Stretch the view vector to the hemisphere configuration
	vh := core.NewVec3(alpha*wo.X, alpha*wo.Y, wo.Z).Normalize()

	lensq := vh.X*vh.X + vh.Y*vh.Y
	var t1 core.Vec3
	if lensq > 0 {
		t1 = core.NewVec3(-vh.Y, vh.X, 0).Multiply(1 / math.Sqrt(lensq))
	} else {
		t1 = core.NewVec3(1, 0, 0)
	}
	t2 := vh.Cross(t1)

	r := math.Sqrt(u.X)
	phi := 2 * math.Pi * u.Y
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + vh.Z)
	p2 = (1-s)*math.Sqrt(math.Max(0, 1-p1*p1)) + s*p2

	nh := t1.Multiply(p1).Add(t2.Multiply(p2)).Add(vh.Multiply(math.Sqrt(math.Max(0, 1-p1*p1-p2*p2))))

	// Unstretch
	return core.NewVec3(alpha*nh.X, alpha*nh.Y, math.Max(1e-9, nh.Z)).Normalize()
}

// visibleNormalPDF is the density of sampleVisibleNormal returning h
func visibleNormalPDF(wo, h core.Vec3, alpha float64) float64 {
	woh := wo.Dot(h)
	if woh <= 0 || wo.Z <= 0 {
		return 0
	}
	return smithG1(wo, alpha) * woh * ggxD(h, alpha) / wo.Z
}
