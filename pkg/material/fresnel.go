package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// FresnelDielectric returns the unpolarized Fresnel reflectance for light
// arriving at cosThetaI (measured on the incident side) at an interface with
// relative index eta = n_transmitted / n_incident. Total internal reflection
// returns 1.
func FresnelDielectric(cosThetaI, eta float64) float64 {
	cosThetaI = clamp(cosThetaI, 0, 1)

	sin2ThetaT := (1 - cosThetaI*cosThetaI) / (eta * eta)
	if sin2ThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sin2ThetaT))

	rParallel := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rPerpendicular := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	return (rParallel*rParallel + rPerpendicular*rPerpendicular) / 2
}

// reflect mirrors w (pointing away from the surface) about n
func reflect(w, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * w.Dot(n)).Subtract(w)
}

// refract bends w (pointing away from the surface, on the same side as n)
// through the interface with relative index eta using Snell's law.
// Returns false on total internal reflection.
func refract(w, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := w.Dot(n)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	return w.Negate().Multiply(1 / eta).Add(n.Multiply(cosThetaI/eta - cosThetaT)), true
}
