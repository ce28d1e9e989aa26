package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Russian roulette survival probability bounds
const (
	minSurvival = 0.05
	maxSurvival = 0.95
)

// PathTracingIntegrator implements unidirectional path tracing with
// next-event estimation for delta lights
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	if config.RayEpsilon <= 0 {
		config.RayEpsilon = DefaultConfig().RayEpsilon
	}
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	return &PathTracingIntegrator{config: config}
}

// RayColor implements Integrator
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.TracePath(ray, scene, sampler).Radiance
}

// TracePath follows one path from the camera until it escapes or is terminated
func (pt *PathTracingIntegrator) TracePath(ray core.Ray, scene *scene.Scene, sampler core.Sampler) PathResult {
	throughput := core.NewVec3(1, 1, 1)
	var radiance core.Vec3
	depth := 0
	state := Active

	for state == Active {
		hit, isHit := scene.Hit(ray, pt.config.RayEpsilon, math.Inf(1))
		if !isHit {
			radiance = radiance.Add(throughput.MultiplyVec(scene.Background(ray)))
			state = Escaped
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(hit.Material.Emitted(*hit)))

		if depth >= pt.config.MaxDepth {
			state = Terminated
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(pt.directLighting(ray, hit, scene)))

		state = pt.scatter(&ray, &throughput, hit, depth, sampler)
		if state == Bounced {
			depth++
			state = Active
		}
	}

	result := PathResult{Radiance: radiance, State: state, Depth: depth}
	if !radiance.IsFinite() || !radiance.IsNonNegative() {
		result.Radiance = core.Vec3{}
		result.Discarded = true
	}
	return result
}

// scatter samples the BSDF, updates the ray and throughput in place and
// applies Russian roulette. Returns Bounced or Terminated.
func (pt *PathTracingIntegrator) scatter(ray *core.Ray, throughput *core.Vec3, hit *material.HitRecord, depth int, sampler core.Sampler) PathState {
	sample, ok := hit.Material.Sample(*ray, *hit, sampler)
	if !ok || sample.PDF <= 0 {
		return Terminated
	}

	weight := sample.Weight(hit.Normal)
	if !weight.IsFinite() || weight.IsZero() {
		return Terminated
	}

	next := throughput.MultiplyVec(weight)
	if depth+1 >= pt.config.RussianRouletteMinBounces {
		survival := math.Max(minSurvival, math.Min(maxSurvival, next.Luminance()))
		if sampler.Get1D() >= survival {
			return Terminated
		}
		next = next.Multiply(1 / survival)
	}

	*throughput = next
	*ray = core.NewRayAtTime(hit.Point, sample.Direction, ray.Time)
	return Bounced
}

// directLighting sums the unoccluded contribution of every delta light at
// the hit point. Delta lights cannot be reached by BSDF sampling, so this
// never double counts.
func (pt *PathTracingIntegrator) directLighting(ray core.Ray, hit *material.HitRecord, scene *scene.Scene) core.Vec3 {
	var total core.Vec3
	if len(scene.Lights) == 0 {
		return total
	}

	wo := ray.Direction.Negate().Normalize()
	for _, light := range scene.Lights {
		ls := light.Illuminate(hit.Point)
		if ls.IsBlack() {
			continue
		}

		cosine := math.Abs(ls.Direction.Dot(hit.Normal))
		if cosine <= 0 {
			continue
		}

		value, _ := hit.Material.Evaluate(wo, ls.Direction, *hit)
		if value.IsZero() {
			continue
		}

		shadowRay := core.NewRayAtTime(hit.Point, ls.Direction, ray.Time)
		if _, blocked := scene.Hit(shadowRay, pt.config.RayEpsilon, ls.Distance-pt.config.RayEpsilon); blocked {
			continue
		}

		total = total.Add(value.MultiplyVec(ls.Radiance).Multiply(cosine))
	}
	return total
}
