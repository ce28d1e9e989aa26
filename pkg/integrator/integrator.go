package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray. The scene is
	// shared read-only; the sampler belongs to the calling worker.
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}

// Config controls path termination
type Config struct {
	MaxDepth                  int     // Maximum number of scattering events; 0 sees only emitters and sky
	RussianRouletteMinBounces int     // Bounces before Russian roulette can end a path
	RayEpsilon                float64 // Minimum hit distance, avoids self-intersection
}

// DefaultConfig returns the configuration used when a caller has no preference
func DefaultConfig() Config {
	return Config{
		MaxDepth:                  50,
		RussianRouletteMinBounces: 5,
		RayEpsilon:                1e-3,
	}
}

// PathState is the state of a path in the integrator loop
type PathState int

const (
	// Active paths are still being extended
	Active PathState = iota
	// Escaped paths left the scene and picked up the background
	Escaped
	// Terminated paths were ended by the depth cap, absorption, a degenerate
	// sample or Russian roulette
	Terminated
	// Bounced paths scattered and continue as Active with the new ray
	Bounced
)

func (s PathState) String() string {
	switch s {
	case Active:
		return "active"
	case Escaped:
		return "escaped"
	case Terminated:
		return "terminated"
	case Bounced:
		return "bounced"
	default:
		return "unknown"
	}
}

// PathResult is the outcome of tracing one camera path
type PathResult struct {
	Radiance  core.Vec3
	State     PathState // Escaped or Terminated
	Depth     int       // Scattering events taken
	Discarded bool      // The estimate was non-finite and replaced by zero
}
