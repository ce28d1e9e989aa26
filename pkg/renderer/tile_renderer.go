package renderer

import (
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds no mutable state and is shared by all workers.
type TileRenderer struct {
	scene         *scene.Scene
	camera        *geometry.Camera
	integrator    integrator.Integrator
	width, height int
}

// NewTileRenderer creates a new tile renderer with the given scene, camera and integrator
func NewTileRenderer(scene *scene.Scene, camera *geometry.Camera, integratorInst integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds adds samples to every pixel within bounds. Each pixel draws
// from its own stream keyed by seed and pixel index, so the result does not
// depend on which worker renders the tile.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, samples int, seed uint64) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  samples,
		MinSamples:  math.MaxInt,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			sampler := core.NewSeededSampler(seed, uint64(j*tr.width+i))
			samplesUsed := tr.samplePixel(i, j, &pixelStats[j][i], samples, sampler)

			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	} else {
		stats.MinSamples = 0
	}
	return stats
}

// samplePixel takes samples for pixel (i, j), row 0 at the top
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, samples int, sampler core.Sampler) int {
	for k := 0; k < samples; k++ {
		jitter := pixelJitter(k, samples, sampler.Get2D())
		ray := tr.camera.GetRay(i, j, tr.width, tr.height, jitter, sampler)

		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
	}

	return samples
}

// pixelJitter maps the k-th of n uniform samples to a sub-pixel offset. The
// first ⌊√n⌋² samples land one per cell of a ⌊√n⌋×⌊√n⌋ grid, the rest are
// left uniform.
func pixelJitter(k, n int, u core.Vec2) core.Vec2 {
	strata := int(math.Sqrt(float64(n)))
	if k >= strata*strata {
		return u
	}
	return core.NewVec2(
		(float64(k%strata)+u.X)/float64(strata),
		(float64(k/strata)+u.Y)/float64(strata),
	)
}
