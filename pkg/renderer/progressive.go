package renderer

import (
	"context"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	InitialSamples int // Samples for first pass (1 recommended)
	MaxPasses      int // Maximum number of passes
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		InitialSamples: 1,
		MaxPasses:      7,
	}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *Image      // Running average of every pass so far
	Stats      RenderStats // Cumulative samples; Duration and Tiles cover this pass
	IsLast     bool
}

// ProgressiveRaytracer renders an image in passes of increasing sample
// count, merging each pass into a running average
type ProgressiveRaytracer struct {
	scene  *scene.Scene
	camera *geometry.Camera
	config Config // SamplesPerPixel is the total over all passes
	passes ProgressiveConfig
}

// NewProgressiveRaytracer creates a new progressive raytracer. The pass count
// is reduced when there are fewer samples than passes.
func NewProgressiveRaytracer(s *scene.Scene, camera *geometry.Camera, config Config, passes ProgressiveConfig) (*ProgressiveRaytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	requested := passes.MaxPasses
	passes.InitialSamples = min(max(1, passes.InitialSamples), config.SamplesPerPixel)
	passes.MaxPasses = max(1, passes.MaxPasses)
	passes.MaxPasses = min(passes.MaxPasses, config.SamplesPerPixel-passes.InitialSamples+1)
	if requested > passes.MaxPasses {
		core.Logger().Warn("reduced pass count to fit samples per pixel",
			"requested", requested,
			"passes", passes.MaxPasses,
			"spp", config.SamplesPerPixel)
	}

	return &ProgressiveRaytracer{
		scene:  s,
		camera: camera,
		config: config,
		passes: passes,
	}, nil
}

// NumPasses returns the number of passes the render will take
func (pr *ProgressiveRaytracer) NumPasses() int {
	return pr.passes.MaxPasses
}

// getSamplesForPass calculates the target total samples after a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	total := pr.config.SamplesPerPixel

	// Special case: if only 1 pass, use all samples
	if pr.passes.MaxPasses == 1 || passNumber >= pr.passes.MaxPasses {
		return total
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return pr.passes.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := total - pr.passes.InitialSamples
	remainingPasses := pr.passes.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	return pr.passes.InitialSamples + (passNumber-1)*samplesPerPass
}

// RenderProgressive renders with channel-based communication. Both channels
// are closed when rendering ends; at most one error is sent. OnTile, if set,
// is called from the rendering goroutine.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		f, err := newFrame(ctx, pr.scene, pr.camera, pr.config)
		if err != nil {
			errChan <- err
			return
		}
		defer f.close()

		core.Logger().Info("progressive render started",
			"scene", pr.scene.Name,
			"passes", pr.passes.MaxPasses,
			"spp", pr.config.SamplesPerPixel,
			"workers", f.pool.GetNumWorkers())

		done := 0
		for pass := 1; pass <= pr.passes.MaxPasses; pass++ {
			target := pr.getSamplesForPass(pass)

			passStats, err := f.renderPass(pass, target-done, pr.config.OnTile)
			if err != nil {
				core.Logger().Debug("progressive render stopped", "pass", pass, "error", err)
				errChan <- err
				return
			}
			done = target

			img, stats := f.snapshot(target)
			stats.Tiles = passStats.Tiles
			stats.Duration = passStats.Duration

			core.Logger().Debug("pass completed",
				"pass", pass,
				"duration", passStats.Duration.Round(time.Millisecond),
				"spp", target)

			select {
			case passChan <- PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     pass == pr.passes.MaxPasses,
			}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}
