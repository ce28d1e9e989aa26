package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidConfig is returned, wrapped, for render parameters that cannot produce an image
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains the parameters of a single render
type Config struct {
	Width                     int    // Image width in pixels
	Height                    int    // Image height in pixels
	SamplesPerPixel           int    // Camera paths per pixel
	MaxDepth                  int    // Maximum scattering events per path, 0 is allowed
	RussianRouletteMinBounces int    // Bounces before Russian roulette can end a path
	TileSize                  int    // Edge length of the square work units
	NumWorkers                int    // Parallel workers, 0 = use CPU count
	Seed                      uint64 // Run seed; equal seeds give identical images
	OnTile                    func(TileUpdate)
}

// TileUpdate reports a completed tile. It is delivered from the goroutine
// that called Render, never from a worker.
type TileUpdate struct {
	Tile      *Tile
	Pass      int         // Pass the tile belongs to, 1-based
	Completed int         // Tiles completed so far in this pass
	Total     int         // Tiles per pass
	Stats     RenderStats // Statistics of this tile alone
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:                     400,
		Height:                    225,
		SamplesPerPixel:           64,
		MaxDepth:                  50,
		RussianRouletteMinBounces: 5,
		TileSize:                  32,
		NumWorkers:                0,
		Seed:                      1,
	}
}

// Validate reports the first parameter that makes the config unusable
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.RussianRouletteMinBounces < 0:
		return fmt.Errorf("%w: russian roulette min bounces %d", ErrInvalidConfig, c.RussianRouletteMinBounces)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Render estimates the radiance of every pixel of the image seen by camera.
// A nil camera uses the scene's own. Cancelling ctx stops the render between
// tiles and returns ctx.Err().
func Render(ctx context.Context, s *scene.Scene, camera *geometry.Camera, cfg Config) (*Image, RenderStats, error) {
	f, err := newFrame(ctx, s, camera, cfg)
	if err != nil {
		return nil, RenderStats{}, err
	}
	defer f.close()

	core.Logger().Info("render started",
		"scene", s.Name,
		"width", cfg.Width,
		"height", cfg.Height,
		"spp", cfg.SamplesPerPixel,
		"workers", f.pool.GetNumWorkers())

	passStats, err := f.renderPass(1, cfg.SamplesPerPixel, cfg.OnTile)
	if err != nil {
		return nil, passStats, err
	}

	img, stats := f.snapshot(cfg.SamplesPerPixel)
	stats.Tiles = passStats.Tiles
	stats.Duration = passStats.Duration

	core.Logger().Info("render finished",
		"scene", s.Name,
		"duration", stats.Duration,
		"samples", stats.TotalSamples)
	return img, stats, nil
}

// frame owns the accumulation buffer and worker pool of one image
type frame struct {
	cfg        Config
	tiles      []*Tile
	pixelStats [][]PixelStats // Shared pixel statistics array (global image coordinates)
	pool       *WorkerPool
}

func newFrame(ctx context.Context, s *scene.Scene, camera *geometry.Camera, cfg Config) (*frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: nil scene", ErrInvalidConfig)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.BVH == nil {
		if err := s.Preprocess(); err != nil {
			return nil, fmt.Errorf("preprocess scene %q: %w", s.Name, err)
		}
	}
	if camera == nil {
		camera = s.Camera
	}

	pathTracer := integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:                  cfg.MaxDepth,
		RussianRouletteMinBounces: cfg.RussianRouletteMinBounces,
		RayEpsilon:                integrator.DefaultConfig().RayEpsilon,
	})
	tileRenderer := NewTileRenderer(s, camera, pathTracer, cfg.Width, cfg.Height)

	pixelStats := make([][]PixelStats, cfg.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, cfg.Width)
	}

	numWorkers := cfg.NumWorkers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}

	tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize)
	pool := NewWorkerPool(ctx, tileRenderer, numWorkers, len(tiles))
	pool.Start()

	return &frame{
		cfg:        cfg,
		tiles:      tiles,
		pixelStats: pixelStats,
		pool:       pool,
	}, nil
}

func (f *frame) close() {
	f.pool.Stop()
}

// passSeed derives a distinct seed for every pass; pass 1 uses the run seed
func passSeed(seed uint64, pass int) uint64 {
	return seed + uint64(pass-1)*0x9e3779b97f4a7c15
}

// renderPass adds samples to every pixel and waits for all tiles. The
// returned stats describe this pass only.
func (f *frame) renderPass(pass, samples int, onTile func(TileUpdate)) (RenderStats, error) {
	start := time.Now()
	seed := passSeed(f.cfg.Seed, pass)

	// The queue holds every tile of a pass, so submitting never blocks
	for id, tile := range f.tiles {
		f.pool.SubmitTask(TileTask{
			Tile:       tile,
			TaskID:     id,
			Samples:    samples,
			Seed:       seed,
			PixelStats: f.pixelStats,
		})
	}

	var stats RenderStats
	var firstErr error
	for i := 0; i < len(f.tiles); i++ {
		result, ok := f.pool.GetResult()
		if !ok {
			return stats, errors.New("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		stats.merge(result.Stats)
		if onTile != nil && firstErr == nil {
			onTile(TileUpdate{
				Tile:      f.tiles[result.TaskID],
				Pass:      pass,
				Completed: stats.Tiles,
				Total:     len(f.tiles),
				Stats:     result.Stats,
			})
		}
	}

	stats.MaxSamples = samples
	stats.Duration = time.Since(start)
	return stats, firstErr
}

// snapshot assembles the current image and calculates cumulative statistics
// from the shared pixel stats in a single pass
func (f *frame) snapshot(targetSamples int) (*Image, RenderStats) {
	img := imageFromStats(f.pixelStats, f.cfg.Width, f.cfg.Height)

	stats := RenderStats{
		TotalPixels: f.cfg.Width * f.cfg.Height,
		MaxSamples:  targetSamples,
		MinSamples:  math.MaxInt,
	}
	for y := range f.pixelStats {
		for x := range f.pixelStats[y] {
			count := f.pixelStats[y][x].SampleCount
			stats.TotalSamples += count
			stats.MinSamples = min(stats.MinSamples, count)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
		}
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)

	return img, stats
}
