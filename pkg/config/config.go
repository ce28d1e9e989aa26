package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// File is a render configuration as stored in a TOML file. Zero values
// defer to the scene's recommended settings.
type File struct {
	Scene  string  `toml:"scene"`
	Output string  `toml:"output"` // Empty = output/<scene>/render_<timestamp>.<format>
	Format string  `toml:"format"` // png, bmp or tiff
	Seed   uint64  `toml:"seed"`
	Gamma  float64 `toml:"gamma"`

	Image    ImageConfig    `toml:"image"`
	Sampling SamplingConfig `toml:"sampling"`
	Render   RenderConfig   `toml:"render"`
	Camera   CameraConfig   `toml:"camera"`
}

// ImageConfig sets the output resolution
type ImageConfig struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	AspectRatio float64 `toml:"aspect_ratio"` // Used when Height is unset
}

// SamplingConfig controls the Monte Carlo estimate
type SamplingConfig struct {
	SamplesPerPixel           int  `toml:"samples_per_pixel"`
	MaxDepth                  *int `toml:"max_depth"` // 0 is valid, so unset is nil
	RussianRouletteMinBounces int  `toml:"russian_roulette_min_bounces"`
	Passes                    int  `toml:"passes"` // Progressive passes, 1 = single render
}

// RenderConfig controls parallelism
type RenderConfig struct {
	TileSize int `toml:"tile_size"`
	Workers  int `toml:"workers"` // 0 = physical core count
}

// CameraConfig overrides the scene camera
type CameraConfig struct {
	Center        *[3]float64 `toml:"center"`
	LookAt        *[3]float64 `toml:"look_at"`
	Up            *[3]float64 `toml:"up"`
	VFov          float64     `toml:"vfov"`
	Aperture      float64     `toml:"aperture"`
	FocusDistance float64     `toml:"focus_distance"`
}

// Default returns the configuration used without a file
func Default() File {
	return File{
		Scene:  "default",
		Format: string(output.PNG),
		Seed:   1,
		Gamma:  2.2,
		Sampling: SamplingConfig{
			Passes: 1,
		},
		Render: RenderConfig{
			TileSize: 32,
		},
	}
}

// Load reads a TOML file on top of the defaults
func Load(path string) (File, error) {
	f := Default()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return File{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return f, f.Validate()
}

// Parse decodes TOML text on top of the defaults
func Parse(data string) (File, error) {
	f := Default()
	md, err := toml.Decode(data, &f)
	if err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return f, f.Validate()
}

// checkUndecoded rejects keys that match no field, usually typos
func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, key := range undecoded {
		keys[i] = key.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Validate checks values that can be judged without a scene
func (f File) Validate() error {
	var errs []error
	if _, err := output.ParseFormat(f.Format); err != nil {
		errs = append(errs, err)
	}
	if f.Gamma <= 0 {
		errs = append(errs, fmt.Errorf("gamma must be positive, got %g", f.Gamma))
	}
	if f.Image.Width < 0 || f.Image.Height < 0 || f.Image.AspectRatio < 0 {
		errs = append(errs, fmt.Errorf("image size must not be negative"))
	}
	if f.Sampling.SamplesPerPixel < 0 || f.Sampling.RussianRouletteMinBounces < 0 || f.Sampling.Passes < 0 {
		errs = append(errs, fmt.Errorf("%w: sampling values must not be negative", renderer.ErrInvalidConfig))
	}
	if f.Sampling.MaxDepth != nil && *f.Sampling.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: max_depth must not be negative, got %d", renderer.ErrInvalidConfig, *f.Sampling.MaxDepth))
	}
	if f.Render.TileSize < 0 || f.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("render values must not be negative"))
	}
	return errors.Join(errs...)
}

// CameraOverride returns the camera settings to overlay on the scene's camera
func (f File) CameraOverride() geometry.CameraConfig {
	c := geometry.CameraConfig{
		Width:         f.Image.Width,
		AspectRatio:   f.Image.AspectRatio,
		VFov:          f.Camera.VFov,
		Aperture:      f.Camera.Aperture,
		FocusDistance: f.Camera.FocusDistance,
	}
	if f.Image.Width > 0 && f.Image.Height > 0 {
		c.AspectRatio = float64(f.Image.Width) / float64(f.Image.Height)
	}
	if f.Camera.Center != nil {
		c.Center = toVec3(*f.Camera.Center)
	}
	if f.Camera.LookAt != nil {
		c.LookAt = toVec3(*f.Camera.LookAt)
	}
	if f.Camera.Up != nil {
		c.Up = toVec3(*f.Camera.Up)
	}
	return c
}

func toVec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// RenderConfig resolves the render parameters for s, filling unset values
// from the scene's camera and recommended sampling
func (f File) RenderConfig(s *scene.Scene) renderer.Config {
	cfg := renderer.Config{
		Width:                     s.Camera.Width(),
		Height:                    s.Camera.Height(),
		SamplesPerPixel:           s.SamplingConfig.SamplesPerPixel,
		MaxDepth:                  s.SamplingConfig.MaxDepth,
		RussianRouletteMinBounces: s.SamplingConfig.RussianRouletteMinBounces,
		TileSize:                  f.Render.TileSize,
		NumWorkers:                f.Render.Workers,
		Seed:                      f.Seed,
	}

	if f.Image.Height > 0 {
		cfg.Height = f.Image.Height
		if f.Image.Width <= 0 {
			// Keep the camera's aspect ratio
			cfg.Width = max(1, int(math.Round(float64(cfg.Height)*s.Camera.Config().AspectRatio)))
		}
	}
	if f.Sampling.SamplesPerPixel > 0 {
		cfg.SamplesPerPixel = f.Sampling.SamplesPerPixel
	}
	if f.Sampling.MaxDepth != nil {
		cfg.MaxDepth = *f.Sampling.MaxDepth
	}
	if f.Sampling.RussianRouletteMinBounces > 0 {
		cfg.RussianRouletteMinBounces = f.Sampling.RussianRouletteMinBounces
	}

	defaults := renderer.DefaultConfig()
	if cfg.SamplesPerPixel <= 0 {
		cfg.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = defaults.TileSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = DefaultWorkers()
	}
	return cfg
}

// DefaultWorkers returns the number of physical cores, or the logical CPU
// count when the host does not report one
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		core.Logger().Debug("physical core count unavailable", "error", err)
		return runtime.NumCPU()
	}
	return n
}
