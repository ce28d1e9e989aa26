package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the command line flags
type options struct {
	configPath string
	sceneName  string
	width      int
	height     int
	spp        int
	depth      int
	workers    int
	seed       uint64
	out        string
	format     string
	passes     int
	gamma      float64
	verbose    bool
	quiet      bool
	list       bool
	help       bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, map[string]bool, error) {
	var o options
	fs.StringVar(&o.configPath, "config", "", "TOML render configuration file")
	fs.StringVar(&o.sceneName, "scene", "default", "Scene to render (see -list)")
	fs.IntVar(&o.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&o.height, "height", 0, "Image height in pixels (0 = from aspect ratio)")
	fs.IntVar(&o.spp, "spp", 0, "Samples per pixel (scene default when unset)")
	fs.IntVar(&o.depth, "depth", 0, "Maximum bounces (scene default when unset)")
	fs.IntVar(&o.workers, "workers", 0, "Number of parallel workers (0 = physical cores)")
	fs.Uint64Var(&o.seed, "seed", 1, "Random seed")
	fs.StringVar(&o.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&o.format, "format", "", "Output format: png, bmp or tiff (default from -out, else png)")
	fs.IntVar(&o.passes, "passes", 1, "Progressive passes; each pass rewrites the output file")
	fs.Float64Var(&o.gamma, "gamma", 2.2, "Output gamma")
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&o.quiet, "q", false, "Hide the progress bar")
	fs.BoolVar(&o.list, "list", false, "List available scenes")
	fs.BoolVar(&o.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

// buildConfig loads the configuration file, if any, and overlays every flag
// given on the command line
func buildConfig(o options, set map[string]bool) (config.File, error) {
	f := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.File{}, err
		}
		f = loaded
	}

	if set["scene"] {
		f.Scene = o.sceneName
	}
	if set["width"] {
		f.Image.Width = o.width
	}
	if set["height"] {
		f.Image.Height = o.height
	}
	if set["spp"] {
		if o.spp <= 0 {
			return config.File{}, fmt.Errorf("%w: -spp must be positive, got %d", renderer.ErrInvalidConfig, o.spp)
		}
		f.Sampling.SamplesPerPixel = o.spp
	}
	if set["depth"] {
		if o.depth < 0 {
			return config.File{}, fmt.Errorf("%w: -depth must not be negative, got %d", renderer.ErrInvalidConfig, o.depth)
		}
		depth := o.depth
		f.Sampling.MaxDepth = &depth
	}
	if set["workers"] {
		f.Render.Workers = o.workers
	}
	if set["seed"] {
		f.Seed = o.seed
	}
	if set["out"] {
		f.Output = o.out
	}
	if set["passes"] {
		f.Sampling.Passes = o.passes
	}
	if set["gamma"] {
		f.Gamma = o.gamma
	}

	switch {
	case set["format"]:
		f.Format = o.format
	case f.Output != "":
		if format, err := output.FormatFromPath(f.Output); err == nil {
			f.Format = string(format)
		}
	}

	return f, f.Validate()
}

// createScene creates a built-in scene by name
func createScene(name string, override geometry.CameraConfig) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name is empty")
	}
	return scene.Load(name, override)
}

func main() {
	fs := flag.NewFlagSet("pathtracer", flag.ExitOnError)
	o, set, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if o.help {
		printHelp(os.Stdout, fs)
		return
	}
	if o.list {
		printScenes(os.Stdout)
		return
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, set, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	printScenes(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags override values from -config.")
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.Name, info.Description)
	}
}

func run(ctx context.Context, o options, set map[string]bool, stdout io.Writer) error {
	f, err := buildConfig(o, set)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(f.Format)
	if err != nil {
		return err
	}

	s, err := createScene(f.Scene, f.CameraOverride())
	if err != nil {
		return err
	}
	cfg := f.RenderConfig(s)

	path := f.Output
	if path == "" {
		path = output.DefaultPath(s.Name, format, time.Now())
	}

	logHostInfo(cfg)

	var bar *progressbar.ProgressBar
	cfg.OnTile = func(renderer.TileUpdate) {
		_ = bar.Add(1)
	}

	var pr *renderer.ProgressiveRaytracer
	if f.Sampling.Passes > 1 {
		if pr, err = newProgressive(s, cfg, f.Sampling.Passes); err != nil {
			return err
		}
	}

	bar = progressbar.NewOptions(tileUpdates(cfg, pr),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(fmt.Sprintf("Rendering %s", s.Name)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!o.quiet),
	)

	save := func(img *renderer.Image) error {
		return output.WriteFile(path, img.ToRGBA(f.Gamma), format)
	}

	var stats renderer.RenderStats
	if pr == nil {
		img, renderStats, err := renderer.Render(ctx, s, nil, cfg)
		if err != nil {
			return err
		}
		if err := save(img); err != nil {
			return err
		}
		stats = renderStats
	} else {
		stats, err = renderProgressive(ctx, pr, save)
		if err != nil {
			return err
		}
	}
	_ = bar.Finish()

	printSummary(stdout, s.Name, cfg, stats, path)
	return nil
}

func newProgressive(s *scene.Scene, cfg renderer.Config, passes int) (*renderer.ProgressiveRaytracer, error) {
	return renderer.NewProgressiveRaytracer(s, nil, cfg, renderer.ProgressiveConfig{
		InitialSamples: 1,
		MaxPasses:      passes,
	})
}

// tileUpdates returns how many tiles the render will report, counting every
// pass pr will actually run
func tileUpdates(cfg renderer.Config, pr *renderer.ProgressiveRaytracer) int {
	passes := 1
	if pr != nil {
		passes = pr.NumPasses()
	}
	return len(renderer.NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize)) * passes
}

// renderProgressive saves the running image after every pass and returns
// the statistics of the last one
func renderProgressive(ctx context.Context, pr *renderer.ProgressiveRaytracer, save func(*renderer.Image) error) (renderer.RenderStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	passChan, errChan := pr.RenderProgressive(ctx)

	var last renderer.RenderStats
	var elapsed time.Duration
	for result := range passChan {
		if err := save(result.Image); err != nil {
			cancel()
			for range passChan {
			}
			return last, err
		}
		elapsed += result.Stats.Duration
		last = result.Stats
		core.Logger().Debug("pass saved", "pass", result.PassNumber, "spp", result.Stats.MaxSamples)
	}
	if err := <-errChan; err != nil {
		return last, err
	}

	last.Duration = elapsed
	return last, nil
}

func logHostInfo(cfg renderer.Config) {
	attrs := []any{"workers", cfg.NumWorkers}
	if vm, err := mem.VirtualMemory(); err == nil {
		attrs = append(attrs, "memory_total_mb", vm.Total>>20, "memory_available_mb", vm.Available>>20)
	}
	core.Logger().Info("host", attrs...)
}

func printSummary(w io.Writer, sceneName string, cfg renderer.Config, stats renderer.RenderStats, path string) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Rendered %s at %dx%d in %v\n", sceneName, cfg.Width, cfg.Height, stats.Duration.Round(time.Millisecond))
	p.Fprintf(w, "Samples: %d (%.1f per pixel, range %d - %d)\n",
		stats.TotalSamples, stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)
	if seconds := stats.Duration.Seconds(); seconds > 0 {
		p.Fprintf(w, "Throughput: %.0f samples/s\n", float64(stats.TotalSamples)/seconds)
	}
	p.Fprintf(w, "Render saved as %s\n", path)
}
