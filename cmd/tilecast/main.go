// tilecast - Tile Map Ray Caster
// Renders a first-person view of an ASCII tile map next to a top-down
// minimap and writes it as a PPM, PNG or BMP image.
//
// Map files:
//
//	line 1      - width
//	line 2      - height
//	next lines  - rows of '#' (wall) and '_' (floor)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/taigrr/tilecast/pkg/config"
	"github.com/taigrr/tilecast/pkg/logging"
	"github.com/taigrr/tilecast/pkg/raycast"
	"github.com/taigrr/tilecast/pkg/render"
	"github.com/taigrr/tilecast/pkg/tilemap"
)

var (
	configPath = flag.String("config", "", "Path to a TOML render config")
	outputPath = flag.String("o", "framebuffer.ppm", "Output image (.ppm, .png or .bmp); empty to skip")
	width      = flag.Int("width", 0, "Canvas width in pixels")
	height     = flag.Int("height", 0, "Canvas height in pixels")
	layout     = flag.String("layout", "", "Canvas layout: split or map")
	fov        = flag.Float64("fov", 0, "Field of view in radians")
	maxDist    = flag.Float64("max-distance", 0, "Max draw distance in tiles")
	step       = flag.Float64("step", 0, "Ray march step in tiles")
	traversal  = flag.String("traversal", "", "Ray traversal: march or dda")
	viewerX    = flag.Float64("x", 0, "Viewer x in tiles")
	viewerY    = flag.Float64("y", 0, "Viewer y in tiles")
	angle      = flag.Float64("angle", 0, "Viewer facing angle in radians (0 = +x)")
	scale      = flag.Int("scale", 0, "Integer upscale factor for the saved image")
	noRays     = flag.Bool("no-rays", false, "Do not draw rays on the minimap")
	noFog      = flag.Bool("no-fog", false, "Do not fade distant walls")
	strict     = flag.Bool("strict", false, "Reject unrecognised map characters")
	preview    = flag.Bool("preview", false, "Show the frame in the terminal until a key is pressed")
	verbose    = flag.Bool("v", false, "Debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tilecast - Tile Map Ray Caster\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tilecast [options] <map.txt>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Canvas.Width = *width
		case "height":
			cfg.Canvas.Height = *height
		case "layout":
			cfg.Canvas.Layout = *layout
		case "fov":
			cfg.Camera.FOV = *fov
		case "max-distance":
			cfg.Camera.MaxDistance = *maxDist
		case "step":
			cfg.Camera.Step = *step
		case "traversal":
			cfg.Camera.Traversal = *traversal
		case "x":
			cfg.Viewer.X = *viewerX
		case "y":
			cfg.Viewer.Y = *viewerY
		case "angle":
			cfg.Viewer.Angle = *angle
		case "scale":
			cfg.Output.Scale = *scale
		case "no-rays":
			cfg.Output.Rays = !*noRays
		case "no-fog":
			cfg.Output.Fog = !*noFog
		case "strict":
			cfg.Map.Strict = *strict
		}
	})

	return cfg, cfg.Validate()
}

func run(mapPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := tilemap.Load(mapPath, tilemap.Options{Strict: cfg.Map.Strict})
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}

	rc, err := cfg.Raycast()
	if err != nil {
		return err
	}
	caster, err := raycast.New(m, rc)
	if err != nil {
		return fmt.Errorf("create raycaster: %w", err)
	}
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	compositor := render.NewCompositor(m, caster, opts)
	fb, err := compositor.Frame(cfg.Canvas.Width, cfg.Canvas.Height, cfg.ViewerPose())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if s := cfg.Output.Scale; s > 1 {
		fb = fb.Scale(fb.Width*s, fb.Height*s)
	}

	if *outputPath != "" {
		if err := render.Save(*outputPath, fb); err != nil {
			return fmt.Errorf("save %s: %w", *outputPath, err)
		}
		fmt.Printf("Wrote %s (%dx%d, map %s %dx%d)\n",
			*outputPath, fb.Width, fb.Height, filepath.Base(mapPath), m.Width(), m.Height())
	}

	if *preview {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return showPreview(ctx, fb)
	}
	return nil
}
