// Package config loads tilecast render settings from TOML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/taigrr/tilecast/pkg/logging"
	"github.com/taigrr/tilecast/pkg/raycast"
	"github.com/taigrr/tilecast/pkg/render"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full render configuration.
//
//	[canvas]
//	width = 512
//	height = 512
//	layout = "split"      # or "map"
//
//	[camera]
//	fov = 1.0471975511965976
//	max_distance = 20.0
//	step = 0.05
//	traversal = "march"   # or "dda"
//
//	[viewer]
//	x = 1.5
//	y = 1.5
//	angle = 0.0
//	size = 8
//
//	[output]
//	scale = 1
//	rays = true
//	fog = true
//
//	[map]
//	strict = false
type Config struct {
	Canvas Canvas `toml:"canvas"`
	Camera Camera `toml:"camera"`
	Viewer Viewer `toml:"viewer"`
	Output Output `toml:"output"`
	Map    Map    `toml:"map"`
}

type Canvas struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Layout string `toml:"layout"`
}

type Camera struct {
	FOV         float64 `toml:"fov"`
	MaxDistance float64 `toml:"max_distance"`
	Step        float64 `toml:"step"`
	Traversal   string  `toml:"traversal"`
}

type Viewer struct {
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Angle float64 `toml:"angle"`
	Size  int     `toml:"size"`
}

type Output struct {
	Scale int  `toml:"scale"`
	Rays  bool `toml:"rays"`
	Fog   bool `toml:"fog"`
}

type Map struct {
	Strict bool `toml:"strict"`
}

// Default returns the built-in configuration: a 512x512 split canvas, a
// π/3 field of view, 20 tile draw distance and 0.05 march step.
func Default() Config {
	rc := raycast.DefaultConfig()
	return Config{
		Canvas: Canvas{Width: 512, Height: 512, Layout: "split"},
		Camera: Camera{
			FOV:         rc.FOV,
			MaxDistance: rc.MaxDistance,
			Step:        rc.Step,
			Traversal:   rc.Traversal.String(),
		},
		Viewer: Viewer{X: 1.5, Y: 1.5, Angle: 0, Size: 8},
		Output: Output{Scale: 1, Rays: true, Fog: true},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file
// keep their default values; unknown keys are logged and ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	warnUndecoded(md, path)
	return cfg, cfg.Validate()
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	warnUndecoded(md, "")
	return cfg, cfg.Validate()
}

func warnUndecoded(md toml.MetaData, source string) {
	for _, key := range md.Undecoded() {
		logging.Logger().Warn("unknown config key", "key", key.String(), "file", source)
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if _, err := c.Split(); err != nil {
		return err
	}
	if c.Viewer.Size < 0 {
		return fmt.Errorf("%w: viewer size %d", ErrInvalid, c.Viewer.Size)
	}
	if c.Output.Scale < 1 {
		return fmt.Errorf("%w: output scale %d", ErrInvalid, c.Output.Scale)
	}
	rc, err := c.Raycast()
	if err != nil {
		return err
	}
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Split maps the layout name to a raycast.Split.
func (c Config) Split() (raycast.Split, error) {
	switch strings.ToLower(c.Canvas.Layout) {
	case "", "split":
		return raycast.SplitHalf, nil
	case "map":
		return raycast.SplitFull, nil
	}
	return raycast.SplitHalf, fmt.Errorf("%w: layout %q (use split or map)", ErrInvalid, c.Canvas.Layout)
}

// Raycast returns the raycaster configuration.
func (c Config) Raycast() (raycast.Config, error) {
	traversal, err := raycast.ParseTraversal(c.Camera.Traversal)
	if err != nil {
		return raycast.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return raycast.Config{
		FOV:         c.Camera.FOV,
		MaxDistance: c.Camera.MaxDistance,
		Step:        c.Camera.Step,
		Traversal:   traversal,
	}, nil
}

// ViewerPose returns the configured viewer.
func (c Config) ViewerPose() raycast.Viewer {
	return raycast.NewViewer(c.Viewer.X, c.Viewer.Y, c.Viewer.Angle, c.Viewer.Size)
}

// RenderOptions returns the compositor options.
func (c Config) RenderOptions() (render.Options, error) {
	split, err := c.Split()
	if err != nil {
		return render.Options{}, err
	}
	opts := render.DefaultOptions()
	opts.Split = split
	opts.DrawRays = c.Output.Rays
	opts.NoFog = !c.Output.Fog
	return opts, nil
}
