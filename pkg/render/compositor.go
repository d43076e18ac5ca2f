package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/tilecast/pkg/raycast"
	"github.com/taigrr/tilecast/pkg/tilemap"
)

// Palette holds the colors used to composite a frame.
type Palette struct {
	Background Color // Fill behind the split layout
	Wall       Color // Minimap wall tiles
	Viewer     Color // Minimap viewer marker
	Ray        Color // Minimap ray overlay
	Slice      Color // Nearest wall slices in the first-person view
	Fog        Color // Color that slices fade toward at max distance
}

// DefaultPalette returns the standard colors: white walls on a dark
// background, a red viewer and yellow rays.
func DefaultPalette() Palette {
	return Palette{
		Background: ColorDarkGray,
		Wall:       ColorWhite,
		Viewer:     ColorRed,
		Ray:        RGB(96, 96, 32),
		Slice:      RGB(220, 220, 220),
		Fog:        ColorBlack,
	}
}

// Options configures a Compositor.
type Options struct {
	Split    raycast.Split // SplitFull draws the minimap alone on a gradient
	Palette  Palette
	DrawRays bool // Overlay each column's ray on the minimap (split only)
	NoFog    bool // Draw every slice in Palette.Slice
}

// DefaultOptions returns a split layout with rays and fog.
func DefaultOptions() Options {
	return Options{
		Split:    raycast.SplitHalf,
		Palette:  DefaultPalette(),
		DrawRays: true,
	}
}

// Compositor renders one static frame: the top-down map, the viewer
// marker and, in the split layout, the ray-cast view. It keeps no state
// between frames.
type Compositor struct {
	grid   *tilemap.Map
	caster *raycast.Raycaster
	opts   Options
}

// NewCompositor creates a compositor. The map and raycaster are shared.
func NewCompositor(grid *tilemap.Map, caster *raycast.Raycaster, opts Options) *Compositor {
	return &Compositor{grid: grid, caster: caster, opts: opts}
}

// Frame allocates a framebuffer and renders one frame into it.
func (c *Compositor) Frame(width, height int, v raycast.Viewer) (*Framebuffer, error) {
	fb := NewFramebuffer(width, height)
	if err := c.Render(fb, v); err != nil {
		return nil, err
	}
	return fb, nil
}

// Render draws one frame into fb.
func (c *Compositor) Render(fb *Framebuffer, v raycast.Viewer) error {
	pal := c.opts.Palette
	tileW, tileH := raycast.TilePixelSize(fb.Width, fb.Height, c.grid.Width(), c.grid.Height(), c.opts.Split)

	if c.opts.Split == raycast.SplitFull {
		fb.FillGradient()
	} else {
		fb.Fill(pal.Background)
	}

	c.grid.Walls(func(x, y int) {
		fb.DrawRect(x*tileW, y*tileH, tileW, tileH, pal.Wall)
	})

	var cols []raycast.Column
	if c.opts.Split == raycast.SplitHalf {
		var err error
		cols, err = c.caster.Cast(v, fb.Width-fb.Width/2)
		if err != nil {
			return err
		}
	}

	vx, vy := v.PixelPos(tileW, tileH)
	if c.opts.DrawRays {
		for _, col := range cols {
			ex, ey := raycast.WorldToTilePixel(col.EndX, col.EndY, tileW, tileH)
			fb.DrawLine(vx, vy, ex, ey, pal.Ray)
		}
	}

	size := v.MarkerSize
	fb.DrawRect(vx-size/2, vy-size/2, size, size, pal.Viewer)

	offset := fb.Width / 2
	for _, col := range cols {
		if !col.Hit {
			continue
		}
		h := raycast.WallHeight(fb.Height, col.Perpendicular)
		fb.DrawRect(offset+col.Index, (fb.Height-h)/2, 1, h, c.sliceColor(col.Perpendicular))
	}
	return nil
}

// sliceColor fades the slice color toward the fog color in Lab space as
// the perpendicular distance approaches the draw distance.
func (c *Compositor) sliceColor(dist float64) Color {
	pal := c.opts.Palette
	if c.opts.NoFog {
		return pal.Slice
	}

	near, ok := colorful.MakeColor(pal.Slice)
	if !ok {
		return pal.Slice
	}
	far, ok := colorful.MakeColor(pal.Fog)
	if !ok {
		return pal.Slice
	}

	t := math.Min(math.Max(dist/c.caster.Config().MaxDistance, 0), 1)
	r, g, b := near.BlendLab(far, t).Clamped().RGB255()
	_, _, _, a := DecodeColor(pal.Slice)
	return EncodeColor(r, g, b, a)
}
