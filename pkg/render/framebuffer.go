// Package render composites tile maps and ray-cast views into a
// framebuffer and writes the result as an image or to the terminal.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Framebuffer is a row-major grid of packed RGBA pixels.
// Index = x + y*Width.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a framebuffer filled with transparent black.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// FillGradient paints a red-along-x, green-along-y backdrop that makes the
// coordinate space visible.
func (fb *Framebuffer) FillGradient() {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r := uint8(255 * x / fb.Width)
			g := uint8(255 * y / fb.Height)
			fb.Pixels[x+y*fb.Width] = EncodeColor(r, g, 0, 255)
		}
	}
}

// SetPixel sets the pixel at (x, y). Writes outside the buffer are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[x+y*fb.Width] = c
}

// GetPixel returns the pixel at (x, y), or transparent black if out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[x+y*fb.Width]
}

// DrawRect draws a filled rectangle, clipped to the buffer.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	// Clip first so tall wall slices do not loop over offscreen rows.
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.Width), min(y+h, fb.Height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image without
// premultiplying.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		r, g, b, a := DecodeColor(p)
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}
	return img
}

// FromImage copies an image into a new framebuffer.
func FromImage(img image.Image) *Framebuffer {
	bounds := img.Bounds()
	fb := NewFramebuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			fb.Pixels[x+y*fb.Width] = EncodeColor(c.R, c.G, c.B, c.A)
		}
	}
	return fb
}

// Scale returns a nearest-neighbour resampled copy of the framebuffer.
func (fb *Framebuffer) Scale(width, height int) *Framebuffer {
	if width == fb.Width && height == fb.Height {
		out := NewFramebuffer(width, height)
		copy(out.Pixels, fb.Pixels)
		return out
	}
	src := fb.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}
