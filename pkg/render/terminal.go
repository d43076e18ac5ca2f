package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw writes the framebuffer to a terminal screen area. Each cell shows
// two framebuffer rows using an upper half block (▀) with fg = top pixel
// and bg = bottom pixel, so the framebuffer should be twice as tall as the
// area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TerminalSize returns the framebuffer size that fills a terminal of the
// given cell dimensions.
func TerminalSize(cols, rows int) (int, int) {
	return cols, rows * 2
}

// FitSize returns the largest size with the aspect ratio of srcW x srcH
// that fits in maxW x maxH. Both results are at least 1.
func FitSize(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 1, 1
	}
	w, h := maxW, srcH*maxW/srcW
	if h > maxH {
		w, h = srcW*maxH/srcH, maxH
	}
	return max(w, 1), max(h, 1)
}

// cellColor maps a pixel to a terminal color. Fully transparent pixels
// leave the terminal default.
func cellColor(c Color) color.Color {
	if c&0xFF == 0 {
		return nil
	}
	return c.NRGBA()
}
