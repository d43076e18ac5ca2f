package render

import "image/color"

// Color is a packed 8-bit RGBA value laid out as 0xRRGGBBAA.
type Color uint32

// EncodeColor packs four channels into a Color.
func EncodeColor(r, g, b, a uint8) Color {
	return Color(r)<<24 | Color(g)<<16 | Color(b)<<8 | Color(a)
}

// DecodeColor unpacks a Color into its channels.
func DecodeColor(c Color) (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return EncodeColor(r, g, b, 255)
}

// RGBA implements color.Color. Channels are treated as non-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns the color as a standard library color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := DecodeColor(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts any color.Color to a packed Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return EncodeColor(n.R, n.G, n.B, n.A)
}

// Colors for convenience
var (
	ColorBlack    = RGB(0, 0, 0)
	ColorWhite    = RGB(255, 255, 255)
	ColorRed      = RGB(255, 0, 0)
	ColorGreen    = RGB(0, 255, 0)
	ColorBlue     = RGB(0, 0, 255)
	ColorYellow   = RGB(255, 255, 0)
	ColorGray     = RGB(128, 128, 128)
	ColorDarkGray = RGB(30, 30, 40)
)
