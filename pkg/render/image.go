package render

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned by Save for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output image encoding.
type Format int

const (
	FormatPPM Format = iota // Plain-text P3
	FormatPNG
	FormatBMP
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	}
	return 0, fmt.Errorf("%w: %q (use .ppm, .png or .bmp)", ErrUnsupportedFormat, filepath.Ext(path))
}

// EncodePPM writes the framebuffer as a plain-text P3 image: a "P3" line,
// a "<width> <height>" line, a "255" line, then one "<r> <g> <b>" line per
// pixel in row-major order. Alpha is dropped.
func EncodePPM(w io.Writer, fb *Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}

	line := make([]byte, 0, len("255 255 255\n"))
	for _, p := range fb.Pixels {
		r, g, b, _ := DecodeColor(p)
		line = strconv.AppendUint(line[:0], uint64(r), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(g), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(b), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodePNG writes the framebuffer as a PNG.
func EncodePNG(w io.Writer, fb *Framebuffer) error {
	return png.Encode(w, fb.ToImage())
}

// EncodeBMP writes the framebuffer as a BMP.
func EncodeBMP(w io.Writer, fb *Framebuffer) error {
	return bmp.Encode(w, fb.ToImage())
}

// Encode writes the framebuffer in the given format.
func Encode(w io.Writer, fb *Framebuffer, format Format) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, fb)
	case FormatPNG:
		return EncodePNG(w, fb)
	case FormatBMP:
		return EncodeBMP(w, fb)
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
}

// Save writes the framebuffer to path, choosing the encoding from the
// extension. A failed write may leave a partial file behind.
func Save(path string, fb *Framebuffer) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := Encode(f, fb, format); err != nil {
		f.Close()
		return fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close image: %w", err)
	}
	return nil
}
