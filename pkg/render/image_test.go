package render

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestEncodePPMExact(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Pixels[0] = 0xFF0000FF
	fb.Pixels[1] = 0x00FF00FF

	var buf bytes.Buffer
	if err := EncodePPM(&buf, fb); err != nil {
		t.Fatalf("EncodePPM() error = %v", err)
	}
	want := "P3\n2 1\n255\n255 0 0\n0 255 0\n"
	if buf.String() != want {
		t.Errorf("EncodePPM() = %q, want %q", buf.String(), want)
	}
}

func TestEncodePPMDropsAlpha(t *testing.T) {
	fb := NewFramebuffer(1, 2)
	fb.Pixels[0] = EncodeColor(1, 2, 3, 0)
	fb.Pixels[1] = EncodeColor(200, 100, 50, 128)

	var buf bytes.Buffer
	if err := EncodePPM(&buf, fb); err != nil {
		t.Fatal(err)
	}
	want := "P3\n1 2\n255\n1 2 3\n200 100 50\n"
	if buf.String() != want {
		t.Errorf("EncodePPM() = %q, want %q", buf.String(), want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodePPMWriteError(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	if err := EncodePPM(failWriter{}, fb); err == nil {
		t.Error("EncodePPM() should surface write errors")
	}
}

func testFrame() *Framebuffer {
	fb := NewFramebuffer(3, 2)
	fb.Fill(ColorBlack)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(1, 0, ColorGreen)
	fb.SetPixel(2, 1, ColorBlue)
	return fb
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	fb := testFrame()

	t.Run("ppm", func(t *testing.T) {
		path := filepath.Join(dir, "frame.ppm")
		if err := Save(path, fb); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		want := "P3\n3 2\n255\n255 0 0\n0 255 0\n0 0 0\n0 0 0\n0 0 0\n0 0 255\n"
		if string(data) != want {
			t.Errorf("file = %q, want %q", data, want)
		}
	})

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "frame.PNG")
		if err := Save(path, fb); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatalf("png.Decode() error = %v", err)
		}
		assertSameFrame(t, fb, FromImage(img))
	})

	t.Run("bmp", func(t *testing.T) {
		path := filepath.Join(dir, "frame.bmp")
		if err := Save(path, fb); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := bmp.Decode(f)
		if err != nil {
			t.Fatalf("bmp.Decode() error = %v", err)
		}
		assertSameFrame(t, fb, FromImage(img))
	})

	t.Run("unsupported", func(t *testing.T) {
		err := Save(filepath.Join(dir, "frame.gif"), fb)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Save(.gif) error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("unwritable", func(t *testing.T) {
		err := Save(filepath.Join(dir, "missing", "frame.ppm"), fb)
		if err == nil {
			t.Error("Save() into a missing directory should fail")
		}
	})
}

func assertSameFrame(t *testing.T, want, got *Framebuffer) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	for i := range want.Pixels {
		if got.Pixels[i] != want.Pixels[i] {
			t.Errorf("pixel %d = %#08x, want %#08x", i, uint32(got.Pixels[i]), uint32(want.Pixels[i]))
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.ppm":      FormatPPM,
		"a/b/OUT.PNG":  FormatPNG,
		"frame.v2.bmp": FormatBMP,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("noext"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatFromPath(noext) error = %v", err)
	}
}
