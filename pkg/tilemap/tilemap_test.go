package tilemap

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/tilecast/pkg/logging"
)

func mustParse(t *testing.T, src string) *Map {
	t.Helper()
	m, err := Parse(strings.NewReader(src), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return m
}

func TestParseBox(t *testing.T) {
	m := mustParse(t, "3\n3\n###\n#_#\n###\n")

	if m.Width() != 3 || m.Height() != 3 {
		t.Fatalf("size = %dx%d, want 3x3", m.Width(), m.Height())
	}
	want := []string{"###", "#_#", "###"}
	for y, row := range want {
		for x, c := range row {
			got, err := m.TileAt(x, y)
			if err != nil {
				t.Fatalf("TileAt(%d, %d) error = %v", x, y, err)
			}
			expected := Floor
			if c == '#' {
				expected = Wall
			}
			if got != expected {
				t.Errorf("TileAt(%d, %d) = %v, want %v", x, y, got, expected)
			}
		}
	}
	if m.String() != "###\n#_#\n###\n" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestParseHeaderWhitespace(t *testing.T) {
	m := mustParse(t, "  4 \r\n\t2\n#__#\r\n____\n")
	if m.Width() != 4 || m.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", m.Width(), m.Height())
	}
	if tile, _ := m.TileAt(3, 0); tile != Wall {
		t.Errorf("TileAt(3, 0) = %v, want wall", tile)
	}
}

func TestParseShortRowsDefaultToFloor(t *testing.T) {
	m := mustParse(t, "4\n3\n#\n##\n")

	tests := []struct {
		x, y int
		want Tile
	}{
		{0, 0, Wall},
		{1, 0, Floor},
		{3, 0, Floor},
		{1, 1, Wall},
		{2, 1, Floor},
		{0, 2, Floor}, // missing row
	}
	for _, tc := range tests {
		got, err := m.TileAt(tc.x, tc.y)
		if err != nil {
			t.Fatalf("TileAt(%d, %d) error = %v", tc.x, tc.y, err)
		}
		if got != tc.want {
			t.Errorf("TileAt(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestParseOverflowIgnored(t *testing.T) {
	m := mustParse(t, "2\n1\n_##\n##\n")
	if m.String() != "_#\n" {
		t.Errorf("String() = %q, want %q", m.String(), "_#\n")
	}
}

func TestParseUnknownTile(t *testing.T) {
	orig := logging.Logger()
	t.Cleanup(func() { logging.SetLogger(orig) })
	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	m := mustParse(t, "3\n1\n#x#\n")
	if tile, _ := m.TileAt(1, 0); tile != Floor {
		t.Errorf("unknown char should default to floor, got %v", tile)
	}
	if !strings.Contains(buf.String(), "unrecognised tile") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}

	_, err := Parse(strings.NewReader("3\n1\n#x#\n"), Options{Strict: true})
	if !errors.Is(err, ErrUnknownTile) {
		t.Errorf("strict Parse() error = %v, want ErrUnknownTile", err)
	}
}

func TestParseInvalidHeader(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"missing height", "3\n"},
		{"non-numeric width", "three\n3\n"},
		{"non-numeric height", "3\nx\n"},
		{"zero width", "0\n3\n"},
		{"negative height", "3\n-1\n"},
		{"product wraps to zero", "4294967296\n4294967296\n#\n"},
		{"product overflows", "3037000500\n3037000500\n"},
		{"too many cells", "65536\n1025\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src), Options{})
			if !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidHeader", tc.src, err)
			}
		})
	}
}

func TestParseWideRow(t *testing.T) {
	const width = 70000
	row := strings.Repeat("_", width-1) + "#"
	m := mustParse(t, fmt.Sprintf("%d\n1\n%s\n", width, row))
	if tile, _ := m.TileAt(width-1, 0); tile != Wall {
		t.Errorf("TileAt(%d, 0) = %v, want wall", width-1, tile)
	}
}

func TestNewRejectsOversize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"max int", math.MaxInt, math.MaxInt},
		{"product overflows", math.MaxInt/2 + 1, 2},
		{"over cap", MaxCells, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.width, tc.height, nil); !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidHeader", tc.width, tc.height, err)
			}
		})
	}
	if _, err := New(MaxCells, 1, nil); err != nil {
		t.Errorf("New(MaxCells, 1) error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	if err := os.WriteFile(path, []byte("2\n2\n#_\n_#\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.String() != "#_\n_#\n" {
		t.Errorf("String() = %q", m.String())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestTileAtOutOfBounds(t *testing.T) {
	m := mustParse(t, "2\n2\n##\n##\n")
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := m.TileAt(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("TileAt(%d, %d) error = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
}

func TestIsBlocking(t *testing.T) {
	m := mustParse(t, "3\n3\n___\n_#_\n___\n")

	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"floor cell", 0.5, 0.5, false},
		{"wall cell", 1.2, 1.9, true},
		{"wall edge", 1.0, 1.0, true},
		{"just before wall", 0.999, 1.5, false},
		{"left of grid", -0.01, 1.5, true},
		{"above grid", 1.5, -0.5, true},
		{"right of grid", 3.0, 1.5, true},
		{"below grid", 1.5, 3.2, true},
		{"far outside", 1e9, -1e9, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.IsBlocking(tc.x, tc.y); got != tc.expect {
				t.Errorf("IsBlocking(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.expect)
			}
		})
	}
}

func TestNewCopiesCells(t *testing.T) {
	cells := []Tile{Wall, Floor}
	m, err := New(2, 1, cells)
	if err != nil {
		t.Fatal(err)
	}
	cells[1] = Wall
	if tile, _ := m.TileAt(1, 0); tile != Floor {
		t.Error("map should not alias the caller's cell slice")
	}

	if _, err := New(1, 1, []Tile{Wall, Wall}); err == nil {
		t.Error("New() should reject too many cells")
	}
}

func TestWalls(t *testing.T) {
	m := mustParse(t, "3\n2\n#_#\n_#_\n")
	var got [][2]int
	m.Walls(func(x, y int) { got = append(got, [2]int{x, y}) })
	want := [][2]int{{0, 0}, {2, 0}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("Walls() visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Walls()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
