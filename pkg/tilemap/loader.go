package tilemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/taigrr/tilecast/pkg/logging"
)

var (
	// ErrInvalidHeader is returned when the width or height line is missing,
	// not an integer, or not positive.
	ErrInvalidHeader = errors.New("invalid map header")

	// ErrUnknownTile is returned in strict mode for characters other than
	// '#' and '_'.
	ErrUnknownTile = errors.New("unrecognised tile")
)

// Map file characters.
const (
	WallChar  = '#'
	FloorChar = '_'
)

// Options controls how lenient the loader is.
type Options struct {
	// Strict rejects unrecognised characters instead of logging them and
	// falling back to Floor.
	Strict bool
}

// Load reads a map description from a file.
func Load(path string, opts Options) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse reads a map description: a width line, a height line, then up to
// height rows of '#' (wall) and '_' (floor). Short rows and missing rows
// leave Floor behind. Characters past the width and rows past the height
// are ignored with a warning.
func Parse(r io.Reader, opts Options) (*Map, error) {
	sc := bufio.NewScanner(r)
	// Rows may be as wide as MaxCells; the buffer only grows as needed.
	sc.Buffer(make([]byte, 0, 4096), MaxCells*utf8.UTFMax)
	log := logging.Logger()

	width, err := readDimension(sc, "width")
	if err != nil {
		return nil, err
	}
	height, err := readDimension(sc, "height")
	if err != nil {
		return nil, err
	}
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	cells := make([]Tile, width*height)
	y := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if y >= height {
			if strings.TrimSpace(line) != "" {
				log.Warn("ignoring row beyond map height", "row", y, "height", height)
			}
			y++
			continue
		}

		x := 0
		for _, c := range line {
			if x >= width {
				log.Warn("ignoring characters beyond map width", "row", y, "width", width)
				break
			}
			switch c {
			case WallChar:
				cells[x+y*width] = Wall
			case FloorChar:
			default:
				if opts.Strict {
					return nil, fmt.Errorf("%w: %q at (%d, %d)", ErrUnknownTile, c, x, y)
				}
				log.Warn("unrecognised tile, using floor", "char", string(c), "x", x, "y", y)
			}
			x++
		}
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}

	return New(width, height, cells)
}

func readDimension(sc *bufio.Scanner, name string) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("read map %s: %w", name, err)
		}
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidHeader, name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidHeader, name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidHeader, name, n)
	}
	return n, nil
}
