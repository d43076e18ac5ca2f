// Package tilemap provides the wall/floor grid that tilecast renders.
package tilemap

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrOutOfBounds is returned when a tile is requested outside the grid.
var ErrOutOfBounds = errors.New("tile out of bounds")

// MaxCells is the largest width*height a map may have.
const MaxCells = 1 << 26

// Tile is a single grid cell.
type Tile uint8

const (
	Floor Tile = iota // Passable, the default for every cell
	Wall              // Blocks rays
)

// String returns the ASCII form used by map files.
func (t Tile) String() string {
	if t == Wall {
		return "#"
	}
	return "_"
}

// Map is an immutable row-major grid of tiles. Index = x + y*width.
type Map struct {
	width  int
	height int
	cells  []Tile
}

// New creates a map from a row-major cell slice. Missing trailing cells
// default to Floor; cells is copied so the map stays immutable.
func New(width, height int, cells []Tile) (*Map, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	if len(cells) > width*height {
		return nil, fmt.Errorf("%d cells do not fit a %dx%d map", len(cells), width, height)
	}
	m := &Map{
		width:  width,
		height: height,
		cells:  make([]Tile, width*height),
	}
	copy(m.cells, cells)
	return m, nil
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// TileAt returns the tile at (x, y).
func (m *Map) TileAt(x, y int) (Tile, error) {
	if !m.inBounds(x, y) {
		return Floor, fmt.Errorf("%w: (%d, %d) in %dx%d map", ErrOutOfBounds, x, y, m.width, m.height)
	}
	return m.cells[x+y*m.width], nil
}

// IsBlocking reports whether the cell containing the world point is a wall.
// Points outside the grid are blocking, which bounds every ray march.
func (m *Map) IsBlocking(worldX, worldY float64) bool {
	if math.IsNaN(worldX) || math.IsNaN(worldY) {
		return true
	}
	fx, fy := math.Floor(worldX), math.Floor(worldY)
	if fx < 0 || fy < 0 || fx >= float64(m.width) || fy >= float64(m.height) {
		return true
	}
	return m.cells[int(fx)+int(fy)*m.width] == Wall
}

// Walls calls fn for every wall cell in row-major order.
func (m *Map) Walls(fn func(x, y int)) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.cells[x+y*m.width] == Wall {
				fn(x, y)
			}
		}
	}
}

// String renders the grid rows in map-file notation, without the header.
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			sb.WriteString(m.cells[x+y*m.width].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// checkSize rejects non-positive dimensions and grids over MaxCells.
// The division keeps width*height from overflowing.
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidHeader, width, height)
	}
	if width > MaxCells/height {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidHeader, width, height, MaxCells)
	}
	return nil
}

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}
