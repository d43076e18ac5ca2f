package raycast

import (
	"fmt"
	"math"

	"github.com/taigrr/tilecast/pkg/logging"
)

// Grid is the read-only view of a tile map the raycaster needs.
// *tilemap.Map satisfies it.
type Grid interface {
	// IsBlocking reports whether the cell containing the point is solid.
	// Points outside the grid must report true.
	IsBlocking(worldX, worldY float64) bool
}

// Column is the result of casting one screen column.
type Column struct {
	Index         int
	Angle         float64 // Absolute ray angle in radians
	Distance      float64 // Distance along the ray to the hit, or MaxDistance
	Perpendicular float64 // Distance * cos(Angle - viewer angle)
	Hit           bool    // False when the ray ran out of draw distance
	EndX, EndY    float64 // World point where the ray stopped
}

// Raycaster casts rays from a viewer through a grid.
type Raycaster struct {
	grid Grid
	cfg  Config
}

// New creates a raycaster. The grid is shared, never copied.
func New(grid Grid, cfg Config) (*Raycaster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Raycaster{grid: grid, cfg: cfg}, nil
}

// Config returns the raycaster configuration.
func (r *Raycaster) Config() Config {
	return r.cfg
}

// ColumnAngle returns the ray angle for column i of n.
func (r *Raycaster) ColumnAngle(v Viewer, i, n int) float64 {
	return v.Angle - r.cfg.FOV/2 + r.cfg.FOV*float64(i)/float64(n)
}

// Cast scans n columns left to right across the field of view.
func (r *Raycaster) Cast(v Viewer, n int) ([]Column, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidColumns, n)
	}

	cols := make([]Column, n)
	hits := 0
	for i := range cols {
		cols[i] = r.CastColumn(v, i, n)
		if cols[i].Hit {
			hits++
		}
	}

	logging.Logger().Debug("cast frame",
		"columns", n,
		"hits", hits,
		"traversal", r.cfg.Traversal.String(),
	)
	return cols, nil
}

// CastColumn casts the ray for column i of n.
func (r *Raycaster) CastColumn(v Viewer, i, n int) Column {
	angle := r.ColumnAngle(v, i, n)
	dist, hit := r.CastRay(v.X, v.Y, angle)

	return Column{
		Index:         i,
		Angle:         angle,
		Distance:      dist,
		Perpendicular: dist * math.Cos(angle-v.Angle),
		Hit:           hit,
		EndX:          v.X + dist*math.Cos(angle),
		EndY:          v.Y + dist*math.Sin(angle),
	}
}

// CastRay returns the distance from (x, y) to the first blocking cell along
// angle. When nothing is hit within MaxDistance it returns MaxDistance and
// false.
func (r *Raycaster) CastRay(x, y, angle float64) (float64, bool) {
	if r.cfg.Traversal == DDA {
		return r.traverse(x, y, angle)
	}
	return r.march(x, y, angle)
}

// march samples the ray every Step units. The sample distance is computed
// from the step index so results do not depend on accumulated error.
func (r *Raycaster) march(x, y, angle float64) (float64, bool) {
	dx, dy := math.Cos(angle), math.Sin(angle)
	for i := 0; ; i++ {
		t := float64(i) * r.cfg.Step
		if t > r.cfg.MaxDistance {
			break
		}
		if r.grid.IsBlocking(x+t*dx, y+t*dy) {
			return t, true
		}
	}
	return r.cfg.MaxDistance, false
}

// traverse walks cell boundaries in order (Amanatides-Woo) and reports the
// exact distance to the first blocking cell.
func (r *Raycaster) traverse(x, y, angle float64) (float64, bool) {
	if r.grid.IsBlocking(x, y) {
		return 0, true
	}

	dx, dy := math.Cos(angle), math.Sin(angle)
	cellX, cellY := math.Floor(x), math.Floor(y)

	stepX, sideX, deltaX := axisSetup(x, cellX, dx)
	stepY, sideY, deltaY := axisSetup(y, cellY, dy)

	for {
		var t float64
		if sideX < sideY {
			t = sideX
			cellX += stepX
			sideX += deltaX
		} else {
			t = sideY
			cellY += stepY
			sideY += deltaY
		}
		if t > r.cfg.MaxDistance {
			return r.cfg.MaxDistance, false
		}
		if r.grid.IsBlocking(cellX+0.5, cellY+0.5) {
			return t, true
		}
	}
}

// axisSetup returns the cell step, the distance to the first boundary and
// the distance between boundaries along one axis.
func axisSetup(pos, cell, dir float64) (step, side, delta float64) {
	switch {
	case dir > 0:
		delta = 1 / dir
		return 1, (cell + 1 - pos) * delta, delta
	case dir < 0:
		delta = -1 / dir
		return -1, (pos - cell) * delta, delta
	}
	return 0, math.Inf(1), math.Inf(1)
}
