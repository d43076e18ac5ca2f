// Package raycast finds wall distances for each screen column of a
// first-person view over a tile map.
package raycast

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidFOV      = errors.New("field of view must be in (0, π)")
	ErrInvalidStep     = errors.New("march step must be positive and no finer than max distance / 1e7")
	ErrInvalidDistance = errors.New("max draw distance must be positive")
	ErrInvalidColumns  = errors.New("column count must be positive")
)

// Traversal selects how a ray walks the grid.
type Traversal int

const (
	// March samples the ray at fixed Step increments. Walls thinner than
	// Step can be skipped; this is reproducible but approximate.
	March Traversal = iota
	// DDA visits every cell boundary the ray crosses and is exact.
	DDA
)

// ParseTraversal maps "march" or "dda" to a Traversal.
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "march":
		return March, nil
	case "dda":
		return DDA, nil
	}
	return March, fmt.Errorf("unknown traversal %q (use march or dda)", s)
}

func (t Traversal) String() string {
	if t == DDA {
		return "dda"
	}
	return "march"
}

// Config holds the projection parameters.
type Config struct {
	FOV         float64   // Horizontal field of view in radians
	MaxDistance float64   // Rays stop after this many world units
	Step        float64   // March increment in world units
	Traversal   Traversal // March or DDA
}

// Defaults.
const (
	DefaultFOV         = math.Pi / 3
	DefaultMaxDistance = 20.0
	DefaultStep        = 0.05

	// MaxMarchSteps caps the samples one marched ray may take.
	MaxMarchSteps = 1e7
)

// DefaultConfig returns {fov: π/3, max distance: 20, step: 0.05, march}.
func DefaultConfig() Config {
	return Config{
		FOV:         DefaultFOV,
		MaxDistance: DefaultMaxDistance,
		Step:        DefaultStep,
		Traversal:   March,
	}
}

// Validate checks the configuration. The FOV must stay below π so the
// cosine correction never reaches zero.
func (c Config) Validate() error {
	if !(c.FOV > 0 && c.FOV < math.Pi) {
		return fmt.Errorf("%w: got %v", ErrInvalidFOV, c.FOV)
	}
	if !(c.MaxDistance > 0) || math.IsInf(c.MaxDistance, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidDistance, c.MaxDistance)
	}
	if c.Traversal == March && !(c.Step > 0 && c.Step >= c.MaxDistance/MaxMarchSteps) {
		return fmt.Errorf("%w: got %v for max distance %v", ErrInvalidStep, c.Step, c.MaxDistance)
	}
	return nil
}
