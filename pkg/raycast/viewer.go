package raycast

// Viewer is the camera pose in world space. World units are tiles, so
// (1.5, 1.5) is the centre of cell (1, 1). Angle 0 looks along +x and
// positive angles turn toward +y.
type Viewer struct {
	X, Y       float64
	Angle      float64 // Facing direction in radians
	MarkerSize int     // Side of the minimap marker in pixels
}

// NewViewer creates a viewer with a fixed pose.
func NewViewer(x, y, angle float64, markerSize int) Viewer {
	return Viewer{X: x, Y: y, Angle: angle, MarkerSize: markerSize}
}

// PixelPos returns the viewer position on a minimap with the given tile
// pixel size.
func (v Viewer) PixelPos(tileW, tileH int) (int, int) {
	return WorldToTilePixel(v.X, v.Y, tileW, tileH)
}
