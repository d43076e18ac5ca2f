package raycast

// Split describes how the canvas is shared.
type Split int

const (
	SplitFull Split = iota // The minimap owns the whole canvas
	SplitHalf              // Minimap on the left half, first-person view on the right
)

// WorldToTilePixel scales a world position (tile units) by the tile pixel
// size and truncates toward zero.
func WorldToTilePixel(worldX, worldY float64, tileW, tileH int) (int, int) {
	return int(worldX * float64(tileW)), int(worldY * float64(tileH))
}

// TilePixelSize returns the pixel size of one minimap cell. With SplitHalf
// the minimap only gets the left half of the canvas width.
func TilePixelSize(canvasW, canvasH, mapW, mapH int, split Split) (int, int) {
	if mapW <= 0 || mapH <= 0 {
		return 0, 0
	}
	if split == SplitHalf {
		canvasW /= 2
	}
	return canvasW / mapW, canvasH / mapH
}

// WallHeight projects a perpendicular distance to a wall slice height in
// pixels. A zero distance (viewer inside a wall) fills the canvas.
func WallHeight(canvasH int, perpendicular float64) int {
	if perpendicular <= 0 {
		return canvasH
	}
	h := float64(canvasH) / perpendicular
	if h > float64(canvasH) {
		return canvasH
	}
	return int(h)
}
