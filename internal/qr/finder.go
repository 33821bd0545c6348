package qr

// finderSize is the side of a finder pattern in modules, fixed by the QR
// standard.
const finderSize = 7

// minDimension is the matrix side of a version 1 symbol; nothing smaller
// is a valid QR code.
const minDimension = 21

// Region is one finder-pattern area in module coordinates.
type Region struct {
	X    int
	Y    int
	Size int
}

// PixelRegion is a Region converted to pixel space.
type PixelRegion struct {
	X    int
	Y    int
	Size int
}

// Locate returns the three finder-pattern regions for a matrix of side n:
// top-left, top-right, bottom-left. The positions are fixed by the symbol
// layout, so no search of the matrix contents is needed. For n below the
// version 1 dimension it returns nil, which callers must treat as "no eye
// styling possible".
func Locate(n int) []Region {
	if n < minDimension {
		return nil
	}
	return []Region{
		{X: 0, Y: 0, Size: finderSize},
		{X: n - finderSize, Y: 0, Size: finderSize},
		{X: 0, Y: n - finderSize, Size: finderSize},
	}
}

// Pixels converts a module-space region to pixel space for the given
// quiet-zone border (in modules) and box size (pixels per module).
func (r Region) Pixels(border, boxSize int) PixelRegion {
	return PixelRegion{
		X:    (border + r.X) * boxSize,
		Y:    (border + r.Y) * boxSize,
		Size: r.Size * boxSize,
	}
}
