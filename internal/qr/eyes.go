package qr

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ApplyEyeStyle redraws the three finder patterns of a rendered symbol as
// concentric shapes of the chosen family. The base render is not
// modified; a styled copy is returned. EyeSquare (and any value outside
// the known set) is an identity operation returning base itself.
//
// Each region is rebuilt in three layers over a cleared box: an outer
// shape spanning the full 7-module box in the fill color, the same shape
// inset by one module in the background color, and again inset by two
// modules in the fill color. That keeps the dark/light/dark ratio a
// scanner needs to recognize a finder pattern while changing the
// silhouette.
func ApplyEyeStyle(base *image.RGBA, regions []PixelRegion, eye EyeDrawer, fill, back color.RGBA, boxSize int) *image.RGBA {
	if len(regions) == 0 || boxSize < 1 {
		return base
	}
	switch eye {
	case EyeCircle, EyeRounded:
	default:
		return base
	}

	styled := image.NewRGBA(base.Bounds())
	copy(styled.Pix, base.Pix)
	dc := gg.NewContextForRGBA(styled)

	box := float64(boxSize)
	for _, r := range regions {
		x, y, size := float64(r.X), float64(r.Y), float64(r.Size)

		// Erase whatever the base renderer drew in the 7x7 box.
		dc.SetColor(back)
		dc.DrawRectangle(x, y, size, size)
		dc.Fill()

		switch eye {
		case EyeCircle:
			fillEllipse(dc, x, y, size, fill)
			fillEllipse(dc, x+box, y+box, size-2*box, back)
			fillEllipse(dc, x+2*box, y+2*box, size-4*box, fill)
		case EyeRounded:
			// Corner radii shrink inward so the layers nest without
			// their corners colliding.
			fillRoundedSquare(dc, x, y, size, box, fill)
			fillRoundedSquare(dc, x+box, y+box, size-2*box, box/2, back)
			fillRoundedSquare(dc, x+2*box, y+2*box, size-4*box, box/3, fill)
		}
	}
	return styled
}

// fillEllipse fills the ellipse inscribed in the square at (x, y) with
// side size.
func fillEllipse(dc *gg.Context, x, y, size float64, c color.RGBA) {
	if size <= 0 {
		return
	}
	dc.SetColor(c)
	dc.DrawEllipse(x+size/2, y+size/2, size/2, size/2)
	dc.Fill()
}

// fillRoundedSquare fills a rounded square as the union of two
// axis-aligned rectangles and four corner disks of the given radius.
func fillRoundedSquare(dc *gg.Context, x, y, size, radius float64, c color.RGBA) {
	if size <= 0 {
		return
	}
	if radius > size/2 {
		radius = size / 2
	}
	dc.SetColor(c)
	dc.DrawRectangle(x+radius, y, size-2*radius, size)
	dc.Fill()
	dc.DrawRectangle(x, y+radius, size, size-2*radius)
	dc.Fill()
	dc.DrawCircle(x+radius, y+radius, radius)
	dc.Fill()
	dc.DrawCircle(x+size-radius, y+radius, radius)
	dc.Fill()
	dc.DrawCircle(x+radius, y+size-radius, radius)
	dc.Fill()
	dc.DrawCircle(x+size-radius, y+size-radius, radius)
	dc.Fill()
}
