package qr

import (
	"image"

	"github.com/fogleman/gg"
	qrcode "github.com/yeqown/go-qrcode/v2"
)

// matrixCapture is a qrcode.Writer that records the encoded module matrix
// instead of producing an image. The rasterizer needs the raw modules so
// it can draw them itself.
type matrixCapture struct {
	modules [][]bool
}

func (w *matrixCapture) Write(mat qrcode.Matrix) error {
	n := mat.Width()
	m := make([][]bool, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if y < n && x < n && v.IsSet() {
			m[y][x] = true
		}
	})
	w.modules = m
	return nil
}

func (w *matrixCapture) Close() error { return nil }

// RenderBase rasterizes a module matrix into a pixel image of side
// (n + 2*border) * boxSize. Dark modules are drawn as the style's module
// shape onto a stencil, then every pixel is colored through the mask, so
// gradient masks apply per pixel rather than per module.
//
// The finder-pattern areas are drawn like any other modules here; eye
// styling overwrites those regions afterwards regardless of what this
// produced.
func RenderBase(modules [][]bool, st Style, mask Mask) *image.RGBA {
	n := len(modules)
	box := st.BoxSize
	side := (n + 2*st.Border) * box

	dc := gg.NewContext(side, side)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	fbox := float64(box)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !modules[y][x] {
				continue
			}
			px := float64((st.Border + x) * box)
			py := float64((st.Border + y) * box)
			switch st.ModuleDrawer {
			case ModuleCircle:
				dc.DrawCircle(px+fbox/2, py+fbox/2, fbox/2)
			case ModuleRounded:
				dc.DrawRoundedRectangle(px, py, fbox, fbox, fbox*0.3)
			case ModuleVerticalBars:
				dc.DrawRectangle(px+fbox*0.1, py, fbox*0.8, fbox)
			case ModuleHorizontalBars:
				dc.DrawRectangle(px, py+fbox*0.1, fbox, fbox*0.8)
			default:
				dc.DrawRectangle(px, py, fbox, fbox)
			}
			dc.Fill()
		}
	}

	stencil, _ := dc.Image().(*image.RGBA)
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			i := stencil.PixOffset(x, y)
			dark := stencil.Pix[i] < 128
			out.SetRGBA(x, y, mask.ColorAt(x, y, side, dark))
		}
	}
	return out
}
