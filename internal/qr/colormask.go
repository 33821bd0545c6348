package qr

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ToRGB parses a "#RRGGBB" or "RRGGBB" string into an opaque RGBA color.
// Malformed input (wrong length, non-hex characters, empty string) yields
// black rather than an error; render requests are never rejected over a
// bad color value.
func ToRGB(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{A: 255}
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

func hexString(c color.RGBA) string {
	const digits = "0123456789ABCDEF"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}

// Mask maps a pixel plus module polarity to a color. A Mask is a value
// and safe for concurrent use.
type Mask struct {
	Kind   ColorMask
	Fill   color.RGBA
	Back   color.RGBA
	Center color.RGBA
	Edge   color.RGBA
}

// MaskFor builds the pixel mask for a resolved style.
func MaskFor(st Style) Mask {
	return Mask{
		Kind:   st.ColorMask,
		Fill:   st.FillColor,
		Back:   st.BackColor,
		Center: st.GradientCenter,
		Edge:   st.GradientEdge,
	}
}

// ColorAt returns the color for the pixel at (x, y) in an image of the
// given side length. Light modules are always the background color; dark
// modules are either the solid fill or a gradient sample.
func (m Mask) ColorAt(x, y, side int, dark bool) color.RGBA {
	if !dark {
		return m.Back
	}
	switch m.Kind {
	case MaskRadialGradient:
		return lerpColor(m.Center, m.Edge, radialT(x, y, side))
	case MaskSquareGradient:
		return lerpColor(m.Center, m.Edge, squareT(x, y, side))
	default:
		return m.Fill
	}
}

// radialT is the normalized Euclidean distance from the image center,
// clamped against the bounding radius (half the diagonal).
func radialT(x, y, side int) float64 {
	cx := float64(side) / 2
	cy := float64(side) / 2
	dx := float64(x) - cx
	dy := float64(y) - cy
	r := math.Sqrt(cx*cx + cy*cy)
	if r == 0 {
		return 0
	}
	return clamp01(math.Sqrt(dx*dx+dy*dy) / r)
}

// squareT uses the Chebyshev distance instead, normalized against half
// the side, which produces square gradient isobars.
func squareT(x, y, side int) float64 {
	c := float64(side) / 2
	if c == 0 {
		return 0
	}
	dx := math.Abs(float64(x) - c)
	dy := math.Abs(float64(y) - c)
	return clamp01(math.Max(dx, dy) / c)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// lerpColor interpolates per channel, rounding to the nearest integer.
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: 255,
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + t*(float64(b)-float64(a)))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
