package qr

import (
	"image/color"
	"testing"
)

func TestToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want color.RGBA
	}{
		{"burnt orange with hash", "#CC5500", color.RGBA{204, 85, 0, 255}},
		{"missing hash tolerated", "FF0000", color.RGBA{255, 0, 0, 255}},
		{"lowercase", "#ffffff", color.RGBA{255, 255, 255, 255}},
		{"garbage becomes black", "garbage", color.RGBA{0, 0, 0, 255}},
		{"too short becomes black", "#FFF", color.RGBA{0, 0, 0, 255}},
		{"too long becomes black", "#FF00FF00", color.RGBA{0, 0, 0, 255}},
		{"non-hex chars become black", "#GGHHII", color.RGBA{0, 0, 0, 255}},
		{"empty becomes black", "", color.RGBA{0, 0, 0, 255}},
		{"surrounding space trimmed", " #00FF00 ", color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.in); got != tt.want {
				t.Errorf("ToRGB(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexString(t *testing.T) {
	tests := []struct {
		in   color.RGBA
		want string
	}{
		{color.RGBA{204, 85, 0, 255}, "#CC5500"},
		{color.RGBA{0, 0, 0, 255}, "#000000"},
		{color.RGBA{255, 255, 255, 255}, "#FFFFFF"},
	}
	for _, tt := range tests {
		if got := hexString(tt.in); got != tt.want {
			t.Errorf("hexString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLerpColor(t *testing.T) {
	a := color.RGBA{0, 0, 0, 255}
	b := color.RGBA{200, 100, 50, 255}

	if got := lerpColor(a, b, 0); got != a {
		t.Errorf("lerp at t=0 = %v, want %v", got, a)
	}
	if got := lerpColor(a, b, 1); got != b {
		t.Errorf("lerp at t=1 = %v, want %v", got, b)
	}
	mid := lerpColor(a, b, 0.5)
	if mid.R != 100 || mid.G != 50 || mid.B != 25 {
		t.Errorf("lerp at t=0.5 = %v, want {100 50 25}", mid)
	}
}

func TestMaskSolid(t *testing.T) {
	m := Mask{Kind: MaskSolid, Fill: color.RGBA{10, 20, 30, 255}, Back: color.RGBA{250, 250, 250, 255}}

	if got := m.ColorAt(5, 5, 100, true); got != m.Fill {
		t.Errorf("dark pixel = %v, want fill %v", got, m.Fill)
	}
	if got := m.ColorAt(5, 5, 100, false); got != m.Back {
		t.Errorf("light pixel = %v, want back %v", got, m.Back)
	}
}

func TestMaskGradients(t *testing.T) {
	center := color.RGBA{204, 85, 0, 255}
	edge := color.RGBA{0, 0, 0, 255}
	back := color.RGBA{255, 255, 255, 255}

	for _, kind := range []ColorMask{MaskRadialGradient, MaskSquareGradient} {
		t.Run(kind.String(), func(t *testing.T) {
			m := Mask{Kind: kind, Back: back, Center: center, Edge: edge}
			const side = 200

			// Light pixels always take the background color.
			if got := m.ColorAt(0, 0, side, false); got != back {
				t.Errorf("light pixel = %v, want %v", got, back)
			}
			// The exact image center samples the center color.
			if got := m.ColorAt(side/2, side/2, side, true); got != center {
				t.Errorf("center pixel = %v, want %v", got, center)
			}
			// Distance from center must only darken toward the edge color
			// along an axis.
			prev := int(m.ColorAt(side/2, side/2, side, true).R)
			for x := side / 2; x < side; x += 10 {
				c := int(m.ColorAt(x, side/2, side, true).R)
				if c > prev {
					t.Fatalf("gradient not monotonic at x=%d: %d > %d", x, c, prev)
				}
				prev = c
			}
		})
	}
}

func TestSquareGradientIsobars(t *testing.T) {
	m := Mask{
		Kind:   MaskSquareGradient,
		Back:   color.RGBA{255, 255, 255, 255},
		Center: color.RGBA{255, 255, 255, 255},
		Edge:   color.RGBA{0, 0, 0, 255},
	}
	const side = 100
	// Chebyshev distance: every point on the square ring max(|dx|,|dy|)=20
	// gets the same color, including the ring corner.
	onAxis := m.ColorAt(side/2+20, side/2, side, true)
	corner := m.ColorAt(side/2+20, side/2+20, side, true)
	if onAxis != corner {
		t.Errorf("square gradient isobar broken: axis %v != corner %v", onAxis, corner)
	}
}

func TestRadialTClamped(t *testing.T) {
	for _, pt := range [][2]int{{0, 0}, {99, 99}, {0, 99}} {
		if tv := radialT(pt[0], pt[1], 100); tv < 0 || tv > 1 {
			t.Errorf("radialT(%d,%d) = %v out of [0,1]", pt[0], pt[1], tv)
		}
	}
}
