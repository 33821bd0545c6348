package qr

import (
	"image/color"
)

// The engine is deliberately fail-soft about style input: unknown drawer,
// eye or mask names fall back to the category default instead of failing
// the request, and malformed hex colors become black (see ToRGB). Callers
// rely on a render request never being rejected because of styling alone.
// All of that defaulting happens here and in ToRGB, nowhere else.

// ModuleDrawer selects the shape used for data modules.
type ModuleDrawer int

const (
	ModuleSquare ModuleDrawer = iota
	ModuleCircle
	ModuleRounded
	ModuleVerticalBars
	ModuleHorizontalBars
)

// EyeDrawer selects the silhouette family for the three finder patterns.
type EyeDrawer int

const (
	EyeSquare EyeDrawer = iota
	EyeCircle
	EyeRounded
)

// ColorMask selects how pixels are colored.
type ColorMask int

const (
	MaskSolid ColorMask = iota
	MaskRadialGradient
	MaskSquareGradient
)

// Default colors. Burnt orange is the storefront theme color.
const (
	DefaultFillColor    = "#000000"
	DefaultBackColor    = "#FFFFFF"
	DefaultPrimaryColor = "#CC5500"
)

// Settings is the wire-level style configuration as it arrives in render
// requests. All fields are optional; zero values resolve to defaults.
type Settings struct {
	ModuleDrawer    string    `json:"module_drawer"`
	EyeDrawer       string    `json:"eye_drawer"`
	ColorMask       string    `json:"color_mask"`
	FillColor       string    `json:"fill_color"`
	BackColor       string    `json:"back_color"`
	GradientColors  [2]string `json:"gradient_colors"`
	BoxSize         int       `json:"box_size"`
	// Border is a pointer so an explicit 0 (no quiet zone) is
	// distinguishable from an absent field (defaults to 4).
	Border          *int   `json:"border,omitempty"`
	Version         int    `json:"version"`
	ErrorCorrection string `json:"error_correction"`
}

// Style is a fully resolved, validated style configuration. It is a plain
// value; a Style never changes after Resolve and may be shared freely
// between concurrent renders.
type Style struct {
	ModuleDrawer ModuleDrawer
	EyeDrawer    EyeDrawer
	ColorMask    ColorMask

	FillColor      color.RGBA
	BackColor      color.RGBA
	GradientCenter color.RGBA
	GradientEdge   color.RGBA

	BoxSize int
	Border  int

	// Version 0 lets the encoder pick the smallest fitting version.
	Version         int
	ErrorCorrection string
}

func parseModuleDrawer(s string) ModuleDrawer {
	switch s {
	case "circle":
		return ModuleCircle
	case "rounded":
		return ModuleRounded
	case "vertical_bars":
		return ModuleVerticalBars
	case "horizontal_bars":
		return ModuleHorizontalBars
	default:
		return ModuleSquare
	}
}

func parseEyeDrawer(s string) EyeDrawer {
	switch s {
	case "circle":
		return EyeCircle
	case "rounded":
		return EyeRounded
	default:
		return EyeSquare
	}
}

func parseColorMask(s string) ColorMask {
	switch s {
	case "radial_gradient":
		return MaskRadialGradient
	case "square_gradient":
		return MaskSquareGradient
	default:
		return MaskSolid
	}
}

func (d ModuleDrawer) String() string {
	switch d {
	case ModuleCircle:
		return "circle"
	case ModuleRounded:
		return "rounded"
	case ModuleVerticalBars:
		return "vertical_bars"
	case ModuleHorizontalBars:
		return "horizontal_bars"
	default:
		return "square"
	}
}

func (d EyeDrawer) String() string {
	switch d {
	case EyeCircle:
		return "circle"
	case EyeRounded:
		return "rounded"
	default:
		return "square"
	}
}

func (m ColorMask) String() string {
	switch m {
	case MaskRadialGradient:
		return "radial_gradient"
	case MaskSquareGradient:
		return "square_gradient"
	default:
		return "solid"
	}
}

// Resolve turns wire settings into a validated Style, applying defaults
// for anything absent or out of range.
func (s Settings) Resolve() Style {
	st := Style{
		ModuleDrawer:    parseModuleDrawer(s.ModuleDrawer),
		EyeDrawer:       parseEyeDrawer(s.EyeDrawer),
		ColorMask:       parseColorMask(s.ColorMask),
		BoxSize:         s.BoxSize,
		Border:          4,
		Version:         s.Version,
		ErrorCorrection: s.ErrorCorrection,
	}
	if s.Border != nil && *s.Border >= 0 {
		st.Border = *s.Border
	}

	fill := s.FillColor
	if fill == "" {
		fill = DefaultFillColor
	}
	back := s.BackColor
	if back == "" {
		back = DefaultBackColor
	}
	st.FillColor = ToRGB(fill)
	st.BackColor = ToRGB(back)

	center, edge := s.GradientColors[0], s.GradientColors[1]
	if center == "" {
		center = DefaultPrimaryColor
	}
	if edge == "" {
		edge = DefaultFillColor
	}
	st.GradientCenter = ToRGB(center)
	st.GradientEdge = ToRGB(edge)

	if st.BoxSize < 1 {
		st.BoxSize = 10
	}
	if st.Version < 0 || st.Version > 40 {
		st.Version = 0
	}
	switch st.ErrorCorrection {
	case "L", "M", "Q", "H":
	default:
		st.ErrorCorrection = "M"
	}
	return st
}

// Settings returns the wire representation of a resolved style, used to
// echo the effective configuration back in API responses.
func (st Style) Settings() Settings {
	border := st.Border
	return Settings{
		ModuleDrawer:    st.ModuleDrawer.String(),
		EyeDrawer:       st.EyeDrawer.String(),
		ColorMask:       st.ColorMask.String(),
		FillColor:       hexString(st.FillColor),
		BackColor:       hexString(st.BackColor),
		GradientColors:  [2]string{hexString(st.GradientCenter), hexString(st.GradientEdge)},
		BoxSize:         st.BoxSize,
		Border:          &border,
		Version:         st.Version,
		ErrorCorrection: st.ErrorCorrection,
	}
}

// Presets is the static table of named style shortcuts exposed through
// the API. Read-only; callers receive a fresh copy on each request.
func Presets() map[string]Settings {
	return map[string]Settings{
		"default": {
			ModuleDrawer: "square",
			EyeDrawer:    "square",
			FillColor:    "#000000",
			BackColor:    "#FFFFFF",
			ColorMask:    "solid",
		},
		"rounded": {
			ModuleDrawer: "rounded",
			EyeDrawer:    "rounded",
			FillColor:    "#CC5500",
			BackColor:    "#FFFFFF",
			ColorMask:    "solid",
		},
		"circular": {
			ModuleDrawer: "circle",
			EyeDrawer:    "circle",
			FillColor:    "#000000",
			BackColor:    "#FFFFFF",
			ColorMask:    "solid",
		},
		"gradient_radial": {
			ModuleDrawer:   "square",
			EyeDrawer:      "square",
			ColorMask:      "radial_gradient",
			GradientColors: [2]string{"#CC5500", "#FF6600"},
			BackColor:      "#FFFFFF",
		},
		"gradient_square": {
			ModuleDrawer:   "rounded",
			EyeDrawer:      "rounded",
			ColorMask:      "square_gradient",
			GradientColors: [2]string{"#CC5500", "#000000"},
			BackColor:      "#FFFFFF",
		},
		"bars_vertical": {
			ModuleDrawer: "vertical_bars",
			EyeDrawer:    "square",
			FillColor:    "#CC5500",
			BackColor:    "#FFFFFF",
			ColorMask:    "solid",
		},
	}
}
