package edgelight

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied 8-bit ARGB color.
//
// The zero value is fully transparent black and doubles as the "unset"
// sentinel for declared notification colors.
type Color struct {
	A, R, G, B uint8
}

// Unset is the declared-color sentinel meaning "no color was supplied".
var Unset = Color{}

// Common colors
var (
	Black       = ARGB(0xFF000000)
	White       = ARGB(0xFFFFFFFF)
	Red         = ARGB(0xFFFF0000)
	Green       = ARGB(0xFF00FF00)
	Blue        = ARGB(0xFF0000FF)
	Transparent = Color{}

	// DefaultPurple is the fallback used when nothing else identifies a source.
	DefaultPurple = ARGB(0xFF6200EE)
)

// ARGB creates a color from a packed 0xAARRGGBB value.
func ARGB(v uint32) Color {
	return Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGB8 creates an opaque color from 8-bit components.
func RGB8(r, g, b uint8) Color {
	return Color{A: 0xFF, R: r, G: g, B: b}
}

// Uint32 packs the color as 0xAARRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// IsUnset reports whether c is the unset sentinel.
func (c Color) IsUnset() bool {
	return c == Unset
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// String formats the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", c.Uint32())
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{A: n.A, R: n.R, G: n.G, B: n.B}
}

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RRGGBB" and "AARRGGBB", with an optional
// leading '#'. Six-digit and three-digit forms are opaque.
func ParseHex(hex string) (Color, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v uint32
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, fmt.Errorf("edgelight: invalid hex color %q", hex)
		}
		v = v<<4 | d
	}

	switch len(hex) {
	case 3: // RGB
		r, g, b := (v>>8)&0xF, (v>>4)&0xF, v&0xF
		return Color{A: 0xFF, R: uint8(r * 17), G: uint8(g * 17), B: uint8(b * 17)}, nil
	case 6: // RRGGBB
		return ARGB(0xFF000000 | v), nil
	case 8: // AARRGGBB
		return ARGB(v), nil
	default:
		return Color{}, fmt.Errorf("edgelight: invalid hex color length %d", len(hex))
	}
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for package-level tables.
func MustParseHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	}
	return 0, false
}

// HSV is a hue/saturation/value triple.
// H is in [0, 360), S and V are in [0, 1]. It is only used as an
// intermediate form; results are always converted back to Color.
type HSV struct {
	H, S, V float64
}

// HSV converts the color to HSV, ignoring alpha.
func (c Color) HSV() HSV {
	h, s, v := c.colorful().Hsv()
	return HSV{H: h, S: s, V: v}
}

// FromHSV converts an HSV triple to a color with the given alpha.
// Hue is wrapped into [0, 360); saturation and value are clamped.
func FromHSV(hsv HSV, alpha uint8) Color {
	h := math.Mod(hsv.H, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsv(h, clamp01(hsv.S), clamp01(hsv.V)).Clamped().RGB255()
	return Color{A: alpha, R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// clamp01 restricts a value to [0, 1]. NaN maps to 0.
func clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x >= 0 {
		return x
	}
	return 0
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) uint8 {
	if x > 255 {
		return 255
	}
	if x >= 0 {
		return uint8(x)
	}
	return 0
}
