package edgelight

import (
	"math"
	"time"
)

// ComplementaryPalette returns c followed by its complementary (+180°) and
// two triadic (+120°, +240°) hues at c's saturation and value.
func ComplementaryPalette(c Color) [4]Color {
	hsv := c.HSV()
	rotate := func(deg float64) Color {
		r := hsv
		r.H = math.Mod(r.H+deg, 360)
		return FromHSV(r, 0xFF)
	}
	return [4]Color{c, rotate(180), rotate(120), rotate(240)}
}

// GradientBetween returns steps colors interpolated linearly from start to
// end, alpha included. The first element is start and the last is end.
// A single step yields just start; non-positive steps yield nil.
func GradientBetween(start, end Color, steps int) []Color {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []Color{start}
	}

	colors := make([]Color, steps)
	for i := range colors {
		ratio := float64(i) / float64(steps-1)
		colors[i] = Color{
			A: lerp8(start.A, end.A, ratio),
			R: lerp8(start.R, end.R, ratio),
			G: lerp8(start.G, end.G, ratio),
			B: lerp8(start.B, end.B, ratio),
		}
	}
	return colors
}

// AdjustBrightness scales the HSV value of c by factor. Alpha is preserved.
func AdjustBrightness(c Color, factor float64) Color {
	hsv := c.HSV()
	hsv.V = clamp01(hsv.V * factor)
	return FromHSV(hsv, c.A)
}

// AdjustSaturation scales the HSV saturation of c by factor. Alpha is
// preserved.
func AdjustSaturation(c Color, factor float64) Color {
	hsv := c.HSV()
	hsv.S = clamp01(hsv.S * factor)
	return FromHSV(hsv, c.A)
}

// Luma returns the perceptual brightness of c in [0, 255].
func Luma(c Color) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// IsDark reports whether c is perceived as dark (luma at or below half).
func IsDark(c Color) bool {
	return 1-Luma(c)/255 >= 0.5
}

// ContrastingColor returns opaque white for dark colors and opaque black
// otherwise.
func ContrastingColor(c Color) Color {
	if IsDark(c) {
		return White
	}
	return Black
}

// Blend mixes c1 and c2 per channel. ratio is clamped to [0, 1];
// 0 yields c1 and 1 yields c2.
func Blend(c1, c2 Color, ratio float64) Color {
	ratio = clamp01(ratio)
	inv := 1 - ratio
	mix := func(a, b uint8) uint8 {
		return clamp255(float64(a)*inv + float64(b)*ratio)
	}
	return Color{
		A: mix(c1.A, c2.A),
		R: mix(c1.R, c2.R),
		G: mix(c1.G, c2.G),
		B: mix(c1.B, c2.B),
	}
}

// Rainbow returns count opaque colors at full saturation and value with
// hues evenly spaced over [0, 360).
func Rainbow(count int) []Color {
	if count <= 0 {
		return nil
	}
	colors := make([]Color, count)
	for i := range colors {
		hue := math.Mod(float64(i)*360/float64(count), 360)
		colors[i] = FromHSV(HSV{H: hue, S: 1, V: 1}, 0xFF)
	}
	return colors
}

// PulseAlpha returns a sinusoidal alpha in [0, 255] that completes one
// cycle every period.
func PulseAlpha(t, period time.Duration) uint8 {
	if period <= 0 {
		return 0xFF
	}
	phase := float64(t%period) / float64(period)
	if phase < 0 {
		phase++
	}
	return clamp255((math.Sin(phase*2*math.Pi)*0.5 + 0.5) * 255)
}

// WavePosition returns the position of a wave in [0, 1) that sweeps once
// every period.
func WavePosition(t, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	pos := float64(t%period) / float64(period)
	if pos < 0 {
		pos++
	}
	return pos
}

// lerp8 interpolates one channel, truncating toward zero.
func lerp8(a, b uint8, t float64) uint8 {
	return clamp255(float64(a) + t*(float64(b)-float64(a)))
}
