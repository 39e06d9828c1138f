package edgelight

import "math"

// Pulse alpha bounds.
const (
	pulseBase  = 155
	pulseSwing = 100
	pulseMin   = 55
	pulseMax   = 255
)

// Decelerate is an ease-out curve: fast at the start, flat at the end.
// t is clamped to [0, 1]; Decelerate(0) = 0 and Decelerate(1) = 1.
func Decelerate(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// FadeAlpha returns the global trail alpha at a given progress: two full
// sine cycles over the run around a base of 155, bounded to [55, 255].
func FadeAlpha(progress float64) uint8 {
	pulse := math.Sin(progress * 4 * math.Pi)
	a := int(pulseBase + pulseSwing*pulse)
	if a < pulseMin {
		a = pulseMin
	}
	if a > pulseMax {
		a = pulseMax
	}
	return uint8(a)
}
