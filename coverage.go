package edgelight

import "math"

// Arc is the lit part of the perimeter, from Start to End going forward.
// When Start > End the arc wraps past the perimeter origin.
type Arc struct {
	Start, End float64
}

// Wraps reports whether the arc crosses the perimeter origin.
func (a Arc) Wraps() bool {
	return a.Start > a.End
}

// TrailArc places a trail of length fraction·perimeter whose head starts at
// progress·perimeter, both wrapped into [0, perimeter).
func TrailArc(progress, fraction, perimeter float64) Arc {
	start := math.Mod(progress*perimeter, perimeter)
	end := math.Mod(start+fraction*perimeter, perimeter)
	return Arc{Start: start, End: end}
}

// Coverage returns the fraction of the segment [segStart, segEnd) lit by
// arc on a perimeter of the given length. The result is in [0, 1].
func Coverage(segStart, segEnd float64, arc Arc, perimeter float64) float64 {
	segLen := segEnd - segStart
	if !(segLen > 0) || !(perimeter > 0) {
		return 0
	}

	var overlap float64
	if !arc.Wraps() {
		overlap = intervalOverlap(segStart, segEnd, arc.Start, arc.End, segLen)
	} else {
		overlap = intervalOverlap(segStart, segEnd, arc.Start, perimeter, segLen) +
			intervalOverlap(segStart, segEnd, 0, arc.End, segLen)
	}
	return clamp01(overlap / segLen)
}

// intervalOverlap returns the length shared by [a0, a1) and [b0, b1),
// clamped to [0, limit].
func intervalOverlap(a0, a1, b0, b1, limit float64) float64 {
	o := math.Min(a1, b1) - math.Max(a0, b0)
	if o <= 0 {
		return 0
	}
	return math.Min(o, limit)
}
