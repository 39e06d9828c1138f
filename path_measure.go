package edgelight

import (
	"math"
	"sort"
)

// defaultTolerance is the maximum distance in pixels between a curve and
// its flattened polyline.
const defaultTolerance = 0.1

// cubicBez is a cubic Bezier used during flattening.
type cubicBez struct {
	P0, P1, P2, P3 Point
}

// subdivide splits the curve at t=0.5 (de Casteljau).
func (c cubicBez) subdivide() (cubicBez, cubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return cubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		cubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// flatness returns the squared flatness metric of the curve.
func (c cubicBez) flatness() float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

func flattenCubic(c cubicBez, toleranceSq float64, fn func(pt Point)) {
	if c.flatness() <= toleranceSq*16 {
		fn(c.P3)
		return
	}
	c1, c2 := c.subdivide()
	flattenCubic(c1, toleranceSq, fn)
	flattenCubic(c2, toleranceSq, fn)
}

// Flatten converts the first subpath to a polyline. Closed subpaths end
// at their start point. tolerance is the maximum distance from the curve.
func (p *Path) Flatten(tolerance float64) []Point {
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	tolSq := tolerance * tolerance

	var pts []Point
	emit := func(pt Point) {
		if n := len(pts); n > 0 && pts[n-1] == pt {
			return
		}
		pts = append(pts, pt)
	}

	var current, start Point
	for i, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if i > 0 {
				return pts
			}
			emit(e.Point)
			start, current = e.Point, e.Point
		case LineTo:
			emit(e.Point)
			current = e.Point
		case CubicTo:
			flattenCubic(cubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}, tolSq, emit)
			current = e.Point
		case Close:
			emit(start)
			current = start
		}
	}
	return pts
}

// PathMeasure measures distances along a flattened path and extracts
// sub-polylines by distance.
type PathMeasure struct {
	points []Point
	// cum[i] is the distance from points[0] to points[i].
	cum []float64
}

// NewPathMeasure flattens p and prepares it for distance queries.
func NewPathMeasure(p *Path, tolerance float64) *PathMeasure {
	pts := p.Flatten(tolerance)
	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + pts[i-1].Distance(pts[i])
	}
	return &PathMeasure{points: pts, cum: cum}
}

// Length returns the total length of the path.
func (m *PathMeasure) Length() float64 {
	if len(m.cum) == 0 {
		return 0
	}
	return m.cum[len(m.cum)-1]
}

// PointAt returns the point at distance d along the path. d is clamped to
// [0, Length].
func (m *PathMeasure) PointAt(d float64) Point {
	if len(m.points) == 0 {
		return Point{}
	}
	if d <= 0 {
		return m.points[0]
	}
	if d >= m.Length() {
		return m.points[len(m.points)-1]
	}
	i := m.index(d)
	seg := m.cum[i+1] - m.cum[i]
	if seg == 0 {
		return m.points[i]
	}
	return m.points[i].Lerp(m.points[i+1], (d-m.cum[i])/seg)
}

// Segment returns the polyline between distances start and end, including
// both interpolated endpoints. Returns nil when the range is empty.
func (m *PathMeasure) Segment(start, end float64) []Point {
	length := m.Length()
	start = math.Max(start, 0)
	end = math.Min(end, length)
	if len(m.points) < 2 || start >= end {
		return nil
	}

	out := []Point{m.PointAt(start)}
	for i := m.index(start) + 1; i < len(m.points) && m.cum[i] < end; i++ {
		out = append(out, m.points[i])
	}
	return append(out, m.PointAt(end))
}

// index returns i such that cum[i] <= d < cum[i+1].
func (m *PathMeasure) index(d float64) int {
	i := sort.SearchFloat64s(m.cum, d)
	if i >= len(m.cum) || m.cum[i] > d {
		i--
	}
	if i < 0 {
		return 0
	}
	if i > len(m.cum)-2 {
		return len(m.cum) - 2
	}
	return i
}
