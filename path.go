package edgelight

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector outline made of lines and cubic curves.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Arc adds a circular arc from angle1 to angle2 (radians) around (cx, cy).
// The arc is split into cubic segments of at most 90 degrees.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}
	if r <= 0 || angle2 == angle1 {
		return
	}

	const maxAngle = math.Pi / 2
	n := int(math.Ceil((angle2 - angle1) / maxAngle))
	step := (angle2 - angle1) / float64(n)

	for i := 0; i < n; i++ {
		a1 := angle1 + float64(i)*step
		p.arcSegment(cx, cy, r, a1, a1+step)
	}
}

// arcSegment adds a single arc segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	t := math.Tan((a2 - a1) / 2)
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*t*t) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	if len(p.elements) == 0 {
		p.MoveTo(x1, y1)
	}
	p.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}

// RoundedRectangle adds a clockwise rectangle with rounded corners,
// starting at the end of the top-left corner. The radius is clamped to
// half of the smaller dimension.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	r = clampRadius(w, h, r)

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

func clampRadius(w, h, r float64) float64 {
	if r < 0 {
		return 0
	}
	if maxR := math.Min(w, h) / 2; r > maxR {
		return maxR
	}
	return r
}
