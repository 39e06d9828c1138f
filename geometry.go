package edgelight

import "math"

// Reference values for the edge outline.
const (
	DefaultStrokeWidth   = 8.0
	DefaultCornerRadius  = 40.0
	DefaultSegments      = 100
	DefaultTrailFraction = 0.15

	// referenceWidth is the surface width at which the stroke is drawn at
	// its nominal width; wider surfaces scale it up.
	referenceWidth = 1080.0
)

// Style describes the outline and the lit trail.
type Style struct {
	// StrokeWidth is the nominal stroke width in pixels.
	StrokeWidth float64
	// CornerRadius is the outline corner radius in pixels.
	CornerRadius float64
	// Segments is the number of equal-length pieces the outline is split into.
	Segments int
	// TrailFraction is the share of the perimeter the trail covers.
	TrailFraction float64
}

// DefaultStyle returns the reference style: 8px stroke, 40px corners,
// 100 segments and a trail covering 15% of the perimeter.
func DefaultStyle() Style {
	return Style{
		StrokeWidth:   DefaultStrokeWidth,
		CornerRadius:  DefaultCornerRadius,
		Segments:      DefaultSegments,
		TrailFraction: DefaultTrailFraction,
	}
}

// normalized replaces out-of-range fields with their defaults.
func (s Style) normalized() Style {
	d := DefaultStyle()
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = d.StrokeWidth
	}
	if s.CornerRadius < 0 {
		s.CornerRadius = 0
	}
	if s.Segments <= 0 {
		s.Segments = d.Segments
	}
	if s.TrailFraction <= 0 || s.TrailFraction >= 1 {
		s.TrailFraction = d.TrailFraction
	}
	return s
}

// Size is the size of a drawing surface in pixels.
type Size struct {
	Width, Height float64
}

// Empty reports whether the size has no area.
func (s Size) Empty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// Segment is one piece of the discretized outline.
type Segment struct {
	// Index is the position of the segment in perimeter order.
	Index int
	// Start and End are the segment bounds along the perimeter.
	Start, End float64
	// Points is the polyline of the segment in surface coordinates.
	// It is shared between frames and must not be modified.
	Points []Point
}

// Geometry is the outline derived from a surface size and a style.
// It is read-only once built.
type Geometry struct {
	size        Size
	strokeWidth float64
	radius      float64
	rect        [4]float64 // x, y, w, h of the stroke-inset outline
	perimeter   float64
	segments    []Segment
}

// NewGeometry builds the outline for a surface. It returns nil when the
// surface or the inset outline has no area.
func NewGeometry(size Size, style Style) *Geometry {
	style = style.normalized()
	if size.Empty() {
		return nil
	}

	stroke := style.StrokeWidth * math.Max(1, size.Width/referenceWidth)
	half := stroke / 2
	x, y := half, half
	w, h := size.Width-stroke, size.Height-stroke
	if w <= 0 || h <= 0 {
		return nil
	}
	r := clampRadius(w, h, style.CornerRadius)

	perimeter := Perimeter(w, h, r)
	if perimeter <= 0 {
		return nil
	}

	g := &Geometry{
		size:        size,
		strokeWidth: stroke,
		radius:      r,
		rect:        [4]float64{x, y, w, h},
		perimeter:   perimeter,
	}
	g.segments = g.split(style.Segments)
	return g
}

// Perimeter returns the outline length of a w×h rectangle with corner
// radius r: four straight edges plus four quarter circles.
func Perimeter(w, h, r float64) float64 {
	return 2*(w+h-4*r) + 2*math.Pi*r
}

// split discretizes the outline path into n equal-length segments and
// maps each onto the analytic perimeter.
func (g *Geometry) split(n int) []Segment {
	path := NewPath()
	path.RoundedRectangle(g.rect[0], g.rect[1], g.rect[2], g.rect[3], g.radius)
	m := NewPathMeasure(path, defaultTolerance)

	pathLen := m.Length()
	if pathLen <= 0 {
		return nil
	}
	step := pathLen / float64(n)

	segs := make([]Segment, n)
	for i := range segs {
		from, to := float64(i)*step, float64(i+1)*step
		if i == n-1 {
			to = pathLen
		}
		segs[i] = Segment{
			Index:  i,
			Start:  from / pathLen * g.perimeter,
			End:    to / pathLen * g.perimeter,
			Points: m.Segment(from, to),
		}
	}
	return segs
}

// Size returns the surface size the geometry was built for.
func (g *Geometry) Size() Size { return g.size }

// StrokeWidth returns the stroke width scaled for the surface.
func (g *Geometry) StrokeWidth() float64 { return g.strokeWidth }

// CornerRadius returns the effective corner radius.
func (g *Geometry) CornerRadius() float64 { return g.radius }

// Perimeter returns the outline length.
func (g *Geometry) Perimeter() float64 { return g.perimeter }

// Segments returns the outline segments in perimeter order.
func (g *Geometry) Segments() []Segment { return g.segments }
