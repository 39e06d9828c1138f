package edgelight

import (
	"math"
	"testing"
)

func nearPoint(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestPathMeasureRectangle(t *testing.T) {
	p := NewPath()
	p.RoundedRectangle(0, 0, 100, 50, 0)
	m := NewPathMeasure(p, 0)

	if got := m.Length(); math.Abs(got-300) > 1e-9 {
		t.Fatalf("Length() = %v, want 300", got)
	}

	tests := []struct {
		d    float64
		want Point
	}{
		{-5, Pt(0, 0)},
		{0, Pt(0, 0)},
		{40, Pt(40, 0)},
		{100, Pt(100, 0)},
		{125, Pt(100, 25)},
		{175, Pt(75, 50)},
		{300, Pt(0, 0)},
		{400, Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := m.PointAt(tt.d); !nearPoint(got, tt.want, 1e-9) {
			t.Errorf("PointAt(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestPathMeasureSegment(t *testing.T) {
	p := NewPath()
	p.RoundedRectangle(0, 0, 100, 50, 0)
	m := NewPathMeasure(p, 0)

	got := m.Segment(90, 110)
	want := []Point{Pt(90, 0), Pt(100, 0), Pt(100, 10)}
	if len(got) != len(want) {
		t.Fatalf("Segment(90, 110) = %v, want %v", got, want)
	}
	for i := range want {
		if !nearPoint(got[i], want[i], 1e-9) {
			t.Errorf("Segment(90, 110)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if s := m.Segment(50, 50); s != nil {
		t.Errorf("empty range Segment = %v, want nil", s)
	}
	if s := m.Segment(20, 10); s != nil {
		t.Errorf("reversed range Segment = %v, want nil", s)
	}
	if s := m.Segment(-10, 10); len(s) != 2 || !nearPoint(s[0], Pt(0, 0), 1e-9) {
		t.Errorf("Segment clamps start: got %v", s)
	}
}

func TestPathMeasureCircle(t *testing.T) {
	p := NewPath()
	p.RoundedRectangle(0, 0, 100, 100, 80) // clamped to a circle of radius 50
	m := NewPathMeasure(p, 0.01)

	want := 2 * math.Pi * 50
	if got := m.Length(); math.Abs(got-want) > 0.5 {
		t.Errorf("Length() = %v, want ≈ %v", got, want)
	}
}

func TestFlattenClosesSubpath(t *testing.T) {
	p := NewPath()
	p.RoundedRectangle(10, 10, 80, 40, 10)
	pts := p.Flatten(0)
	if len(pts) < 8 {
		t.Fatalf("Flatten produced %d points", len(pts))
	}
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("flattened outline not closed: first %v last %v", pts[0], pts[len(pts)-1])
	}
	if pts[0] != Pt(20, 10) {
		t.Errorf("outline starts at %v, want (20, 10)", pts[0])
	}
}

func TestFlattenEmpty(t *testing.T) {
	if pts := NewPath().Flatten(0); pts != nil {
		t.Errorf("Flatten(empty) = %v, want nil", pts)
	}
	if m := NewPathMeasure(NewPath(), 0); m.Length() != 0 || m.Segment(0, 1) != nil {
		t.Error("measure of empty path should be empty")
	}
}
