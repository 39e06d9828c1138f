// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/edgelight"
)

// Virtual pixel size of one terminal cell. Cells are about twice as tall
// as they are wide.
const (
	CellWidth  = 8
	CellHeight = 16
)

// glyph fills a whole cell.
const glyph = '█'

// sampleStep is the distance between samples along a segment, small
// enough that no cell on the path is skipped.
const sampleStep = CellWidth / 2

// TerminalSurface draws frames onto a tcell screen. The screen is treated
// as a canvas of cells × cell size virtual pixels; every segment point is
// mapped to the cell containing it. Segment alpha is applied by blending
// the trail color over the background, since terminals have no
// transparency.
type TerminalSurface struct {
	screen tcell.Screen
	owned  bool
	bg     edgelight.Color
	closed bool
}

// OpenTerminalSurface initializes the controlling terminal and returns a
// surface that owns it. Close restores the terminal.
func OpenTerminalSurface(opts Options) (*TerminalSurface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("surface: open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("surface: init terminal: %w", err)
	}
	s := NewTerminalSurface(screen, opts)
	s.owned = true
	return s, nil
}

// NewTerminalSurface wraps an initialized screen. The caller keeps
// ownership of the screen.
func NewTerminalSurface(screen tcell.Screen, opts Options) *TerminalSurface {
	bg := edgelight.FromColor(opts.background())
	if bg.A == 0 {
		bg = edgelight.Black
	}
	return &TerminalSurface{screen: screen, bg: bg.WithAlpha(0xFF)}
}

// Size returns the virtual pixel size of the screen.
func (s *TerminalSurface) Size() (int, int) {
	cols, rows := s.screen.Size()
	return cols * CellWidth, rows * CellHeight
}

// Render clears the screen and draws every lit segment.
func (s *TerminalSurface) Render(f edgelight.Frame) error {
	if s.closed {
		return ErrClosed
	}
	cols, rows := s.screen.Size()
	bgStyle := tcell.StyleDefault.Background(tcellColor(s.bg))

	s.screen.Fill(' ', bgStyle)
	for _, in := range f.Instructions {
		c := edgelight.Blend(s.bg, in.Color.WithAlpha(0xFF), float64(in.Color.A)/255)
		style := bgStyle.Foreground(tcellColor(c))
		walk(in.Segment.Points, sampleStep, func(p edgelight.Point) {
			x := clampInt(int(p.X)/CellWidth, 0, cols-1)
			y := clampInt(int(p.Y)/CellHeight, 0, rows-1)
			s.screen.SetContent(x, y, glyph, nil, style)
		})
	}
	s.screen.Show()
	return nil
}

// Close releases the screen if the surface owns it.
func (s *TerminalSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.owned {
		s.screen.Fini()
	}
	return nil
}

func tcellColor(c edgelight.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// walk calls fn at points spaced at most step apart along the polyline.
func walk(pts []edgelight.Point, step float64, fn func(edgelight.Point)) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		n := max(1, int(math.Ceil(a.Distance(b)/step)))
		for k := range n {
			fn(a.Lerp(b, float64(k)/float64(n)))
		}
	}
	if len(pts) > 0 {
		fn(pts[len(pts)-1])
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
