// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/vector"

	"github.com/gogpu/edgelight"
)

// joinSides is the number of sides of the polygon drawn at interior
// polyline vertices to round the joins.
const joinSides = 8

// ImageSurface is a CPU surface that renders frames into an *image.RGBA.
//
// Each lit segment is stroked as a set of quads with round joins and
// rasterized with anti-aliasing by golang.org/x/image/vector. When
// Options.OutputDir is set, every rendered frame is also written as a PNG.
//
// Example:
//
//	s := surface.NewImageSurface(1080, 2400, surface.Options{OutputDir: "frames"})
//	defer s.Close()
//
//	if err := s.Render(anim.Tick(elapsed, edgelight.Size{Width: 1080, Height: 2400})); err != nil {
//	    return err
//	}
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA
	bg     *image.Uniform

	raster *vector.Rasterizer

	outDir string
	frames int

	closed bool
}

// NewImageSurface creates a surface with the given dimensions. Width and
// height are clamped to at least 1; only the background and output
// directory are taken from opts.
func NewImageSurface(width, height int, opts Options) *ImageSurface {
	width, height = max(width, 1), max(height, 1)
	s := &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		bg:     image.NewUniform(opts.background()),
		raster: vector.NewRasterizer(width, height),
		outDir: opts.OutputDir,
	}
	s.raster.DrawOp = draw.Over
	s.clear()
	return s
}

// Size returns the surface size.
func (s *ImageSurface) Size() (int, int) {
	return s.width, s.height
}

// Render clears the surface and strokes every instruction of f.
func (s *ImageSurface) Render(f edgelight.Frame) error {
	if s.closed {
		return ErrClosed
	}

	s.clear()
	for _, in := range f.Instructions {
		s.strokePolyline(in.Segment.Points, f.StrokeWidth, in.Color)
	}

	if s.outDir == "" {
		return nil
	}
	name := filepath.Join(s.outDir, fmt.Sprintf("frame_%05d.png", s.frames))
	s.frames++
	if err := s.SavePNG(name); err != nil {
		return fmt.Errorf("surface: write frame: %w", err)
	}
	return nil
}

// Frames returns the number of frames written to the output directory.
func (s *ImageSurface) Frames() int {
	return s.frames
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Image returns the underlying image. This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// SavePNG writes the current contents to a PNG file, creating parent
// directories as needed.
func (s *ImageSurface) SavePNG(path string) error {
	if s.closed {
		return ErrClosed
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Resize changes the surface dimensions and clears it.
func (s *ImageSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface: invalid size %dx%d", width, height)
	}
	s.width, s.height = width, height
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.clear()
	return nil
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	s.raster = nil
	return nil
}

func (s *ImageSurface) clear() {
	draw.Draw(s.img, s.img.Bounds(), s.bg, image.Point{}, draw.Src)
}

// strokePolyline draws pts with the given width and color.
func (s *ImageSurface) strokePolyline(pts []edgelight.Point, width float64, c color.Color) {
	if len(pts) < 2 || !(width > 0) {
		return
	}
	half := width / 2

	r := polylineBounds(pts, half).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	s.raster.Reset(r.Dx(), r.Dy())
	origin := edgelight.Pt(float64(r.Min.X), float64(r.Min.Y))

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1].Sub(origin), pts[i].Sub(origin)
		d := b.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}
		n := edgelight.Pt(-d.Y/l*half, d.X/l*half)
		s.polygon(a.Sub(n), b.Sub(n), b.Add(n), a.Add(n))
	}
	for _, p := range pts[1 : len(pts)-1] {
		s.join(p.Sub(origin), half)
	}

	s.raster.Draw(s.img, r, image.NewUniform(c), image.Point{})
}

// join adds a regular polygon of radius r centered at p.
func (s *ImageSurface) join(p edgelight.Point, r float64) {
	var pts [joinSides]edgelight.Point
	for i := range pts {
		a := 2 * math.Pi * float64(i) / joinSides
		pts[i] = edgelight.Pt(p.X+r*math.Cos(a), p.Y+r*math.Sin(a))
	}
	s.polygon(pts[:]...)
}

func (s *ImageSurface) polygon(pts ...edgelight.Point) {
	s.raster.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		s.raster.LineTo(float32(p.X), float32(p.Y))
	}
	s.raster.ClosePath()
}

// polylineBounds returns the pixel rectangle covering pts widened by pad.
func polylineBounds(pts []edgelight.Point, pad float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX-pad))-1, int(math.Floor(minY-pad))-1,
		int(math.Ceil(maxX+pad))+1, int(math.Ceil(maxY+pad))+1,
	)
}
