// Package swatch generates color swatches from notification icons.
//
// An [Extractor] reduces an icon to a small histogram of 15-bit colors and
// scores the buckets against vibrant lightness targets, the way platform
// palette generators do. It implements [edgelight.SwatchExtractor]:
//
//	r := edgelight.NewResolver(edgelight.WithSwatchExtractor(swatch.New()))
package swatch

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/edgelight"
)

// ErrEmptyImage is returned for nil or zero-area images.
var ErrEmptyImage = errors.New("swatch: empty image")

const (
	// DefaultMaxArea bounds the number of pixels sampled; larger icons are
	// downscaled first.
	DefaultMaxArea = 112 * 112
	// DefaultMinAlpha is the alpha below which a pixel is ignored.
	DefaultMinAlpha = 128
)

// Score weights.
const (
	weightSaturation = 0.24
	weightLightness  = 0.52
	weightPopulation = 0.24
)

// target describes one vibrant swatch.
type target struct {
	minL, targetL, maxL float64
	minS, targetS       float64
}

var (
	vibrantTarget      = target{minL: 0.3, targetL: 0.5, maxL: 0.7, minS: 0.35, targetS: 1}
	lightVibrantTarget = target{minL: 0.55, targetL: 0.74, maxL: 1, minS: 0.35, targetS: 1}
	darkVibrantTarget  = target{minL: 0, targetL: 0.26, maxL: 0.45, minS: 0.35, targetS: 1}
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxArea sets the sampling area above which icons are downscaled.
func WithMaxArea(pixels int) Option {
	return func(e *Extractor) {
		if pixels > 0 {
			e.maxArea = pixels
		}
	}
}

// WithMinAlpha sets the alpha below which pixels are ignored.
func WithMinAlpha(a uint8) Option {
	return func(e *Extractor) {
		e.minAlpha = a
	}
}

// Extractor computes swatches from images. It holds no mutable state and
// is safe for concurrent use.
type Extractor struct {
	maxArea  int
	minAlpha uint8
}

var _ edgelight.SwatchExtractor = (*Extractor)(nil)

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxArea: DefaultMaxArea, minAlpha: DefaultMinAlpha}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// bucket accumulates the pixels quantized to one 15-bit color.
type bucket struct {
	key              uint16
	count            int
	sumR, sumG, sumB int

	rgb      edgelight.Color
	h, s, l  float64
	selected bool
}

// Extract returns the swatches of img. A fully transparent image yields
// no swatches and no error.
func (e *Extractor) Extract(img image.Image) (edgelight.Swatches, error) {
	if img == nil || img.Bounds().Empty() {
		return edgelight.Swatches{}, ErrEmptyImage
	}

	buckets := e.histogram(e.downscale(img))
	if len(buckets) == 0 {
		return edgelight.Swatches{}, nil
	}

	var sw edgelight.Swatches
	dominant := buckets[0]
	maxPop := 0
	for _, b := range buckets {
		if b.count > dominant.count {
			dominant = b
		}
		maxPop = max(maxPop, b.count)
	}
	sw.Dominant = colorPtr(dominant.rgb)

	sw.Vibrant = pick(buckets, vibrantTarget, maxPop)
	sw.LightVibrant = pick(buckets, lightVibrantTarget, maxPop)
	sw.DarkVibrant = pick(buckets, darkVibrantTarget, maxPop)
	return sw, nil
}

// downscale shrinks img so its area does not exceed the sampling area.
func (e *Extractor) downscale(img image.Image) image.Image {
	b := img.Bounds()
	area := b.Dx() * b.Dy()
	if area <= e.maxArea {
		return img
	}
	f := math.Sqrt(float64(e.maxArea) / float64(area))
	w := max(1, int(float64(b.Dx())*f))
	h := max(1, int(float64(b.Dy())*f))

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// histogram quantizes img to 5 bits per channel. Buckets are returned in
// key order so that ties resolve deterministically.
func (e *Extractor) histogram(img image.Image) []*bucket {
	byKey := make(map[uint16]*bucket)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < e.minAlpha {
				continue
			}
			key := uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
			bk := byKey[key]
			if bk == nil {
				bk = &bucket{key: key}
				byKey[key] = bk
			}
			bk.count++
			bk.sumR += int(c.R)
			bk.sumG += int(c.G)
			bk.sumB += int(c.B)
		}
	}

	out := make([]*bucket, 0, len(byKey))
	for _, bk := range byKey {
		n := bk.count
		bk.rgb = edgelight.RGB8(uint8(bk.sumR/n), uint8(bk.sumG/n), uint8(bk.sumB/n))
		cf := colorful.Color{R: float64(bk.rgb.R) / 255, G: float64(bk.rgb.G) / 255, B: float64(bk.rgb.B) / 255}
		bk.h, bk.s, bk.l = cf.Hsl()
		out = append(out, bk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// pick selects the best unselected bucket for t and marks it selected.
func pick(buckets []*bucket, t target, maxPop int) *edgelight.Color {
	var best *bucket
	bestScore := math.Inf(-1)
	for _, b := range buckets {
		if b.selected || b.s < t.minS || b.l < t.minL || b.l > t.maxL {
			continue
		}
		score := weightSaturation*(1-math.Abs(b.s-t.targetS)) +
			weightLightness*(1-math.Abs(b.l-t.targetL)) +
			weightPopulation*float64(b.count)/float64(maxPop)
		if score > bestScore {
			best, bestScore = b, score
		}
	}
	if best == nil {
		return nil
	}
	best.selected = true
	return colorPtr(best.rgb)
}

func colorPtr(c edgelight.Color) *edgelight.Color {
	return &c
}
