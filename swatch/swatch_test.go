package swatch

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/edgelight"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func near(a, b edgelight.Color, tol int) bool {
	d := func(x, y uint8) int { return max(int(x)-int(y), int(y)-int(x)) }
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol && a.A == b.A
}

func TestExtractEmpty(t *testing.T) {
	e := New()
	if _, err := e.Extract(nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Extract(nil) error = %v, want ErrEmptyImage", err)
	}
	if _, err := e.Extract(image.NewNRGBA(image.Rect(0, 0, 0, 5))); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Extract(0x5) error = %v, want ErrEmptyImage", err)
	}
}

func TestExtractTransparent(t *testing.T) {
	sw, err := New().Extract(solid(8, 8, color.NRGBA{R: 255, A: 40}))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sw.First(); ok {
		t.Errorf("transparent icon produced swatches: %+v", sw)
	}
}

func TestExtractSolidRed(t *testing.T) {
	sw, err := New().Extract(solid(16, 16, color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	if sw.Vibrant == nil || *sw.Vibrant != edgelight.Red {
		t.Errorf("Vibrant = %v, want red", sw.Vibrant)
	}
	if sw.Dominant == nil || *sw.Dominant != edgelight.Red {
		t.Errorf("Dominant = %v, want red", sw.Dominant)
	}
	if sw.LightVibrant != nil || sw.DarkVibrant != nil {
		t.Errorf("single bucket reused: light %v dark %v", sw.LightVibrant, sw.DarkVibrant)
	}
}

func TestExtractGrayHasNoVibrant(t *testing.T) {
	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	sw, err := New().Extract(solid(8, 8, gray))
	if err != nil {
		t.Fatal(err)
	}
	if sw.Vibrant != nil || sw.LightVibrant != nil || sw.DarkVibrant != nil {
		t.Errorf("gray icon produced vibrant swatches: %+v", sw)
	}
	if got, ok := sw.First(); !ok || got != edgelight.FromColor(gray) {
		t.Errorf("First() = %v, %v; want dominant gray", got, ok)
	}
}

func TestExtractTargets(t *testing.T) {
	blue := color.NRGBA{B: 255, A: 255}
	pink := color.NRGBA{R: 255, G: 170, B: 200, A: 255}
	navy := color.NRGBA{B: 100, A: 255}

	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			switch {
			case y < 6:
				img.Set(x, y, blue)
			case y < 8:
				img.Set(x, y, pink)
			default:
				img.Set(x, y, navy)
			}
		}
	}

	sw, err := New().Extract(img)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		got  *edgelight.Color
		want color.NRGBA
	}{
		{"dominant", sw.Dominant, blue},
		{"vibrant", sw.Vibrant, blue},
		{"light vibrant", sw.LightVibrant, pink},
		{"dark vibrant", sw.DarkVibrant, navy},
	}
	for _, tt := range tests {
		if tt.got == nil || *tt.got != edgelight.FromColor(tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, edgelight.FromColor(tt.want))
		}
	}
}

func TestExtractDownscalesLargeIcons(t *testing.T) {
	img := solid(512, 512, color.NRGBA{G: 200, B: 80, A: 255})
	sw, err := New().Extract(img)
	if err != nil {
		t.Fatal(err)
	}
	if sw.Dominant == nil || !near(*sw.Dominant, edgelight.RGB8(0, 200, 80), 1) {
		t.Errorf("Dominant = %v, want ≈ #FF00C850", sw.Dominant)
	}

	e := New(WithMaxArea(64))
	if got := e.downscale(img).Bounds(); got.Dx()*got.Dy() > 64 {
		t.Errorf("downscaled to %v, area exceeds 64", got)
	}
}

func TestExtractMinAlpha(t *testing.T) {
	img := solid(4, 4, color.NRGBA{R: 255, A: 100})
	sw, err := New(WithMinAlpha(50)).Extract(img)
	if err != nil {
		t.Fatal(err)
	}
	if sw.Dominant == nil {
		t.Error("pixels above the configured alpha were skipped")
	}
}

func TestExtractDeterministic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 120, A: 255})
		}
	}
	e := New()
	first, err := e.Extract(img)
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		again, _ := e.Extract(img)
		a, _ := first.First()
		b, _ := again.First()
		if a != b {
			t.Fatalf("Extract not deterministic: %v then %v", a, b)
		}
	}
}
