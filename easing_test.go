package edgelight

import (
	"math"
	"testing"
)

func TestDecelerate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.75},
		{1, 1},
		{-1, 0},
		{2, 1},
		{1 - math.Sqrt(0.05), 0.95},
	}
	for _, tt := range tests {
		if got := Decelerate(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Decelerate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecelerateMonotonic(t *testing.T) {
	prev := Decelerate(0)
	for i := 1; i <= 1000; i++ {
		v := Decelerate(float64(i) / 1000)
		if v < prev {
			t.Fatalf("Decelerate not monotonic at %v", float64(i)/1000)
		}
		prev = v
	}
}

func TestFadeAlpha(t *testing.T) {
	tests := []struct {
		progress float64
		want     uint8
	}{
		{0, 155},
		{0.125, 255},
		{0.375, 55},
		{0.625, 255},
		{0.875, 55},
	}
	for _, tt := range tests {
		if got := FadeAlpha(tt.progress); got != tt.want {
			t.Errorf("FadeAlpha(%v) = %d, want %d", tt.progress, got, tt.want)
		}
	}
}

func TestFadeAlphaBounds(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		a := FadeAlpha(float64(i) / 1000)
		if a < 55 {
			t.Fatalf("FadeAlpha(%v) = %d, below 55", float64(i)/1000, a)
		}
	}
}
