package edgelight

import (
	"image/color"
	"math"
	"testing"
)

// Verify at compile time that Color implements color.Color.
var _ color.Color = Color{}

func TestARGBRoundTrip(t *testing.T) {
	tests := []uint32{0x00000000, 0xFF25D366, 0x80FF00BF, 0xFFFFFFFF, 0x01020304}
	for _, v := range tests {
		c := ARGB(v)
		if got := c.Uint32(); got != v {
			t.Errorf("ARGB(%#08x).Uint32() = %#08x", v, got)
		}
	}

	c := ARGB(0x80112233)
	if c.A != 0x80 || c.R != 0x11 || c.G != 0x22 || c.B != 0x33 {
		t.Errorf("ARGB(0x80112233) = %+v", c)
	}
}

func TestColorUnset(t *testing.T) {
	if !Unset.IsUnset() {
		t.Error("Unset.IsUnset() = false")
	}
	if !(Color{}).IsUnset() {
		t.Error("zero Color should be unset")
	}
	// A transparent but non-black color is a real declaration.
	if ARGB(0x00FF0000).IsUnset() {
		t.Error("0x00FF0000 should not be unset")
	}
	if Black.IsUnset() {
		t.Error("opaque black should not be unset")
	}
}

func TestColorString(t *testing.T) {
	if got := ARGB(0xFF25D366).String(); got != "#FF25D366" {
		t.Errorf("String() = %q, want #FF25D366", got)
	}
}

func TestColor_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          Color
		wantR, wantG, wantB, wantA uint32
	}{
		{"opaque black", Black, 0, 0, 0, 0xFFFF},
		{"opaque white", White, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{"transparent", Transparent, 0, 0, 0, 0},
		{"opaque red", Red, 0xFFFF, 0, 0, 0xFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != tt.wantA {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if want := ARGB(0xFF0A141E); got != want {
		t.Errorf("FromColor() = %v, want %v", got, want)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF25D366", ARGB(0xFF25D366), false},
		{"25D366", ARGB(0xFF25D366), false},
		{"#80ff00bf", ARGB(0x80FF00BF), false},
		{"#f00", Red, false},
		{"fff", White, false},
		{"", Color{}, true},
		{"#12345", Color{}, true},
		{"#GG0000", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustParseHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHex(\"nope\") did not panic")
		}
	}()
	MustParseHex("nope")
}

func TestHSVPrimaries(t *testing.T) {
	tests := []struct {
		c    Color
		want HSV
	}{
		{Red, HSV{0, 1, 1}},
		{Green, HSV{120, 1, 1}},
		{Blue, HSV{240, 1, 1}},
		{White, HSV{0, 0, 1}},
		{Black, HSV{0, 0, 0}},
	}
	for _, tt := range tests {
		got := tt.c.HSV()
		if math.Abs(got.H-tt.want.H) > 1e-9 || math.Abs(got.S-tt.want.S) > 1e-9 || math.Abs(got.V-tt.want.V) > 1e-9 {
			t.Errorf("%v.HSV() = %+v, want %+v", tt.c, got, tt.want)
		}
	}
}

func TestFromHSV(t *testing.T) {
	tests := []struct {
		name  string
		hsv   HSV
		alpha uint8
		want  Color
	}{
		{"red", HSV{0, 1, 1}, 0xFF, Red},
		{"green", HSV{120, 1, 1}, 0xFF, Green},
		{"hue 360 wraps to red", HSV{360, 1, 1}, 0xFF, Red},
		{"negative hue wraps", HSV{-120, 1, 1}, 0xFF, Blue},
		{"saturation clamped", HSV{0, 5, 1}, 0xFF, Red},
		{"value clamped", HSV{0, 0, -1}, 0xFF, Black},
		{"alpha kept", HSV{0, 1, 1}, 0x40, ARGB(0x40FF0000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromHSV(tt.hsv, tt.alpha); got != tt.want {
				t.Errorf("FromHSV(%+v) = %v, want %v", tt.hsv, got, tt.want)
			}
		})
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for _, v := range []uint32{0xFF25D366, 0xFF0088CC, 0xFFE4405F, 0xFF4A154B, 0xFFFFFC00} {
		c := ARGB(v)
		if got := FromHSV(c.HSV(), c.A); got != c {
			t.Errorf("FromHSV(%v.HSV()) = %v", c, got)
		}
	}
}
