package edgelight

import (
	"fmt"
	"image"
	"unicode/utf16"
)

// Source identifies which stage of the resolution pipeline produced a color.
type Source uint8

const (
	// SourceDeclared is a color declared by the notification itself.
	SourceDeclared Source = iota
	// SourceIcon is a swatch extracted from the notification icon.
	SourceIcon
	// SourceBrand is a curated color from the brand table.
	SourceBrand
	// SourceHash is a color synthesized from the identifier hash.
	SourceHash
	// SourceDefault is the configured default color.
	SourceDefault
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceDeclared:
		return "declared"
	case SourceIcon:
		return "icon"
	case SourceBrand:
		return "brand"
	case SourceHash:
		return "hash"
	case SourceDefault:
		return "default"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// Swatches holds the named swatches a palette generator found in an image.
// A nil field means the swatch is absent.
type Swatches struct {
	Vibrant      *Color
	LightVibrant *Color
	DarkVibrant  *Color
	Dominant     *Color
}

// First returns the first present swatch in the order
// vibrant, light vibrant, dark vibrant, dominant.
func (s Swatches) First() (Color, bool) {
	for _, c := range []*Color{s.Vibrant, s.LightVibrant, s.DarkVibrant, s.Dominant} {
		if c != nil {
			return *c, true
		}
	}
	return Color{}, false
}

// SwatchExtractor generates swatches from a bitmap.
// Implementations must be safe for concurrent use.
type SwatchExtractor interface {
	Extract(img image.Image) (Swatches, error)
}

// SwatchExtractorFunc adapts a function to SwatchExtractor.
type SwatchExtractorFunc func(img image.Image) (Swatches, error)

// Extract calls f(img).
func (f SwatchExtractorFunc) Extract(img image.Image) (Swatches, error) {
	return f(img)
}

// Signals are the color hints a notification carries.
type Signals struct {
	// Declared is the notification's own color; Unset when absent.
	Declared Color
	// Icon is the notification's large icon, or nil.
	Icon image.Image
	// Package is the source identifier, typically an application package.
	Package string
}

// Resolution is the outcome of color resolution.
type Resolution struct {
	Color  Color
	Source Source
}

// Resolver turns notification signals into a single display color.
//
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	brands       BrandTable
	extractor    SwatchExtractor
	defaultColor Color
	hashFallback bool
}

// NewResolver creates a resolver with the built-in brand table, hash
// fallback enabled and no swatch extractor.
func NewResolver(opts ...ResolverOption) *Resolver {
	o := defaultResolverOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver{
		brands:       o.brands,
		extractor:    o.extractor,
		defaultColor: o.defaultColor,
		hashFallback: o.hashFallback,
	}
}

// ResolvePrimaryColor returns the display color for a notification.
// It never fails.
func (r *Resolver) ResolvePrimaryColor(declared Color, icon image.Image, packageID string) Color {
	return r.Resolve(Signals{Declared: declared, Icon: icon, Package: packageID}).Color
}

// Resolve walks the fallback chain: declared color, icon swatch, brand
// table, then either the identifier hash or the default color.
func (r *Resolver) Resolve(sig Signals) Resolution {
	if !sig.Declared.IsUnset() {
		return Resolution{Color: sig.Declared, Source: SourceDeclared}
	}
	if sig.Icon != nil {
		if c, ok := r.extract(sig.Icon); ok {
			return Resolution{Color: c, Source: SourceIcon}
		}
	}
	if c, ok := r.brands.Lookup(sig.Package); ok {
		return Resolution{Color: c, Source: SourceBrand}
	}
	if r.hashFallback {
		return Resolution{Color: HashColor(sig.Package), Source: SourceHash}
	}
	return Resolution{Color: r.defaultColor, Source: SourceDefault}
}

// ExtractVibrant returns the first present swatch of img, or fallback when
// no extractor is configured or extraction fails.
func (r *Resolver) ExtractVibrant(img image.Image, fallback Color) Color {
	if img == nil {
		return fallback
	}
	if c, ok := r.extract(img); ok {
		return c
	}
	return fallback
}

// DefaultColor returns the configured default color.
func (r *Resolver) DefaultColor() Color {
	return r.defaultColor
}

// extract calls the external swatch extractor. Errors and panics from the
// extractor are treated as "no swatch".
func (r *Resolver) extract(img image.Image) (c Color, ok bool) {
	if r.extractor == nil {
		return Color{}, false
	}
	defer func() {
		if p := recover(); p != nil {
			Logger().Debug("edgelight: swatch extractor panicked", "panic", p)
			c, ok = Color{}, false
		}
	}()

	sw, err := r.extractor.Extract(img)
	if err != nil {
		Logger().Debug("edgelight: swatch extraction failed", "err", err)
		return Color{}, false
	}
	return sw.First()
}

// HashColor synthesizes a stable, saturated, bright color from id.
// The same id always yields the same color, across processes.
func HashColor(id string) Color {
	h := uint32(IdentifierHash(id))
	hue := float64(h&0xFF) * 360 / 255
	sat := 0.7 + float64((h>>8)&0xFF)/255*0.3
	val := 0.8 + float64((h>>16)&0xFF)/255*0.2
	return FromHSV(HSV{H: hue, S: sat, V: val}, 0xFF)
}

// IdentifierHash computes the 31-multiplier polynomial hash over the UTF-16
// code units of s with 32-bit wrap-around, as JVM string hashing does, so
// identifiers hash identically on every platform that reports them.
func IdentifierHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}
	return h
}
