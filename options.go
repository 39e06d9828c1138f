package edgelight

import "time"

// ResolverOption configures a Resolver during creation.
//
// Example:
//
//	r := edgelight.NewResolver(
//	    edgelight.WithSwatchExtractor(swatch.New()),
//	    edgelight.WithDefaultColor(edgelight.DefaultPurple),
//	)
type ResolverOption func(*resolverOptions)

type resolverOptions struct {
	brands       BrandTable
	extractor    SwatchExtractor
	defaultColor Color
	hashFallback bool
}

func defaultResolverOptions() resolverOptions {
	return resolverOptions{
		brands:       DefaultBrands(),
		defaultColor: DefaultPurple,
		hashFallback: true,
	}
}

// WithSwatchExtractor sets the palette generator used for notification
// icons. Without one the icon stage is skipped.
func WithSwatchExtractor(e SwatchExtractor) ResolverOption {
	return func(o *resolverOptions) {
		o.extractor = e
	}
}

// WithBrands replaces the brand table.
func WithBrands(t BrandTable) ResolverOption {
	return func(o *resolverOptions) {
		o.brands = t
	}
}

// WithExtraBrands prepends rules to the brand table so they take
// precedence over the built-in entries.
func WithExtraBrands(rules ...BrandRule) ResolverOption {
	return func(o *resolverOptions) {
		t := make(BrandTable, 0, len(rules)+len(o.brands))
		t = append(t, rules...)
		o.brands = append(t, o.brands...)
	}
}

// WithDefaultColor sets the color used when the hash fallback is disabled.
func WithDefaultColor(c Color) ResolverOption {
	return func(o *resolverOptions) {
		o.defaultColor = c
	}
}

// WithHashFallback toggles identifier-hash synthesis as the last stage.
// When disabled, unknown sources resolve to the default color.
func WithHashFallback(enabled bool) ResolverOption {
	return func(o *resolverOptions) {
		o.hashFallback = enabled
	}
}

// AnimatorOption configures an Animator during creation.
type AnimatorOption func(*animatorOptions)

type animatorOptions struct {
	style Style
	clock Clock
}

func defaultAnimatorOptions() animatorOptions {
	return animatorOptions{
		style: DefaultStyle(),
		clock: SystemClock{},
	}
}

// WithStyle sets the outline and trail style.
func WithStyle(s Style) AnimatorOption {
	return func(o *animatorOptions) {
		o.style = s.normalized()
	}
}

// WithClock sets the clock used by Start and TickAt.
func WithClock(c Clock) AnimatorOption {
	return func(o *animatorOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithFrameRate sets the tick rate in frames per second.
func WithFrameRate(fps int) DriverOption {
	return func(d *Driver) {
		if fps > 0 {
			d.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithFrameHook registers fn to observe every rendered frame.
func WithFrameHook(fn func(Frame)) DriverOption {
	return func(d *Driver) {
		d.onFrame = fn
	}
}
