// Package edgelight drives an edge-lighting effect: a light trail that
// travels around the rounded border of a screen when a notification
// arrives, in a color representative of the notification's source.
//
// # Overview
//
// The package has two halves that run in sequence for every notification:
//
//   - [Resolver] maps the signals a notification carries (declared color,
//     icon, package identifier) to one display color.
//   - [Animator] turns a color and a duration into per-tick rendering
//     instructions: which outline segments are lit and with what alpha.
//
// A [Driver] ticks an Animator at a steady rate and hands each [Frame] to a
// [Renderer]; the surface sub-package provides raster and terminal
// renderers.
//
// # Quick Start
//
//	r := edgelight.NewResolver()
//	c := r.ResolvePrimaryColor(edgelight.Unset, nil, "com.whatsapp")
//
//	a := edgelight.NewAnimator()
//	a.Start(c, 2*time.Second)
//
//	frame := a.Tick(500*time.Millisecond, edgelight.Size{Width: 1080, Height: 2400})
//	for _, in := range frame.Instructions {
//	    // stroke in.Segment.Points with in.Color
//	}
//
// # Color resolution
//
// Resolution tries, in order: the declared color unless it is [Unset]; the
// first present swatch of the icon (vibrant, light vibrant, dark vibrant,
// dominant) from a [SwatchExtractor]; the ordered brand table; and finally
// a color synthesized from the identifier hash. The last stage is total, so
// resolution never fails.
//
// # Trail geometry
//
// The outline is inset by half the stroke width and split into equal-length
// segments. At progress p the trail covers the arc starting at p·P and
// spanning a fixed fraction of the perimeter P, wrapping past the origin
// when needed. Each segment's alpha is its coverage times a global pulsing
// alpha.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. The
// outline runs clockwise from the end of the top-left corner.
package edgelight

// Version is the current version of the library.
const Version = "0.3.0"
