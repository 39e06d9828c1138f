// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "image/color"

// Options configures surface creation.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int

	// Background is the color the surface is cleared to before each frame.
	// Default: transparent
	Background color.Color

	// OutputDir, when set, makes image surfaces write every rendered frame
	// to OutputDir/frame_NNNNN.png.
	OutputDir string

	// Custom options for specific backends.
	Custom map[string]any
}

// DefaultOptions returns Options with default values.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:      width,
		Height:     height,
		Background: color.Transparent,
	}
}

// background returns the configured background or transparent.
func (o Options) background() color.Color {
	if o.Background == nil {
		return color.Transparent
	}
	return o.Background
}
