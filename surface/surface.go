// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"

	"github.com/gogpu/edgelight"
)

// Surface is a drawing target for edge-lighting frames.
//
// A Surface receives complete frames: every Render replaces what the
// previous one drew. Implementations satisfy [edgelight.Renderer] so a
// Surface can be handed to an [edgelight.Driver] directly.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(1080, 2400, surface.Options{})
//	defer s.Close()
//
//	d := edgelight.NewDriver(anim, s)
//	go d.Run(ctx)
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)

	// Render draws a frame, replacing the previous contents.
	// Rendering to a closed surface returns ErrClosed.
	Render(f edgelight.Frame) error

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Snapshotter is an optional interface for surfaces whose contents can be
// read back as an image.
type Snapshotter interface {
	Surface

	// Snapshot returns a copy of the current surface contents.
	Snapshot() *image.RGBA
}

// ResizableSurface is an optional interface for surfaces that support resizing.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions. Existing content is discarded.
	Resize(width, height int) error
}

// ErrClosed is returned when rendering to a closed surface.
var ErrClosed = errors.New("surface: closed")

var (
	_ edgelight.Renderer = Surface(nil)
	_ Snapshotter        = (*ImageSurface)(nil)
	_ ResizableSurface   = (*ImageSurface)(nil)
	_ Surface            = (*TerminalSurface)(nil)
	_ ResizableSurface   = (*RecordingSurface)(nil)
)
