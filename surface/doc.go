// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides drawing targets for edge-lighting frames.
//
// A [Surface] receives whole [edgelight.Frame] values from an
// [edgelight.Driver] and draws the lit outline segments. The same frames
// can be sent to:
//
//   - ImageSurface: anti-aliased CPU raster into *image.RGBA, optionally
//     writing numbered PNG frames
//   - TerminalSurface: cell-level preview on a tcell screen
//   - RecordingSurface: in-memory frame log for tests and headless runs
//
// # Registry
//
// Backends are looked up by name so the surface can be chosen from
// configuration:
//
//	s, err := surface.NewSurfaceByName("image", surface.Options{
//	    Width:     1080,
//	    Height:    2400,
//	    OutputDir: "frames",
//	})
//
// The built-in backends are "image", "terminal" and "null". Third-party
// backends register themselves with [Register].
//
// # Usage
//
//	anim := edgelight.NewAnimator()
//	s := surface.NewImageSurface(1080, 2400, surface.DefaultOptions(1080, 2400))
//	defer s.Close()
//
//	anim.Start(edgelight.ARGB(0xFF25D366), 2*time.Second)
//	_ = s.Render(anim.Tick(500*time.Millisecond, edgelight.Size{Width: 1080, Height: 2400}))
//	img := s.Snapshot()
package surface
