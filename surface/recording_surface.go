// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"sync"

	"github.com/gogpu/edgelight"
)

// RecordingSurface keeps rendered frames in memory instead of drawing them.
// It backs the "null" backend and is useful in tests. Unlike the other
// surfaces it is safe for concurrent use.
type RecordingSurface struct {
	mu     sync.Mutex
	width  int
	height int
	frames []edgelight.Frame
	limit  int
	closed bool
}

// NewRecordingSurface creates a recording surface of the given size.
// Non-positive sizes are kept, so the surface can model a window that has
// not been laid out yet.
func NewRecordingSurface(width, height int) *RecordingSurface {
	return &RecordingSurface{width: width, height: height}
}

// SetLimit bounds the number of retained frames; older frames are dropped.
// Zero keeps every frame.
func (s *RecordingSurface) SetLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = max(n, 0)
	s.trimLocked()
}

// Size returns the surface size.
func (s *RecordingSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Render records f.
func (s *RecordingSurface) Render(f edgelight.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.frames = append(s.frames, f)
	s.trimLocked()
	return nil
}

func (s *RecordingSurface) trimLocked() {
	if s.limit > 0 && len(s.frames) > s.limit {
		s.frames = append(s.frames[:0], s.frames[len(s.frames)-s.limit:]...)
	}
}

// Frames returns a copy of the recorded frames, oldest first.
func (s *RecordingSurface) Frames() []edgelight.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]edgelight.Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Last returns the most recent frame.
func (s *RecordingSurface) Last() (edgelight.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return edgelight.Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Resize changes the reported size.
func (s *RecordingSurface) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("surface: invalid size %dx%d", width, height)
	}
	s.width, s.height = width, height
	return nil
}

// Close stops recording. Recorded frames stay readable.
func (s *RecordingSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
