// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"os"
	"slices"
	"sync"
)

// Factory creates a new Surface with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Surface, error)

// Backend describes a registered surface backend.
type Backend struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 10: image (offscreen raster, optional PNG frames)
	//   - 5: terminal (requires a TTY)
	//   - 1: null (in-memory recording)
	Priority int

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend can be used on this system.
	Available func() bool
}

// defaultRegistry holds the built-in backends.
var defaultRegistry = NewRegistry()

// Registry manages named surface backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("framebuffer", 20, fbFactory, fbAvailable)
//	}
//
// Example usage:
//
//	s, err := surface.NewSurfaceByName("terminal", surface.Options{})
//	// or pick the best available backend:
//	s, err := surface.NewSurface(surface.DefaultOptions(1080, 2400))
type Registry struct {
	mu       sync.RWMutex
	backends map[string]*Backend
}

// NewRegistry creates a new empty registry.
// Most code should use the package-level functions.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]*Backend)}
}

// Register adds a backend to the default registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the default registry.
func Unregister(name string) {
	defaultRegistry.Unregister(name)
}

// List returns all registered backend names, highest priority first.
func List() []string {
	return defaultRegistry.List()
}

// Available returns the names of available backends, highest priority first.
func Available() []string {
	return defaultRegistry.Available()
}

// NewSurface creates a surface using the best available backend.
func NewSurface(opts Options) (Surface, error) {
	return defaultRegistry.NewSurface(opts)
}

// NewSurfaceByName creates a surface using a specific backend.
func NewSurfaceByName(name string, opts Options) (Surface, error) {
	return defaultRegistry.NewSurfaceByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backends == nil {
		r.backends = make(map[string]*Backend)
	}
	r.backends[name] = &Backend{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.backends, name)
}

// Get returns a copy of the named backend.
func (r *Registry) Get(name string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[name]
	if !ok {
		return Backend{}, false
	}
	return *b, true
}

// List returns all registered backend names, highest priority first.
func (r *Registry) List() []string {
	return r.names(false)
}

// Available returns the names of available backends, highest priority first.
func (r *Registry) Available() []string {
	return r.names(true)
}

// NewSurface creates a surface using the best available backend. Backends
// whose factory fails are skipped; the last error is returned if all fail.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var errs []error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// NewSurfaceByName creates a surface using a specific backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	b, ok := r.Get(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !b.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return b.Factory(opts)
}

// names returns backend names sorted by priority, then by name.
func (r *Registry) names(onlyAvailable bool) []string {
	r.mu.RLock()
	backends := make([]*Backend, 0, len(r.backends))
	for _, b := range r.backends {
		backends = append(backends, b)
	}
	r.mu.RUnlock()

	slices.SortFunc(backends, func(a, b *Backend) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	var names []string
	for _, b := range backends {
		if onlyAvailable && !b.Available() {
			continue
		}
		names = append(names, b.Name)
	}
	return names
}

// ErrNoBackendAvailable is returned when no surface backends are registered
// or available on the current system.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// hasTerminal reports whether stdout looks like an interactive terminal.
func hasTerminal() bool {
	if os.Getenv("TERM") == "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// DefaultNullLimit is the number of frames the "null" backend keeps unless
// Options.Custom["limit"] says otherwise.
const DefaultNullLimit = 1

func nullLimit(opts Options) int {
	if n, ok := opts.Custom["limit"].(int); ok && n > 0 {
		return n
	}
	return DefaultNullLimit
}

func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height, opts), nil
	}, nil)
	Register("terminal", 5, func(opts Options) (Surface, error) {
		return OpenTerminalSurface(opts)
	}, hasTerminal)
	Register("null", 1, func(opts Options) (Surface, error) {
		s := NewRecordingSurface(opts.Width, opts.Height)
		s.SetLimit(nullLimit(opts))
		return s, nil
	}, nil)
}
