package edgelight

import (
	"context"
	"time"
)

// DefaultFrameRate is the reference tick rate of a Driver.
const DefaultFrameRate = 60

// Renderer is a drawing surface that receives frames.
type Renderer interface {
	// Size returns the current surface size in pixels. A zero or negative
	// size makes the frame empty.
	Size() (width, height int)
	// Render draws a frame, replacing the previous one.
	Render(f Frame) error
}

// Driver ticks an Animator at a steady rate and hands frames to a Renderer.
type Driver struct {
	anim     *Animator
	target   Renderer
	clock    Clock
	interval time.Duration
	onFrame  func(Frame)

	// drawn is true while the surface shows a non-empty frame.
	drawn bool
}

// NewDriver creates a driver for anim rendering onto target. It uses the
// animator's clock.
func NewDriver(anim *Animator, target Renderer, opts ...DriverOption) *Driver {
	d := &Driver{
		anim:     anim,
		target:   target,
		clock:    anim.clock,
		interval: time.Second / DefaultFrameRate,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Interval returns the time between ticks.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Run ticks until ctx is cancelled. Render errors are logged and do not
// stop the loop.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.Step(); err != nil {
				Logger().Warn("edgelight: render failed", "err", err)
			}
		}
	}
}

// Step performs a single tick. While idle it renders nothing except one
// empty frame to clear what the last run left on the surface.
func (d *Driver) Step() error {
	w, h := d.target.Size()
	frame := d.anim.TickAt(d.clock.Now(), Size{Width: float64(w), Height: float64(h)})

	if frame.Empty() && !d.drawn && !frame.Finished {
		return nil
	}
	d.drawn = !frame.Empty()

	if d.onFrame != nil {
		d.onFrame(frame)
	}
	if frame.Finished {
		Logger().Debug("edgelight: trail finished", "run", frame.Run)
	}
	return d.target.Render(frame)
}
