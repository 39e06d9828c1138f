package edgelight

import (
	"math"
	"sync"
	"time"
)

// Clock supplies the current time to an Animator.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic reading.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// TrailState is a snapshot of the current run.
type TrailState struct {
	// Run identifies the run; it increases with every Start.
	Run       uint64
	Color     Color
	StartedAt time.Time
	Duration  time.Duration
	Progress  float64
	FadeAlpha uint8
	Running   bool
}

// Instruction tells a surface to stroke one outline segment in a color.
type Instruction struct {
	Segment Segment
	Color   Color
}

// Frame is the rendering output of a single tick.
type Frame struct {
	// Run is the run that produced the frame; zero when idle.
	Run uint64
	// Progress is the decelerated progress in [0, 1].
	Progress float64
	// FadeAlpha is the pulse-modulated global alpha.
	FadeAlpha uint8
	// StrokeWidth is the stroke width to draw segments with.
	StrokeWidth float64
	// Instructions lists lit segments in perimeter order.
	Instructions []Instruction
	// Finished is set on the tick that completed the run.
	Finished bool
}

// Empty reports whether the frame draws nothing.
func (f Frame) Empty() bool {
	return len(f.Instructions) == 0
}

// Animator animates a light trail around a rounded-rectangle outline.
//
// It is a two-state machine (idle, running) advanced by explicit ticks;
// it owns no timers or goroutines. Start, Stop and Tick are serialized
// by an internal lock, so an Animator may be shared between the goroutine
// receiving notifications and the one driving frames.
type Animator struct {
	mu    sync.Mutex
	style Style
	clock Clock

	state TrailState
	runs  uint64

	// geom is rebuilt whenever the surface size changes.
	geom *Geometry
}

// NewAnimator creates an idle animator.
func NewAnimator(opts ...AnimatorOption) *Animator {
	o := defaultAnimatorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Animator{style: o.style, clock: o.clock}
}

// Start begins a new run with color c lasting d, stopping any run in
// progress first. A non-positive duration produces a run that finishes on
// its first tick.
func (a *Animator) Start(c Color, d time.Duration) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.Running {
		a.stopLocked("restarted")
	}
	a.runs++
	a.state = TrailState{
		Run:       a.runs,
		Color:     c,
		StartedAt: a.clock.Now(),
		Duration:  d,
		FadeAlpha: FadeAlpha(0),
		Running:   true,
	}
	Logger().Debug("edgelight: trail started", "run", a.runs, "color", c.String(), "duration", d)
	return a.runs
}

// Stop ends the current run immediately. Ticks after Stop returns produce
// empty frames until the next Start.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Running {
		a.stopLocked("stopped")
	}
}

func (a *Animator) stopLocked(reason string) {
	Logger().Debug("edgelight: trail "+reason, "run", a.state.Run)
	a.state.Running = false
	a.state.FadeAlpha = 0
}

// Running reports whether a run is in progress.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Running
}

// State returns a snapshot of the current run.
func (a *Animator) State() TrailState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// TickAt advances the run to the given wall time.
func (a *Animator) TickAt(now time.Time, size Size) Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tickLocked(now.Sub(a.state.StartedAt), size)
}

// Tick advances the run to elapsed time since Start and returns the lit
// segments for a surface of the given size.
func (a *Animator) Tick(elapsed time.Duration, size Size) Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tickLocked(elapsed, size)
}

func (a *Animator) tickLocked(elapsed time.Duration, size Size) Frame {
	st := &a.state
	if !st.Running {
		return Frame{}
	}

	t := 1.0
	if st.Duration > 0 {
		t = clamp01(float64(elapsed) / float64(st.Duration))
	}
	if t >= 1 {
		st.Progress = 1
		a.stopLocked("finished")
		return Frame{Run: st.Run, Progress: 1, Finished: true}
	}

	st.Progress = Decelerate(t)
	st.FadeAlpha = FadeAlpha(st.Progress)

	frame := Frame{Run: st.Run, Progress: st.Progress, FadeAlpha: st.FadeAlpha}
	geom := a.geometry(size)
	if geom == nil {
		return frame
	}
	frame.StrokeWidth = geom.StrokeWidth()
	frame.Instructions = litSegments(geom, st.Progress, a.style.TrailFraction, st.Color, st.FadeAlpha)
	return frame
}

// geometry returns the cached outline for size, rebuilding it on change.
func (a *Animator) geometry(size Size) *Geometry {
	if size.Empty() {
		return nil
	}
	if a.geom == nil || a.geom.Size() != size {
		a.geom = NewGeometry(size, a.style)
	}
	return a.geom
}

// litSegments computes the colored segments for one frame.
func litSegments(g *Geometry, progress, fraction float64, base Color, fade uint8) []Instruction {
	p := g.Perimeter()
	arc := TrailArc(progress, fraction, p)

	var out []Instruction
	for _, seg := range g.Segments() {
		cov := Coverage(seg.Start, seg.End, arc, p)
		alpha := math.Round(cov * float64(fade))
		if alpha <= 0 {
			continue
		}
		out = append(out, Instruction{
			Segment: seg,
			Color:   base.WithAlpha(clamp255(alpha)),
		})
	}
	return out
}
