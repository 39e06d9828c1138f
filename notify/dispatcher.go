package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/edgelight"
	"github.com/gogpu/edgelight/internal/cache"
)

// DefaultDuration is the length of a run started by a notification.
const DefaultDuration = 2 * time.Second

// ColorResolver picks the trail color for a notification.
// *edgelight.Resolver implements it.
type ColorResolver interface {
	Resolve(sig edgelight.Signals) edgelight.Resolution
}

// Starter starts a trail run. *edgelight.Animator implements it.
type Starter interface {
	Start(c edgelight.Color, d time.Duration) uint64
}

// Result describes what Dispatch did with a notification.
type Result struct {
	// Outcome is one of the Outcome constants.
	Outcome string
	// Resolution is the resolved color; zero unless the trail was shown.
	Resolution edgelight.Resolution
	// Run is the animator run id; zero unless the trail was shown.
	Run uint64
}

// Shown reports whether the notification started a run.
func (r Result) Shown() bool {
	return r.Outcome == OutcomeShown
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDuration sets the default run duration.
func WithDuration(d time.Duration) Option {
	return func(dp *Dispatcher) {
		if d > 0 {
			dp.duration = d
		}
	}
}

// WithThreshold sets the minimum importance that lights the edge.
func WithThreshold(importance int) Option {
	return func(dp *Dispatcher) {
		dp.threshold = importance
	}
}

// WithIgnore adds packages whose notifications are dropped, such as the
// host application's own.
func WithIgnore(packages ...string) Option {
	return func(dp *Dispatcher) {
		for _, p := range packages {
			dp.ignore[p] = struct{}{}
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(dp *Dispatcher) {
		dp.metrics = m
	}
}

// WithResolutionCache remembers up to size resolved colors, keyed by
// package, declared color and icon digest. Notifications carrying an icon
// without a digest always resolve afresh.
func WithResolutionCache(size int) Option {
	return func(dp *Dispatcher) {
		if size > 0 {
			dp.cache = cache.New[resolutionKey, edgelight.Resolution](size)
		}
	}
}

// WithLogger sets the logger. By default the edgelight package logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(dp *Dispatcher) {
		dp.logger = l
	}
}

// Dispatcher filters notifications and starts trail runs for the ones
// that pass. It is safe for concurrent use.
type Dispatcher struct {
	resolver  ColorResolver
	anim      Starter
	duration  time.Duration
	threshold int
	ignore    map[string]struct{}
	metrics   *Metrics
	logger    *slog.Logger
	cache     *cache.Cache[resolutionKey, edgelight.Resolution]

	// mu serializes resolve-and-start so runs are started in arrival order.
	mu sync.Mutex
}

// NewDispatcher creates a dispatcher that resolves colors with r and
// starts runs on a.
func NewDispatcher(r ColorResolver, a Starter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resolver:  r,
		anim:      a,
		duration:  DefaultDuration,
		threshold: PriorityDefault,
		ignore:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles one notification. The returned error is non-nil only
// when ctx is done or the notification is invalid; filtered notifications
// are reported through Result.Outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	log := d.log()

	if n.Package == "" {
		d.metrics.observeOutcome(OutcomeInvalid)
		return Result{Outcome: OutcomeInvalid}, ErrMissingPackage
	}
	if _, skip := d.ignore[n.Package]; skip {
		d.metrics.observeOutcome(OutcomeIgnored)
		log.Debug("edgelight: notification ignored", "package", n.Package)
		return Result{Outcome: OutcomeIgnored}, nil
	}
	if n.Importance < d.threshold {
		d.metrics.observeOutcome(OutcomeBelowThreshold)
		log.Debug("edgelight: notification below threshold",
			"package", n.Package, "importance", n.Importance, "threshold", d.threshold)
		return Result{Outcome: OutcomeBelowThreshold}, nil
	}

	dur := d.duration
	if n.Duration > 0 {
		dur = n.Duration
	}

	d.mu.Lock()
	res := d.resolve(n)
	run := d.anim.Start(res.Color, dur)
	d.mu.Unlock()

	d.metrics.observeOutcome(OutcomeShown)
	d.metrics.observeSource(res.Source)
	log.Info("edgelight: notification accepted",
		"package", n.Package,
		"title", n.Title,
		"color", res.Color.String(),
		"source", res.Source.String(),
		"run", run,
	)
	return Result{Outcome: OutcomeShown, Resolution: res, Run: run}, nil
}

type resolutionKey struct {
	pkg      string
	declared edgelight.Color
	icon     uint64
}

func (d *Dispatcher) resolve(n Notification) edgelight.Resolution {
	if d.cache == nil || (n.Icon != nil && n.IconDigest == 0) {
		return d.resolver.Resolve(n.Signals())
	}
	key := resolutionKey{pkg: n.Package, declared: n.Color, icon: n.IconDigest}
	return d.cache.GetOrCreate(key, func() edgelight.Resolution {
		return d.resolver.Resolve(n.Signals())
	})
}

// CacheStats returns the resolution cache statistics; zero without a cache.
func (d *Dispatcher) CacheStats() cache.Stats {
	if d.cache == nil {
		return cache.Stats{}
	}
	return d.cache.Stats()
}

func (d *Dispatcher) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return edgelight.Logger()
}
