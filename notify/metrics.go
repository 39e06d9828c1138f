package notify

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/edgelight"
)

// Outcome labels for the notifications counter.
const (
	OutcomeShown          = "shown"
	OutcomeIgnored        = "ignored"
	OutcomeBelowThreshold = "below_threshold"
	OutcomeInvalid        = "invalid"
)

// Metrics holds the dispatcher's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	notifications *prometheus.CounterVec
	sources       *prometheus.CounterVec
	frames        prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgelight_notifications_total",
				Help: "Notifications received, by dispatch outcome.",
			},
			[]string{"outcome"},
		),
		sources: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgelight_color_source_total",
				Help: "Resolved trail colors, by resolution stage.",
			},
			[]string{"source"},
		),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edgelight_frames_total",
			Help: "Frames handed to the drawing surface.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.notifications, m.sources, m.frames)
	}
	return m
}

func (m *Metrics) observeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeSource(s edgelight.Source) {
	if m == nil {
		return
	}
	m.sources.WithLabelValues(s.String()).Inc()
}

// ObserveFrame counts a rendered frame. It matches the signature expected
// by edgelight.WithFrameHook.
func (m *Metrics) ObserveFrame(edgelight.Frame) {
	if m == nil {
		return
	}
	m.frames.Inc()
}
