package prometheus

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/gatekeeper/core/security"
)

// Config configures the observer.
type Config struct {
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"gatekeeper"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Namespace: "gatekeeper"}
}

// Observer implements security.Observer.
type Observer struct {
	decisions *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ security.Observer = (*Observer)(nil)

// NewObserver registers the security metrics with reg.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	return NewFromConfig(reg, DefaultConfig())
}

// NewFromConfig registers the security metrics with reg using cfg.
func NewFromConfig(reg prometheus.Registerer, cfg Config) (*Observer, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultConfig().Namespace
	}

	o := &Observer{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "security",
			Name:      "decisions_total",
			Help:      "Security decisions by flow, terminal state and client.",
		}, []string{"flow", "state", "client"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "security",
			Name:      "failures_total",
			Help:      "Decisions forced by a client, store or authorizer failure.",
		}, []string{"flow", "client"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "security",
			Name:      "decision_duration_seconds",
			Help:      "Latency of security decisions in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"flow", "state"}),
	}

	for _, c := range []prometheus.Collector{o.decisions, o.failures, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegister, err)
		}
	}
	return o, nil
}

// Observe records d.
func (o *Observer) Observe(_ context.Context, d security.Decision) {
	flow, state := string(d.Flow), string(d.State)
	o.decisions.WithLabelValues(flow, state, d.Client).Inc()
	o.duration.WithLabelValues(flow, state).Observe(d.Duration.Seconds())
	if d.Err != nil {
		o.failures.WithLabelValues(flow, d.Client).Inc()
	}
}
