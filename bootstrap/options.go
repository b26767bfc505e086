package bootstrap

import (
	"time"

	"github.com/kbukum/serialization/logger"
	"github.com/kbukum/serialization/observability"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	metrics         *observability.Metrics
	backends        map[string]Backend
	shutdownTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{backends: make(map[string]Backend)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithMetrics sets the instruments used when serialization.metrics is on.
// If not set, they are created on the global meter.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *appOptions) {
		o.metrics = m
	}
}

// WithBackend adds or replaces a catalogue entry, making name selectable
// through serialization.provider.
func WithBackend(name string, b Backend) Option {
	return func(o *appOptions) {
		o.backends[name] = b
	}
}

// WithShutdownTimeout bounds the time Shutdown waits for exporters to flush.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.shutdownTimeout = &d
	}
}
