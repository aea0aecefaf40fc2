package bootstrap

import (
	"time"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
	"github.com/kbukum/svcerrors/observability"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	registry        *errors.Registry
	metrics         *observability.RenderMetrics
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is auto-initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithRegistry installs the default renderer into reg instead of the
// process-wide registry.
func WithRegistry(reg *errors.Registry) Option {
	return func(o *appOptions) {
		o.registry = reg
	}
}

// WithRenderMetrics records every render done by the default renderer. It
// replaces the metrics the telemetry config would otherwise set up.
func WithRenderMetrics(m *observability.RenderMetrics) Option {
	return func(o *appOptions) {
		o.metrics = m
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}
