package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/svcerrors/config"
	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
	"github.com/kbukum/svcerrors/observability"
	"github.com/kbukum/svcerrors/renderers"
)

// App represents a service with uniform lifecycle management.
// The type parameter C is the config type, which must satisfy the Config interface.
// Any struct embedding config.ServiceConfig automatically satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&myConfig)
//	app.OnStart(func(ctx context.Context) error {
//	    return srv.Start(ctx)
//	})
//	app.Run(context.Background())
type App[C Config] struct {
	Name     string
	Version  string
	Cfg      C
	Logger   *logger.Logger
	Registry *errors.Registry
	// Renderer is the default renderer built from the errors config. It is
	// the one in effect only when Installed is true.
	Renderer  errors.Renderer
	Installed bool
	Summary   *Summary

	gracefulTimeout time.Duration

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, initializes the logger and
// installs the configured default renderer into the registry. With telemetry
// enabled the renderer is instrumented with OTLP-exported metrics. The default
// slot is set once per registry; when another writer got there first the
// existing renderer is kept and a warning is logged.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Registry:        errors.DefaultRegistry(),
		gracefulTimeout: 15 * time.Second,
	}

	o := resolveOptions(opts)
	if o.registry != nil {
		app.Registry = o.registry
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	// Logger: use custom if provided, otherwise init from config.
	if o.logger != nil {
		app.Logger = o.logger
		// library packages log through the supplied logger too
		logger.RegisterComponents(app.Logger)
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(base.Name, base.Version)

	// resolved before telemetry so a bad renderer leaves no providers running
	r, err := NewRenderer(&base.Errors)
	if err != nil {
		return nil, fmt.Errorf("errors renderer: %w", err)
	}

	metrics := o.metrics
	if metrics == nil && base.Telemetry.Enabled {
		m, err := app.initTelemetry(context.Background(), base)
		if err != nil {
			return nil, fmt.Errorf("telemetry: %w", err)
		}
		metrics = m
	}

	app.Renderer = observability.InstrumentRenderer(r, metrics)
	app.Installed = app.Registry.SetDefault(app.Renderer)
	if !app.Installed {
		app.Logger.Warn("Default renderer already installed, keeping existing", logger.Fields(
			"renderer", base.Errors.Renderer,
		))
	}
	app.Summary.SetRenderer(base.Errors.Renderer, app.Installed)
	return app, nil
}

// NewRenderer builds the renderer selected by cfg.
func NewRenderer(cfg *config.ErrorsConfig) (errors.Renderer, error) {
	r, err := renderers.ByName(cfg.Renderer)
	if err != nil {
		return nil, err
	}
	if _, ok := r.(renderers.Problem); ok {
		return renderers.Problem{TypeBase: cfg.ProblemTypeBase}, nil
	}
	return r, nil
}

// Run executes the full application lifecycle for long-running services:
// OnStart hooks, OnReady hooks, block on signal, OnStop hooks.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the full bootstrap lifecycle.
// Unlike Run, it does not block on shutdown signals. It runs the task
// function and shuts down when the task completes or the context is
// canceled (for example via SIGINT/SIGTERM).
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}

	return taskErr
}

// startup runs the start and ready hooks shared by Run and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.DisplaySummary(os.Stdout)
	return nil
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", logger.Fields(
			"signal", sig.String(),
		))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs the OnStop hooks within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields(
		"timeout", a.gracefulTimeout.String(),
	))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		return err
	}

	a.Logger.Info("Application shutdown complete")
	return nil
}
