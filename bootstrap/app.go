package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/serialization/config"
	"github.com/kbukum/serialization/logger"
	"github.com/kbukum/serialization/observability"
	"github.com/kbukum/serialization/provider"
)

// App composes the configured serialization provider for a service.
//
// NewApp registers the configured backend, wrapped in the configured
// middleware, as the first registration of Registry. Registrations the host
// adds afterwards override it.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.Registry.RegisterInstance(custom) // optional override
//	p, err := app.Start(ctx)
//	defer app.Shutdown(ctx)
type App[C Config] struct {
	Name     string
	Version  string
	Cfg      C
	Registry *provider.Registry
	Logger   *logger.Logger
	Summary  *Summary

	shutdownTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
	shutdowns       []func(context.Context) error
}

// New loads configuration for serviceName and creates an App from it.
func New(serviceName string, loaderOpts []config.LoaderOption, opts ...Option) (*App[*config.ServiceConfig], error) {
	cfg, err := config.Load(serviceName, loaderOpts...)
	if err != nil {
		return nil, err
	}
	return NewApp(cfg, opts...)
}

// NewApp creates an application from a typed config. It applies defaults,
// validates the config, initializes the logger and registers the configured
// backend. An unknown backend name fails here with INVALID_CONFIG.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Summary:         NewSummary(base.Name, base.Version),
		shutdownTimeout: 10 * time.Second,
	}
	if o.shutdownTimeout != nil {
		app.shutdownTimeout = *o.shutdownTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	catalogue := Backends()
	maps.Copy(catalogue, o.backends)
	backend, err := lookupBackend(catalogue, base.Serialization.Provider)
	if err != nil {
		return nil, err
	}

	mw, names, err := app.middleware(base, o)
	if err != nil {
		return nil, err
	}
	app.Summary.TrackMiddleware(names)

	app.Registry = provider.NewRegistry(
		provider.WithLogger(app.Logger.WithComponent("serialization.registry")),
	)
	scfg := base.Serialization
	app.Registry.RegisterFactory(func(rc provider.ResolveContext) (provider.Provider, error) {
		p, err := backend(scfg)
		if err != nil {
			return nil, err
		}
		return mw(p), nil
	})

	return app, nil
}

// middleware builds the chain selected by the serialization section.
func (a *App[C]) middleware(base *config.ServiceConfig, o *appOptions) (provider.Middleware, []string, error) {
	var chain []provider.Middleware
	var names []string

	if base.Serialization.Logging {
		chain = append(chain, provider.WithLogging(a.Logger.WithComponent("serialization")))
		names = append(names, "logging")
	}
	if base.Serialization.Metrics {
		metrics := o.metrics
		if metrics == nil {
			m, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
			if err != nil {
				return nil, nil, fmt.Errorf("creating serialization metrics: %w", err)
			}
			metrics = m
		}
		chain = append(chain, provider.WithMetrics(metrics))
		names = append(names, "metrics")
	}
	if base.Serialization.Tracing {
		chain = append(chain, provider.WithTracing(base.Name))
		names = append(names, "tracing")
	}
	return provider.Chain(chain...), names, nil
}

// Start initializes telemetry when enabled, resolves the active provider and
// runs OnStart hooks. Resolution errors surface here rather than at first use.
func (a *App[C]) Start(ctx context.Context) (provider.Provider, error) {
	start := time.Now()
	base := a.Cfg.GetServiceConfig()

	if base.Observability.Enabled {
		if err := a.initTelemetry(ctx, base); err != nil {
			return nil, fmt.Errorf("telemetry initialization failed: %w", err)
		}
	}

	p, err := a.Registry.Resolve()
	if err != nil {
		return nil, err
	}
	a.Summary.TrackProvider(p)
	a.Summary.TrackRegistrations(a.Registry.Registrations())

	if err := runHooks(ctx, a.onStart); err != nil {
		return nil, fmt.Errorf("onStart hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.DisplaySummary(a.Logger)
	return p, nil
}

func (a *App[C]) initTelemetry(ctx context.Context, base *config.ServiceConfig) error {
	obs := base.Observability

	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    base.Name,
		ServiceVersion: base.Version,
		Environment:    base.Environment,
		Endpoint:       obs.Endpoint,
		Insecure:       obs.Insecure,
		SampleRate:     obs.SampleRate,
	})
	if err != nil {
		return err
	}
	a.shutdowns = append(a.shutdowns, tp.Shutdown)

	mp, err := observability.InitMeter(ctx, observability.MeterConfig{
		ServiceName:    base.Name,
		ServiceVersion: base.Version,
		Environment:    base.Environment,
		Endpoint:       obs.Endpoint,
		Insecure:       obs.Insecure,
		Interval:       obs.Interval,
	})
	if err != nil {
		return err
	}
	a.shutdowns = append(a.shutdowns, mp.Shutdown)

	a.Summary.TrackTelemetry(obs.Endpoint)
	return nil
}

// Provider resolves the active provider.
func (a *App[C]) Provider() (provider.Provider, error) {
	return a.Registry.Resolve()
}

// RunTask starts the app, runs task with the active provider and shuts down.
// SIGINT and SIGTERM cancel the task context.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context, p provider.Provider) error) error {
	taskCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := a.Start(taskCtx)
	if err != nil {
		return errors.Join(err, a.Shutdown(context.Background()))
	}

	taskErr := task(taskCtx, p)
	if stopErr := a.Shutdown(context.Background()); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Shutdown runs OnStop hooks, then flushes and stops telemetry exporters in
// reverse order, bounded by the shutdown timeout.
func (a *App[C]) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.MergeWithError(nil, err))
		errs = append(errs, err)
	}
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			a.Logger.Warn("telemetry shutdown error", logger.MergeWithError(nil, err))
			errs = append(errs, err)
		}
	}
	a.shutdowns = nil
	return errors.Join(errs...)
}
