package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/svcerrors/config"
	"github.com/kbukum/svcerrors/logger"
	"github.com/kbukum/svcerrors/observability"
)

const instrumentationName = "github.com/kbukum/svcerrors"

// initTelemetry starts the OTLP tracer and meter providers described by the
// telemetry config and returns the render metrics recorded on the meter.
// Shutting the providers down is registered as OnStop hooks.
func (a *App[C]) initTelemetry(ctx context.Context, base *config.ServiceConfig) (*observability.RenderMetrics, error) {
	tel := base.Telemetry

	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{
		ServiceName:    base.Name,
		ServiceVersion: base.Version,
		Environment:    base.Environment,
		Endpoint:       tel.Endpoint,
		Insecure:       tel.Insecure,
		SampleRate:     tel.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}

	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    base.Name,
		ServiceVersion: base.Version,
		Environment:    base.Environment,
		Endpoint:       tel.Endpoint,
		Insecure:       tel.Insecure,
		Interval:       time.Duration(tel.MetricInterval) * time.Second,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("meter: %w", err)
	}

	metrics, err := observability.NewRenderMetrics(mp.Meter(instrumentationName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, err
	}

	// shutdown errors are logged only
	a.OnStop(func(ctx context.Context) error {
		if err := mp.Shutdown(ctx); err != nil {
			a.Logger.Warn("Meter shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
		if err := tp.Shutdown(ctx); err != nil {
			a.Logger.Warn("Tracer shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
		return nil
	})

	a.Summary.TrackInfrastructure("otlp", "telemetry", tel.Endpoint, 0, true)
	return metrics, nil
}
