package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
)

// Metric names.
const (
	MetricRenderedTotal  = "errors.rendered.total"
	MetricRenderDuration = "errors.render.duration"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for local development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the global OpenTelemetry meter provider.
// The returned provider should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// RenderMetrics holds the instruments recorded for every rendered error.
type RenderMetrics struct {
	renderedTotal  metric.Int64Counter
	renderDuration metric.Float64Histogram
}

// NewRenderMetrics creates the render instruments on meter.
func NewRenderMetrics(meter metric.Meter) (*RenderMetrics, error) {
	renderedTotal, err := meter.Int64Counter(MetricRenderedTotal,
		metric.WithDescription("Total number of service errors rendered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRenderedTotal, err)
	}

	renderDuration, err := meter.Float64Histogram(MetricRenderDuration,
		metric.WithDescription("Time spent rendering service errors"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRenderDuration, err)
	}

	return &RenderMetrics{
		renderedTotal:  renderedTotal,
		renderDuration: renderDuration,
	}, nil
}

// RecordRender records one rendered error.
func (m *RenderMetrics) RecordRender(ctx context.Context, e *errors.ServiceError, contentType string, duration time.Duration) {
	m.renderedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("name", e.Name()),
		attribute.String("code", strconv.FormatUint(uint64(e.Code()), 10)),
		attribute.Int("status", errors.StatusCode(e.HTTPStatus())),
		attribute.String("content_type", contentType),
	))
	m.renderDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("content_type", contentType),
	))
}

// instrumentedRenderer counts every render of the wrapped renderer.
type instrumentedRenderer struct {
	next    errors.Renderer
	metrics *RenderMetrics
}

// InstrumentRenderer wraps r so that each render is recorded in metrics.
// A nil metrics returns r unchanged.
func InstrumentRenderer(r errors.Renderer, metrics *RenderMetrics) errors.Renderer {
	if metrics == nil || r == nil {
		return r
	}
	return instrumentedRenderer{next: r, metrics: metrics}
}

// Render implements errors.Renderer.
func (ir instrumentedRenderer) Render(e *errors.ServiceError) (string, string) {
	start := time.Now()
	body, contentType := ir.next.Render(e)
	ir.metrics.RecordRender(context.Background(), e, contentType, time.Since(start))
	return body, contentType
}
