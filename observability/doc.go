// Package observability wires OpenTelemetry tracing and metrics into error
// rendering.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{...})
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "orders.create")
//	defer span.End()
//	if se, ok := errors.AsServiceError(err); ok {
//		observability.RecordError(span, se)
//	}
//
// Metrics:
//
//	metrics, err := observability.NewRenderMetrics(observability.Meter("orders-api"))
//	errors.SetDefaultRenderer(observability.InstrumentRenderer(errors.JSONRenderer{}, metrics))
package observability
