// Package observability provides OpenTelemetry tracing and metrics setup and
// the instruments recorded by the provider middleware.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "orders.json.serialize")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
//	metrics.RecordOperation(ctx, "json", "serialize", "ok", duration)
package observability
