package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/serialization/logger"
	"github.com/kbukum/serialization/version"
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

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a periodic OTLP meter provider as the global provider.
// The caller owns the returned provider and must shut it down.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
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
	return otel.Meter(name, metric.WithInstrumentationVersion(version.Get().Version))
}

// Metrics holds the instruments recorded around provider calls.
type Metrics struct {
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	payloadSize       metric.Int64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operationTotal, err := meter.Int64Counter("serialization.operation.total",
		metric.WithDescription("Total number of serialize and deserialize calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating serialization.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("serialization.operation.duration",
		metric.WithDescription("Duration of serialize and deserialize calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating serialization.operation.duration histogram: %w", err)
	}

	payloadSize, err := meter.Int64Histogram("serialization.payload.size",
		metric.WithDescription("Size of encoded text produced or consumed"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating serialization.payload.size histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("serialization.error.total",
		metric.WithDescription("Total failed calls by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating serialization.error.total counter: %w", err)
	}

	return &Metrics{
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		payloadSize:       payloadSize,
		errorTotal:        errorTotal,
	}, nil
}

// RecordOperation records one provider call.
func (m *Metrics) RecordOperation(ctx context.Context, provider, operation, status string, duration time.Duration) {
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))
}

// RecordPayload records the size in bytes of the text a call produced or consumed.
func (m *Metrics) RecordPayload(ctx context.Context, provider, operation string, size int) {
	m.payloadSize.Record(ctx, int64(size), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))
}

// RecordError records a failed call by error code.
func (m *Metrics) RecordError(ctx context.Context, provider, operation, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("code", code),
	))
}
