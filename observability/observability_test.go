package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordOperation(ctx, "json", "serialize", "ok", 2*time.Millisecond)
	metrics.RecordPayload(ctx, "json", "serialize", 42)
	metrics.RecordError(ctx, "json", "deserialize", "DESERIALIZATION_FAILED")
}

func TestMetrics_Recorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	metrics.RecordOperation(ctx, "yaml", "serialize", "ok", time.Millisecond)
	metrics.RecordOperation(ctx, "yaml", "deserialize", "error", time.Millisecond)
	metrics.RecordError(ctx, "yaml", "deserialize", "DESERIALIZATION_FAILED")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}

	if totals["serialization.operation.total"] != 2 {
		t.Errorf("expected 2 operations, got %d", totals["serialization.operation.total"])
	}
	if totals["serialization.error.total"] != 1 {
		t.Errorf("expected 1 error, got %d", totals["serialization.error.total"])
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-operation")
	defer span.End()

	if span == nil {
		t.Fatal("expected non-nil span")
	}
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestSetSpanAttribute(t *testing.T) {
	recorder := withRecorder(t)

	ctx, span := StartSpan(context.Background(), "test-attrs")
	SetSpanAttribute(ctx, AttrProvider, "json")
	SetSpanAttribute(ctx, AttrPayloadBytes, 12)
	SetSpanAttribute(ctx, "ratio", 0.5)
	SetSpanAttribute(ctx, "strict", true)
	SetSpanAttribute(ctx, "unsupported", struct{}{})
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrProvider].AsString() != "json" {
		t.Errorf("expected provider attribute, got %v", attrs[AttrProvider])
	}
	if attrs[AttrPayloadBytes].AsInt64() != 12 {
		t.Errorf("expected payload attribute, got %v", attrs[AttrPayloadBytes])
	}
	if _, ok := attrs["unsupported"]; ok {
		t.Error("unsupported attribute types should be ignored")
	}
}

func TestSetSpanError(t *testing.T) {
	recorder := withRecorder(t)

	ctx, span := StartSpan(context.Background(), "test-error")
	SetSpanError(ctx, fmt.Errorf("decode failed"))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", ended[0].Status().Code)
	}
	if len(ended[0].Events()) == 0 {
		t.Error("expected an exception event")
	}
}

func TestSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span"))
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("sampler(%v) = %s, want %s", tc.rate, got, tc.want)
		}
	}
	if got := sampler(0.5).Description(); got == "AlwaysOnSampler" || got == "AlwaysOffSampler" {
		t.Errorf("expected ratio sampler, got %s", got)
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("svc", "1.2.3", "staging")
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}
	v, ok := res.Set().Value("service.name")
	if !ok || v.AsString() != "svc" {
		t.Errorf("expected service.name=svc, got %v", v)
	}
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	tp, err := InitTracer(context.Background(), DefaultTracerConfig("test-service"))
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(ctx)
}
