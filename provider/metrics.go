package provider

import (
	"context"
	"errors"
	"time"

	serrors "github.com/kbukum/serialization/errors"
	"github.com/kbukum/serialization/observability"
)

// WithMetrics returns a Middleware that records call count, duration,
// payload size and errors on the given instruments.
func WithMetrics(metrics *observability.Metrics) Middleware {
	return func(inner Provider) Provider {
		return intercept(inner, func(ctx context.Context, call Call, invoke invoker) error {
			start := time.Now()
			size, err := invoke(ctx)
			duration := time.Since(start)

			status := "ok"
			if err != nil {
				status = "error"
				metrics.RecordError(ctx, call.Provider, call.Op, errorCode(err))
			} else {
				metrics.RecordPayload(ctx, call.Provider, call.Op, size)
			}
			metrics.RecordOperation(ctx, call.Provider, call.Op, status, duration)
			return err
		})
	}
}

// errorCode classifies err for metric and span attributes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, context.DeadlineExceeded):
		return "DEADLINE_EXCEEDED"
	}
	if code := serrors.CodeOf(err); code != "" {
		return string(code)
	}
	return "UNKNOWN"
}
