package provider

import (
	"context"
	"time"

	"github.com/kbukum/serialization/logger"
)

// WithLogging returns a Middleware that logs each call with provider name,
// operation, type and duration. Failures log at error level, successes at debug.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Provider) Provider {
		return intercept(inner, func(ctx context.Context, call Call, invoke invoker) error {
			start := time.Now()
			size, err := invoke(ctx)

			fields := logger.DurationFields(call.Op, time.Since(start))
			fields[logger.FieldProvider] = call.Provider
			fields[logger.FieldType] = call.typeName()

			l := log.WithContext(ctx)
			if err != nil {
				l.Error("provider call failed", logger.MergeWithError(fields, err))
			} else {
				fields["bytes"] = size
				l.Debug("provider call ok", fields)
			}
			return err
		})
	}
}
