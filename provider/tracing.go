package provider

import (
	"context"

	"github.com/kbukum/serialization/observability"
)

// WithTracing returns a Middleware that wraps each call in an OpenTelemetry
// span named "{serviceName}.{providerName}.{operation}".
func WithTracing(serviceName string) Middleware {
	return func(inner Provider) Provider {
		contentType := inner.ContentType()
		return intercept(inner, func(ctx context.Context, call Call, invoke invoker) error {
			ctx, span := observability.StartSpan(ctx, serviceName+"."+call.Provider+"."+call.Op)
			defer span.End()

			observability.SetSpanAttribute(ctx, observability.AttrServiceName, serviceName)
			observability.SetSpanAttribute(ctx, observability.AttrProvider, call.Provider)
			observability.SetSpanAttribute(ctx, observability.AttrOperation, call.Op)
			observability.SetSpanAttribute(ctx, observability.AttrContentType, contentType)
			if name := call.typeName(); name != "" {
				observability.SetSpanAttribute(ctx, observability.AttrType, name)
			}

			size, err := invoke(ctx)
			if err != nil {
				observability.SetSpanAttribute(ctx, observability.AttrErrorCode, errorCode(err))
				observability.SetSpanError(ctx, err)
				return err
			}
			observability.SetSpanAttribute(ctx, observability.AttrPayloadBytes, size)
			return nil
		})
	}
}
