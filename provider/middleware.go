package provider

import (
	"context"
	"reflect"
)

// Operation names used by middleware.
const (
	OpSerialize   = "serialize"
	OpDeserialize = "deserialize"
)

// Middleware wraps a Provider. The returned provider typically delegates to
// the wrapped provider while adding instrumentation.
type Middleware func(Provider) Provider

// Chain composes middlewares. The first middleware is outermost.
//
// Chain(a, b, c)(p) is equivalent to a(b(c(p))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Provider) Provider {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// Call describes one provider call as seen by an interceptor.
type Call struct {
	Provider string
	Op       string
	Type     reflect.Type
}

// invoker performs the wrapped call and reports the size of the text it
// produced or consumed.
type invoker func(ctx context.Context) (int, error)

// interceptor runs around every call of an intercepted provider.
type interceptor func(ctx context.Context, call Call, invoke invoker) error

// intercepted routes the whole Provider surface through one interceptor.
// The context-free methods run with context.Background().
type intercepted struct {
	inner  Provider
	around interceptor
}

func intercept(inner Provider, around interceptor) Provider {
	return &intercepted{inner: inner, around: around}
}

func (w *intercepted) Name() string        { return w.inner.Name() }
func (w *intercepted) ContentType() string { return w.inner.ContentType() }

// Unwrap returns the wrapped provider.
func (w *intercepted) Unwrap() Provider { return w.inner }

func (w *intercepted) Serialize(value any, typ reflect.Type) (string, error) {
	return w.SerializeContext(context.Background(), value, typ)
}

func (w *intercepted) Deserialize(data string, typ reflect.Type) (any, error) {
	return w.DeserializeContext(context.Background(), data, typ)
}

func (w *intercepted) SerializeContext(ctx context.Context, value any, typ reflect.Type) (string, error) {
	if typ == nil && value != nil {
		typ = reflect.TypeOf(value)
	}
	var out string
	err := w.around(ctx, Call{Provider: w.inner.Name(), Op: OpSerialize, Type: typ},
		func(ctx context.Context) (int, error) {
			var err error
			out, err = w.inner.SerializeContext(ctx, value, typ)
			return len(out), err
		})
	return out, err
}

func (w *intercepted) DeserializeContext(ctx context.Context, data string, typ reflect.Type) (any, error) {
	var out any
	err := w.around(ctx, Call{Provider: w.inner.Name(), Op: OpDeserialize, Type: typ},
		func(ctx context.Context) (int, error) {
			var err error
			out, err = w.inner.DeserializeContext(ctx, data, typ)
			return len(data), err
		})
	return out, err
}

func (c Call) typeName() string {
	if c.Type == nil {
		return ""
	}
	return c.Type.String()
}
