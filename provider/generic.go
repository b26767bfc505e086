package provider

import (
	"context"
	"fmt"
	"reflect"

	serrors "github.com/kbukum/serialization/errors"
)

// Serialize encodes value using the static type T as the descriptor.
func Serialize[T any](p Provider, value T) (string, error) {
	return p.Serialize(value, reflect.TypeFor[T]())
}

// Deserialize decodes data into a T.
func Deserialize[T any](p Provider, data string) (T, error) {
	v, err := p.Deserialize(data, reflect.TypeFor[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return assertType[T](p, v)
}

// SerializeAsync is Serialize run off the calling goroutine.
func SerializeAsync[T any](ctx context.Context, p Provider, value T) *Future[string] {
	return SerializeTypeAsync(ctx, p, value, reflect.TypeFor[T]())
}

// SerializeTypeAsync is the type-erased form of SerializeAsync. A value not
// assignable to typ fails before the call is started.
func SerializeTypeAsync(ctx context.Context, p Provider, value any, typ reflect.Type) *Future[string] {
	if !isNil(value) {
		if err := checkAssignable(value, typ); err != nil {
			return completedFuture("", error(err.WithDetail("provider", p.Name())))
		}
	}
	return goAsync(ctx, func(ctx context.Context) (string, error) {
		return p.SerializeContext(ctx, value, typ)
	})
}

// DeserializeAsync is Deserialize run off the calling goroutine. Empty or
// whitespace-only data yields an already completed future.
func DeserializeAsync[T any](ctx context.Context, p Provider, data string) *Future[T] {
	typ := reflect.TypeFor[T]()
	if err := checkInput(data, typ); err != nil {
		var zero T
		return completedFuture(zero, error(err.WithDetail("provider", p.Name())))
	}
	return goAsync(ctx, func(ctx context.Context) (T, error) {
		v, err := p.DeserializeContext(ctx, data, typ)
		if err != nil {
			var zero T
			return zero, err
		}
		return assertType[T](p, v)
	})
}

// DeserializeTypeAsync is the type-erased form of DeserializeAsync.
func DeserializeTypeAsync(ctx context.Context, p Provider, data string, typ reflect.Type) *Future[any] {
	if err := checkInput(data, typ); err != nil {
		return completedFuture[any](nil, err.WithDetail("provider", p.Name()))
	}
	return goAsync(ctx, func(ctx context.Context) (any, error) {
		return p.DeserializeContext(ctx, data, typ)
	})
}

func assertType[T any](p Provider, v any) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, serrors.Deserialization(
			fmt.Sprintf("%s returned %T, want %s", p.Name(), v, reflect.TypeFor[T]()), nil,
		).WithDetail("provider", p.Name())
	}
	return out, nil
}
