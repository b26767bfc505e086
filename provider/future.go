package provider

import (
	"context"
	"sync"
)

// Future is the pending result of an asynchronous provider call.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// completedFuture returns a future that already holds value and err.
func completedFuture[T any](value T, err error) *Future[T] {
	f := newFuture[T]()
	f.complete(value, err)
	return f
}

func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value, f.err = value, err
		close(f.done)
	})
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the result is available or ctx is done. Giving up on
// ctx does not cancel the underlying call; its result stays in the future.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the result is available.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.value, f.err
}

type outcome[T any] struct {
	value T
	err   error
}

// goAsync runs call in a new goroutine. The future completes with the call's
// result, or with ctx.Err() if ctx ends first. The result channel is buffered
// so an abandoned call can still deliver and exit.
func goAsync[T any](ctx context.Context, call func(context.Context) (T, error)) *Future[T] {
	if err := ctx.Err(); err != nil {
		var zero T
		return completedFuture(zero, err)
	}

	f := newFuture[T]()
	results := make(chan outcome[T], 1)
	go func() {
		v, err := call(ctx)
		results <- outcome[T]{value: v, err: err}
	}()
	go func() {
		r := awaitOutcome(ctx, results)
		f.complete(r.value, r.err)
	}()
	return f
}

// awaitOutcome waits for the call's outcome or ctx. An outcome that has
// already arrived wins over a ctx that ended at the same time.
func awaitOutcome[T any](ctx context.Context, results <-chan outcome[T]) outcome[T] {
	select {
	case r := <-results:
		return r
	case <-ctx.Done():
		select {
		case r := <-results:
			return r
		default:
			return outcome[T]{err: ctx.Err()}
		}
	}
}
