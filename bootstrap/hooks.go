package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback run at startup or shutdown.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run in Start, after the provider is resolved.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop registers hooks that run in Shutdown, before telemetry is flushed.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
