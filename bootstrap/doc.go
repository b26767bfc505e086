// Package bootstrap composes the serialization provider a service uses from
// its configuration.
//
// It initializes the logger, picks a backend from the catalogue by
// serialization.provider, wraps it in the configured middleware and registers
// it as the default in a provider.Registry. Telemetry exporters start when
// observability.enabled is set.
//
// # Quick Start
//
//	app, err := bootstrap.New("orders", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.RunTask(ctx, func(ctx context.Context, p provider.Provider) error {
//	    text, err := provider.Serialize(p, order)
//	    ...
//	})
//
// Hosts may register their own provider on app.Registry before Start; the
// most recent registration wins.
package bootstrap
