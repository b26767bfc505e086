// Package provider defines the serialization provider contract and the
// registry that selects the active provider.
//
// A Provider converts values to and from text in one encoding. Backends are
// thin Codec implementations over third-party libraries; New adapts a Codec
// into a Provider with uniform input validation, null handling and error
// wrapping:
//
//	p := provider.New("json", jsoncodec.New())
//	text, err := provider.Serialize(p, order)
//	back, err := provider.Deserialize[Order](p, text)
//
// Asynchronous forms return a Future and honour context cancellation:
//
//	f := provider.DeserializeAsync[Order](ctx, p, text)
//	order, err := f.Await(ctx)
//
// # Registry
//
// A Registry holds registrations in order. Resolve returns the provider of
// the most recent one, building it at most once:
//
//	reg := provider.NewRegistry()
//	reg.RegisterInstance(p)                       // default
//	provider.RegisterType[*CustomProvider](reg)   // overrides the default
//	active, err := reg.Resolve()
//
// # Middleware
//
// Middleware wraps a Provider. Use Chain to compose several:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging(log),
//	    provider.WithMetrics(metrics),
//	    provider.WithTracing("my-service"),
//	)(p)
package provider
