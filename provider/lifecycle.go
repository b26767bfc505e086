package provider

import "context"

// Initializable is optionally implemented by providers registered with
// RegisterType that need setup after construction, such as configuring a
// codec. The registry calls Init once, before the provider is first returned.
type Initializable interface {
	Init(ctx context.Context) error
}
