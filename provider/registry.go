package provider

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	serrors "github.com/kbukum/serialization/errors"
	"github.com/kbukum/serialization/logger"
)

// Kind is how a registration produces its provider.
type Kind int

const (
	KindType     Kind = iota // constructed from a registered type
	KindInstance             // pre-built instance
	KindFactory              // built by a FactoryFunc
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindInstance:
		return "instance"
	case KindFactory:
		return "factory"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ResolveContext is handed to factories when their registration is first resolved.
type ResolveContext struct {
	Context  context.Context
	Logger   *logger.Logger
	Registry *Registry
}

// FactoryFunc builds a provider. It runs at most once per successful
// registration; a failed call is retried on the next Resolve.
type FactoryFunc func(rc ResolveContext) (Provider, error)

// RegistrationInfo describes a registration for introspection.
type RegistrationInfo struct {
	Kind        Kind
	Name        string
	Constructed bool
	// Active is true for the registration Resolve materializes.
	Active bool
}

type registration struct {
	kind      Kind
	name      string
	construct FactoryFunc

	mu       sync.Mutex
	ready    atomic.Bool
	instance Provider
}

func (e *registration) resolve(rc ResolveContext) (Provider, bool, error) {
	if e.ready.Load() {
		return e.instance, false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready.Load() {
		return e.instance, false, nil
	}

	p, err := e.construct(rc)
	if err != nil {
		return nil, false, err
	}
	if isNil(p) {
		return nil, false, errors.New("constructor returned a nil provider")
	}
	e.instance = p
	e.ready.Store(true)
	return p, true, nil
}

// Registry selects the active provider. Registrations are appended and the
// most recent one wins; earlier ones stay listed but are never resolved.
// Each registration is materialized at most once, even under concurrent
// first resolution.
type Registry struct {
	mu      sync.RWMutex
	entries []*registration
	log     *logger.Logger
	ctx     context.Context
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger. It is also passed to factories.
func WithLogger(log *logger.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithContext sets the context passed to factories and Initializable.Init.
func WithContext(ctx context.Context) RegistryOption {
	return func(r *Registry) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		log: logger.Get("serialization.registry"),
		ctx: context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterType registers P to be constructed on first resolution: pointer
// types get a freshly allocated element, other types their zero value.
// If the result implements Initializable, Init runs before it is cached.
func RegisterType[P Provider](r *Registry) {
	typ := reflect.TypeFor[P]()
	r.add(&registration{
		kind: KindType,
		name: typ.String(),
		construct: func(rc ResolveContext) (Provider, error) {
			return constructType(rc.Context, typ)
		},
	})
}

// RegisterInstance registers p itself; every resolve returns the same value.
// A nil p is ignored.
func (r *Registry) RegisterInstance(p Provider) {
	if isNil(p) {
		r.log.Warn("ignoring nil provider instance")
		return
	}
	e := &registration{kind: KindInstance, name: p.Name(), instance: p}
	e.ready.Store(true)
	r.add(e)
}

// RegisterFactory registers f to build the provider on first resolution.
// A nil f is ignored.
func (r *Registry) RegisterFactory(f FactoryFunc) {
	if f == nil {
		r.log.Warn("ignoring nil provider factory")
		return
	}
	r.add(&registration{kind: KindFactory, name: "factory", construct: f})
}

func (r *Registry) add(e *registration) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	n := len(r.entries)
	r.mu.Unlock()

	r.log.Debug("provider registered", logger.Fields(
		"kind", e.kind.String(),
		logger.FieldProvider, e.name,
		"registrations", n,
	))
}

// Resolve returns the provider of the most recent registration, building it
// on first use. It fails with PROVIDER_NOT_REGISTERED on an empty registry
// and PROVIDER_CONSTRUCTION_FAILED when the type or factory fails.
func (r *Registry) Resolve() (Provider, error) {
	r.mu.RLock()
	if len(r.entries) == 0 {
		r.mu.RUnlock()
		return nil, serrors.ProviderNotRegistered()
	}
	e := r.entries[len(r.entries)-1]
	r.mu.RUnlock()

	p, built, err := e.resolve(ResolveContext{Context: r.ctx, Logger: r.log, Registry: r})
	if err != nil {
		r.log.Error("provider construction failed", logger.MergeWithError(logger.Fields(
			"kind", e.kind.String(),
			logger.FieldProvider, e.name,
		), err))
		return nil, serrors.ProviderConstruction(e.kind.String(), err).WithDetail("name", e.name)
	}
	if built {
		r.log.Info("provider constructed", logger.Fields(
			"kind", e.kind.String(),
			logger.FieldProvider, p.Name(),
			logger.FieldContentType, p.ContentType(),
		))
	}
	return p, nil
}

// MustResolve is Resolve that panics on error.
func (r *Registry) MustResolve() Provider {
	p, err := r.Resolve()
	if err != nil {
		panic(err)
	}
	return p
}

// Registrations lists registrations in the order they were made.
func (r *Registry) Registrations() []RegistrationInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]RegistrationInfo, len(r.entries))
	for i, e := range r.entries {
		infos[i] = RegistrationInfo{
			Kind:        e.kind,
			Name:        e.name,
			Constructed: e.ready.Load(),
			Active:      i == len(r.entries)-1,
		}
	}
	return infos
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func constructType(ctx context.Context, typ reflect.Type) (Provider, error) {
	var v reflect.Value
	switch typ.Kind() {
	case reflect.Pointer:
		v = reflect.New(typ.Elem())
	case reflect.Interface:
		return nil, fmt.Errorf("cannot construct interface type %s", typ)
	default:
		v = reflect.New(typ).Elem()
	}

	p, ok := v.Interface().(Provider)
	if !ok {
		return nil, fmt.Errorf("%s does not implement Provider", typ)
	}
	if init, ok := p.(Initializable); ok {
		if err := init.Init(ctx); err != nil {
			return nil, fmt.Errorf("initializing %s: %w", typ, err)
		}
	}
	return p, nil
}
