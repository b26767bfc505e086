package provider

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"

	serrors "github.com/kbukum/serialization/errors"
)

// DefaultNullLiteral is the text a provider produces for a nil value when its
// codec does not declare its own literal.
const DefaultNullLiteral = "null"

// Provider converts values to and from text in a single encoding.
//
// The type descriptor passed to Serialize may be nil, in which case it is
// taken from the value. Deserialize returns a value of exactly typ.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name identifies the backend, e.g. "json".
	Name() string
	// ContentType is the media type of the produced text.
	ContentType() string
	Serialize(value any, typ reflect.Type) (string, error)
	Deserialize(data string, typ reflect.Type) (any, error)
	SerializeContext(ctx context.Context, value any, typ reflect.Type) (string, error)
	DeserializeContext(ctx context.Context, data string, typ reflect.Type) (any, error)
}

// Codec is the seam to a third-party encoding library. Unmarshal receives a
// non-nil pointer to a value of the requested type.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// NullCodec is implemented by codecs whose encoding spells null differently
// from DefaultNullLiteral.
type NullCodec interface {
	NullLiteral() string
}

// Option configures a CodecProvider.
type Option func(*CodecProvider)

// WithNullLiteral overrides the text produced for nil values.
func WithNullLiteral(literal string) Option {
	return func(p *CodecProvider) {
		if strings.TrimSpace(literal) != "" {
			p.null = literal
		}
	}
}

// WithContentType overrides the codec's content type.
func WithContentType(contentType string) Option {
	return func(p *CodecProvider) { p.contentType = contentType }
}

// CodecProvider adapts a Codec to the Provider contract. It rejects empty
// input, encodes nil values as the null literal and wraps codec failures in
// SERIALIZATION_FAILED or DESERIALIZATION_FAILED errors.
type CodecProvider struct {
	name        string
	contentType string
	null        string
	codec       Codec
}

// New returns a Provider named name backed by codec.
func New(name string, codec Codec, opts ...Option) *CodecProvider {
	p := &CodecProvider{
		name:        name,
		contentType: codec.ContentType(),
		null:        DefaultNullLiteral,
		codec:       codec,
	}
	if nc, ok := codec.(NullCodec); ok && strings.TrimSpace(nc.NullLiteral()) != "" {
		p.null = nc.NullLiteral()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *CodecProvider) Name() string        { return p.name }
func (p *CodecProvider) ContentType() string { return p.contentType }

// NullLiteral returns the text produced for nil values.
func (p *CodecProvider) NullLiteral() string { return p.null }

// Codec returns the wrapped codec.
func (p *CodecProvider) Codec() Codec { return p.codec }

func (p *CodecProvider) Serialize(value any, typ reflect.Type) (string, error) {
	if isNil(value) {
		return p.null, nil
	}
	if err := checkAssignable(value, typ); err != nil {
		return "", err.WithDetail("provider", p.name)
	}

	data, err := p.codec.Marshal(value)
	if err != nil {
		return "", serrors.Serialization(
			fmt.Sprintf("%s: cannot encode %s", p.name, typeName(typ, value)), err,
		).WithDetail("provider", p.name)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", serrors.Serialization(
			fmt.Sprintf("%s: empty output for %s", p.name, typeName(typ, value)), nil,
		).WithDetail("provider", p.name)
	}
	return string(data), nil
}

func (p *CodecProvider) Deserialize(data string, typ reflect.Type) (any, error) {
	if err := checkInput(data, typ); err != nil {
		return nil, err.WithDetail("provider", p.name)
	}
	if strings.TrimSpace(data) == p.null {
		return reflect.Zero(typ).Interface(), nil
	}

	target := reflect.New(typ)
	if err := p.codec.Unmarshal([]byte(data), target.Interface()); err != nil {
		return nil, serrors.Deserialization(
			fmt.Sprintf("%s: cannot decode %s", p.name, typ), err,
		).WithDetail("provider", p.name)
	}
	return target.Elem().Interface(), nil
}

// SerializeContext is Serialize with a cancellation check before encoding.
func (p *CodecProvider) SerializeContext(ctx context.Context, value any, typ reflect.Type) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.Serialize(value, typ)
}

// DeserializeContext is Deserialize with a cancellation check before decoding.
func (p *CodecProvider) DeserializeContext(ctx context.Context, data string, typ reflect.Type) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.Deserialize(data, typ)
}

// checkInput validates text and descriptor before any decoding happens.
func checkInput(data string, typ reflect.Type) *serrors.AppError {
	if strings.TrimSpace(data) == "" {
		return serrors.EmptyInput()
	}
	if typ == nil {
		return serrors.Deserialization("type descriptor is nil", nil)
	}
	return nil
}

func checkAssignable(value any, typ reflect.Type) *serrors.AppError {
	if typ == nil || value == nil {
		return nil
	}
	if vt := reflect.TypeOf(value); !vt.AssignableTo(typ) {
		return serrors.Serialization(
			fmt.Sprintf("value of type %s is not assignable to %s", vt, typ), nil,
		)
	}
	return nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func typeName(typ reflect.Type, value any) string {
	if typ == nil {
		typ = reflect.TypeOf(value)
	}
	if typ == nil {
		return "<nil>"
	}
	return typ.String()
}
