// Package jsoniter is a JSON backend built on github.com/json-iterator/go,
// configured to match encoding/json output.
package jsoniter

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/kbukum/serialization/provider"
)

// Name is the provider name used in configuration.
const Name = "jsoniter"

// ContentType is the media type of the produced text.
const ContentType = "application/json"

// Option configures a Codec.
type Option func(*options)

type options struct {
	indent string
	strict bool
}

// WithIndent pretty-prints output using indent for each nesting level.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithDisallowUnknown rejects objects containing fields the target struct lacks.
func WithDisallowUnknown() Option {
	return func(o *options) { o.strict = true }
}

// Codec implements provider.Codec with a frozen jsoniter configuration.
type Codec struct {
	api    jsoniter.API
	indent string
}

// New returns a jsoniter codec.
func New(opts ...Option) *Codec {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		DisallowUnknownFields:  o.strict,
	}.Froze()
	return &Codec{api: api, indent: o.indent}
}

// NewProvider returns a provider named "jsoniter" backed by a new Codec.
func NewProvider(opts ...Option) *provider.CodecProvider {
	return provider.New(Name, New(opts...))
}

func (c *Codec) ContentType() string { return ContentType }

func (c *Codec) Marshal(v any) ([]byte, error) {
	if c.indent != "" {
		return c.api.MarshalIndent(v, "", c.indent)
	}
	return c.api.Marshal(v)
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	return c.api.Unmarshal(data, v)
}
