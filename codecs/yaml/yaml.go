// Package yaml is a YAML backend built on github.com/goccy/go-yaml.
package yaml

import (
	"github.com/goccy/go-yaml"

	"github.com/kbukum/serialization/provider"
)

// Name is the provider name used in configuration.
const Name = "yaml"

// ContentType is the media type of the produced text.
const ContentType = "application/yaml"

// Option configures a Codec.
type Option func(*Codec)

// WithIndent sets the number of spaces per nesting level. Zero keeps the
// library default.
func WithIndent(spaces int) Option {
	return func(c *Codec) { c.indent = spaces }
}

// WithDisallowUnknown rejects mappings containing fields the target struct lacks.
func WithDisallowUnknown() Option {
	return func(c *Codec) { c.strict = true }
}

// Codec implements provider.Codec with goccy/go-yaml.
type Codec struct {
	indent int
	strict bool
}

// New returns a YAML codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewProvider returns a provider named "yaml" backed by a new Codec.
func NewProvider(opts ...Option) *provider.CodecProvider {
	return provider.New(Name, New(opts...))
}

func (c *Codec) ContentType() string { return ContentType }

func (c *Codec) Marshal(v any) ([]byte, error) {
	var opts []yaml.EncodeOption
	if c.indent > 0 {
		opts = append(opts, yaml.Indent(c.indent))
	}
	return yaml.MarshalWithOptions(v, opts...)
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	var opts []yaml.DecodeOption
	if c.strict {
		opts = append(opts, yaml.DisallowUnknownField())
	}
	return yaml.UnmarshalWithOptions(data, v, opts...)
}
