// Package json is the default JSON backend, built on github.com/goccy/go-json.
package json

import (
	"bytes"

	gojson "github.com/goccy/go-json"

	"github.com/kbukum/serialization/provider"
)

// Name is the provider name used in configuration.
const Name = "json"

// ContentType is the media type of the produced text.
const ContentType = "application/json"

// Option configures a Codec.
type Option func(*Codec)

// WithIndent pretty-prints output using indent for each nesting level.
func WithIndent(indent string) Option {
	return func(c *Codec) { c.indent = indent }
}

// WithDisallowUnknown rejects objects containing fields the target struct lacks.
func WithDisallowUnknown() Option {
	return func(c *Codec) { c.strict = true }
}

// Codec implements provider.Codec with goccy/go-json.
type Codec struct {
	indent string
	strict bool
}

// New returns a JSON codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewProvider returns a provider named "json" backed by a new Codec.
func NewProvider(opts ...Option) *provider.CodecProvider {
	return provider.New(Name, New(opts...))
}

func (c *Codec) ContentType() string { return ContentType }

func (c *Codec) Marshal(v any) ([]byte, error) {
	if c.indent != "" {
		return gojson.MarshalIndent(v, "", c.indent)
	}
	return gojson.Marshal(v)
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	if !c.strict {
		return gojson.Unmarshal(data, v)
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
