// Package toml is a TOML backend built on github.com/BurntSushi/toml.
//
// A TOML document is always a table, so only structs and maps (or pointers
// to them) can be encoded; other values fail with SERIALIZATION_FAILED.
package toml

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kbukum/serialization/provider"
)

// Name is the provider name used in configuration.
const Name = "toml"

// ContentType is the media type of the produced text.
const ContentType = "application/toml"

// NullLiteral is the text produced for nil values. TOML has no null, and an
// empty document would be rejected as empty input, so nil encodes to a
// comment-only document.
const NullLiteral = "# null"

// EmptyTable is the text produced for a struct or map with no keys, which
// the encoder would otherwise render as an empty document.
const EmptyTable = "# empty table\n"

// Option configures a Codec.
type Option func(*Codec)

// WithIndent sets the indentation of nested tables.
func WithIndent(indent string) Option {
	return func(c *Codec) { c.indent = &indent }
}

// WithDisallowUnknown rejects documents containing keys the target lacks.
func WithDisallowUnknown() Option {
	return func(c *Codec) { c.strict = true }
}

// Codec implements provider.Codec with BurntSushi/toml.
type Codec struct {
	indent *string
	strict bool
}

// New returns a TOML codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewProvider returns a provider named "toml" backed by a new Codec.
func NewProvider(opts ...Option) *provider.CodecProvider {
	return provider.New(Name, New(opts...))
}

func (c *Codec) ContentType() string { return ContentType }

func (c *Codec) NullLiteral() string { return NullLiteral }

func (c *Codec) Marshal(v any) ([]byte, error) {
	switch kind := reflect.Indirect(reflect.ValueOf(v)).Kind(); kind {
	case reflect.Struct, reflect.Map:
	default:
		return nil, fmt.Errorf("toml document must be a table, got %s", kind)
	}

	var buf strings.Builder
	enc := toml.NewEncoder(&buf)
	if c.indent != nil {
		enc.Indent = *c.indent
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if strings.TrimSpace(buf.String()) == "" {
		return []byte(EmptyTable), nil
	}
	return []byte(buf.String()), nil
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return err
	}
	if c.strict {
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
	}
	return nil
}
