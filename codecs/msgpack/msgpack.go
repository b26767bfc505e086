// Package msgpack is a MessagePack backend built on
// github.com/vmihailenco/msgpack/v5. The binary encoding is carried as
// standard base64 text.
package msgpack

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kbukum/serialization/provider"
)

// Name is the provider name used in configuration.
const Name = "msgpack"

// ContentType is the media type of the decoded payload.
const ContentType = "application/msgpack"

// NullLiteral is the base64 text of the MessagePack nil byte 0xc0.
const NullLiteral = "wA=="

// Option configures a Codec.
type Option func(*Codec)

// WithJSONTag falls back to json tags for fields without a msgpack tag.
func WithJSONTag() Option {
	return func(c *Codec) { c.useJSONTag = true }
}

// WithDisallowUnknown rejects maps containing fields the target struct lacks.
func WithDisallowUnknown() Option {
	return func(c *Codec) { c.strict = true }
}

// Codec implements provider.Codec with msgpack/v5 and a base64 envelope.
type Codec struct {
	useJSONTag bool
	strict     bool
}

// New returns a MessagePack codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewProvider returns a provider named "msgpack" backed by a new Codec.
func NewProvider(opts ...Option) *provider.CodecProvider {
	return provider.New(Name, New(opts...))
}

func (c *Codec) ContentType() string { return ContentType }

func (c *Codec) NullLiteral() string { return NullLiteral }

func (c *Codec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if c.useJSONTag {
		enc.SetCustomStructTag("json")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(buf.Len()))
	base64.StdEncoding.Encode(out, buf.Bytes())
	return out, nil
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(raw, bytes.TrimSpace(data))
	if err != nil {
		return fmt.Errorf("invalid base64 envelope: %w", err)
	}

	dec := msgpack.NewDecoder(bytes.NewReader(raw[:n]))
	if c.useJSONTag {
		dec.SetCustomStructTag("json")
	}
	if c.strict {
		dec.DisallowUnknownFields(true)
	}
	return dec.Decode(v)
}
