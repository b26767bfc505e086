package bootstrap

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	jsoncodec "github.com/kbukum/serialization/codecs/json"
	"github.com/kbukum/serialization/codecs/jsoniter"
	"github.com/kbukum/serialization/codecs/msgpack"
	"github.com/kbukum/serialization/codecs/toml"
	"github.com/kbukum/serialization/codecs/yaml"
	"github.com/kbukum/serialization/config"
	serrors "github.com/kbukum/serialization/errors"
	"github.com/kbukum/serialization/provider"
)

// Backend builds an undecorated provider from the serialization section.
type Backend func(cfg config.SerializationConfig) (provider.Provider, error)

// Backends returns the built-in catalogue keyed by provider name.
func Backends() map[string]Backend {
	return map[string]Backend{
		jsoncodec.Name: newJSON,
		jsoniter.Name:  newJSONIter,
		yaml.Name:      newYAML,
		toml.Name:      newTOML,
		msgpack.Name:   newMsgpack,
	}
}

func newJSON(cfg config.SerializationConfig) (provider.Provider, error) {
	var opts []jsoncodec.Option
	if cfg.Indent != "" {
		opts = append(opts, jsoncodec.WithIndent(cfg.Indent))
	}
	if cfg.Strict {
		opts = append(opts, jsoncodec.WithDisallowUnknown())
	}
	return jsoncodec.NewProvider(opts...), nil
}

func newJSONIter(cfg config.SerializationConfig) (provider.Provider, error) {
	var opts []jsoniter.Option
	if cfg.Indent != "" {
		opts = append(opts, jsoniter.WithIndent(cfg.Indent))
	}
	if cfg.Strict {
		opts = append(opts, jsoniter.WithDisallowUnknown())
	}
	return jsoniter.NewProvider(opts...), nil
}

func newYAML(cfg config.SerializationConfig) (provider.Provider, error) {
	var opts []yaml.Option
	if cfg.Indent != "" {
		if strings.Trim(cfg.Indent, " ") != "" {
			return nil, serrors.InvalidConfig("serialization.indent", "yaml indent must be spaces only")
		}
		opts = append(opts, yaml.WithIndent(len(cfg.Indent)))
	}
	if cfg.Strict {
		opts = append(opts, yaml.WithDisallowUnknown())
	}
	return yaml.NewProvider(opts...), nil
}

func newTOML(cfg config.SerializationConfig) (provider.Provider, error) {
	var opts []toml.Option
	if cfg.Indent != "" {
		opts = append(opts, toml.WithIndent(cfg.Indent))
	}
	if cfg.Strict {
		opts = append(opts, toml.WithDisallowUnknown())
	}
	return toml.NewProvider(opts...), nil
}

// newMsgpack ignores Indent; the output is base64 text.
func newMsgpack(cfg config.SerializationConfig) (provider.Provider, error) {
	var opts []msgpack.Option
	if cfg.Strict {
		opts = append(opts, msgpack.WithDisallowUnknown())
	}
	return msgpack.NewProvider(opts...), nil
}

func lookupBackend(catalogue map[string]Backend, name string) (Backend, error) {
	b, ok := catalogue[name]
	if !ok || b == nil {
		names := slices.Sorted(maps.Keys(catalogue))
		return nil, serrors.InvalidConfig("serialization.provider",
			fmt.Sprintf("unknown provider %q (available: %s)", name, strings.Join(names, ", ")))
	}
	return b, nil
}
