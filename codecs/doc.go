// Package codecs groups the serialization backends. Each subpackage wraps one
// third-party encoding library in a provider.Codec and exposes NewProvider
// for the ready-to-use provider:
//
//	json      github.com/goccy/go-json         application/json
//	jsoniter  github.com/json-iterator/go      application/json
//	yaml      github.com/goccy/go-yaml         application/yaml
//	toml      github.com/BurntSushi/toml       application/toml
//	msgpack   github.com/vmihailenco/msgpack/v5 application/msgpack (base64 text)
package codecs
