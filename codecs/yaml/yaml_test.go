package yaml_test

import (
	"strings"
	"testing"

	"github.com/kbukum/serialization/codecs/yaml"
	serrors "github.com/kbukum/serialization/errors"
	"github.com/kbukum/serialization/provider"
)

type server struct {
	Host  string   `yaml:"host"`
	Port  int      `yaml:"port"`
	Paths []string `yaml:"paths"`
}

func TestProvider_RoundTrip(t *testing.T) {
	p := yaml.NewProvider()
	if p.Name() != "yaml" || p.ContentType() != "application/yaml" {
		t.Errorf("unexpected metadata: %q %q", p.Name(), p.ContentType())
	}

	in := server{Host: "localhost", Port: 8080, Paths: []string{"/a"}}
	text, err := provider.Serialize(p, in)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(text, "host: localhost") || !strings.Contains(text, "port: 8080") {
		t.Errorf("unexpected output %q", text)
	}

	out, err := provider.Deserialize[server](p, text)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if out.Host != in.Host || out.Port != in.Port || len(out.Paths) != 1 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestProvider_Null(t *testing.T) {
	p := yaml.NewProvider()
	text, err := provider.Serialize[*server](p, nil)
	if err != nil || text != "null" {
		t.Errorf("expected 'null', got %q, %v", text, err)
	}
	out, err := provider.Deserialize[*server](p, "null\n")
	if err != nil || out != nil {
		t.Errorf("expected nil pointer, got %+v, %v", out, err)
	}
}

func TestProvider_Malformed(t *testing.T) {
	p := yaml.NewProvider()
	if _, err := provider.Deserialize[server](p, "host: [unclosed"); !serrors.IsDeserialization(err) {
		t.Errorf("expected DESERIALIZATION_FAILED, got %v", err)
	}
}

func TestProvider_Strict(t *testing.T) {
	input := "host: h\nport: 1\nextra: true\n"

	if _, err := provider.Deserialize[server](yaml.NewProvider(), input); err != nil {
		t.Errorf("lenient decode should ignore unknown fields, got %v", err)
	}

	strict := yaml.NewProvider(yaml.WithDisallowUnknown())
	if _, err := provider.Deserialize[server](strict, input); !serrors.IsDeserialization(err) {
		t.Errorf("expected DESERIALIZATION_FAILED for unknown field, got %v", err)
	}
}

func TestProvider_Indent(t *testing.T) {
	type nested struct {
		Server server `yaml:"server"`
	}
	p := yaml.NewProvider(yaml.WithIndent(4))
	text, err := provider.Serialize(p, nested{Server: server{Host: "h"}})
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(text, "\n    host: h") {
		t.Errorf("expected 4-space indent, got %q", text)
	}
}
