package config

import (
	"time"

	"github.com/kbukum/serialization/logger"
)

// Default values applied by ApplyDefaults and exposed to the loader.
const (
	DefaultProvider       = "json"
	DefaultOTLPEndpoint   = "localhost:4318"
	DefaultSampleRate     = 1.0
	DefaultMetricInterval = 15 * time.Second
	DefaultEnvironment    = "development"
	DefaultServiceVersion = "dev"
)

// ServiceConfig is the configuration a host loads to compose its serialization
// provider. Embed it in a larger config struct to extend it.
type ServiceConfig struct {
	Name          string              `yaml:"name" mapstructure:"name" validate:"required"`
	Environment   string              `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version       string              `yaml:"version" mapstructure:"version"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Serialization SerializationConfig `yaml:"serialization" mapstructure:"serialization"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// SerializationConfig selects and decorates the active provider.
type SerializationConfig struct {
	// Provider is the backend name, e.g. "json", "yaml", "msgpack".
	Provider string `yaml:"provider" mapstructure:"provider" validate:"required"`
	// Indent pretty-prints JSON output when non-empty.
	Indent string `yaml:"indent" mapstructure:"indent" validate:"max=8"`
	// Strict rejects unknown fields where the backend supports it.
	Strict  bool `yaml:"strict" mapstructure:"strict"`
	Logging bool `yaml:"logging" mapstructure:"logging"`
	Metrics bool `yaml:"metrics" mapstructure:"metrics"`
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`
}

// ObservabilityConfig configures the OTLP tracer and meter.
type ObservabilityConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// GetServiceConfig returns the base ServiceConfig. When embedded, the method
// is promoted so the embedding struct can be passed where a *ServiceConfig
// accessor is expected.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults fills zero-valued fields.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.Version == "" {
		c.Version = DefaultServiceVersion
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	if c.Serialization.Provider == "" {
		c.Serialization.Provider = DefaultProvider
	}
	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = DefaultOTLPEndpoint
	}
	if c.Observability.Interval == 0 {
		c.Observability.Interval = DefaultMetricInterval
	}
}

// Validate validates struct tags and the nested logging section.
func (c *ServiceConfig) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return wrapLoggingError(err)
	}
	return nil
}

// Defaults returns the loader defaults for every known key so environment
// overrides apply even when no config file is present.
func Defaults() map[string]any {
	return map[string]any{
		"environment":               DefaultEnvironment,
		"version":                   DefaultServiceVersion,
		"logging.level":             "info",
		"logging.format":            "console",
		"logging.output":            "stdout",
		"logging.no_color":          false,
		"logging.caller":            false,
		"serialization.provider":    DefaultProvider,
		"serialization.indent":      "",
		"serialization.strict":      false,
		"serialization.logging":     true,
		"serialization.metrics":     false,
		"serialization.tracing":     false,
		"observability.enabled":     false,
		"observability.endpoint":    DefaultOTLPEndpoint,
		"observability.insecure":    true,
		"observability.sample_rate": DefaultSampleRate,
		"observability.interval":    DefaultMetricInterval.String(),
	}
}

// Load reads and validates a ServiceConfig for serviceName.
func Load(serviceName string, opts ...LoaderOption) (*ServiceConfig, error) {
	cfg := &ServiceConfig{Name: serviceName}
	opts = append([]LoaderOption{WithDefaults(Defaults())}, opts...)
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
