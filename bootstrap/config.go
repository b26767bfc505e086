package bootstrap

import (
	"github.com/kbukum/serialization/config"
)

// Config is the constraint for application configuration types. Any struct
// that embeds config.ServiceConfig by value satisfies it through promoted
// methods.
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Archive ArchiveConfig `yaml:"archive" mapstructure:"archive"`
//	}
//
//	app, err := bootstrap.NewApp(&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
