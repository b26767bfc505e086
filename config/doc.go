// Package config loads the serialization service configuration.
//
// It uses Viper to read a YAML/JSON/TOML config file and godotenv to load
// an optional .env file, then applies environment overrides and validates
// the result with go-playground/validator struct tags.
//
// # Usage
//
//	cfg, err := config.Load("orders", config.WithEnvPrefix("ORDERS"))
//	// ORDERS_SERIALIZATION_PROVIDER=msgpack overrides serialization.provider
//
// Hosts with a larger config struct embed ServiceConfig and call LoadConfig
// directly.
package config
