// Package logger provides structured logging using zerolog.
//
// Registries and middleware log through component-scoped loggers
// obtained from Get, so a host can swap the global logger once and every
// component follows.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("provider")
//	log.Info("provider resolved", logger.Fields("provider", p.Name()))
package logger
