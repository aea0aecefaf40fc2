// Package logger provides structured logging for svcerrors using zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers. The errors package logs render-time degradations
// (a serialization fallback, an ignored default renderer) through the
// "errors" component logger.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get(logger.ComponentErrors)
//	log.Warn("failed to serialize service error", logger.Fields("code", 1001))
package logger
