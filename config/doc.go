// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment using Viper.
//
// Environment variables override file values. Nested keys are joined with
// underscores, so ERRORS_RENDERER overrides errors.renderer and
// LOGGING_LEVEL overrides logging.level.
//
//	var cfg config.ServiceConfig
//	if err := config.LoadConfig("orders-api", &cfg); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
package config
