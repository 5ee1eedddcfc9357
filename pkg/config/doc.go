// Package config loads typed configuration from environment variables.
//
// Struct fields are annotated with `env` tags understood by
// github.com/caarlos0/env/v11; an optional .env file in the working directory
// is applied first through github.com/joho/godotenv. Parsed values are cached
// per configuration type, so repeated Load calls for the same type are cheap
// and always observe the same values.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":5000"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// ResetCache clears cached values and is intended for tests.
package config
