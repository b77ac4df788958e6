// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Struct fields are annotated with github.com/caarlos0/env tags:
//
//	type StoreConfig struct {
//		URL string        `env:"REDIS_URL,required"`
//		TTL time.Duration `env:"FEATURE_CACHE_TTL" envDefault:"30s"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// Each call parses the current environment; there is no process-wide cache,
// so tests can override variables freely between calls.
package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load populates cfg from environment variables. Files listed in envFiles are
// loaded into the environment first; when none are given, a ".env" in the
// working directory is used if present. A missing .env file is not an error;
// production deployments set real environment variables instead.
func Load[T any](cfg *T, envFiles ...string) error {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return errors.Join(ErrLoadEnvFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrLoadEnvFile, err)
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseEnv, err)
	}
	return nil
}
