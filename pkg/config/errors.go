package config

import "errors"

var (
	ErrLoadEnvFile = errors.New("failed to load env file")
	ErrParseEnv    = errors.New("failed to parse environment variables")
)
