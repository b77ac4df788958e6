package redis

import "errors"

var (
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")
	ErrNotReady             = errors.New("redis did not become ready within the connect timeout")
	ErrHealthcheckFailed    = errors.New("redis healthcheck failed")
)
