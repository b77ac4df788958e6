package feature

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaultEnvironment sets the environment used when the evaluation
// context does not name one.
func WithDefaultEnvironment(env string) Option {
	return func(s *Service) {
		if env != "" {
			s.defaultEnv = env
		}
	}
}

// WithMetrics registers evaluation counters on the given registerer.
// Metrics are off unless this option is applied.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Service) {
		if reg != nil {
			s.metrics = newServiceMetrics(reg)
		}
	}
}
