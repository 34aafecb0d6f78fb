package httpclient

import "time"

// Config holds environment-driven client settings.
type Config struct {
	Timeout         time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"30s"`
	Retries         int           `env:"HTTP_CLIENT_RETRIES" envDefault:"3"`
	Concurrency     int           `env:"HTTP_CLIENT_CONCURRENCY" envDefault:"8"`
	UserAgent       string        `env:"HTTP_CLIENT_USER_AGENT" envDefault:"servekit"`
	BreakerFailures int           `env:"HTTP_CLIENT_BREAKER_FAILURES" envDefault:"0"`
	BreakerRecovery time.Duration `env:"HTTP_CLIENT_BREAKER_RECOVERY" envDefault:"30s"`
}

// NewFromConfig builds a Client from cfg. Options are applied after the config values.
// A positive BreakerFailures enables the circuit breaker.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithRetries(cfg.Retries),
		WithConcurrency(cfg.Concurrency),
		WithUserAgent(cfg.UserAgent),
	}
	if cfg.BreakerFailures > 0 {
		base = append(base, WithCircuitBreaker(NewCircuitBreaker(cfg.BreakerFailures, 0, cfg.BreakerRecovery)))
	}
	return New(append(base, opts...)...)
}
