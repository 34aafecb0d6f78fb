package httpclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBackoff sets the delay strategy between retries.
func WithBackoff(strategy BackoffStrategy) Option {
	return func(c *Client) {
		if strategy != nil {
			c.backoff = strategy
		}
	}
}

// WithLogger sets the logger used for retry and failure records.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTimeout sets the per-attempt timeout used when a request does not set its own.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets the retry count used when a request leaves RetryCount at zero.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithConcurrency bounds how many requests RequestAll runs at once.
// Zero or less means unbounded.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		c.concurrency = n
	}
}

// WithCircuitBreaker guards every attempt with cb.
// While the circuit is open requests fail fast with a 503 response.
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithUserAgent sets the User-Agent header sent when a request has none.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}
