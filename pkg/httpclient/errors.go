package httpclient

import "errors"

var (
	ErrInvalidURL    = errors.New("invalid request URL")
	ErrEncodeBody    = errors.New("failed to encode request body")
	ErrRequestFailed = errors.New("request failed without a response")
	ErrTimeout       = errors.New("request timeout")
	ErrCircuitOpen   = errors.New("circuit breaker is open")
)
