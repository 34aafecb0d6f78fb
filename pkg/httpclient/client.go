package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/servekit/pkg/logger"
)

const (
	defaultRetries = 3
	defaultTimeout = 30 * time.Second
	maxRetryAfter  = time.Minute
)

// BasicAuth holds credentials sent with the Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

// Options describes a single outbound request.
type Options struct {
	Method string
	// URL may contain :name segments that are replaced from Params.
	URL     string
	Params  map[string]string
	Query   map[string]string
	Body    any
	Headers map[string]string
	Auth    *BasicAuth
	// Timeout bounds each attempt. Zero uses the client default.
	Timeout time.Duration
	// RetryCount is the number of retries after the first attempt.
	// Zero uses the client default, a negative value disables retries.
	RetryCount int
	// RetryCondition decides whether a response is retried. Defaults to RetryOnTooManyRequests.
	RetryCondition func(Response) bool
}

// Response is the outcome of a request. Transport failures never surface as
// Go errors: they produce a synthesized response with Status 500 and Err set.
type Response struct {
	Status     int
	StatusText string
	Headers    http.Header
	// Data is the decoded JSON body, or the raw body as a string when it is not JSON.
	Data any
	Raw  []byte
	Err  error
}

// OK reports whether the status is 2xx.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the raw body into v.
func (r Response) Decode(v any) error {
	if len(r.Raw) == 0 {
		return io.EOF
	}
	return json.Unmarshal(r.Raw, v)
}

// RetryOnTooManyRequests is the default retry condition.
func RetryOnTooManyRequests(r Response) bool {
	return r.Status == http.StatusTooManyRequests
}

// Client sends outbound requests with retry and exponential backoff.
// A Client is safe for concurrent use.
type Client struct {
	http        *http.Client
	backoff     BackoffStrategy
	breaker     *CircuitBreaker
	log         *slog.Logger
	timeout     time.Duration
	retries     int
	concurrency int
	userAgent   string
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		backoff: DefaultBackoffStrategy(),
		log:     logger.Noop(),
		timeout: defaultTimeout,
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request sends one request, retrying while opts.RetryCondition holds.
// The last response is returned once retries are exhausted.
func (c *Client) Request(ctx context.Context, opts Options) Response {
	retries := opts.RetryCount
	switch {
	case retries == 0:
		retries = c.retries
	case retries < 0:
		retries = 0
	}

	shouldRetry := opts.RetryCondition
	if shouldRetry == nil {
		shouldRetry = RetryOnTooManyRequests
	}

	req, err := c.prepare(opts)
	if err != nil {
		return failure(err)
	}

	var resp Response
	for attempt := 0; ; attempt++ {
		resp = c.attempt(ctx, req, opts)
		if attempt >= retries || !shouldRetry(resp) {
			return resp
		}

		delay := c.backoff.NextInterval(attempt + 1)
		if after := retryAfter(resp); after > delay {
			delay = after
		}

		c.log.LogAttrs(ctx, slog.LevelWarn, "retrying request",
			logger.Component("httpclient"),
			logger.Method(req.method),
			logger.Path(req.url),
			logger.Status(resp.Status),
			logger.Attempt(attempt+1),
			logger.Duration(delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			resp.Err = errors.Join(resp.Err, ctx.Err())
			return resp
		case <-timer.C:
		}
	}
}

// RequestAll sends every request concurrently and returns the responses in input order.
func (c *Client) RequestAll(ctx context.Context, reqs []Options) []Response {
	out := make([]Response, len(reqs))

	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for i, opts := range reqs {
		g.Go(func() error {
			out[i] = c.Request(ctx, opts)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

type prepared struct {
	method      string
	url         string
	body        []byte
	contentType string
}

func (c *Client) prepare(opts Options) (prepared, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	target, err := BuildURL(opts.URL, opts.Params, opts.Query)
	if err != nil {
		return prepared{}, err
	}

	p := prepared{method: method, url: target}

	switch body := opts.Body.(type) {
	case nil:
	case []byte:
		p.body = body
	case string:
		p.body = []byte(body)
		p.contentType = "text/plain; charset=utf-8"
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return prepared{}, errors.Join(ErrEncodeBody, err)
		}
		p.body = data
		p.contentType = "application/json"
	}

	return p, nil
}

func (c *Client) attempt(ctx context.Context, p prepared, opts Options) Response {
	if c.breaker != nil && !c.breaker.Allow() {
		return Response{
			Status:     http.StatusServiceUnavailable,
			StatusText: http.StatusText(http.StatusServiceUnavailable),
			Headers:    http.Header{},
			Data:       ErrCircuitOpen.Error(),
			Err:        ErrCircuitOpen,
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if p.body != nil {
		body = bytes.NewReader(p.body)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, p.url, body)
	if err != nil {
		return failure(errors.Join(ErrInvalidURL, err))
	}
	if p.contentType != "" {
		req.Header.Set("Content-Type", p.contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.Auth != nil {
		req.SetBasicAuth(opts.Auth.Username, opts.Auth.Password)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.recordFailure()
		if errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(ErrTimeout, err)
		}
		c.log.LogAttrs(ctx, slog.LevelError, "request failed",
			logger.Component("httpclient"),
			logger.Method(p.method),
			logger.Path(p.url),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return failure(errors.Join(ErrRequestFailed, err))
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.recordFailure()
		return failure(errors.Join(ErrRequestFailed, err))
	}

	if res.StatusCode >= http.StatusInternalServerError {
		c.recordFailure()
	} else if c.breaker != nil {
		c.breaker.RecordSuccess()
	}

	c.log.LogAttrs(ctx, slog.LevelDebug, "request completed",
		logger.Component("httpclient"),
		logger.Method(p.method),
		logger.Path(p.url),
		logger.Status(res.StatusCode),
		logger.Duration(time.Since(start)),
	)

	return Response{
		Status:     res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
		Headers:    res.Header,
		Data:       decode(raw),
		Raw:        raw,
	}
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}

// BuildURL replaces :name path segments with escaped values from params and
// merges query into the query string. Segments without a matching non-empty
// param are left as they are.
func BuildURL(raw string, params, query map[string]string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrInvalidURL
	}

	if len(params) > 0 {
		segments := strings.Split(raw, "/")
		for i, seg := range segments {
			name, ok := strings.CutPrefix(seg, ":")
			if !ok || name == "" {
				continue
			}
			if v := params[name]; v != "" {
				segments[i] = url.PathEscape(v)
			}
		}
		raw = strings.Join(segments, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	if len(query) > 0 {
		q := u.Query()
		for _, k := range slices.Sorted(maps.Keys(query)) {
			q.Set(k, query[k])
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func failure(err error) Response {
	return Response{
		Status:     http.StatusInternalServerError,
		StatusText: http.StatusText(http.StatusInternalServerError),
		Headers:    http.Header{},
		Data:       err.Error(),
		Err:        err,
	}
}

func decode(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func retryAfter(r Response) time.Duration {
	if r.Headers == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(r.Headers.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
