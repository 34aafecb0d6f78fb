package handler

import (
	"net/http"
	"time"
)

// Cookie is a cookie a handler asks the dispatcher to write.
type Cookie struct {
	Name        string
	Value       string
	Path        string
	Domain      string
	MaxAge      int
	Expires     time.Time
	Secure      bool
	HttpOnly    bool
	SameSite    http.SameSite
	Partitioned bool
}

// CookieOption configures a Cookie.
type CookieOption func(*Cookie)

// NewCookie returns a cookie scoped to "/" with opts applied.
func NewCookie(name, value string, opts ...CookieOption) *Cookie {
	c := &Cookie{Name: name, Value: value, Path: "/"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithPath sets the cookie path.
func WithPath(path string) CookieOption {
	return func(c *Cookie) {
		c.Path = path
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) CookieOption {
	return func(c *Cookie) {
		c.Domain = domain
	}
}

// WithMaxAge sets Max-Age in seconds. Zero omits it, a negative value deletes the cookie.
func WithMaxAge(seconds int) CookieOption {
	return func(c *Cookie) {
		c.MaxAge = seconds
	}
}

// WithExpires sets the expiry time.
func WithExpires(t time.Time) CookieOption {
	return func(c *Cookie) {
		c.Expires = t
	}
}

// WithSecure marks the cookie HTTPS-only.
func WithSecure(secure bool) CookieOption {
	return func(c *Cookie) {
		c.Secure = secure
	}
}

// WithHTTPOnly hides the cookie from scripts.
func WithHTTPOnly(httpOnly bool) CookieOption {
	return func(c *Cookie) {
		c.HttpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite mode.
func WithSameSite(sameSite http.SameSite) CookieOption {
	return func(c *Cookie) {
		c.SameSite = sameSite
	}
}

// WithPartitioned sets the Partitioned attribute (CHIPS).
func WithPartitioned(partitioned bool) CookieOption {
	return func(c *Cookie) {
		c.Partitioned = partitioned
	}
}

func (c *Cookie) httpCookie() *http.Cookie {
	path := c.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:        c.Name,
		Value:       c.Value,
		Path:        path,
		Domain:      c.Domain,
		MaxAge:      c.MaxAge,
		Expires:     c.Expires,
		Secure:      c.Secure,
		HttpOnly:    c.HttpOnly,
		SameSite:    c.SameSite,
		Partitioned: c.Partitioned,
	}
}
