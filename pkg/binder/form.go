package binder

import (
	"fmt"
	"net/http"
	"net/url"
)

// Form decodes an application/x-www-form-urlencoded body.
func Form(r *http.Request, limit int64) (map[string]any, error) {
	body, err := readBody(r, limit)
	if err != nil {
		return nil, err
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
	}
	return Values(values), nil
}

// Query returns the request query string as a generic map.
// Malformed pairs are skipped, like url.Values parsing in net/http.
func Query(r *http.Request) map[string]any {
	return Values(r.URL.Query())
}

// Values converts url.Values: single values become strings, repeated keys
// become []any of strings.
func Values(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
			out[k] = ""
		case 1:
			out[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			out[k] = list
		}
	}
	return out
}
