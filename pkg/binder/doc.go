// Package binder parses request bodies and query strings into generic values
// before routing.
//
// Middleware runs ahead of the router. It decodes application/json bodies
// (numbers kept as json.Number) and application/x-www-form-urlencoded bodies
// into map[string]any, and stores the result in the request context where
// handler.NewContext picks it up without parsing again. Requests without a
// body, or with a media type the binder does not handle, get an empty object.
//
// Values decoded from forms and query strings follow one rule: a key with a
// single value maps to a string, a repeated key maps to []any of strings.
//
// Malformed or oversized bodies are rejected with 400 and
//
//	{"desc": "invalid_body", "data": {"message": "..."}}
package binder
