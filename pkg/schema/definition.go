package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Definition is a single JSON Schema document.
// Its pointer identity is the compilation cache key.
type Definition struct {
	doc      map[string]any
	optional bool
}

// Option adds a keyword to a definition.
type Option func(doc map[string]any)

// Props maps object property names to their definitions.
type Props map[string]*Definition

func newDefinition(typ string, opts []Option) *Definition {
	doc := map[string]any{}
	if typ != "" {
		doc["type"] = typ
	}
	for _, opt := range opts {
		opt(doc)
	}
	return &Definition{doc: doc}
}

// String matches JSON strings.
func String(opts ...Option) *Definition { return newDefinition("string", opts) }

// Number matches any JSON number.
func Number(opts ...Option) *Definition { return newDefinition("number", opts) }

// Integer matches JSON numbers without a fractional part.
func Integer(opts ...Option) *Definition { return newDefinition("integer", opts) }

// Boolean matches true and false.
func Boolean(opts ...Option) *Definition { return newDefinition("boolean", opts) }

// Any matches every value.
func Any() *Definition { return newDefinition("", nil) }

// Array matches arrays whose elements all match items.
// A nil items accepts any element.
func Array(items *Definition, opts ...Option) *Definition {
	d := newDefinition("array", opts)
	if items != nil {
		d.doc["items"] = items.doc
	}
	return d
}

// Object matches objects with the given properties.
// Properties are required unless wrapped with Optional.
// Properties not listed are allowed.
func Object(props Props, opts ...Option) *Definition {
	d := newDefinition("object", opts)
	properties := make(map[string]any, len(props))
	required := make([]string, 0, len(props))
	for name, p := range props {
		if p == nil {
			continue
		}
		properties[name] = p.doc
		if !p.optional {
			required = append(required, name)
		}
	}
	slices.Sort(required)
	d.doc["properties"] = properties
	if len(required) > 0 {
		d.doc["required"] = required
	}
	return d
}

// Optional marks d as optional when used as an object property.
// The returned definition is a new value; d is not modified.
func Optional(d *Definition) *Definition {
	return &Definition{doc: d.doc, optional: true}
}

// IsOptional reports whether d was wrapped with Optional.
func (d *Definition) IsOptional() bool { return d != nil && d.optional }

// Document returns a copy of the underlying JSON Schema document.
func (d *Definition) Document() map[string]any {
	if d == nil {
		return nil
	}
	return maps.Clone(d.doc)
}

// MarshalJSON encodes the JSON Schema document.
func (d *Definition) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.doc)
}

// MinLength sets the minimum string length.
func MinLength(n int) Option {
	return func(doc map[string]any) { doc["minLength"] = n }
}

// MaxLength sets the maximum string length.
func MaxLength(n int) Option {
	return func(doc map[string]any) { doc["maxLength"] = n }
}

// Minimum sets the inclusive lower bound of a number.
func Minimum(v float64) Option {
	return func(doc map[string]any) { doc["minimum"] = v }
}

// Maximum sets the inclusive upper bound of a number.
func Maximum(v float64) Option {
	return func(doc map[string]any) { doc["maximum"] = v }
}

// Pattern requires strings to match an ECMA-262 regular expression.
func Pattern(re string) Option {
	return func(doc map[string]any) { doc["pattern"] = re }
}

// Format asserts a named format such as "email", "uuid" or "date-time".
func Format(name string) Option {
	return func(doc map[string]any) { doc["format"] = name }
}

// Enum restricts the value to one of values.
func Enum(values ...any) Option {
	return func(doc map[string]any) { doc["enum"] = values }
}

// FromJSON loads a raw JSON Schema document.
func FromJSON(data []byte) (*Definition, error) {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be an object, got %T", ErrInvalidDocument, v)
	}
	return &Definition{doc: doc}, nil
}

// FromYAML loads a JSON Schema document written in YAML.
func FromYAML(data []byte) (*Definition, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	return FromJSON(raw)
}

// MustJSON is like FromJSON but panics on error.
func MustJSON(data []byte) *Definition {
	d, err := FromJSON(data)
	if err != nil {
		panic(err)
	}
	return d
}

// MustYAML is like FromYAML but panics on error.
func MustYAML(data []byte) *Definition {
	d, err := FromYAML(data)
	if err != nil {
		panic(err)
	}
	return d
}
