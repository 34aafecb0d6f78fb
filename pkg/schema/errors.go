package schema

import "errors"

var (
	ErrInvalidDocument = errors.New("invalid schema document")
	ErrCompile         = errors.New("failed to compile schema")
	ErrInstance        = errors.New("failed to encode value for validation")
)
