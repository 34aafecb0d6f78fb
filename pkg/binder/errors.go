package binder

import "errors"

var (
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm = errors.New("failed to parse form data")
	ErrBodyTooLarge      = errors.New("request body too large")
)
