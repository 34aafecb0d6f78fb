package handler

import "errors"

var (
	ErrAlreadyCommitted = errors.New("response already committed")
	ErrBind             = errors.New("failed to bind request body")
	ErrEncodeResponse   = errors.New("failed to encode response body")
)
