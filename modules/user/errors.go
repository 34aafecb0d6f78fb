package user

import "errors"

var (
	ErrCreateUser = errors.New("failed to create user")
	ErrListUsers  = errors.New("failed to list users")
)
