package errors

import (
	"errors"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrInvalidCategory  = errors.New("unknown product category")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrPasswordMismatch = errors.New("password mismatch")
)
