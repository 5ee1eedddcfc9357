package binder

import "errors"

var (
	ErrInvalidPath   = errors.New("invalid path parameter")
	ErrInvalidQuery  = errors.New("invalid query parameter")
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")
)
