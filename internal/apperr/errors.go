package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidPlan    = errors.New("invalid plan")
	ErrInvalidKeyword = errors.New("invalid keyword")
	ErrUnavailable    = errors.New("backend unavailable")
)
