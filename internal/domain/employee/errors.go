package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeEmailExists  = errors.New("employee email already registered")
	ErrEmployeeAccessDenied = errors.New("access to this employee is denied")
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrEmployeeHasNoUser    = errors.New("employee has no linked user")
)
