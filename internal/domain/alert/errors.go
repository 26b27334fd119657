package alert

import "errors"

// Alert domain errors
var (
	ErrAlertNotFound    = errors.New("alert not found")
	ErrUnauthorized     = errors.New("unauthorized to access this alert")
	ErrInvalidAlertType = errors.New("invalid alert type")
)
