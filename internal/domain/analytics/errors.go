package analytics

import "errors"

var (
	ErrInvalidMonths    = errors.New("months must be between 1 and 60")
	ErrInvalidYear      = errors.New("year must be between 2000 and 2100")
	ErrInvalidObjective = errors.New("annual objective must be greater than 0")
)
