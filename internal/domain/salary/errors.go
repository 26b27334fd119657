package salary

import "errors"

var (
	ErrSalaryNotFound = errors.New("salary not found")
	ErrNoWorkingDays  = errors.New("period contains no working days")
	ErrInvalidPeriod  = errors.New("period_end must not be before period_start")
)
