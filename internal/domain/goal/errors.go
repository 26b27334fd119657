package goal

import "errors"

var (
	ErrGoalNotFound              = errors.New("goal not found")
	ErrGoalAlreadyExists         = errors.New("goal already exists for this employee and period")
	ErrCarryOverAlreadyProcessed = errors.New("carry-over already processed for this period")
)
