package goal

import (
	"context"
	"time"
)

type GoalService interface {
	Create(ctx context.Context, req CreateGoalRequest) (GoalResponse, error)
	Update(ctx context.Context, req UpdateGoalRequest) (GoalResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (GoalResponse, error)
	// GetForEmployee recomputes the running total before returning it.
	GetForEmployee(ctx context.Context, employeeID string, month, year int) (GoalResponse, error)
	List(ctx context.Context, filter GoalFilter) ([]GoalResponse, error)
	RecomputeCurrentTotal(ctx context.Context, id string) (GoalResponse, error)
}

// GoalRefresher keeps cached monthly totals in step with revenue writes.
type GoalRefresher interface {
	RefreshForEmployee(ctx context.Context, employeeID string, date time.Time) error
}

type CarryOverService interface {
	Run(ctx context.Context) (CarryOverResult, error)
	History(ctx context.Context) ([]CarryOverRun, error)
}
