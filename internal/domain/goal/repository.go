package goal

import (
	"context"

	"github.com/shopspring/decimal"
)

type GoalRepository interface {
	Create(ctx context.Context, g Goal) (Goal, error)
	GetByID(ctx context.Context, id string) (Goal, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Goal, error)
	// List orders by year DESC, month DESC.
	List(ctx context.Context, filter GoalFilter) ([]Goal, error)
	ListByPeriod(ctx context.Context, month, year int) ([]Goal, error)
	Update(ctx context.Context, req UpdateGoalRequest) (Goal, error)
	UpdateCurrentTotal(ctx context.Context, id string, total decimal.Decimal) error
	// AddCarryOver increases both carry_over_amount and monthly_target by amount.
	AddCarryOver(ctx context.Context, id string, amount decimal.Decimal) (Goal, error)
	Delete(ctx context.Context, id string) error
}

// CarryOverLedger records which source months have been distributed.
type CarryOverLedger interface {
	// MarkProcessed inserts the run; it returns ErrCarryOverAlreadyProcessed when the month is already present.
	MarkProcessed(ctx context.Context, run CarryOverRun) error
	List(ctx context.Context) ([]CarryOverRun, error)
}
