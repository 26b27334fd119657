package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (Expense, error)
	Delete(ctx context.Context, id string) error
	// Sum totals expense amounts dated within [start, end].
	Sum(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}
