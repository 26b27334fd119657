package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TurnoverTotals is one aggregate row over sales and receipts
type TurnoverTotals struct {
	Sales         decimal.Decimal
	Receipts      decimal.Decimal
	SalesCount    int64
	ReceiptsCount int64
}

// DailyTotals is the turnover of one calendar day
type DailyTotals struct {
	Day      time.Time
	Sales    decimal.Decimal
	Receipts decimal.Decimal
}

// TurnoverRepository reads revenue aggregates. All bounds are inclusive.
type TurnoverRepository interface {
	// Aggregate returns sums (never null) and counts of sales and receipts dated in [start, end].
	Aggregate(ctx context.Context, employeeID *string, start, end time.Time) (TurnoverTotals, error)

	// AggregateByEmployee returns one row per employee that has revenue in [start, end].
	AggregateByEmployee(ctx context.Context, start, end time.Time) (map[string]TurnoverTotals, error)

	// DailyTotals groups [start, end] by calendar day; days without revenue are omitted.
	DailyTotals(ctx context.Context, start, end time.Time) ([]DailyTotals, error)
}
