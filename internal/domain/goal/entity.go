package goal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is an employee's revenue target for one calendar month.
// CurrentMonthlyTotal caches the employee's sales + receipts for that month.
type Goal struct {
	ID                  string
	EmployeeID          string
	Month               int
	Year                int
	MonthlyTarget       decimal.Decimal
	DailyTarget         decimal.Decimal
	CurrentMonthlyTotal decimal.Decimal
	RemainingDays       int
	CarryOverAmount     decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	EmployeeName *string
}

// Remaining is target minus achieved; negative once the goal is exceeded.
func (g Goal) Remaining() decimal.Decimal {
	return g.MonthlyTarget.Sub(g.CurrentMonthlyTotal)
}

// Unmet is the shortfall clamped at zero.
func (g Goal) Unmet() decimal.Decimal {
	r := g.Remaining()
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// CarryOverRun marks a source month whose shortfall has been distributed.
type CarryOverRun struct {
	Month       int
	Year        int
	TotalUnmet  decimal.Decimal
	Recipients  int
	ProcessedAt time.Time
}
