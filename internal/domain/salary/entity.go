package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary - Generated salary snapshot. Never recalculated in place; regenerating inserts a new row.
type Salary struct {
	ID                   string
	EmployeeID           string
	BaseSalary           decimal.Decimal // turnover - charges, may be negative
	CommissionPercentage decimal.Decimal // employee deduction percentage at generation time
	TotalSalary          decimal.Decimal // net daily salary
	PeriodStart          time.Time
	PeriodEnd            time.Time
	CreatedAt            time.Time

	// Joined fields
	EmployeeName *string
}
