package charge

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminCharge holds the salon's fixed costs for one calendar month.
type AdminCharge struct {
	ID             string
	Month          int
	Year           int
	Rent           decimal.Decimal
	Charges        decimal.Decimal
	OperatingCosts decimal.Decimal
	Electricity    decimal.Decimal
	Salaries       decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Total sums the five cost components.
func (c AdminCharge) Total() decimal.Decimal {
	return c.Rent.Add(c.Charges).Add(c.OperatingCosts).Add(c.Electricity).Add(c.Salaries)
}
