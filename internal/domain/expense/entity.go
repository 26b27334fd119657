package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Description *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
