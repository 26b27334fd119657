package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a priced service on the salon menu. Sales reference one.
type Package struct {
	ID          string
	Name        string
	Description *string
	Price       decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
