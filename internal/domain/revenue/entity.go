package revenue

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a package sold by an employee. Amount is the package price at the time of sale.
type Sale struct {
	ID          string
	EmployeeID  string
	PackageID   string
	Amount      decimal.Decimal
	ClientName  *string
	Description *string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	PackageName string
}

// Receipt is a free-amount payment collected by an employee.
type Receipt struct {
	ID          string
	EmployeeID  string
	ClientName  string
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Live event names pushed to connected clients on every write.
const (
	EventSaleCreated    = "sale-created"
	EventSaleUpdated    = "sale-updated"
	EventSaleDeleted    = "sale-deleted"
	EventReceiptCreated = "receipt-created"
	EventReceiptUpdated = "receipt-updated"
	EventReceiptDeleted = "receipt-deleted"
)
