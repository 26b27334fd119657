package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                  string
	UserID              *string
	FirstName           string
	LastName            string
	Email               *string
	Phone               *string
	Position            string
	Salary              decimal.Decimal
	HireDate            time.Time
	Status              Status
	FilePath            *string
	DeductionPercentage decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusTerminated
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// NetShare is the part of amount the employee keeps after the deduction percentage.
func (e Employee) NetShare(amount decimal.Decimal) decimal.Decimal {
	keep := decimal.NewFromInt(1).Sub(e.DeductionPercentage.Div(decimal.NewFromInt(100)))
	return amount.Mul(keep)
}

// SplitName turns a single display name into first and last name on the first space.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}
