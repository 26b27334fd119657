package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	// ListActive returns every employee with status active, ordered by creation time.
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	UpdateDeductionPercentage(ctx context.Context, id string, percentage decimal.Decimal) error
	UpdateFilePath(ctx context.Context, id string, path string) error
	Delete(ctx context.Context, id string) error
}
