package salary

import "context"

type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id string) (Salary, error)
	// List orders by period_end DESC. PeriodStart/PeriodEnd filter on exact equality when set.
	List(ctx context.Context, filter SalaryFilter) ([]Salary, error)
}
