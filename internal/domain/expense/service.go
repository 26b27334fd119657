package expense

import "context"

type ExpenseService interface {
	List(ctx context.Context, filter ExpenseFilter) ([]ExpenseResponse, error)
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
}
