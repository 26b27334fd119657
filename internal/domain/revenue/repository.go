package revenue

import "context"

type SaleRepository interface {
	Create(ctx context.Context, sale Sale) (Sale, error)
	// GetByID only returns the sale when it belongs to employeeID.
	GetByID(ctx context.Context, employeeID, id string) (Sale, error)
	List(ctx context.Context, filter RevenueFilter) ([]Sale, error)
	Update(ctx context.Context, req UpdateSaleRequest) (Sale, error)
	Delete(ctx context.Context, employeeID, id string) error
}

type ReceiptRepository interface {
	Create(ctx context.Context, receipt Receipt) (Receipt, error)
	GetByID(ctx context.Context, employeeID, id string) (Receipt, error)
	List(ctx context.Context, filter RevenueFilter) ([]Receipt, error)
	Update(ctx context.Context, req UpdateReceiptRequest) (Receipt, error)
	Delete(ctx context.Context, employeeID, id string) error
}
