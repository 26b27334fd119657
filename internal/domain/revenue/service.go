package revenue

import "context"

type SaleService interface {
	List(ctx context.Context, filter RevenueFilter) ([]SaleResponse, error)
	Create(ctx context.Context, req CreateSaleRequest) (SaleResponse, error)
	Update(ctx context.Context, req UpdateSaleRequest) (SaleResponse, error)
	Delete(ctx context.Context, employeeID, id string) error
}

type ReceiptService interface {
	List(ctx context.Context, filter RevenueFilter) ([]ReceiptResponse, error)
	Create(ctx context.Context, req CreateReceiptRequest) (ReceiptResponse, error)
	Update(ctx context.Context, req UpdateReceiptRequest) (ReceiptResponse, error)
	Delete(ctx context.Context, employeeID, id string) error
}
