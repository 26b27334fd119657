package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UploadFile(ctx context.Context, id string, file io.Reader, filename string) (UploadFileResponse, error)
	RemainingRevenue(ctx context.Context, id string) (RemainingRevenueResponse, error)
}
