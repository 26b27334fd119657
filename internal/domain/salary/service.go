package salary

import "context"

type SalaryService interface {
	Generate(ctx context.Context, req GenerateSalaryRequest) (GenerateSalaryResponse, error)
	GetByID(ctx context.Context, id string) (SalaryResponse, error)
	List(ctx context.Context, filter SalaryFilter) ([]SalaryResponse, error)
	// Export renders the filtered salaries as an XLSX workbook.
	Export(ctx context.Context, filter SalaryFilter) ([]byte, error)
}
