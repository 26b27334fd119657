package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/salon-backend-go/internal/service/file"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
	aggregator   analytics.TurnoverAggregator
	now          func() time.Time
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	aggregator analytics.TurnoverAggregator,
	now func() time.Time,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		fileService:  fileService,
		aggregator:   aggregator,
		now:          now,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.ToResponse(e))
	}
	return out, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// UploadFile stores a document or photo for the employee and replaces the previous one.
func (s *EmployeeServiceImpl) UploadFile(ctx context.Context, id string, content io.Reader, filename string) (employee.UploadFileResponse, error) {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.UploadFileResponse{}, err
	}

	key, err := s.fileService.UploadEmployeeFile(ctx, id, content, filename)
	if err != nil {
		if errors.Is(err, file.ErrInvalidFileType) {
			return employee.UploadFileResponse{}, employee.ErrInvalidFileType
		}
		return employee.UploadFileResponse{}, err
	}

	if err := s.employeeRepo.UpdateFilePath(ctx, id, key); err != nil {
		return employee.UploadFileResponse{}, fmt.Errorf("failed to update file path: %w", err)
	}

	if existing.FilePath != nil && *existing.FilePath != key {
		if err := s.fileService.DeleteFile(ctx, *existing.FilePath); err != nil {
			slog.Warn("failed to delete previous employee file", "employee_id", id, "path", *existing.FilePath, "error", err)
		}
	}

	return employee.UploadFileResponse{FilePath: key, URL: s.fileService.FileURL(key)}, nil
}

// RemainingRevenue is the current-month turnover minus the salon's share of it.
func (s *EmployeeServiceImpl) RemainingRevenue(ctx context.Context, id string) (employee.RemainingRevenueResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.RemainingRevenueResponse{}, err
	}

	now := s.now()
	r := period.MonthRange(int(now.Month()), now.Year(), now.Location())
	t, err := s.aggregator.Turnover(ctx, &e.ID, r.Start, r.End)
	if err != nil {
		return employee.RemainingRevenueResponse{}, fmt.Errorf("failed to aggregate turnover: %w", err)
	}

	charges := t.Total.Mul(e.DeductionPercentage).Div(decimal.NewFromInt(100)).Round(2)
	return employee.RemainingRevenueResponse{
		EmployeeID:          e.ID,
		Month:               now.Format("2006-01"),
		TotalRevenue:        t.Total,
		Sales:               t.Sales,
		Receipts:            t.Receipts,
		DeductionPercentage: e.DeductionPercentage,
		Charges:             charges,
		RemainingRevenue:    t.Total.Sub(charges),
	}, nil
}
