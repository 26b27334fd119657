package salary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/spreadsheet"
	"github.com/shopspring/decimal"
)

type SalaryServiceImpl struct {
	salaryRepo    salary.SalaryRepository
	employeeRepo  employee.EmployeeRepository
	aggregator    analytics.TurnoverAggregator
	chargeService charge.AdminChargeService
	now           func() time.Time
}

func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	aggregator analytics.TurnoverAggregator,
	chargeService charge.AdminChargeService,
	now func() time.Time,
) salary.SalaryService {
	return &SalaryServiceImpl{
		salaryRepo:    salaryRepo,
		employeeRepo:  employeeRepo,
		aggregator:    aggregator,
		chargeService: chargeService,
		now:           now,
	}
}

// ========== GENERATE ==========

// Generate computes and stores the net daily salary of an employee over [PeriodStart, PeriodEnd]:
//
//	base  = turnover - charges
//	daily = base / working days (Sundays excluded)
//	net   = daily * (1 - deduction/100)
//
// Each call inserts a new row, even for a period that was generated before.
func (s *SalaryServiceImpl) Generate(ctx context.Context, req salary.GenerateSalaryRequest) (salary.GenerateSalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.GenerateSalaryResponse{}, err
	}

	loc := s.now().Location()
	start, _ := time.ParseInLocation("2006-01-02", req.PeriodStart, loc)
	end, _ := time.ParseInLocation("2006-01-02", req.PeriodEnd, loc)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return salary.GenerateSalaryResponse{}, err
	}

	workingDays := period.WorkingDays(start, end)
	if workingDays == 0 {
		return salary.GenerateSalaryResponse{}, salary.ErrNoWorkingDays
	}

	bounds := period.DayBounds(start, end)
	turnover, err := s.aggregator.Turnover(ctx, &emp.ID, bounds.Start, bounds.End)
	if err != nil {
		return salary.GenerateSalaryResponse{}, fmt.Errorf("failed to aggregate turnover: %w", err)
	}

	charges, err := s.chargeService.ChargesFor(ctx, int(end.Month()), end.Year())
	if err != nil {
		return salary.GenerateSalaryResponse{}, err
	}

	base := turnover.Total.Sub(charges)
	daily := base.Div(decimal.NewFromInt(int64(workingDays)))
	net := emp.NetShare(daily)

	saved, err := s.salaryRepo.Create(ctx, salary.Salary{
		EmployeeID:           emp.ID,
		BaseSalary:           base,
		CommissionPercentage: emp.DeductionPercentage,
		TotalSalary:          net,
		PeriodStart:          start,
		PeriodEnd:            end,
	})
	if err != nil {
		return salary.GenerateSalaryResponse{}, err
	}

	slog.Info("salary generated",
		"employee_id", emp.ID,
		"period_start", req.PeriodStart,
		"period_end", req.PeriodEnd,
		"total_salary", saved.TotalSalary.StringFixed(2),
	)

	return salary.GenerateSalaryResponse{
		SalaryResponse: salary.ToResponse(saved),
		TurnoverBreakdown: salary.TurnoverBreakdown{
			Sales:    turnover.Sales,
			Receipts: turnover.Receipts,
			Total:    turnover.Total,
		},
		Charges:             charges,
		DeductionPercentage: emp.DeductionPercentage,
		WorkingDays:         workingDays,
		DailySalary:         daily.Round(2),
	}, nil
}

// ========== READ ==========

func (s *SalaryServiceImpl) GetByID(ctx context.Context, id string) (salary.SalaryResponse, error) {
	sal, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToResponse(sal), nil
}

func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.SalaryResponse, error) {
	salaries, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}

	out := make([]salary.SalaryResponse, 0, len(salaries))
	for _, sal := range salaries {
		out = append(out, salary.ToResponse(sal))
	}
	return out, nil
}

// ========== EXPORT ==========

var exportHeaders = []string{"Employee", "Period start", "Period end", "Base salary", "Deduction %", "Net daily salary", "Generated at"}

func (s *SalaryServiceImpl) Export(ctx context.Context, filter salary.SalaryFilter) ([]byte, error) {
	salaries, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}

	rows := make([][]interface{}, 0, len(salaries))
	for _, sal := range salaries {
		name := sal.EmployeeID
		if sal.EmployeeName != nil {
			name = *sal.EmployeeName
		}
		rows = append(rows, []interface{}{
			name,
			sal.PeriodStart.Format("2006-01-02"),
			sal.PeriodEnd.Format("2006-01-02"),
			sal.BaseSalary.InexactFloat64(),
			sal.CommissionPercentage.InexactFloat64(),
			sal.TotalSalary.InexactFloat64(),
			sal.CreatedAt.Format(time.RFC3339),
		})
	}

	return spreadsheet.Build(spreadsheet.Sheet{
		Name:    "Salaries",
		Headers: exportHeaders,
		Rows:    rows,
		Widths:  []float64{28, 14, 14, 14, 12, 16, 24},
	})
}
