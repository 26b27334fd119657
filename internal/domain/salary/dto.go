package salary

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATE ==========

type GenerateSalaryRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end"`   // YYYY-MM-DD
}

func (r *GenerateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: ErrInvalidPeriod.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TurnoverBreakdown mirrors the aggregator output for the generated period
type TurnoverBreakdown struct {
	Sales    decimal.Decimal `json:"sales"`
	Receipts decimal.Decimal `json:"receipts"`
	Total    decimal.Decimal `json:"total"`
}

type SalaryResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	TotalSalary          decimal.Decimal `json:"total_salary"`
	PeriodStart          string          `json:"period_start"`
	PeriodEnd            string          `json:"period_end"`
	CreatedAt            time.Time       `json:"created_at"`
}

func ToResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:                   s.ID,
		EmployeeID:           s.EmployeeID,
		EmployeeName:         s.EmployeeName,
		BaseSalary:           s.BaseSalary,
		CommissionPercentage: s.CommissionPercentage,
		TotalSalary:          s.TotalSalary,
		PeriodStart:          s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:            s.PeriodEnd.Format("2006-01-02"),
		CreatedAt:            s.CreatedAt,
	}
}

// GenerateSalaryResponse is the persisted record plus the breakdown used to compute it.
// The breakdown is not stored.
type GenerateSalaryResponse struct {
	SalaryResponse
	TurnoverBreakdown   TurnoverBreakdown `json:"turnover_breakdown"`
	Charges             decimal.Decimal   `json:"charges"`
	DeductionPercentage decimal.Decimal   `json:"deduction_percentage"`
	WorkingDays         int               `json:"working_days"`
	DailySalary         decimal.Decimal   `json:"daily_salary"`
}

// ========== LIST ==========

type SalaryFilter struct {
	EmployeeID  *string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}
