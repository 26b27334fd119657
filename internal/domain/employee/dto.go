package employee

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID                  string          `json:"id"`
	UserID              *string         `json:"user_id,omitempty"`
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	FullName            string          `json:"full_name"`
	Email               *string         `json:"email,omitempty"`
	Phone               *string         `json:"phone,omitempty"`
	Position            string          `json:"position"`
	Salary              decimal.Decimal `json:"salary"`
	HireDate            string          `json:"hire_date"`
	Status              string          `json:"status"`
	FilePath            *string         `json:"file_path,omitempty"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		UserID:              e.UserID,
		FirstName:           e.FirstName,
		LastName:            e.LastName,
		FullName:            e.FullName(),
		Email:               e.Email,
		Phone:               e.Phone,
		Position:            e.Position,
		Salary:              e.Salary,
		HireDate:            e.HireDate.Format("2006-01-02"),
		Status:              string(e.Status),
		FilePath:            e.FilePath,
		DeductionPercentage: e.DeductionPercentage,
		CreatedAt:           e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           e.UpdatedAt.Format(time.RFC3339),
	}
}

type EmployeeFilter struct {
	Status *Status
	Search *string
}

type UpdateEmployeeRequest struct {
	ID                  string           `json:"-"`
	FirstName           *string          `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName            *string          `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email               *string          `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone               *string          `json:"phone,omitempty" validate:"omitempty,max=30"`
	Position            *string          `json:"position,omitempty" validate:"omitempty,min=2,max=100"`
	Salary              *decimal.Decimal `json:"salary,omitempty" validate:"omitempty,gte=0"`
	HireDate            *string          `json:"hire_date,omitempty"`
	Status              *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive terminated"`
	DeductionPercentage *decimal.Decimal `json:"deduction_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs.Add("hire_date", "hire_date must be in YYYY-MM-DD format")
		}
	}
	return errs.Err()
}

// RemainingRevenueResponse is the current-month revenue an employee keeps after deductions
type RemainingRevenueResponse struct {
	EmployeeID          string          `json:"employee_id"`
	Month               string          `json:"month"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	Sales               decimal.Decimal `json:"sales"`
	Receipts            decimal.Decimal `json:"receipts"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage"`
	Charges             decimal.Decimal `json:"charges"`
	RemainingRevenue    decimal.Decimal `json:"remaining_revenue"`
}

type UploadFileResponse struct {
	FilePath string `json:"file_path"`
	URL      string `json:"url"`
}
