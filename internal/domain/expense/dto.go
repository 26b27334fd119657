package expense

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToResponse(e Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.Date.Format("2006-01-02"),
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

type ExpenseFilter struct {
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateExpenseRequest struct {
	Category    string          `json:"category" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0.01"`
	Date        string          `json:"date" validate:"required"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	CreatedBy   string          `json:"-"`
}

func (r *CreateExpenseRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	if validator.IsEmpty(r.CreatedBy) {
		errs.Add("created_by", "created_by is required")
	}
	return errs.Err()
}

type UpdateExpenseRequest struct {
	ID          string           `json:"-"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Amount      *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0.01"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateExpenseRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	return errs.Err()
}
