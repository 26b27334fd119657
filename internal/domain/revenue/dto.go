package revenue

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ============= Sales =============

type SaleResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	PackageID   string          `json:"package_id"`
	PackageName string          `json:"package_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ClientName  *string         `json:"client_name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToSaleResponse(s Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		EmployeeID:  s.EmployeeID,
		PackageID:   s.PackageID,
		PackageName: s.PackageName,
		Amount:      s.Amount,
		ClientName:  s.ClientName,
		Description: s.Description,
		Date:        s.Date,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type CreateSaleRequest struct {
	EmployeeID  string     `json:"-"`
	PackageID   string     `json:"package_id" validate:"required,uuid"`
	ClientName  *string    `json:"client_name,omitempty" validate:"omitempty,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        *time.Time `json:"date,omitempty"`
}

func (r *CreateSaleRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	return errs.Err()
}

type UpdateSaleRequest struct {
	ID          string     `json:"-"`
	EmployeeID  string     `json:"-"`
	PackageID   *string    `json:"package_id,omitempty" validate:"omitempty,uuid"`
	ClientName  *string    `json:"client_name,omitempty" validate:"omitempty,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        *time.Time `json:"date,omitempty"`

	// Set by the service when the package changes
	Amount *decimal.Decimal `json:"-"`
}

func (r *UpdateSaleRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	return errs.Err()
}

// ============= Receipts =============

type ReceiptResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	ClientName  string          `json:"client_name"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToReceiptResponse(r Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		ClientName:  r.ClientName,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type CreateReceiptRequest struct {
	EmployeeID  string          `json:"-"`
	ClientName  string          `json:"client_name" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0.01"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        *time.Time      `json:"date,omitempty"`
}

func (r *CreateReceiptRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	return errs.Err()
}

type UpdateReceiptRequest struct {
	ID          string           `json:"-"`
	EmployeeID  string           `json:"-"`
	ClientName  *string          `json:"client_name,omitempty" validate:"omitempty,min=1,max=100"`
	Amount      *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0.01"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        *time.Time       `json:"date,omitempty"`
}

func (r *UpdateReceiptRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	return errs.Err()
}

// RevenueFilter narrows listings to a date window; both bounds are optional.
type RevenueFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
}

// ============= Events =============

type SaleEvent struct {
	EmployeeID string       `json:"employee_id"`
	Sale       SaleResponse `json:"sale"`
}

type ReceiptEvent struct {
	EmployeeID string          `json:"employee_id"`
	Receipt    ReceiptResponse `json:"receipt"`
}
