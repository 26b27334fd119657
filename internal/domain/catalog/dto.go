package catalog

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PackageResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

func ToResponse(p Package) PackageResponse {
	return PackageResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

type CreatePackageRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
}

func (r *CreatePackageRequest) Validate() error {
	errs := validator.Struct(r)
	return errs.Err()
}

type UpdatePackageRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (r *UpdatePackageRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	return errs.Err()
}
