package user

import (
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// EmployeeSummary is the employee row joined onto a user listing
type EmployeeSummary struct {
	ID                  string          `json:"id"`
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	Position            string          `json:"position"`
	Status              string          `json:"status"`
	HireDate            string          `json:"hire_date"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	Siret     *string          `json:"siret,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	LogoPath  *string          `json:"logo_path,omitempty"`
	Employee  *EmployeeSummary `json:"employee,omitempty"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

// UserWithEmployee is what the repository returns for listings
type UserWithEmployee struct {
	User
	Employee *EmployeeSummary
}

func ToResponse(u User, emp *EmployeeSummary) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Siret:     u.Siret,
		Phone:     u.Phone,
		LogoPath:  u.LogoPath,
		Employee:  emp,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateBarberRequest creates a login (role user) and its employee row in one go.
type CreateBarberRequest struct {
	Email               string          `json:"email" validate:"required,email,max=254"`
	Password            string          `json:"password" validate:"required,min=14,max=255"`
	Name                string          `json:"name" validate:"required,min=2,max=200"`
	Position            string          `json:"position" validate:"required,min=2,max=100"`
	HireDate            string          `json:"hire_date" validate:"required"`
	Phone               *string         `json:"phone,omitempty" validate:"omitempty,max=30"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage" validate:"gte=0,lte=100"`
}

func (r *CreateBarberRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Password != "" && !validator.IsStrongPassword(r.Password) {
		errs.Add("password", "password must contain at least one uppercase letter, one lowercase letter, one number, and one special character")
	}
	if r.HireDate != "" {
		if _, ok := validator.IsValidDate(r.HireDate); !ok {
			errs.Add("hire_date", "hire_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// UpdateUserRequest never carries a password; password changes are not part of this endpoint.
type UpdateUserRequest struct {
	ID       string  `json:"-"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=superAdmin admin user"`
	Siret    *string `json:"siret,omitempty" validate:"omitempty,max=14"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

func (r *UpdateUserRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	return errs.Err()
}

type UpdateDeductionPercentageRequest struct {
	UserID              string          `json:"-"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage" validate:"gte=0,lte=100"`
}

func (r *UpdateDeductionPercentageRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	return errs.Err()
}
