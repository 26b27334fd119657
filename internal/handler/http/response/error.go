package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		BadRequest(w, "You cannot delete your own account", nil)
	case errors.Is(err, user.ErrAdminAccessRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeEmailExists):
		Conflict(w, "Employee email already registered")
	case errors.Is(err, employee.ErrEmployeeAccessDenied):
		Forbidden(w, "Access denied")
	case errors.Is(err, employee.ErrInvalidFileType):
		BadRequest(w, "Invalid file type: only jpg, jpeg, png, pdf allowed", nil)
	case errors.Is(err, employee.ErrEmployeeHasNoUser):
		BadRequest(w, "Employee has no linked user", nil)

	// Catalog domain errors
	case errors.Is(err, catalog.ErrPackageNotFound):
		NotFound(w, "Package not found")
	case errors.Is(err, catalog.ErrPackageNameExists):
		Conflict(w, "Package name already exists")
	case errors.Is(err, catalog.ErrPackageInactive):
		BadRequest(w, "Package is not active", nil)

	// Revenue domain errors
	case errors.Is(err, revenue.ErrSaleNotFound):
		NotFound(w, "Sale not found")
	case errors.Is(err, revenue.ErrReceiptNotFound):
		NotFound(w, "Receipt not found")
	case errors.Is(err, revenue.ErrInvalidPackage):
		BadRequest(w, "Invalid or inactive package", nil)

	// Finance domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, charge.ErrAdminChargeNotFound):
		NotFound(w, "Admin charge not found")
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary not found")
	case errors.Is(err, salary.ErrNoWorkingDays):
		UnprocessableEntity(w, "Period contains no working days")
	case errors.Is(err, salary.ErrInvalidPeriod), errors.Is(err, period.ErrInvalidPeriod):
		UnprocessableEntity(w, err.Error())

	// Goal domain errors
	case errors.Is(err, goal.ErrGoalNotFound):
		NotFound(w, "Goal not found")
	case errors.Is(err, goal.ErrGoalAlreadyExists):
		Conflict(w, "Goal already exists for this employee and period")
	case errors.Is(err, goal.ErrCarryOverAlreadyProcessed):
		Conflict(w, "Carry-over already processed for this period")

	// Alert domain errors
	case errors.Is(err, alert.ErrAlertNotFound):
		NotFound(w, "Alert not found")
	case errors.Is(err, alert.ErrUnauthorized):
		Forbidden(w, "Access denied")
	case errors.Is(err, alert.ErrInvalidAlertType):
		BadRequest(w, "Invalid alert type", nil)

	// Analytics domain errors
	case errors.Is(err, analytics.ErrInvalidMonths),
		errors.Is(err, analytics.ErrInvalidYear),
		errors.Is(err, analytics.ErrInvalidObjective):
		BadRequest(w, err.Error(), nil)

	// Malformed identifiers that slipped past request validation
	case database.IsInvalidInput(err):
		UnprocessableEntity(w, "Invalid identifier format")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
