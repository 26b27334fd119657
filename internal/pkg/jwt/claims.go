package jwt

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var ErrMissingClaims = errors.New("authentication claims missing")

// Caller is the authenticated user behind a request, read from the verified access token.
type Caller struct {
	UserID     string
	Email      string
	Role       user.Role
	EmployeeID *string
}

// CanAccessEmployee: admins reach every employee, barbers only their own row.
func (c Caller) CanAccessEmployee(employeeID string) bool {
	if c.Role.IsAdmin() {
		return true
	}
	return c.EmployeeID != nil && *c.EmployeeID == employeeID
}

func CallerFromContext(ctx context.Context) (Caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return Caller{}, ErrMissingClaims
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Caller{}, ErrMissingClaims
	}

	c := Caller{UserID: userID}
	c.Email, _ = claims["email"].(string)
	if role, ok := claims["role"].(string); ok {
		c.Role = user.Role(role)
	}
	if empID, ok := claims["employee_id"].(string); ok && empID != "" {
		c.EmployeeID = &empID
	}
	return c, nil
}
