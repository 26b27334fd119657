package alert

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ============= Request DTOs =============

// CreateAlertRequest is the admin-facing create body
type CreateAlertRequest struct {
	EmployeeID string                 `json:"employee_id"`
	Type       AlertType              `json:"type"`
	Message    string                 `json:"message"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

func (r *CreateAlertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if !r.Type.IsValid() {
		names := make([]string, 0, len(AllAlertTypes()))
		for _, t := range AllAlertTypes() {
			names = append(names, string(t))
		}
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: " + strings.Join(names, ", ")})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Scope limits which alerts a caller sees. Restricted callers only reach EmployeeID's alerts;
// unrestricted callers see everything, or EmployeeID's alerts when it is set.
type Scope struct {
	EmployeeID *string
	Restricted bool
}

// Allows reports whether an alert addressed to employeeID is reachable.
func (s Scope) Allows(employeeID string) bool {
	if !s.Restricted {
		return true
	}
	return s.EmployeeID != nil && *s.EmployeeID == employeeID
}

// ============= Response DTOs =============

// AlertResponse represents an alert in API responses
type AlertResponse struct {
	ID           string                 `json:"id"`
	EmployeeID   string                 `json:"employee_id"`
	EmployeeName *string                `json:"employee_name,omitempty"`
	Type         AlertType              `json:"type"`
	Message      string                 `json:"message"`
	Data         map[string]interface{} `json:"data,omitempty"`
	IsRead       bool                   `json:"is_read"`
	SentAt       time.Time              `json:"sent_at"`
}

func ToResponse(a Alert) AlertResponse {
	return AlertResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Type:         a.Type,
		Message:      a.Message,
		Data:         a.Data,
		IsRead:       a.IsRead,
		SentAt:       a.SentAt,
	}
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ============= Live payload =============

// Payload is what connected clients receive on alert_<employeeId>
type Payload struct {
	Message   string          `json:"message"`
	Remaining decimal.Decimal `json:"remaining"`
}
