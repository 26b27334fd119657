package alert

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
)

type AlertServiceImpl struct {
	alertRepo    alert.AlertRepository
	employeeRepo employee.EmployeeRepository
}

func NewAlertService(alertRepo alert.AlertRepository, employeeRepo employee.EmployeeRepository) alert.AlertService {
	return &AlertServiceImpl{
		alertRepo:    alertRepo,
		employeeRepo: employeeRepo,
	}
}

// target resolves which employee's alerts a scope reaches; nil means all of them.
func target(scope alert.Scope) (*string, error) {
	if scope.Restricted && scope.EmployeeID == nil {
		return nil, employee.ErrEmployeeNotFound
	}
	return scope.EmployeeID, nil
}

func (s *AlertServiceImpl) Create(ctx context.Context, req alert.CreateAlertRequest) (alert.AlertResponse, error) {
	if err := req.Validate(); err != nil {
		return alert.AlertResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return alert.AlertResponse{}, err
	}

	a, err := s.alertRepo.Create(ctx, alert.Alert{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Message:    req.Message,
		Data:       req.Data,
	})
	if err != nil {
		return alert.AlertResponse{}, err
	}
	return alert.ToResponse(a), nil
}

func (s *AlertServiceImpl) List(ctx context.Context, scope alert.Scope) ([]alert.AlertResponse, error) {
	employeeID, err := target(scope)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	out := make([]alert.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alert.ToResponse(a))
	}
	return out, nil
}

func (s *AlertServiceImpl) UnreadCount(ctx context.Context, scope alert.Scope) (alert.UnreadCountResponse, error) {
	employeeID, err := target(scope)
	if err != nil {
		return alert.UnreadCountResponse{}, err
	}

	count, err := s.alertRepo.CountUnread(ctx, employeeID)
	if err != nil {
		return alert.UnreadCountResponse{}, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return alert.UnreadCountResponse{Count: count}, nil
}

// MarkRead returns alert.ErrUnauthorized when the alert belongs to an employee outside scope.
func (s *AlertServiceImpl) MarkRead(ctx context.Context, scope alert.Scope, id string) error {
	a, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !scope.Allows(a.EmployeeID) {
		return alert.ErrUnauthorized
	}
	return s.alertRepo.MarkRead(ctx, id)
}

func (s *AlertServiceImpl) MarkAllRead(ctx context.Context, scope alert.Scope) (int64, error) {
	employeeID, err := target(scope)
	if err != nil {
		return 0, err
	}

	n, err := s.alertRepo.MarkAllRead(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark alerts as read: %w", err)
	}
	return n, nil
}
