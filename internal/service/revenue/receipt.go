package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
)

type ReceiptServiceImpl struct {
	receiptRepo  revenue.ReceiptRepository
	employeeRepo employee.EmployeeRepository
	effects      effects
	now          func() time.Time
}

func NewReceiptService(
	receiptRepo revenue.ReceiptRepository,
	employeeRepo employee.EmployeeRepository,
	refresher goal.GoalRefresher,
	invalidator analytics.CacheInvalidator,
	publisher sse.Publisher,
	now func() time.Time,
) revenue.ReceiptService {
	return &ReceiptServiceImpl{
		receiptRepo:  receiptRepo,
		employeeRepo: employeeRepo,
		effects:      effects{refresher: refresher, invalidator: invalidator, publisher: publisher},
		now:          now,
	}
}

func (s *ReceiptServiceImpl) List(ctx context.Context, filter revenue.RevenueFilter) ([]revenue.ReceiptResponse, error) {
	receipts, err := s.receiptRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	out := make([]revenue.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, revenue.ToReceiptResponse(r))
	}
	return out, nil
}

func (s *ReceiptServiceImpl) Create(ctx context.Context, req revenue.CreateReceiptRequest) (revenue.ReceiptResponse, error) {
	if err := req.Validate(); err != nil {
		return revenue.ReceiptResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return revenue.ReceiptResponse{}, err
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	receipt, err := s.receiptRepo.Create(ctx, revenue.Receipt{
		EmployeeID:  req.EmployeeID,
		ClientName:  req.ClientName,
		Amount:      req.Amount.Round(2),
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return revenue.ReceiptResponse{}, err
	}

	resp := revenue.ToReceiptResponse(receipt)
	s.effects.after(ctx, receipt.EmployeeID, []time.Time{receipt.Date}, sse.Event{
		Name: revenue.EventReceiptCreated,
		Data: revenue.ReceiptEvent{EmployeeID: receipt.EmployeeID, Receipt: resp},
	})
	return resp, nil
}

func (s *ReceiptServiceImpl) Update(ctx context.Context, req revenue.UpdateReceiptRequest) (revenue.ReceiptResponse, error) {
	if err := req.Validate(); err != nil {
		return revenue.ReceiptResponse{}, err
	}

	existing, err := s.receiptRepo.GetByID(ctx, req.EmployeeID, req.ID)
	if err != nil {
		return revenue.ReceiptResponse{}, err
	}
	if req.Amount != nil {
		rounded := req.Amount.Round(2)
		req.Amount = &rounded
	}

	receipt, err := s.receiptRepo.Update(ctx, req)
	if err != nil {
		return revenue.ReceiptResponse{}, err
	}

	resp := revenue.ToReceiptResponse(receipt)
	s.effects.after(ctx, receipt.EmployeeID, []time.Time{existing.Date, receipt.Date}, sse.Event{
		Name: revenue.EventReceiptUpdated,
		Data: revenue.ReceiptEvent{EmployeeID: receipt.EmployeeID, Receipt: resp},
	})
	return resp, nil
}

func (s *ReceiptServiceImpl) Delete(ctx context.Context, employeeID, id string) error {
	existing, err := s.receiptRepo.GetByID(ctx, employeeID, id)
	if err != nil {
		return err
	}
	if err := s.receiptRepo.Delete(ctx, employeeID, id); err != nil {
		return err
	}

	s.effects.after(ctx, employeeID, []time.Time{existing.Date}, sse.Event{
		Name: revenue.EventReceiptDeleted,
		Data: revenue.ReceiptEvent{EmployeeID: employeeID, Receipt: revenue.ToReceiptResponse(existing)},
	})
	return nil
}
