package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
)

type ExpenseServiceImpl struct {
	expenseRepo expense.ExpenseRepository
}

func NewExpenseService(expenseRepo expense.ExpenseRepository) expense.ExpenseService {
	return &ExpenseServiceImpl{expenseRepo: expenseRepo}
}

func (s *ExpenseServiceImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	out := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expense.ToResponse(e))
	}
	return out, nil
}

// Create records an expense on behalf of req.CreatedBy, the calling user.
func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	e, err := s.expenseRepo.Create(ctx, expense.Expense{
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount.Round(2),
		Date:        date,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return expense.ToResponse(e), nil
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	e, err := s.expenseRepo.Update(ctx, req)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return expense.ToResponse(e), nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string) error {
	return s.expenseRepo.Delete(ctx, id)
}
