package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// GoalServiceImpl serves both goal.GoalService and goal.GoalRefresher.
type GoalServiceImpl struct {
	goalRepo     goal.GoalRepository
	employeeRepo employee.EmployeeRepository
	aggregator   analytics.TurnoverAggregator
	loc          *time.Location
}

func NewGoalService(
	goalRepo goal.GoalRepository,
	employeeRepo employee.EmployeeRepository,
	aggregator analytics.TurnoverAggregator,
	loc *time.Location,
) *GoalServiceImpl {
	return &GoalServiceImpl{
		goalRepo:     goalRepo,
		employeeRepo: employeeRepo,
		aggregator:   aggregator,
		loc:          loc,
	}
}

// monthTotal is the employee's sales + receipts over the goal's calendar month.
func (s *GoalServiceImpl) monthTotal(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
	r := period.MonthRange(month, year, s.loc)
	t, err := s.aggregator.Turnover(ctx, &employeeID, r.Start, r.End)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate goal turnover: %w", err)
	}
	return t.Total, nil
}

// recompute refreshes the cached total of g, writing only when it changed.
func (s *GoalServiceImpl) recompute(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	total, err := s.monthTotal(ctx, g.EmployeeID, g.Month, g.Year)
	if err != nil {
		return goal.Goal{}, err
	}
	if !total.Equal(g.CurrentMonthlyTotal) {
		if err := s.goalRepo.UpdateCurrentTotal(ctx, g.ID, total); err != nil {
			return goal.Goal{}, err
		}
		g.CurrentMonthlyTotal = total
	}
	return g, nil
}

func (s *GoalServiceImpl) Create(ctx context.Context, req goal.CreateGoalRequest) (goal.GoalResponse, error) {
	if err := req.Validate(); err != nil {
		return goal.GoalResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return goal.GoalResponse{}, err
	}

	total, err := s.monthTotal(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return goal.GoalResponse{}, err
	}

	g, err := s.goalRepo.Create(ctx, goal.Goal{
		EmployeeID:          req.EmployeeID,
		Month:               req.Month,
		Year:                req.Year,
		MonthlyTarget:       req.MonthlyTarget.Round(2),
		DailyTarget:         req.DailyTarget.Round(2),
		CurrentMonthlyTotal: total,
		RemainingDays:       req.RemainingDays,
		CarryOverAmount:     decimal.Zero,
	})
	if err != nil {
		return goal.GoalResponse{}, err
	}
	return goal.ToResponse(g), nil
}

func (s *GoalServiceImpl) Update(ctx context.Context, req goal.UpdateGoalRequest) (goal.GoalResponse, error) {
	if err := req.Validate(); err != nil {
		return goal.GoalResponse{}, err
	}

	g, err := s.goalRepo.Update(ctx, req)
	if err != nil {
		return goal.GoalResponse{}, err
	}
	return goal.ToResponse(g), nil
}

func (s *GoalServiceImpl) Delete(ctx context.Context, id string) error {
	return s.goalRepo.Delete(ctx, id)
}

func (s *GoalServiceImpl) GetByID(ctx context.Context, id string) (goal.GoalResponse, error) {
	g, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return goal.GoalResponse{}, err
	}
	return goal.ToResponse(g), nil
}

func (s *GoalServiceImpl) GetForEmployee(ctx context.Context, employeeID string, month, year int) (goal.GoalResponse, error) {
	g, err := s.goalRepo.GetByEmployeePeriod(ctx, employeeID, month, year)
	if err != nil {
		return goal.GoalResponse{}, err
	}
	if g, err = s.recompute(ctx, g); err != nil {
		return goal.GoalResponse{}, err
	}
	return goal.ToResponse(g), nil
}

func (s *GoalServiceImpl) List(ctx context.Context, filter goal.GoalFilter) ([]goal.GoalResponse, error) {
	goals, err := s.goalRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	out := make([]goal.GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, goal.ToResponse(g))
	}
	return out, nil
}

func (s *GoalServiceImpl) RecomputeCurrentTotal(ctx context.Context, id string) (goal.GoalResponse, error) {
	g, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return goal.GoalResponse{}, err
	}
	if g, err = s.recompute(ctx, g); err != nil {
		return goal.GoalResponse{}, err
	}
	return goal.ToResponse(g), nil
}

// RefreshForEmployee recomputes the goal covering date, if the employee has one.
func (s *GoalServiceImpl) RefreshForEmployee(ctx context.Context, employeeID string, date time.Time) error {
	date = date.In(s.loc)
	g, err := s.goalRepo.GetByEmployeePeriod(ctx, employeeID, int(date.Month()), date.Year())
	if errors.Is(err, goal.ErrGoalNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.recompute(ctx, g)
	return err
}
