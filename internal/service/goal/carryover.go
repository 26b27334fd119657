package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

// Goals opened by a carry-over assume a 30-day month.
const carryOverDays = 30

type CarryOverServiceImpl struct {
	transactor   postgresql.Transactor
	goalRepo     goal.GoalRepository
	ledger       goal.CarryOverLedger
	employeeRepo employee.EmployeeRepository
	alertRepo    alert.AlertRepository
	publisher    sse.Publisher
	now          func() time.Time
}

func NewCarryOverService(
	transactor postgresql.Transactor,
	goalRepo goal.GoalRepository,
	ledger goal.CarryOverLedger,
	employeeRepo employee.EmployeeRepository,
	alertRepo alert.AlertRepository,
	publisher sse.Publisher,
	now func() time.Time,
) goal.CarryOverService {
	return &CarryOverServiceImpl{
		transactor:   transactor,
		goalRepo:     goalRepo,
		ledger:       ledger,
		employeeRepo: employeeRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
		now:          now,
	}
}

// splitEvenly divides total into n shares truncated to cents. The residue, always in
// [0, n cents), goes to the first share so the shares add up to total and none is negative.
func splitEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	count := decimal.NewFromInt(int64(n))
	share := total.Div(count).Truncate(2)

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = share
	}
	shares[0] = share.Add(total.Sub(share.Mul(count)))
	return shares
}

// Run moves last month's unmet targets onto the current month of every active employee.
// A source month is processed at most once; a second run returns goal.ErrCarryOverAlreadyProcessed.
func (s *CarryOverServiceImpl) Run(ctx context.Context) (goal.CarryOverResult, error) {
	now := s.now()
	targetMonth, targetYear := int(now.Month()), now.Year()
	sourceMonth, sourceYear := period.PreviousMonth(targetMonth, targetYear)

	result := goal.CarryOverResult{
		SourceMonth:         sourceMonth,
		SourceYear:          sourceYear,
		TargetMonth:         targetMonth,
		TargetYear:          targetYear,
		TotalUnmet:          decimal.Zero,
		ContributingGoalIDs: []string{},
		Allocations:         []goal.CarryOverAllocation{},
	}

	previous, err := s.goalRepo.ListByPeriod(ctx, sourceMonth, sourceYear)
	if err != nil {
		return goal.CarryOverResult{}, fmt.Errorf("failed to list previous goals: %w", err)
	}
	for _, g := range previous {
		if unmet := g.Unmet(); unmet.IsPositive() {
			result.TotalUnmet = result.TotalUnmet.Add(unmet)
			result.ContributingGoalIDs = append(result.ContributingGoalIDs, g.ID)
		}
	}

	var recipients []employee.Employee
	if result.TotalUnmet.IsPositive() {
		if recipients, err = s.employeeRepo.ListActive(ctx); err != nil {
			return goal.CarryOverResult{}, fmt.Errorf("failed to list active employees: %w", err)
		}
	}

	var (
		created   []alert.Alert
		remaining []decimal.Decimal
	)
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		// The ledger row goes first: a concurrent or repeated run stops here before touching goals.
		if err := s.ledger.MarkProcessed(txCtx, goal.CarryOverRun{
			Month:       sourceMonth,
			Year:        sourceYear,
			TotalUnmet:  result.TotalUnmet,
			Recipients:  len(recipients),
			ProcessedAt: now,
		}); err != nil {
			return err
		}
		if len(recipients) == 0 {
			return nil
		}

		alerts := make([]alert.Alert, 0, len(recipients))
		for i, share := range splitEvenly(result.TotalUnmet, len(recipients)) {
			emp := recipients[i]
			allocation, g, err := s.allocate(txCtx, emp.ID, share, targetMonth, targetYear)
			if err != nil {
				return err
			}
			result.Allocations = append(result.Allocations, allocation)
			remaining = append(remaining, g.Remaining())

			alerts = append(alerts, alert.Alert{
				EmployeeID: emp.ID,
				Type:       alert.TypeGoalCarryOver,
				Message: fmt.Sprintf("Report d'objectif: %s€ ajoutés à votre objectif de %02d/%d, nouvel objectif: %s€",
					share.StringFixed(2), targetMonth, targetYear, g.MonthlyTarget.StringFixed(2)),
				Data: map[string]interface{}{
					"carry_over":     share.StringFixed(2),
					"monthly_target": g.MonthlyTarget.StringFixed(2),
					"remaining":      g.Remaining().StringFixed(2),
					"source_month":   sourceMonth,
					"source_year":    sourceYear,
				},
				SentAt: now,
			})
		}

		created, err = s.alertRepo.CreateBatch(txCtx, alerts)
		if err != nil {
			return fmt.Errorf("failed to create carry-over alerts: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, goal.ErrCarryOverAlreadyProcessed) {
			slog.Info("carry-over already processed", "month", sourceMonth, "year", sourceYear)
		}
		return goal.CarryOverResult{}, err
	}

	// Live pushes happen after commit; a dropped event never undoes the run.
	for i, a := range created {
		s.publisher.PublishToMany(
			[]string{sse.TopicEmployee(a.EmployeeID), sse.TopicAdmins},
			sse.Event{Name: alert.EventName(a.EmployeeID), Data: alert.Payload{Message: a.Message, Remaining: remaining[i]}},
		)
	}

	slog.Info("carry-over processed",
		"source_month", sourceMonth,
		"source_year", sourceYear,
		"total_unmet", result.TotalUnmet.StringFixed(2),
		"recipients", len(result.Allocations),
	)
	return result, nil
}

// allocate credits share to the employee's goal for (month, year), opening one if needed.
func (s *CarryOverServiceImpl) allocate(ctx context.Context, employeeID string, share decimal.Decimal, month, year int) (goal.CarryOverAllocation, goal.Goal, error) {
	existing, err := s.goalRepo.GetByEmployeePeriod(ctx, employeeID, month, year)
	switch {
	case err == nil:
		g, err := s.goalRepo.AddCarryOver(ctx, existing.ID, share)
		if err != nil {
			return goal.CarryOverAllocation{}, goal.Goal{}, fmt.Errorf("failed to add carry-over: %w", err)
		}
		return goal.CarryOverAllocation{EmployeeID: employeeID, GoalID: g.ID, Amount: share}, g, nil

	case errors.Is(err, goal.ErrGoalNotFound):
		g, err := s.goalRepo.Create(ctx, goal.Goal{
			EmployeeID:          employeeID,
			Month:               month,
			Year:                year,
			MonthlyTarget:       share,
			DailyTarget:         share.DivRound(decimal.NewFromInt(carryOverDays), 2),
			CurrentMonthlyTotal: decimal.Zero,
			RemainingDays:       carryOverDays,
			CarryOverAmount:     share,
		})
		if err != nil {
			return goal.CarryOverAllocation{}, goal.Goal{}, fmt.Errorf("failed to open carry-over goal: %w", err)
		}
		return goal.CarryOverAllocation{EmployeeID: employeeID, GoalID: g.ID, Amount: share, Created: true}, g, nil

	default:
		return goal.CarryOverAllocation{}, goal.Goal{}, err
	}
}

func (s *CarryOverServiceImpl) History(ctx context.Context) ([]goal.CarryOverRun, error) {
	runs, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list carry-over runs: %w", err)
	}
	return runs, nil
}
