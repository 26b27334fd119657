package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/goal"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type goalRepositoryImpl struct {
	db *database.DB
}

func NewGoalRepository(db *database.DB) goal.GoalRepository {
	return &goalRepositoryImpl{db: db}
}

const goalSelect = `
		SELECT g.id, g.employee_id, g.month, g.year, g.monthly_target, g.daily_target,
			   g.current_monthly_total, g.remaining_days, g.carry_over_amount,
			   g.created_at, g.updated_at,
			   e.first_name || ' ' || e.last_name
		FROM goals g
		LEFT JOIN employees e ON e.id = g.employee_id`

func scanGoal(row pgx.Row) (goal.Goal, error) {
	var g goal.Goal
	err := row.Scan(
		&g.ID,
		&g.EmployeeID,
		&g.Month,
		&g.Year,
		&g.MonthlyTarget,
		&g.DailyTarget,
		&g.CurrentMonthlyTotal,
		&g.RemainingDays,
		&g.CarryOverAmount,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.EmployeeName,
	)
	return g, err
}

func (r *goalRepositoryImpl) Create(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO goals (
			employee_id, month, year, monthly_target, daily_target,
			current_monthly_total, remaining_days, carry_over_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		g.EmployeeID,
		g.Month,
		g.Year,
		g.MonthlyTarget.Round(2),
		g.DailyTarget.Round(2),
		g.CurrentMonthlyTotal.Round(2),
		g.RemainingDays,
		g.CarryOverAmount.Round(2),
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return goal.Goal{}, goal.ErrGoalAlreadyExists
		}
		return goal.Goal{}, fmt.Errorf("failed to create goal: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *goalRepositoryImpl) GetByID(ctx context.Context, id string) (goal.Goal, error) {
	return r.getOne(ctx, goalSelect+` WHERE g.id = $1`, id)
}

func (r *goalRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (goal.Goal, error) {
	return r.getOne(ctx, goalSelect+` WHERE g.employee_id = $1 AND g.month = $2 AND g.year = $3`, employeeID, month, year)
}

func (r *goalRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanGoal(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal.Goal{}, goal.ErrGoalNotFound
		}
		return goal.Goal{}, fmt.Errorf("failed to get goal: %w", err)
	}
	return found, nil
}

func (r *goalRepositoryImpl) List(ctx context.Context, filter goal.GoalFilter) ([]goal.Goal, error) {
	var w whereBuilder
	if filter.EmployeeID != nil {
		w.Add("g.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Month != nil {
		w.Add("g.month = ?", *filter.Month)
	}
	if filter.Year != nil {
		w.Add("g.year = ?", *filter.Year)
	}
	return r.list(ctx, goalSelect+w.String()+` ORDER BY g.year DESC, g.month DESC, e.first_name`, w.args...)
}

// ListByPeriod returns every goal of (month, year) in creation order.
func (r *goalRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]goal.Goal, error) {
	return r.list(ctx, goalSelect+` WHERE g.month = $1 AND g.year = $2 ORDER BY g.created_at, g.id`, month, year)
}

func (r *goalRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *goalRepositoryImpl) Update(ctx context.Context, req goal.UpdateGoalRequest) (goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	var b setBuilder
	if req.MonthlyTarget != nil {
		b.Set("monthly_target", req.MonthlyTarget.Round(2))
	}
	if req.DailyTarget != nil {
		b.Set("daily_target", req.DailyTarget.Round(2))
	}
	if req.RemainingDays != nil {
		b.Set("remaining_days", *req.RemainingDays)
	}
	if req.CarryOverAmount != nil {
		b.Set("carry_over_amount", req.CarryOverAmount.Round(2))
	}
	if b.Empty() {
		return r.GetByID(ctx, req.ID)
	}

	sql, args := b.Build("goals", "id = $w1", req.ID)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("failed to update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return goal.Goal{}, goal.ErrGoalNotFound
	}
	return r.GetByID(ctx, req.ID)
}

func (r *goalRepositoryImpl) UpdateCurrentTotal(ctx context.Context, id string, total decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE goals SET current_monthly_total = $1, updated_at = NOW() WHERE id = $2`,
		total.Round(2), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// AddCarryOver raises both the carry-over and the monthly target by amount in one statement.
func (r *goalRepositoryImpl) AddCarryOver(ctx context.Context, id string, amount decimal.Decimal) (goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE goals
		SET carry_over_amount = carry_over_amount + $1,
			monthly_target = monthly_target + $1,
			updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, amount.Round(2), id)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("failed to add carry-over: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return goal.Goal{}, goal.ErrGoalNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *goalRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

type carryOverLedgerImpl struct {
	db *database.DB
}

func NewCarryOverLedger(db *database.DB) goal.CarryOverLedger {
	return &carryOverLedgerImpl{db: db}
}

// MarkProcessed claims (month, year). A second claim for the same source period fails with
// goal.ErrCarryOverAlreadyProcessed, which rolls back the surrounding transaction.
func (l *carryOverLedgerImpl) MarkProcessed(ctx context.Context, run goal.CarryOverRun) error {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO carry_over_runs (month, year, total_unmet, recipients, processed_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, run.Month, run.Year, run.TotalUnmet.Round(2), run.Recipients, run.ProcessedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return goal.ErrCarryOverAlreadyProcessed
		}
		return fmt.Errorf("failed to record carry-over run: %w", err)
	}
	return nil
}

func (l *carryOverLedgerImpl) List(ctx context.Context) ([]goal.CarryOverRun, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, `
		SELECT month, year, total_unmet, recipients, processed_at
		FROM carry_over_runs
		ORDER BY year DESC, month DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list carry-over runs: %w", err)
	}
	defer rows.Close()

	var runs []goal.CarryOverRun
	for rows.Next() {
		var run goal.CarryOverRun
		if err := rows.Scan(&run.Month, &run.Year, &run.TotalUnmet, &run.Recipients, &run.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan carry-over run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
