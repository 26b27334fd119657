package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salarySelect = `
		SELECT s.id, s.employee_id, s.base_salary, s.commission_percentage, s.total_salary,
			   s.period_start, s.period_end, s.created_at,
			   e.first_name || ' ' || e.last_name
		FROM salaries s
		LEFT JOIN employees e ON e.id = s.employee_id`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.BaseSalary,
		&s.CommissionPercentage,
		&s.TotalSalary,
		&s.PeriodStart,
		&s.PeriodEnd,
		&s.CreatedAt,
		&s.EmployeeName,
	)
	return s, err
}

// Create stores amounts rounded to cents.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (employee_id, base_salary, commission_percentage, total_salary, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		s.EmployeeID,
		s.BaseSalary.Round(2),
		s.CommissionPercentage.Round(2),
		s.TotalSalary.Round(2),
		s.PeriodStart,
		s.PeriodEnd,
	).Scan(&id)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanSalary(q.QueryRow(ctx, salarySelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return found, nil
}

func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.EmployeeID != nil {
		w.Add("s.employee_id = ?", *filter.EmployeeID)
	}
	if filter.PeriodStart != nil {
		w.Add("s.period_start = ?", *filter.PeriodStart)
	}
	if filter.PeriodEnd != nil {
		w.Add("s.period_end = ?", *filter.PeriodEnd)
	}

	rows, err := q.Query(ctx, salarySelect+w.String()+` ORDER BY s.period_end DESC, s.created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var salaries []salary.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, s)
	}
	return salaries, rows.Err()
}
