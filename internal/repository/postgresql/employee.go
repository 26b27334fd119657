package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, first_name, last_name, email, phone, position, salary, hire_date,
		status, file_path, deduction_percentage, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.Position,
		&e.Salary,
		&e.HireDate,
		&e.Status,
		&e.FilePath,
		&e.DeductionPercentage,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (e *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	found, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return found, nil
}

func (e *employeeRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			user_id, first_name, last_name, email, phone, position, salary, hire_date,
			status, file_path, deduction_percentage
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.Email,
		newEmployee.Phone,
		newEmployee.Position,
		newEmployee.Salary,
		newEmployee.HireDate,
		newEmployee.Status,
		newEmployee.FilePath,
		newEmployee.DeductionPercentage,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, "id = $1", id)
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return e.getOne(ctx, "user_id = $1", userID)
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var w whereBuilder
	if filter.Status != nil {
		w.Add("status = ?", *filter.Status)
	}
	if filter.Search != nil && *filter.Search != "" {
		w.Add("(first_name || ' ' || last_name) ILIKE ?", "%"+*filter.Search+"%")
	}

	query := `SELECT ` + employeeColumns + ` FROM employees` + w.String() + ` ORDER BY first_name, last_name`
	return e.list(ctx, query, w.args...)
}

// ListActive implements employee.EmployeeRepository. Rows come back in creation order so
// callers that need a stable "first" employee get the same one every time.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 ORDER BY created_at, id`
	return e.list(ctx, query, employee.StatusActive)
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var b setBuilder
	if req.FirstName != nil {
		b.Set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		b.Set("last_name", *req.LastName)
	}
	if req.Email != nil {
		b.Set("email", *req.Email)
	}
	if req.Phone != nil {
		b.Set("phone", *req.Phone)
	}
	if req.Position != nil {
		b.Set("position", *req.Position)
	}
	if req.Salary != nil {
		b.Set("salary", *req.Salary)
	}
	if req.HireDate != nil {
		b.Set("hire_date", *req.HireDate)
	}
	if req.Status != nil {
		b.Set("status", *req.Status)
	}
	if req.DeductionPercentage != nil {
		b.Set("deduction_percentage", *req.DeductionPercentage)
	}
	if b.Empty() {
		return e.GetByID(ctx, req.ID)
	}

	sql, args := b.Build("employees", "id = $w1", req.ID)
	updated, err := scanEmployee(q.QueryRow(ctx, sql+" RETURNING "+employeeColumns, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if database.IsUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", req.ID, err)
	}
	return updated, nil
}

// UpdateDeductionPercentage implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateDeductionPercentage(ctx context.Context, id string, percentage decimal.Decimal) error {
	return e.exec(ctx, `UPDATE employees SET deduction_percentage = $1, updated_at = NOW() WHERE id = $2`, percentage, id)
}

// UpdateFilePath implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateFilePath(ctx context.Context, id string, path string) error {
	return e.exec(ctx, `UPDATE employees SET file_path = $1, updated_at = NOW() WHERE id = $2`, path, id)
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return e.exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
}

func (e *employeeRepositoryImpl) exec(ctx context.Context, sql string, args ...interface{}) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to write employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
