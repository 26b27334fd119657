package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

const expenseColumns = `id, category, amount, date, description, created_by, created_at, updated_at`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(&e.ID, &e.Category, &e.Amount, &e.Date, &e.Description, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *expenseRepositoryImpl) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (category, amount, date, description, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + expenseColumns

	created, err := scanExpense(q.QueryRow(ctx, query, e.Category, e.Amount, e.Date, e.Description, e.CreatedBy))
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanExpense(q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return found, nil
}

func (r *expenseRepositoryImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.Category != nil && *filter.Category != "" {
		w.Add("category = ?", *filter.Category)
	}
	if filter.StartDate != nil {
		w.Add("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		w.Add("date <= ?", *filter.EndDate)
	}

	rows, err := q.Query(ctx, `SELECT `+expenseColumns+` FROM expenses`+w.String()+` ORDER BY date DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepositoryImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	var b setBuilder
	if req.Category != nil {
		b.Set("category", *req.Category)
	}
	if req.Amount != nil {
		b.Set("amount", *req.Amount)
	}
	if req.Date != nil {
		b.Set("date", *req.Date)
	}
	if req.Description != nil {
		b.Set("description", *req.Description)
	}
	if b.Empty() {
		return r.GetByID(ctx, req.ID)
	}

	sql, args := b.Build("expenses", "id = $w1", req.ID)
	updated, err := scanExpense(q.QueryRow(ctx, sql+" RETURNING "+expenseColumns, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}
	return updated, nil
}

func (r *expenseRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

// Sum totals expenses dated inside [start, end].
func (r *expenseRepositoryImpl) Sum(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date >= $1::date AND date <= $2::date`,
		start, end,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
