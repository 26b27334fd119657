package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/charge"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adminChargeRepositoryImpl struct {
	db *database.DB
}

func NewAdminChargeRepository(db *database.DB) charge.AdminChargeRepository {
	return &adminChargeRepositoryImpl{db: db}
}

const adminChargeColumns = `id, month, year, rent, charges, operating_costs, electricity, salaries, created_at, updated_at`

func scanAdminCharge(row pgx.Row) (charge.AdminCharge, error) {
	var c charge.AdminCharge
	err := row.Scan(
		&c.ID,
		&c.Month,
		&c.Year,
		&c.Rent,
		&c.Charges,
		&c.OperatingCosts,
		&c.Electricity,
		&c.Salaries,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Upsert keeps one row per (month, year).
func (r *adminChargeRepositoryImpl) Upsert(ctx context.Context, c charge.AdminCharge) (charge.AdminCharge, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admin_charges (month, year, rent, charges, operating_costs, electricity, salaries)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (month, year) DO UPDATE SET
			rent = EXCLUDED.rent,
			charges = EXCLUDED.charges,
			operating_costs = EXCLUDED.operating_costs,
			electricity = EXCLUDED.electricity,
			salaries = EXCLUDED.salaries,
			updated_at = NOW()
		RETURNING ` + adminChargeColumns

	saved, err := scanAdminCharge(q.QueryRow(ctx, query,
		c.Month, c.Year, c.Rent, c.Charges, c.OperatingCosts, c.Electricity, c.Salaries,
	))
	if err != nil {
		return charge.AdminCharge{}, fmt.Errorf("failed to upsert admin charge: %w", err)
	}
	return saved, nil
}

func (r *adminChargeRepositoryImpl) GetByPeriod(ctx context.Context, month, year int) (charge.AdminCharge, error) {
	return r.getOne(ctx, `SELECT `+adminChargeColumns+` FROM admin_charges WHERE month = $1 AND year = $2`, month, year)
}

func (r *adminChargeRepositoryImpl) GetLatest(ctx context.Context) (charge.AdminCharge, error) {
	return r.getOne(ctx, `SELECT `+adminChargeColumns+` FROM admin_charges ORDER BY year DESC, month DESC LIMIT 1`)
}

func (r *adminChargeRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (charge.AdminCharge, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanAdminCharge(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return charge.AdminCharge{}, charge.ErrAdminChargeNotFound
		}
		return charge.AdminCharge{}, fmt.Errorf("failed to get admin charge: %w", err)
	}
	return found, nil
}

func (r *adminChargeRepositoryImpl) List(ctx context.Context) ([]charge.AdminCharge, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+adminChargeColumns+` FROM admin_charges ORDER BY year DESC, month DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin charges: %w", err)
	}
	defer rows.Close()

	var charges []charge.AdminCharge
	for rows.Next() {
		c, err := scanAdminCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin charge: %w", err)
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}
