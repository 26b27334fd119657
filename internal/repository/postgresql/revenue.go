package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/revenue"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type saleRepositoryImpl struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) revenue.SaleRepository {
	return &saleRepositoryImpl{db: db}
}

const saleSelect = `
		SELECT s.id, s.employee_id, s.package_id, s.amount, s.client_name, s.description, s.date,
			   s.created_at, s.updated_at, p.name
		FROM sales s
		JOIN packages p ON p.id = s.package_id`

func scanSale(row pgx.Row) (revenue.Sale, error) {
	var s revenue.Sale
	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.PackageID,
		&s.Amount,
		&s.ClientName,
		&s.Description,
		&s.Date,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.PackageName,
	)
	return s, err
}

func revenueWhere(alias string, filter revenue.RevenueFilter) whereBuilder {
	var w whereBuilder
	w.Add(alias+".employee_id = ?", filter.EmployeeID)
	if filter.StartDate != nil {
		w.Add(alias+".date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		w.Add(alias+".date <= ?", *filter.EndDate)
	}
	return w
}

func (r *saleRepositoryImpl) Create(ctx context.Context, sale revenue.Sale) (revenue.Sale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sales (employee_id, package_id, amount, client_name, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		sale.EmployeeID,
		sale.PackageID,
		sale.Amount,
		sale.ClientName,
		sale.Description,
		sale.Date,
	).Scan(&id)
	if err != nil {
		return revenue.Sale{}, fmt.Errorf("failed to create sale: %w", err)
	}
	return r.GetByID(ctx, sale.EmployeeID, id)
}

func (r *saleRepositoryImpl) GetByID(ctx context.Context, employeeID, id string) (revenue.Sale, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanSale(q.QueryRow(ctx, saleSelect+` WHERE s.id = $1 AND s.employee_id = $2`, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return revenue.Sale{}, revenue.ErrSaleNotFound
		}
		return revenue.Sale{}, fmt.Errorf("failed to get sale: %w", err)
	}
	return found, nil
}

func (r *saleRepositoryImpl) List(ctx context.Context, filter revenue.RevenueFilter) ([]revenue.Sale, error) {
	q := GetQuerier(ctx, r.db)

	w := revenueWhere("s", filter)
	rows, err := q.Query(ctx, saleSelect+w.String()+` ORDER BY s.date DESC, s.created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []revenue.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *saleRepositoryImpl) Update(ctx context.Context, req revenue.UpdateSaleRequest) (revenue.Sale, error) {
	q := GetQuerier(ctx, r.db)

	var b setBuilder
	if req.PackageID != nil {
		b.Set("package_id", *req.PackageID)
	}
	if req.Amount != nil {
		b.Set("amount", *req.Amount)
	}
	if req.ClientName != nil {
		b.Set("client_name", *req.ClientName)
	}
	if req.Description != nil {
		b.Set("description", *req.Description)
	}
	if req.Date != nil {
		b.Set("date", *req.Date)
	}
	if b.Empty() {
		return r.GetByID(ctx, req.EmployeeID, req.ID)
	}

	sql, args := b.Build("sales", "id = $w1 AND employee_id = $w2", req.ID, req.EmployeeID)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return revenue.Sale{}, fmt.Errorf("failed to update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return revenue.Sale{}, revenue.ErrSaleNotFound
	}
	return r.GetByID(ctx, req.EmployeeID, req.ID)
}

func (r *saleRepositoryImpl) Delete(ctx context.Context, employeeID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return revenue.ErrSaleNotFound
	}
	return nil
}

type receiptRepositoryImpl struct {
	db *database.DB
}

func NewReceiptRepository(db *database.DB) revenue.ReceiptRepository {
	return &receiptRepositoryImpl{db: db}
}

const receiptColumns = `id, employee_id, client_name, amount, description, date, created_at, updated_at`

func scanReceipt(row pgx.Row) (revenue.Receipt, error) {
	var rc revenue.Receipt
	err := row.Scan(
		&rc.ID,
		&rc.EmployeeID,
		&rc.ClientName,
		&rc.Amount,
		&rc.Description,
		&rc.Date,
		&rc.CreatedAt,
		&rc.UpdatedAt,
	)
	return rc, err
}

func (r *receiptRepositoryImpl) Create(ctx context.Context, receipt revenue.Receipt) (revenue.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO receipts (employee_id, client_name, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + receiptColumns

	created, err := scanReceipt(q.QueryRow(ctx, query,
		receipt.EmployeeID,
		receipt.ClientName,
		receipt.Amount,
		receipt.Description,
		receipt.Date,
	))
	if err != nil {
		return revenue.Receipt{}, fmt.Errorf("failed to create receipt: %w", err)
	}
	return created, nil
}

func (r *receiptRepositoryImpl) GetByID(ctx context.Context, employeeID, id string) (revenue.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1 AND employee_id = $2`
	found, err := scanReceipt(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return revenue.Receipt{}, revenue.ErrReceiptNotFound
		}
		return revenue.Receipt{}, fmt.Errorf("failed to get receipt: %w", err)
	}
	return found, nil
}

func (r *receiptRepositoryImpl) List(ctx context.Context, filter revenue.RevenueFilter) ([]revenue.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	w := revenueWhere("r", filter)
	query := `SELECT ` + receiptColumns + ` FROM receipts r` + w.String() + ` ORDER BY r.date DESC, r.created_at DESC`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []revenue.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, rc)
	}
	return receipts, rows.Err()
}

func (r *receiptRepositoryImpl) Update(ctx context.Context, req revenue.UpdateReceiptRequest) (revenue.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	var b setBuilder
	if req.ClientName != nil {
		b.Set("client_name", *req.ClientName)
	}
	if req.Amount != nil {
		b.Set("amount", *req.Amount)
	}
	if req.Description != nil {
		b.Set("description", *req.Description)
	}
	if req.Date != nil {
		b.Set("date", *req.Date)
	}
	if b.Empty() {
		return r.GetByID(ctx, req.EmployeeID, req.ID)
	}

	sql, args := b.Build("receipts", "id = $w1 AND employee_id = $w2", req.ID, req.EmployeeID)
	updated, err := scanReceipt(q.QueryRow(ctx, sql+" RETURNING "+receiptColumns, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return revenue.Receipt{}, revenue.ErrReceiptNotFound
		}
		return revenue.Receipt{}, fmt.Errorf("failed to update receipt: %w", err)
	}
	return updated, nil
}

func (r *receiptRepositoryImpl) Delete(ctx context.Context, employeeID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM receipts WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return revenue.ErrReceiptNotFound
	}
	return nil
}
