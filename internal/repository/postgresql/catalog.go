package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type packageRepositoryImpl struct {
	db *database.DB
}

func NewPackageRepository(db *database.DB) catalog.PackageRepository {
	return &packageRepositoryImpl{db: db}
}

const packageColumns = `id, name, description, price, is_active, created_at, updated_at`

func scanPackage(row pgx.Row) (catalog.Package, error) {
	var p catalog.Package
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *packageRepositoryImpl) Create(ctx context.Context, pkg catalog.Package) (catalog.Package, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO packages (name, description, price, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + packageColumns

	created, err := scanPackage(q.QueryRow(ctx, query, pkg.Name, pkg.Description, pkg.Price, pkg.IsActive))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return catalog.Package{}, catalog.ErrPackageNameExists
		}
		return catalog.Package{}, fmt.Errorf("failed to create package: %w", err)
	}
	return created, nil
}

func (r *packageRepositoryImpl) GetByID(ctx context.Context, id string) (catalog.Package, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanPackage(q.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Package{}, catalog.ErrPackageNotFound
		}
		return catalog.Package{}, fmt.Errorf("failed to get package: %w", err)
	}
	return found, nil
}

func (r *packageRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]catalog.Package, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + packageColumns + ` FROM packages`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []catalog.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (r *packageRepositoryImpl) Update(ctx context.Context, req catalog.UpdatePackageRequest) (catalog.Package, error) {
	q := GetQuerier(ctx, r.db)

	var b setBuilder
	if req.Name != nil {
		b.Set("name", *req.Name)
	}
	if req.Description != nil {
		b.Set("description", *req.Description)
	}
	if req.Price != nil {
		b.Set("price", *req.Price)
	}
	if req.IsActive != nil {
		b.Set("is_active", *req.IsActive)
	}
	if b.Empty() {
		return r.GetByID(ctx, req.ID)
	}

	sql, args := b.Build("packages", "id = $w1", req.ID)
	updated, err := scanPackage(q.QueryRow(ctx, sql+" RETURNING "+packageColumns, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Package{}, catalog.ErrPackageNotFound
		}
		if database.IsUniqueViolation(err) {
			return catalog.Package{}, catalog.ErrPackageNameExists
		}
		return catalog.Package{}, fmt.Errorf("failed to update package: %w", err)
	}
	return updated, nil
}

// Deactivate hides a package from the public catalog; sales keep referencing it.
func (r *packageRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE packages SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrPackageNotFound
	}
	return nil
}
