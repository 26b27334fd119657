package charge

import "context"

type AdminChargeRepository interface {
	// Upsert inserts or replaces the row of (month, year).
	Upsert(ctx context.Context, c AdminCharge) (AdminCharge, error)
	GetByPeriod(ctx context.Context, month, year int) (AdminCharge, error)
	// GetLatest returns the row with the greatest (year, month).
	GetLatest(ctx context.Context) (AdminCharge, error)
	List(ctx context.Context) ([]AdminCharge, error)
}
