package charge

import (
	"context"

	"github.com/shopspring/decimal"
)

type AdminChargeService interface {
	List(ctx context.Context) ([]AdminChargeResponse, error)
	Upsert(ctx context.Context, req UpsertAdminChargeRequest) (AdminChargeResponse, error)
	// ChargesFor resolves the costs applicable to (month, year): that month's row,
	// else the most recent row, else zero.
	ChargesFor(ctx context.Context, month, year int) (decimal.Decimal, error)
	DailySummary(ctx context.Context) (DailySummary, error)
}
