package alert

import "context"

// AlertRepository defines the alert repository interface
type AlertRepository interface {
	Create(ctx context.Context, a Alert) (Alert, error)
	CreateBatch(ctx context.Context, alerts []Alert) ([]Alert, error)
	GetByID(ctx context.Context, id string) (Alert, error)
	// List orders by sent_at DESC; a nil employeeID lists every alert.
	List(ctx context.Context, employeeID *string) ([]Alert, error)
	CountUnread(ctx context.Context, employeeID *string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, employeeID *string) (int64, error)
}
