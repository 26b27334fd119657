package alert

import "context"

// AlertService defines the alert service interface
type AlertService interface {
	Create(ctx context.Context, req CreateAlertRequest) (AlertResponse, error)
	List(ctx context.Context, scope Scope) ([]AlertResponse, error)
	UnreadCount(ctx context.Context, scope Scope) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, scope Scope, id string) error
	MarkAllRead(ctx context.Context, scope Scope) (int64, error)
}

// Notifier sends the scheduled objective reminders
type Notifier interface {
	SendDailyAlerts(ctx context.Context) (int, error)
}
