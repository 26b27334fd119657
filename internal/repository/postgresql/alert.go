package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type alertRepositoryImpl struct {
	db *database.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *database.DB) alert.AlertRepository {
	return &alertRepositoryImpl{db: db}
}

const alertSelect = `
		SELECT a.id, a.employee_id, a.type, a.message, a.data, a.is_read, a.sent_at,
			   a.created_at, a.updated_at,
			   e.first_name || ' ' || e.last_name
		FROM alerts a
		LEFT JOIN employees e ON e.id = a.employee_id`

func scanAlert(row pgx.Row) (alert.Alert, error) {
	var a alert.Alert
	var dataJSON []byte

	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.Type,
		&a.Message,
		&dataJSON,
		&a.IsRead,
		&a.SentAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeName,
	)
	if err != nil {
		return alert.Alert{}, err
	}

	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &a.Data); err != nil {
			return alert.Alert{}, fmt.Errorf("failed to unmarshal alert data: %w", err)
		}
	}
	return a, nil
}

// Create creates a new alert
func (r *alertRepositoryImpl) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	created, err := r.CreateBatch(ctx, []alert.Alert{a})
	if err != nil {
		return alert.Alert{}, err
	}
	return created[0], nil
}

// CreateBatch inserts all alerts with one statement and returns them with ids
func (r *alertRepositoryImpl) CreateBatch(ctx context.Context, alerts []alert.Alert) ([]alert.Alert, error) {
	if len(alerts) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(alerts))
	valueArgs := make([]interface{}, 0, len(alerts)*5)

	for i, a := range alerts {
		dataJSON, err := json.Marshal(a.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal alert data: %w", err)
		}

		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		valueArgs = append(valueArgs, a.EmployeeID, string(a.Type), a.Message, dataJSON, a.SentAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO alerts (employee_id, type, message, data, sent_at)
		VALUES %s
		RETURNING id, is_read, created_at, updated_at
	`, strings.Join(valueStrings, ", "))

	rows, err := q.Query(ctx, query, valueArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to batch create alerts: %w", err)
	}
	defer rows.Close()

	created := make([]alert.Alert, len(alerts))
	copy(created, alerts)
	i := 0
	for rows.Next() {
		if err := rows.Scan(&created[i].ID, &created[i].IsRead, &created[i].CreatedAt, &created[i].UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan created alert: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to batch create alerts: %w", err)
	}

	return created, nil
}

// GetByID retrieves an alert by ID
func (r *alertRepositoryImpl) GetByID(ctx context.Context, id string) (alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanAlert(q.QueryRow(ctx, alertSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return alert.Alert{}, alert.ErrAlertNotFound
		}
		return alert.Alert{}, fmt.Errorf("failed to get alert: %w", err)
	}
	return found, nil
}

// List returns alerts newest first, optionally for a single employee
func (r *alertRepositoryImpl) List(ctx context.Context, employeeID *string) ([]alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if employeeID != nil {
		w.Add("a.employee_id = ?", *employeeID)
	}

	rows, err := q.Query(ctx, alertSelect+w.String()+` ORDER BY a.sent_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// CountUnread counts unread alerts
func (r *alertRepositoryImpl) CountUnread(ctx context.Context, employeeID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	w := whereBuilder{conds: []string{"is_read = FALSE"}}
	if employeeID != nil {
		w.Add("employee_id = ?", *employeeID)
	}

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM alerts`+w.String(), w.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

// MarkRead marks a single alert as read
func (r *alertRepositoryImpl) MarkRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE alerts SET is_read = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark alert as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return alert.ErrAlertNotFound
	}
	return nil
}

// MarkAllRead marks every unread alert as read and returns how many changed
func (r *alertRepositoryImpl) MarkAllRead(ctx context.Context, employeeID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	w := whereBuilder{conds: []string{"is_read = FALSE"}}
	if employeeID != nil {
		w.Add("employee_id = ?", *employeeID)
	}

	tag, err := q.Exec(ctx, `UPDATE alerts SET is_read = TRUE, updated_at = NOW()`+w.String(), w.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all alerts as read: %w", err)
	}
	return tag.RowsAffected(), nil
}
