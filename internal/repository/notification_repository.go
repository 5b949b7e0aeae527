package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/airport-dashboard/internal/domain"
)

// NotificationRepository handles persistence for staff notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.StaffNotification) error
	GetByID(ctx context.Context, id string) (*domain.StaffNotification, error)
	ListByRecipient(ctx context.Context, recipientID string, onlyPending bool) ([]domain.StaffNotification, error)
	ListBySender(ctx context.Context, senderID string) ([]domain.StaffNotification, error)
	Acknowledge(ctx context.Context, id string, at time.Time) (bool, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates the repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationColumns = "id, sender_id, recipient_id, airport_code, message, priority, status, attachment_url, created_at, acknowledged_at"

func (r *notificationRepository) Create(ctx context.Context, n *domain.StaffNotification) error {
	const query = `
        INSERT INTO staff_notifications (id, sender_id, recipient_id, airport_code, message, priority, status, attachment_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		n.ID,
		n.SenderID,
		n.RecipientID,
		n.AirportCode,
		n.Message,
		n.Priority,
		n.Status,
		n.AttachmentURL,
	).Scan(&n.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.StaffNotification, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff_notifications WHERE id=$1`, notificationColumns)

	var n domain.StaffNotification
	if err := scanNotification(r.pool.QueryRow(ctx, query, id), &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, onlyPending bool) ([]domain.StaffNotification, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff_notifications WHERE recipient_id=$1`, notificationColumns)
	if onlyPending {
		query += ` AND status='pending'`
	}
	query += ` ORDER BY created_at DESC`

	return r.queryMany(ctx, query, recipientID)
}

func (r *notificationRepository) ListBySender(ctx context.Context, senderID string) ([]domain.StaffNotification, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff_notifications WHERE sender_id=$1 ORDER BY created_at DESC`, notificationColumns)
	return r.queryMany(ctx, query, senderID)
}

// Acknowledge flips a pending notification to acknowledged. The status guard
// in the WHERE clause makes the first write win: a repeat acknowledgement
// matches zero rows and leaves acknowledged_at untouched.
func (r *notificationRepository) Acknowledge(ctx context.Context, id string, at time.Time) (bool, error) {
	const query = `
        UPDATE staff_notifications
        SET status='acknowledged', acknowledged_at=$2
        WHERE id=$1 AND status='pending'`

	cmd, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *notificationRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.StaffNotification, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.StaffNotification
	for rows.Next() {
		var n domain.StaffNotification
		if err := scanNotification(rows, &n); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func scanNotification(row pgx.Row, n *domain.StaffNotification) error {
	return row.Scan(
		&n.ID,
		&n.SenderID,
		&n.RecipientID,
		&n.AirportCode,
		&n.Message,
		&n.Priority,
		&n.Status,
		&n.AttachmentURL,
		&n.CreatedAt,
		&n.AcknowledgedAt,
	)
}
