package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, title, content, notification_type, partnership_id, is_read, created_at`

const notificationInsert = `
	INSERT INTO notifications (user_id, title, content, notification_type, partnership_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, is_read, created_at
`

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Content,
		&n.NotificationType,
		&n.PartnershipID,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning notification row: %w", err)
	}
	return &n, nil
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	err := r.db.QueryRow(ctx, notificationInsert,
		n.UserID, n.Title, n.Content, n.NotificationType, n.PartnershipID,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	return n.ID, nil
}

// CreateTx inserts a notification inside an existing transaction
func (r *NotificationRepository) CreateTx(ctx context.Context, tx pgx.Tx, n *models.Notification) (int64, error) {
	err := tx.QueryRow(ctx, notificationInsert,
		n.UserID, n.Title, n.Content, n.NotificationType, n.PartnershipID,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	return n.ID, nil
}

// GetByID retrieves a notification by id
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1`, notificationColumns)
	return scanNotification(r.db.QueryRow(ctx, query, id))
}

// ListByUser retrieves a user's notifications newest first, optionally only
// unread ones, with the total count for pagination.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	filter := ""
	if unreadOnly {
		filter = " AND is_read = FALSE"
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1` + filter
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM notifications
		WHERE user_id = $1%s
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, notificationColumns, filter)

	rows, err := r.db.Query(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

// UnreadCount counts a user's unread notifications
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read. Idempotent; returns
// the number of rows updated.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return result.RowsAffected(), nil
}

// Delete removes a notification
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
