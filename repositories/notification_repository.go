package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/matchday/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID int, unreadOnly bool, page models.Page) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, userID, id int) error
	MarkAllRead(ctx context.Context, userID int) (int, error)
	MarkEmailSent(ctx context.Context, id int) error
}

type postgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, metadata, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_read, email_sent, created_at`

	var metadata interface{}
	if len(n.Metadata) > 0 {
		metadata = []byte(n.Metadata)
	}
	err := r.db.QueryRowContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, metadata, n.Priority,
	).Scan(&n.ID, &n.IsRead, &n.EmailSent, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification for user %d: %w", n.UserID, err)
	}
	return nil
}

func (r *postgresNotificationRepository) ListByUser(ctx context.Context, userID int, unreadOnly bool, page models.Page) ([]*models.Notification, int, error) {
	where := ` WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`+where, userID, unreadOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, type, title, message, metadata, priority, is_read, email_sent, created_at
		FROM notifications` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, userID, unreadOnly, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Notification, 0)
	for rows.Next() {
		n := &models.Notification{}
		var metadata []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &metadata,
			&n.Priority, &n.IsRead, &n.EmailSent, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification row: %w", err)
		}
		if len(metadata) > 0 {
			n.Metadata = metadata
		}
		list = append(list, n)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error during notification rows iteration: %w", err)
	}
	return list, total, nil
}

func (r *postgresNotificationRepository) MarkRead(ctx context.Context, userID, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}
	return checkAffectedRows(result, ErrNotificationNotFound)
}

func (r *postgresNotificationRepository) MarkAllRead(ctx context.Context, userID int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications of user %d read: %w", userID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return int(n), nil
}

func (r *postgresNotificationRepository) MarkEmailSent(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET email_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to flag email of notification %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrNotificationNotFound)
}
