package postgresql

import (
	"context"
	"fmt"

	"github.com/dokterku/klinik-backend-go/internal/domain/notification"
	"github.com/dokterku/klinik-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// Create implements notification.NotificationRepository.
func (n *notificationRepository) Create(ctx context.Context, notif notification.Notification) error {
	q := GetQuerier(ctx, n.db)

	query := `
		INSERT INTO notifications (id, user_id, title, body)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, notif.ID, notif.UserID, notif.Title, notif.Body); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser implements notification.NotificationRepository.
func (n *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, n.db)

	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, title, body, read_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var notif notification.Notification
		err := rows.Scan(
			&notif.ID, &notif.UserID, &notif.Title, &notif.Body,
			&notif.ReadAt, &notif.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, notif)
	}

	return notifications, nil
}

// MarkRead implements notification.NotificationRepository.
func (n *notificationRepository) MarkRead(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications
		SET read_at = NOW()
		WHERE id = $1
		  AND user_id = $2
		  AND read_at IS NULL
	`

	if _, err := q.Exec(ctx, query, id, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}
