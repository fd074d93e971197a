package notification

import "context"

// NotificationRepository defines data access methods for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification Notification) error

	// ListByUser returns the most recent notifications for a user
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string, userID string) error
}
