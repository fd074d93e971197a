package notification

import "time"

// Notification is a simple per-user inbox message. Delivery is best-effort:
// writers must not fail their own operation when an insert fails.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
