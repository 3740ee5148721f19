package notificationRepo

import (
	"context"

	"lexaid/models"
)

// NotificationRepository defines data access for notification documents.
// Documents are append-only except for the read flag.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}
