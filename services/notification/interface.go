package notification

import "context"

// NotificationService appends notification documents for users. Delivery is
// fire-and-forget: the document write is the only acknowledged effect, and a
// best-effort push may mirror it.
type NotificationService interface {
	Notify(ctx context.Context, userID, message, kind, relatedID string) error
}
