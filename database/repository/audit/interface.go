package auditRepo

import (
	"context"

	"lexaid/models"
)

// AuditRepository defines data access for the append-only audit log. There is
// deliberately no update or delete surface.
type AuditRepository interface {
	Append(ctx context.Context, rec *models.AuditRecord) error
	ListForResource(ctx context.Context, resource, resourceID string, limit int64) ([]models.AuditRecord, error)
	ListRecent(ctx context.Context, limit int64) ([]models.AuditRecord, error)
}
