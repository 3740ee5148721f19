package models

import "time"

// Audit actions.
const (
	AuditIntake     = "intake"
	AuditApprove    = "approve"
	AuditDeny       = "deny"
	AuditSchedule   = "schedule"
	AuditReschedule = "reschedule"
	AuditComplete   = "complete"
	AuditUserUpdate = "user_update"
)

// AuditRecord is an append-only fact describing a change to an appointment or
// user. Records are keyed by (resource, resourceId, timestamp) and never
// overwritten.
type AuditRecord struct {
	ID         string         `bson:"id" json:"id"`
	ActorID    string         `bson:"actorId" json:"actorId"`
	Action     string         `bson:"action" json:"action"`
	Resource   string         `bson:"resource" json:"resource"` // "appointment" or "user"
	ResourceID string         `bson:"resourceId" json:"resourceId"`
	Changes    map[string]any `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp  time.Time      `bson:"timestamp" json:"timestamp"`
}
