package appointmentRepo

import (
	"context"
	"time"

	"lexaid/models"

	"go.mongodb.org/mongo-driver/bson"
)

// AppointmentRepository defines data access for appointment documents.
//
// UpdateFields and AppendReschedule are guarded partial updates: the write
// only lands if the document still carries expectedStatus, otherwise
// ErrStatusConflict is returned. This replaces the last-write-wins behavior
// two concurrent staff sessions would otherwise get.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByControlNumber(ctx context.Context, controlNumber string) (*models.Appointment, error)

	// List returns one page plus an unpaginated total for the same filter.
	List(ctx context.Context, filter models.AppointmentFilter, page models.PageRequest) ([]models.Appointment, int64, error)

	// UpdateFields applies a partial $set guarded on the current status.
	UpdateFields(ctx context.Context, id, expectedStatus string, fields bson.M) error
	// AppendReschedule pushes one history entry and applies the partial
	// update atomically, guarded on status "scheduled".
	AppendReschedule(ctx context.Context, id string, entry models.RescheduleEntry, fields bson.M) error

	// ListScheduledBetween returns scheduled appointments with a date inside
	// [from, to), across all lawyers.
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)

	// NextControlNumber issues the next sequential control number. The value
	// is stable once issued; it is printed and QR-encoded externally.
	NextControlNumber(ctx context.Context) (string, error)
}
