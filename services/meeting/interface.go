package meeting

import (
	"context"
	"time"
)

// MeetingService creates calendar meetings for online consultations via the
// external meeting-link function. A failure here aborts the scheduling
// transition before anything is written.
type MeetingService interface {
	CreateMeeting(ctx context.Context, appointmentDate time.Time, clientEmail string) (string, error)
}
