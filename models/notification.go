package models

import "time"

// Notification kinds.
const (
	NotifAppointmentApproved  = "appointment_approved"
	NotifAppointmentDenied    = "appointment_denied"
	NotifAppointmentScheduled = "appointment_scheduled"
	NotifAppointmentMoved     = "appointment_rescheduled"
	NotifAppointmentDone      = "appointment_done"
	NotifAppointmentReminder  = "appointment_reminder"
	NotifAccountUpdated       = "account_updated"
)

// Notification is one message addressed to a single user. Documents are only
// ever mutated to flip the read flag.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Message   string    `bson:"message" json:"message"`
	Type      string    `bson:"type" json:"type"`
	RelatedID string    `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
