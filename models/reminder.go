package models

// ReminderPayload is the asynq task body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	FireDate      string `json:"fireDate"` // RFC3339 timestamp the reminder targets
}
