package appointment

import (
	"context"
	"time"

	"lexaid/models"
)

// IntakeInput is the walk-in or online consultation request form.
type IntakeInput struct {
	ApplicantID    string                  `json:"applicantId"`
	ApplicantEmail string                  `json:"applicantEmail" binding:"required,email"`
	Applicant      models.ApplicantProfile `json:"applicant"`
	Request        models.LegalRequest     `json:"request"`
}

// TriageInput carries the eligibility decision for a pending request.
type TriageInput struct {
	Eligibility    string `json:"eligibility"`
	AssignedLawyer string `json:"assignedLawyer,omitempty"`
	DenialReason   string `json:"denialReason,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// ScheduleInput books a consultation slot for an approved request.
type ScheduleInput struct {
	Date     time.Time `json:"date"`
	ApptType string    `json:"apptType"`
}

// RescheduleInput moves a scheduled consultation to a new slot.
type RescheduleInput struct {
	Date     time.Time `json:"date"`
	ApptType string    `json:"apptType"`
	Reason   string    `json:"reason"`
}

// CompleteInput closes out a scheduled consultation.
type CompleteInput struct {
	ClientAttend      string `json:"clientAttend"`
	ProceedingNotes   string `json:"proceedingNotes,omitempty"`
	IBPParalegalStaff string `json:"ibpParalegalStaff,omitempty"`
	AssistingCounsel  string `json:"assistingCounsel,omitempty"`
	ReportFile        string `json:"reportFile,omitempty"`
}

// AppointmentService is the appointment lifecycle and query surface consumed
// by every role's screens.
type AppointmentService interface {
	Intake(ctx context.Context, actor models.User, in IntakeInput) (*models.Appointment, error)
	Approve(ctx context.Context, actor models.User, id string, in TriageInput) (*models.Appointment, error)
	Deny(ctx context.Context, actor models.User, id string, in TriageInput) (*models.Appointment, error)
	Schedule(ctx context.Context, actor models.User, id string, in ScheduleInput) (*models.Appointment, error)
	Reschedule(ctx context.Context, actor models.User, id string, in RescheduleInput) (*models.Appointment, error)
	Complete(ctx context.Context, actor models.User, id string, in CompleteInput) (*models.Appointment, error)

	Get(ctx context.Context, actor models.User, id string) (*models.Appointment, error)
	GetByControlNumber(ctx context.Context, controlNumber string) (*models.Appointment, error)
	List(ctx context.Context, actor models.User, filter models.AppointmentFilter, page models.PageRequest) (*models.AppointmentPage, error)

	SelectableDays(ctx context.Context, actor models.User, from time.Time, days int) ([]string, error)
	OpenSlots(ctx context.Context, actor models.User, lawyerID string, day time.Time) ([]time.Time, error)
}

// ReminderScheduler enqueues a consultation reminder to fire before the
// appointment date.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}
