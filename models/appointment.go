package models

import "time"

// Appointment status values. Transitions move only along
// pending -> (approved | denied) -> scheduled -> done, with reschedules
// looping scheduled -> scheduled.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDenied    = "denied"
	StatusScheduled = "scheduled"
	StatusDone      = "done"
)

// Appointment type values.
const (
	ApptTypeInPerson = "in-person"
	ApptTypeOnline   = "online"
)

// Denial reasons accepted at triage.
const (
	DenialMeansTestFailure   = "means-test failure"
	DenialAlreadyRepresented = "already represented"
)

// ApplicantProfile is captured at intake and immutable afterwards.
type ApplicantProfile struct {
	FullName      string   `bson:"fullName" json:"fullName"`
	DateOfBirth   string   `bson:"dateOfBirth" json:"dateOfBirth"` // YYYY-MM-DD
	Address       string   `bson:"address" json:"address"`
	ContactNumber string   `bson:"contactNumber" json:"contactNumber"`
	Gender        string   `bson:"gender" json:"gender"`
	SpouseName    string   `bson:"spouseName,omitempty" json:"spouseName,omitempty"`
	Children      []string `bson:"children,omitempty" json:"children,omitempty"`
	Occupation    string   `bson:"occupation,omitempty" json:"occupation,omitempty"`
	EmployerName  string   `bson:"employerName,omitempty" json:"employerName,omitempty"`
	MonthlyIncome float64  `bson:"monthlyIncome,omitempty" json:"monthlyIncome,omitempty"`
}

// LegalRequest describes the assistance being asked for; write-once at intake.
type LegalRequest struct {
	Category           string   `bson:"category" json:"category"`
	ProblemDescription string   `bson:"problemDescription" json:"problemDescription"`
	DesiredSolution    string   `bson:"desiredSolution" json:"desiredSolution"`
	UploadedDocuments  []string `bson:"uploadedDocuments,omitempty" json:"uploadedDocuments,omitempty"`
}

// RescheduleEntry records one reschedule of a consultation. The history list
// is append-only.
type RescheduleEntry struct {
	OldDate   time.Time `bson:"oldDate" json:"oldDate"`
	OldType   string    `bson:"oldType" json:"oldType"`
	Reason    string    `bson:"reason" json:"reason"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Appointment is one consultation request, from intake through completion.
type Appointment struct {
	ID            string `bson:"id" json:"id"`
	ControlNumber string `bson:"controlNumber" json:"controlNumber"` // human-facing, stable once issued

	ApplicantID    string `bson:"applicantId" json:"applicantId"` // user account that owns the request
	ApplicantEmail string `bson:"applicantEmail" json:"applicantEmail"`

	Applicant ApplicantProfile `bson:"applicant" json:"applicant"`
	Request   LegalRequest     `bson:"request" json:"request"`

	AppointmentStatus string `bson:"appointmentStatus" json:"appointmentStatus"`

	// Triage fields, set once when the request is approved or denied.
	Eligibility  string `bson:"eligibility,omitempty" json:"eligibility,omitempty"` // "yes" or "no"
	DenialReason string `bson:"denialReason,omitempty" json:"denialReason,omitempty"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`

	AssignedLawyer string `bson:"assignedLawyer,omitempty" json:"assignedLawyer,omitempty"`

	// Scheduling fields.
	AppointmentDate *time.Time `bson:"appointmentDate,omitempty" json:"appointmentDate,omitempty"`
	ApptType        string     `bson:"apptType,omitempty" json:"apptType,omitempty"`
	MeetingLink     string     `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`

	RescheduleReason  string            `bson:"rescheduleReason,omitempty" json:"rescheduleReason,omitempty"`
	RescheduleHistory []RescheduleEntry `bson:"rescheduleHistory,omitempty" json:"rescheduleHistory,omitempty"`

	// Completion fields.
	ProceedingNotes   string `bson:"proceedingNotes,omitempty" json:"proceedingNotes,omitempty"`
	ClientAttend      string `bson:"clientAttend,omitempty" json:"clientAttend,omitempty"` // "yes" or "no"
	IBPParalegalStaff string `bson:"ibpParalegalStaff,omitempty" json:"ibpParalegalStaff,omitempty"`
	AssistingCounsel  string `bson:"assistingCounsel,omitempty" json:"assistingCounsel,omitempty"`
	ReportFile        string `bson:"reportFile,omitempty" json:"reportFile,omitempty"`

	CreatedDate time.Time `bson:"createdDate" json:"createdDate"`
	UpdatedTime time.Time `bson:"updatedTime" json:"updatedTime"` // caller-supplied, not server-authoritative
}
