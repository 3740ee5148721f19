package appointment

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "lexaid/database/repository/appointment"
	auditRepo "lexaid/database/repository/audit"
	userRepo "lexaid/database/repository/user"
	"lexaid/models"
	"lexaid/services/meeting"
	"lexaid/services/notification"
	"lexaid/services/scheduling"
	"lexaid/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultAppointmentService is the production implementation of
// AppointmentService.
type DefaultAppointmentService struct {
	Repo     appointmentRepo.AppointmentRepository
	Users    userRepo.UserRepository
	Audit    auditRepo.AuditRepository
	Notifier notification.NotificationService
	Meetings meeting.MeetingService
	Holidays scheduling.HolidaySource
	Rules    scheduling.Rules
	// Reminders may be nil; scheduling then simply skips the reminder task.
	Reminders ReminderScheduler
}

// Intake registers a new consultation request. The applicant profile and
// legal request are write-once; everything afterwards happens through the
// lifecycle transitions.
func (s *DefaultAppointmentService) Intake(ctx context.Context, actor models.User, in IntakeInput) (*models.Appointment, error) {
	if in.Applicant.FullName == "" {
		return nil, newValidationError("applicant.fullName", "applicant name is required")
	}
	if in.Applicant.ContactNumber == "" {
		return nil, newValidationError("applicant.contactNumber", "contact number is required")
	}
	if in.Request.Category == "" {
		return nil, newValidationError("request.category", "legal assistance category is required")
	}
	if in.Request.ProblemDescription == "" {
		return nil, newValidationError("request.problemDescription", "problem description is required")
	}

	controlNumber, err := s.Repo.NextControlNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}

	applicantID := in.ApplicantID
	if applicantID == "" {
		// Walk-in intake at the front desk: the record belongs to the
		// applicant, tracked by control number until an account is linked.
		applicantID = actor.ID
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:                uuid.New().String(),
		ControlNumber:     controlNumber,
		ApplicantID:       applicantID,
		ApplicantEmail:    in.ApplicantEmail,
		Applicant:         in.Applicant,
		Request:           in.Request,
		AppointmentStatus: models.StatusPending,
		CreatedDate:       now,
		UpdatedTime:       now,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}

	s.audit(ctx, actor, models.AuditIntake, appt.ID, map[string]any{
		"controlNumber": controlNumber,
		"category":      in.Request.Category,
	})
	return appt, nil
}

// Approve moves a pending request to approved, assigning a lawyer.
func (s *DefaultAppointmentService) Approve(ctx context.Context, actor models.User, id string, in TriageInput) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(appt.AppointmentStatus, models.StatusApproved); err != nil {
		return nil, err
	}
	if in.Eligibility != "yes" {
		return nil, newValidationError("eligibility", `approval requires eligibility "yes"`)
	}
	if in.AssignedLawyer == "" {
		return nil, newValidationError("assignedLawyer", "an assigned lawyer is required")
	}

	lawyer, err := s.Users.GetByID(ctx, in.AssignedLawyer)
	if err != nil {
		return nil, fmt.Errorf("approve: lawyer lookup failed: %w", err)
	}
	if lawyer.MemberType != models.RoleLawyer || lawyer.UserStatus != models.UserActive {
		return nil, newValidationError("assignedLawyer", "assigned lawyer must be an active lawyer account")
	}

	now := time.Now()
	fields := bson.M{
		"appointmentStatus": models.StatusApproved,
		"eligibility":       in.Eligibility,
		"notes":             in.Notes,
		"assignedLawyer":    in.AssignedLawyer,
		"updatedTime":       now,
	}
	if err := s.Repo.UpdateFields(ctx, id, models.StatusPending, fields); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Your consultation request %s has been approved and assigned to Atty. %s.",
		appt.ControlNumber, lawyer.FullName())
	s.notify(ctx, appt.ApplicantID, msg, models.NotifAppointmentApproved, appt.ID)
	s.notify(ctx, lawyer.ID,
		fmt.Sprintf("Consultation request %s has been assigned to you.", appt.ControlNumber),
		models.NotifAppointmentApproved, appt.ID)

	s.audit(ctx, actor, models.AuditApprove, appt.ID, map[string]any{
		"eligibility":    in.Eligibility,
		"assignedLawyer": in.AssignedLawyer,
	})

	return s.Repo.GetByID(ctx, id)
}

// Deny moves a pending request to denied with a reason from the fixed set.
func (s *DefaultAppointmentService) Deny(ctx context.Context, actor models.User, id string, in TriageInput) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(appt.AppointmentStatus, models.StatusDenied); err != nil {
		return nil, err
	}
	if in.Eligibility != "no" {
		return nil, newValidationError("eligibility", `denial requires eligibility "no"`)
	}
	if in.DenialReason != models.DenialMeansTestFailure && in.DenialReason != models.DenialAlreadyRepresented {
		return nil, newValidationError("denialReason", "denial reason must be one of the accepted grounds")
	}

	now := time.Now()
	fields := bson.M{
		"appointmentStatus": models.StatusDenied,
		"eligibility":       in.Eligibility,
		"denialReason":      in.DenialReason,
		"notes":             in.Notes,
		"updatedTime":       now,
	}
	if err := s.Repo.UpdateFields(ctx, id, models.StatusPending, fields); err != nil {
		return nil, err
	}

	s.notify(ctx, appt.ApplicantID,
		fmt.Sprintf("Your consultation request %s was not approved: %s.", appt.ControlNumber, in.DenialReason),
		models.NotifAppointmentDenied, appt.ID)
	s.notify(ctx, actor.ID,
		fmt.Sprintf("Request %s recorded as denied.", appt.ControlNumber),
		models.NotifAppointmentDenied, appt.ID)

	s.audit(ctx, actor, models.AuditDeny, appt.ID, map[string]any{
		"eligibility":  in.Eligibility,
		"denialReason": in.DenialReason,
	})

	return s.Repo.GetByID(ctx, id)
}

// Schedule books a consultation slot for an approved request. For online
// consultations, the meeting link is created first; when that collaborator
// fails, the transition aborts with no document write.
func (s *DefaultAppointmentService) Schedule(ctx context.Context, actor models.User, id string, in ScheduleInput) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(appt.AppointmentStatus, models.StatusScheduled); err != nil {
		return nil, err
	}
	if err := s.checkSlot(ctx, actor, appt.AssignedLawyer, in.Date, in.ApptType, ""); err != nil {
		return nil, err
	}

	meetingLink := ""
	if in.ApptType == models.ApptTypeOnline {
		meetingLink, err = s.Meetings.CreateMeeting(ctx, in.Date, appt.ApplicantEmail)
		if err != nil {
			return nil, fmt.Errorf("schedule: meeting creation failed: %w", err)
		}
	}

	now := time.Now()
	fields := bson.M{
		"appointmentStatus": models.StatusScheduled,
		"appointmentDate":   in.Date,
		"apptType":          in.ApptType,
		"updatedTime":       now,
	}
	if meetingLink != "" {
		fields["meetingLink"] = meetingLink
	}
	if err := s.Repo.UpdateFields(ctx, id, models.StatusApproved, fields); err != nil {
		return nil, err
	}

	when := in.Date.Format("January 2, 2006 at 3:04 PM")
	s.notify(ctx, appt.ApplicantID,
		fmt.Sprintf("Your consultation %s is scheduled for %s (%s).", appt.ControlNumber, when, in.ApptType),
		models.NotifAppointmentScheduled, appt.ID)
	s.notify(ctx, appt.AssignedLawyer,
		fmt.Sprintf("Consultation %s is scheduled for %s (%s).", appt.ControlNumber, when, in.ApptType),
		models.NotifAppointmentScheduled, appt.ID)

	s.audit(ctx, actor, models.AuditSchedule, appt.ID, map[string]any{
		"appointmentDate": in.Date,
		"apptType":        in.ApptType,
	})

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.scheduleReminder(ctx, *updated)
	return updated, nil
}

// Reschedule moves a scheduled consultation to a new slot, appending exactly
// one entry to the reschedule history.
func (s *DefaultAppointmentService) Reschedule(ctx context.Context, actor models.User, id string, in RescheduleInput) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(appt.AppointmentStatus, models.StatusScheduled); err != nil {
		return nil, err
	}
	if in.Reason == "" {
		return nil, newValidationError("reason", "a reschedule reason is required")
	}
	if appt.AppointmentDate == nil {
		return nil, newValidationError("appointmentDate", "appointment has no current date")
	}
	// The appointment being moved does not count against its own day, so a
	// consultation can shift within an otherwise full day.
	if err := s.checkSlot(ctx, actor, appt.AssignedLawyer, in.Date, in.ApptType, appt.ID); err != nil {
		return nil, err
	}

	// Reuse the existing meeting link when the consultation was already
	// online; create one only when it newly goes online.
	meetingLink := appt.MeetingLink
	if in.ApptType == models.ApptTypeOnline && meetingLink == "" {
		meetingLink, err = s.Meetings.CreateMeeting(ctx, in.Date, appt.ApplicantEmail)
		if err != nil {
			return nil, fmt.Errorf("reschedule: meeting creation failed: %w", err)
		}
	}

	now := time.Now()
	entry := models.RescheduleEntry{
		OldDate:   *appt.AppointmentDate,
		OldType:   appt.ApptType,
		Reason:    in.Reason,
		Timestamp: now,
	}
	fields := bson.M{
		"appointmentDate":  in.Date,
		"apptType":         in.ApptType,
		"rescheduleReason": in.Reason,
		"updatedTime":      now,
	}
	if meetingLink != "" {
		fields["meetingLink"] = meetingLink
	}
	if err := s.Repo.AppendReschedule(ctx, id, entry, fields); err != nil {
		return nil, err
	}

	when := in.Date.Format("January 2, 2006 at 3:04 PM")
	s.notify(ctx, appt.ApplicantID,
		fmt.Sprintf("Your consultation %s has been moved to %s.", appt.ControlNumber, when),
		models.NotifAppointmentMoved, appt.ID)
	s.notify(ctx, appt.AssignedLawyer,
		fmt.Sprintf("Consultation %s has been moved to %s.", appt.ControlNumber, when),
		models.NotifAppointmentMoved, appt.ID)

	s.audit(ctx, actor, models.AuditReschedule, appt.ID, map[string]any{
		"oldDate": entry.OldDate,
		"newDate": in.Date,
		"reason":  in.Reason,
	})

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.scheduleReminder(ctx, *updated)
	return updated, nil
}

// Complete closes out a scheduled consultation.
func (s *DefaultAppointmentService) Complete(ctx context.Context, actor models.User, id string, in CompleteInput) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(appt.AppointmentStatus, models.StatusDone); err != nil {
		return nil, err
	}
	if in.ClientAttend != "yes" && in.ClientAttend != "no" {
		return nil, newValidationError("clientAttend", `attendance must be "yes" or "no"`)
	}
	if in.ClientAttend == "yes" && in.ProceedingNotes == "" {
		return nil, newValidationError("proceedingNotes", "consultation notes are required when the client attended")
	}

	now := time.Now()
	fields := bson.M{
		"appointmentStatus": models.StatusDone,
		"clientAttend":      in.ClientAttend,
		"proceedingNotes":   in.ProceedingNotes,
		"ibpParalegalStaff": in.IBPParalegalStaff,
		"assistingCounsel":  in.AssistingCounsel,
		"updatedTime":       now,
	}
	if in.ReportFile != "" {
		fields["reportFile"] = in.ReportFile
	}
	if err := s.Repo.UpdateFields(ctx, id, models.StatusScheduled, fields); err != nil {
		return nil, err
	}

	s.notify(ctx, appt.ApplicantID,
		fmt.Sprintf("Your consultation %s has been completed.", appt.ControlNumber),
		models.NotifAppointmentDone, appt.ID)
	s.notify(ctx, appt.AssignedLawyer,
		fmt.Sprintf("Consultation %s is marked done.", appt.ControlNumber),
		models.NotifAppointmentDone, appt.ID)
	// The supervising head lawyer is looked up by role.
	if heads, herr := s.Users.ListByRole(ctx, models.RoleHead); herr == nil && len(heads) > 0 {
		s.notify(ctx, heads[0].ID,
			fmt.Sprintf("Consultation %s handled by the assigned lawyer is complete.", appt.ControlNumber),
			models.NotifAppointmentDone, appt.ID)
	}

	s.audit(ctx, actor, models.AuditComplete, appt.ID, map[string]any{
		"clientAttend": in.ClientAttend,
	})

	return s.Repo.GetByID(ctx, id)
}

// checkSlot validates a candidate slot against the availability rules using
// the currently scheduled appointments for that day and the holiday calendar.
// The conditional slot index remains the commit-time guard; this check only
// produces friendly errors before any collaborator call.
func (s *DefaultAppointmentService) checkSlot(ctx context.Context, actor models.User, lawyerID string, date time.Time, apptType, excludeID string) error {
	if date.IsZero() {
		return newValidationError("date", "an appointment date is required")
	}
	if apptType != models.ApptTypeInPerson && apptType != models.ApptTypeOnline {
		return newValidationError("apptType", `appointment type must be "in-person" or "online"`)
	}

	rules := s.rulesFor(actor)
	dayStart, dayEnd := rules.DayBounds(date)
	existing, err := s.Repo.ListScheduledBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("slot check: %w", err)
	}
	if excludeID != "" {
		kept := existing[:0]
		for _, a := range existing {
			if a.ID != excludeID {
				kept = append(kept, a)
			}
		}
		existing = kept
	}
	holidays, err := s.Holidays.HolidaysForYear(ctx, date.Year())
	if err != nil {
		return fmt.Errorf("slot check: %w", err)
	}

	if !rules.IsSlotFree(lawyerID, date, time.Now(), existing, holidays) {
		return &SlotUnavailableError{Reason: "the selected date and time cannot be booked"}
	}
	return nil
}

// rulesFor returns the schedule rules for the acting role. Lawyers and the
// head lawyer book on any weekday; every other role keeps the office days.
func (s *DefaultAppointmentService) rulesFor(actor models.User) scheduling.Rules {
	rules := s.Rules
	if actor.MemberType == models.RoleLawyer || actor.MemberType == models.RoleHead {
		rules.AnyWeekday = true
	}
	return rules
}

// notify appends a notification document; failures are logged and never
// block the transition that triggered them.
func (s *DefaultAppointmentService) notify(ctx context.Context, userID, message, kind, relatedID string) {
	if userID == "" {
		return
	}
	if err := s.Notifier.Notify(ctx, userID, message, kind, relatedID); err != nil {
		utils.GetLogger().Warn("notification write failed",
			zap.String("userID", userID), zap.String("kind", kind), zap.Error(err))
	}
}

// audit appends one audit record; failures are logged, not surfaced.
func (s *DefaultAppointmentService) audit(ctx context.Context, actor models.User, action, resourceID string, changes map[string]any) {
	rec := &models.AuditRecord{
		ID:         uuid.New().String(),
		ActorID:    actor.ID,
		Action:     action,
		Resource:   "appointment",
		ResourceID: resourceID,
		Changes:    changes,
		Timestamp:  time.Now(),
	}
	if err := s.Audit.Append(ctx, rec); err != nil {
		utils.GetLogger().Warn("audit append failed",
			zap.String("action", action), zap.String("resourceID", resourceID), zap.Error(err))
	}
}

func (s *DefaultAppointmentService) scheduleReminder(ctx context.Context, appt models.Appointment) {
	if s.Reminders == nil || appt.AppointmentDate == nil {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
		utils.GetLogger().Warn("reminder enqueue failed",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
