package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	appointmentRepo "lexaid/database/repository/appointment"
	"lexaid/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeApptRepo is an in-memory AppointmentRepository mirroring the guarded
// update semantics of the Mongo implementation.
type fakeApptRepo struct {
	appts map[string]*models.Appointment
	seq   int64
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{appts: make(map[string]*models.Appointment)}
}

func (r *fakeApptRepo) Create(_ context.Context, appt *models.Appointment) error {
	cp := *appt
	// Stored dates come back in UTC, as the driver decodes them.
	if cp.AppointmentDate != nil {
		d := cp.AppointmentDate.UTC()
		cp.AppointmentDate = &d
	}
	r.appts[appt.ID] = &cp
	return nil
}

func (r *fakeApptRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	appt, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeApptRepo) GetByControlNumber(_ context.Context, cn string) (*models.Appointment, error) {
	for _, appt := range r.appts {
		if appt.ControlNumber == cn {
			cp := *appt
			return &cp, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (r *fakeApptRepo) List(_ context.Context, filter models.AppointmentFilter, page models.PageRequest) ([]models.Appointment, int64, error) {
	var all []models.Appointment
	for _, appt := range r.appts {
		if filter.Status != "" && filter.Status != "all" && appt.AppointmentStatus != filter.Status {
			continue
		}
		if filter.AssignedLawyer != "" && appt.AssignedLawyer != filter.AssignedLawyer {
			continue
		}
		if filter.ApplicantID != "" && appt.ApplicantID != filter.ApplicantID {
			continue
		}
		all = append(all, *appt)
	}
	total := int64(len(all))

	// Backward mirrors the store: re-query past the cursor in the opposite
	// direction, then reverse the page after the size cut.
	switch page.SortBy {
	case models.SortControlNumber:
		if page.Backward {
			sort.Slice(all, func(i, j int) bool { return all[i].ControlNumber > all[j].ControlNumber })
			if page.Cursor != "" {
				idx := 0
				for idx < len(all) && all[idx].ControlNumber >= page.Cursor {
					idx++
				}
				all = all[idx:]
			}
		} else {
			sort.Slice(all, func(i, j int) bool { return all[i].ControlNumber < all[j].ControlNumber })
			if page.Cursor != "" {
				idx := 0
				for idx < len(all) && all[idx].ControlNumber <= page.Cursor {
					idx++
				}
				all = all[idx:]
			}
		}
	default:
		if page.Backward {
			sort.Slice(all, func(i, j int) bool { return all[i].CreatedDate.Before(all[j].CreatedDate) })
			if page.Cursor != "" {
				at, err := time.Parse(time.RFC3339Nano, page.Cursor)
				if err != nil {
					return nil, 0, err
				}
				idx := 0
				for idx < len(all) && !all[idx].CreatedDate.After(at) {
					idx++
				}
				all = all[idx:]
			}
		} else {
			sort.Slice(all, func(i, j int) bool { return all[i].CreatedDate.After(all[j].CreatedDate) })
			if page.Cursor != "" {
				at, err := time.Parse(time.RFC3339Nano, page.Cursor)
				if err != nil {
					return nil, 0, err
				}
				idx := 0
				for idx < len(all) && !all[idx].CreatedDate.Before(at) {
					idx++
				}
				all = all[idx:]
			}
		}
	}

	size := page.Size
	if size <= 0 {
		size = 10
	}
	if int64(len(all)) > size {
		all = all[:size]
	}
	if page.Backward {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	return all, total, nil
}

func applyFields(appt *models.Appointment, fields bson.M) {
	for key, val := range fields {
		switch key {
		case "appointmentStatus":
			appt.AppointmentStatus = val.(string)
		case "eligibility":
			appt.Eligibility = val.(string)
		case "denialReason":
			appt.DenialReason = val.(string)
		case "notes":
			appt.Notes = val.(string)
		case "assignedLawyer":
			appt.AssignedLawyer = val.(string)
		case "appointmentDate":
			d := val.(time.Time).UTC()
			appt.AppointmentDate = &d
		case "apptType":
			appt.ApptType = val.(string)
		case "meetingLink":
			appt.MeetingLink = val.(string)
		case "rescheduleReason":
			appt.RescheduleReason = val.(string)
		case "clientAttend":
			appt.ClientAttend = val.(string)
		case "proceedingNotes":
			appt.ProceedingNotes = val.(string)
		case "ibpParalegalStaff":
			appt.IBPParalegalStaff = val.(string)
		case "assistingCounsel":
			appt.AssistingCounsel = val.(string)
		case "reportFile":
			appt.ReportFile = val.(string)
		case "updatedTime":
			appt.UpdatedTime = val.(time.Time)
		}
	}
}

func (r *fakeApptRepo) UpdateFields(_ context.Context, id, expectedStatus string, fields bson.M) error {
	appt, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if appt.AppointmentStatus != expectedStatus {
		return appointmentRepo.ErrStatusConflict
	}
	applyFields(appt, fields)
	return nil
}

func (r *fakeApptRepo) AppendReschedule(_ context.Context, id string, entry models.RescheduleEntry, fields bson.M) error {
	appt, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if appt.AppointmentStatus != models.StatusScheduled {
		return appointmentRepo.ErrStatusConflict
	}
	appt.RescheduleHistory = append(appt.RescheduleHistory, entry)
	applyFields(appt, fields)
	return nil
}

func (r *fakeApptRepo) ListScheduledBetween(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range r.appts {
		if appt.AppointmentStatus != models.StatusScheduled || appt.AppointmentDate == nil {
			continue
		}
		d := *appt.AppointmentDate
		if !d.Before(from) && d.Before(to) {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) NextControlNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("IBP-2026-%06d", r.seq), nil
}

// fakeUserRepo serves a fixed set of users.
type fakeUserRepo struct {
	users map[string]models.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAllSafe(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.MemberType == role && u.UserStatus == models.UserActive {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id string, fields bson.M) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("user not found")
	}
	for key, val := range fields {
		switch key {
		case "userStatus":
			u.UserStatus = val.(string)
		case "memberType":
			u.MemberType = val.(string)
		}
	}
	r.users[id] = u
	return nil
}

// fakeNotifier records appended notification documents.
type fakeNotifier struct {
	sent []models.Notification
}

func (n *fakeNotifier) Notify(_ context.Context, userID, message, kind, relatedID string) error {
	n.sent = append(n.sent, models.Notification{
		UserID: userID, Message: message, Type: kind, RelatedID: relatedID,
	})
	return nil
}

func (n *fakeNotifier) sentTo(userID string) int {
	count := 0
	for _, notif := range n.sent {
		if notif.UserID == userID {
			count++
		}
	}
	return count
}

// fakeAudit records appended audit entries.
type fakeAudit struct {
	recs []models.AuditRecord
}

func (a *fakeAudit) Append(_ context.Context, rec *models.AuditRecord) error {
	a.recs = append(a.recs, *rec)
	return nil
}

func (a *fakeAudit) ListForResource(_ context.Context, resource, resourceID string, _ int64) ([]models.AuditRecord, error) {
	var out []models.AuditRecord
	for _, rec := range a.recs {
		if rec.Resource == resource && rec.ResourceID == resourceID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (a *fakeAudit) ListRecent(_ context.Context, _ int64) ([]models.AuditRecord, error) {
	return a.recs, nil
}

// fakeMeetings returns a fixed link, or fails when broken.
type fakeMeetings struct {
	link   string
	broken bool
	calls  int
}

func (m *fakeMeetings) CreateMeeting(_ context.Context, _ time.Time, _ string) (string, error) {
	m.calls++
	if m.broken {
		return "", errors.New("meeting function unreachable")
	}
	if m.link == "" {
		return "https://meet.google.com/abc-defg-hij", nil
	}
	return m.link, nil
}

// fakeHolidays serves a static calendar.
type fakeHolidays struct {
	holidays []models.Holiday
}

func (h *fakeHolidays) HolidaysForYear(_ context.Context, _ int) ([]models.Holiday, error) {
	return h.holidays, nil
}

func isValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func containsIgnoreCase(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
