package appointment

import (
	"context"
	"strings"
	"time"

	"lexaid/models"
)

// Get fetches one appointment, enforcing per-role visibility: clients see
// only their own requests and lawyers only their assigned caseload.
func (s *DefaultAppointmentService) Get(ctx context.Context, actor models.User, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch actor.MemberType {
	case models.RoleClient:
		if appt.ApplicantID != actor.ID {
			return nil, newValidationError("id", "appointment does not belong to this account")
		}
	case models.RoleLawyer:
		if appt.AssignedLawyer != actor.ID {
			return nil, newValidationError("id", "appointment is not assigned to this lawyer")
		}
	}
	return appt, nil
}

// GetByControlNumber resolves a printed or QR-encoded control number, used by
// the front-desk check-in flow.
func (s *DefaultAppointmentService) GetByControlNumber(ctx context.Context, controlNumber string) (*models.Appointment, error) {
	return s.Repo.GetByControlNumber(ctx, controlNumber)
}

// List returns a role-scoped, filtered, cursor-paged appointment listing.
//
// Free-text search runs as a store-side prefix range plus a case-insensitive
// substring post-filter over the fetched page, so matches outside that page
// are not returned. The resume cursor is taken from the page before the
// post-filter, so paging never skips store-side results.
func (s *DefaultAppointmentService) List(ctx context.Context, actor models.User, filter models.AppointmentFilter, page models.PageRequest) (*models.AppointmentPage, error) {
	switch actor.MemberType {
	case models.RoleLawyer:
		filter.AssignedLawyer = actor.ID
	case models.RoleClient:
		filter.ApplicantID = actor.ID
	}

	items, total, err := s.Repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(items) > 0 {
		last := items[len(items)-1]
		switch page.SortBy {
		case models.SortControlNumber:
			nextCursor = last.ControlNumber
		default:
			nextCursor = last.CreatedDate.Format(time.RFC3339Nano)
		}
	}

	if filter.Search != "" {
		items = substringFilter(items, filter.Search)
	}

	return &models.AppointmentPage{
		Items:      items,
		NextCursor: nextCursor,
		Total:      total,
	}, nil
}

// substringFilter keeps appointments whose name, address or contact number
// contains the search text, case-insensitively.
func substringFilter(items []models.Appointment, search string) []models.Appointment {
	needle := strings.ToLower(search)
	out := items[:0]
	for _, a := range items {
		if strings.Contains(strings.ToLower(a.Applicant.FullName), needle) ||
			strings.Contains(strings.ToLower(a.Applicant.Address), needle) ||
			strings.Contains(strings.ToLower(a.Applicant.ContactNumber), needle) {
			out = append(out, a)
		}
	}
	return out
}

// SelectableDays lists the calendar days still open for booking in the
// window starting at from.
func (s *DefaultAppointmentService) SelectableDays(ctx context.Context, actor models.User, from time.Time, days int) ([]string, error) {
	existing, err := s.Repo.ListScheduledBetween(ctx, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	holidays, err := s.Holidays.HolidaysForYear(ctx, from.Year())
	if err != nil {
		return nil, err
	}
	return s.rulesFor(actor).SelectableDays(from, days, existing, holidays), nil
}

// OpenSlots lists the bookable times for a lawyer on one day.
func (s *DefaultAppointmentService) OpenSlots(ctx context.Context, actor models.User, lawyerID string, day time.Time) ([]time.Time, error) {
	rules := s.rulesFor(actor)
	dayStart, dayEnd := rules.DayBounds(day)
	existing, err := s.Repo.ListScheduledBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	holidays, err := s.Holidays.HolidaysForYear(ctx, day.Year())
	if err != nil {
		return nil, err
	}
	return rules.OpenSlots(lawyerID, day, time.Now(), existing, holidays), nil
}
