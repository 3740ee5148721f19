package scheduling

import (
	"time"

	"lexaid/config"
	"lexaid/models"
)

// Rules describes the office consultation schedule. The zero value is not
// usable; construct with DefaultRules.
type Rules struct {
	// AllowedWeekdays lists the weekdays consultations may be booked on.
	// Ignored when AnyWeekday is set (staff calendars allow every weekday).
	AllowedWeekdays []time.Weekday
	AnyWeekday      bool

	// OpenHour and CloseHour bound the daily window [OpenHour, CloseHour).
	OpenHour  int
	CloseHour int

	// DailyLimit is the number of consultations after which a calendar day
	// is fully booked. The limit is office-wide, not per lawyer.
	DailyLimit int

	// Location anchors every wall-clock check: weekday, daily window and
	// calendar-day membership. Stored dates decode in UTC while client
	// candidates carry their own offset, so both sides are converted into
	// this location before any field comparison. Nil falls back to UTC.
	Location *time.Location
}

// DefaultRules returns the office schedule: Tuesdays and Thursdays,
// 13:00-17:00, at most four consultations per day, evaluated in the
// configured office timezone.
func DefaultRules() Rules {
	loc, err := time.LoadLocation(config.AppConfig.OfficeTimezone)
	if err != nil {
		loc = time.UTC
	}
	return Rules{
		AllowedWeekdays: []time.Weekday{time.Tuesday, time.Thursday},
		OpenHour:        13,
		CloseHour:       17,
		DailyLimit:      4,
		Location:        loc,
	}
}

func (r Rules) loc() *time.Location {
	if r.Location != nil {
		return r.Location
	}
	return time.UTC
}

// DayBounds returns the start and end of t's calendar day in the office
// location, for range reads over stored appointments.
func (r Rules) DayBounds(t time.Time) (time.Time, time.Time) {
	d := t.In(r.loc())
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, r.loc())
	return start, start.AddDate(0, 0, 1)
}

// weekdayAllowed reports whether the rules permit booking on the given weekday.
func (r Rules) weekdayAllowed(d time.Weekday) bool {
	if r.AnyWeekday {
		return true
	}
	for _, w := range r.AllowedWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

// withinWindow reports whether the time falls inside the daily window,
// office time.
func (r Rules) withinWindow(t time.Time) bool {
	h := t.In(r.loc()).Hour()
	return h >= r.OpenHour && h < r.CloseHour
}

// sameMinute keys slot conflicts on the instant truncated to the minute. A
// stored UTC date and a client-offset candidate naming the same moment
// collide regardless of their zones; back-to-back bookings at different
// minutes do not.
func sameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}

// sameDay reports whether two times fall on the same office calendar day.
func (r Rules) sameDay(a, b time.Time) bool {
	loc := r.loc()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// countOnDay counts scheduled consultations on the candidate's office
// calendar day that fall within the daily window, across all lawyers.
func (r Rules) countOnDay(day time.Time, existing []models.Appointment) int {
	n := 0
	for _, a := range existing {
		if a.AppointmentDate == nil {
			continue
		}
		d := *a.AppointmentDate
		if r.sameDay(d, day) && r.withinWindow(d) {
			n++
		}
	}
	return n
}

// IsFullyBooked reports whether the calendar day has reached the office-wide
// consultation limit.
func (r Rules) IsFullyBooked(day time.Time, existing []models.Appointment) bool {
	return r.countOnDay(day, existing) >= r.DailyLimit
}

// holidayBlocked reports whether the holiday exclusion applies and the day is
// a public holiday. The exclusion belongs to the any-weekday staff calendar;
// the base Tue/Thu calendar books through holidays.
func (r Rules) holidayBlocked(t time.Time, holidays []models.Holiday) bool {
	return r.AnyWeekday && IsHoliday(t.In(r.loc()), holidays)
}

// IsSlotFree decides whether the candidate date/time is bookable for the
// lawyer, given the currently scheduled appointments and holiday calendar.
// It is a pure predicate: absent or invalid inputs are treated as not free.
func (r Rules) IsSlotFree(lawyerID string, candidate time.Time, now time.Time, existing []models.Appointment, holidays []models.Holiday) bool {
	if lawyerID == "" || candidate.IsZero() {
		return false
	}
	if !candidate.After(now) {
		return false
	}
	if !r.weekdayAllowed(candidate.In(r.loc()).Weekday()) {
		return false
	}
	if !r.withinWindow(candidate) {
		return false
	}
	if r.holidayBlocked(candidate, holidays) {
		return false
	}
	if r.IsFullyBooked(candidate, existing) {
		return false
	}
	for _, a := range existing {
		if a.AppointmentDate == nil {
			continue
		}
		if a.AssignedLawyer == lawyerID && sameMinute(*a.AppointmentDate, candidate) {
			return false
		}
	}
	return true
}

// IsHoliday reports whether the candidate day appears in the holiday calendar.
func IsHoliday(day time.Time, holidays []models.Holiday) bool {
	key := day.Format("2006-01-02")
	for _, h := range holidays {
		if h.Date == key {
			return true
		}
	}
	return false
}

// SelectableDays returns the calendar days (YYYY-MM-DD, office time) inside
// [from, from+days) that a consultation could still be booked on: an allowed
// weekday, not excluded as a holiday, and not fully booked.
func (r Rules) SelectableDays(from time.Time, days int, existing []models.Appointment, holidays []models.Holiday) []string {
	var out []string
	start := from.In(r.loc())
	for offset := 0; offset < days; offset++ {
		day := start.AddDate(0, 0, offset)
		if !r.weekdayAllowed(day.Weekday()) {
			continue
		}
		if r.holidayBlocked(day, holidays) {
			continue
		}
		if r.IsFullyBooked(day, existing) {
			continue
		}
		out = append(out, day.Format("2006-01-02"))
	}
	return out
}

// OpenSlots lists the bookable times on a day for a lawyer, on the hour and
// half hour inside the daily window, office time.
func (r Rules) OpenSlots(lawyerID string, day time.Time, now time.Time, existing []models.Appointment, holidays []models.Holiday) []time.Time {
	var out []time.Time
	d := day.In(r.loc())
	for hour := r.OpenHour; hour < r.CloseHour; hour++ {
		for _, minute := range []int{0, 30} {
			candidate := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, r.loc())
			if r.IsSlotFree(lawyerID, candidate, now, existing, holidays) {
				out = append(out, candidate)
			}
		}
	}
	return out
}
