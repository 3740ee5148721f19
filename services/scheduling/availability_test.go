package scheduling

import (
	"testing"
	"time"

	"lexaid/models"
)

// 2026-09-01 is a Tuesday, 2026-09-03 a Thursday.
var (
	now      = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func scheduled(lawyerID string, t time.Time) models.Appointment {
	return models.Appointment{
		AppointmentStatus: models.StatusScheduled,
		AssignedLawyer:    lawyerID,
		AppointmentDate:   &t,
	}
}

func TestIsSlotFree_Window(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"before window", at(tuesday, 12, 59), false},
		{"window open", at(tuesday, 13, 0), true},
		{"mid window", at(tuesday, 15, 30), true},
		{"last free minute", at(tuesday, 16, 59), true},
		{"window close", at(tuesday, 17, 0), false},
		{"evening", at(tuesday, 19, 0), false},
		{"midnight", at(tuesday, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.IsSlotFree("L1", tt.candidate, now, nil, nil)
			if got != tt.want {
				t.Errorf("IsSlotFree(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestIsSlotFree_Weekdays(t *testing.T) {
	rules := DefaultRules()

	if rules.IsSlotFree("L1", at(monday, 14, 0), now, nil, nil) {
		t.Error("Monday should not be bookable under the base rules")
	}
	if !rules.IsSlotFree("L1", at(thursday, 14, 0), now, nil, nil) {
		t.Error("Thursday afternoon should be bookable")
	}

	anyDay := rules
	anyDay.AnyWeekday = true
	if !anyDay.IsSlotFree("L1", at(monday, 14, 0), now, nil, nil) {
		t.Error("Monday should be bookable with AnyWeekday set")
	}
}

func TestIsSlotFree_PastAndInvalid(t *testing.T) {
	rules := DefaultRules()

	past := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC) // a Tuesday before now
	if rules.IsSlotFree("L1", past, now, nil, nil) {
		t.Error("a past candidate must never be free")
	}
	if rules.IsSlotFree("", at(tuesday, 14, 0), now, nil, nil) {
		t.Error("missing lawyer must be treated as not free")
	}
	if rules.IsSlotFree("L1", time.Time{}, now, nil, nil) {
		t.Error("zero candidate must be treated as not free")
	}
}

func TestIsSlotFree_MinuteGranularity(t *testing.T) {
	rules := DefaultRules()
	existing := []models.Appointment{scheduled("L1", at(tuesday, 14, 0))}

	if rules.IsSlotFree("L1", at(tuesday, 14, 0), now, existing, nil) {
		t.Error("exact-minute match with same lawyer must not be free")
	}
	// Same hour, different minute is free: conflicts key on minute equality,
	// not interval overlap.
	if !rules.IsSlotFree("L1", at(tuesday, 14, 30), now, existing, nil) {
		t.Error("same hour at a different minute must be free")
	}
	if !rules.IsSlotFree("L2", at(tuesday, 14, 0), now, existing, nil) {
		t.Error("another lawyer is not blocked by L1's booking")
	}
}

func TestIsSlotFree_Holiday(t *testing.T) {
	rules := DefaultRules()
	holidays := []models.Holiday{{Date: "2026-09-01", Name: "Test Holiday", Type: "National holiday"}}

	// The holiday exclusion belongs to the any-weekday staff calendar; the
	// base Tue/Thu calendar books through holidays.
	if !rules.IsSlotFree("L1", at(tuesday, 14, 0), now, nil, holidays) {
		t.Error("the base calendar is not holiday-aware")
	}

	staff := rules
	staff.AnyWeekday = true
	if staff.IsSlotFree("L1", at(tuesday, 14, 0), now, nil, holidays) {
		t.Error("a public holiday must not be bookable on the staff calendar")
	}
	if !staff.IsSlotFree("L1", at(thursday, 14, 0), now, nil, holidays) {
		t.Error("a non-holiday Thursday stays bookable")
	}

	staffDays := staff.SelectableDays(monday, 7, nil, holidays)
	for _, d := range staffDays {
		if d == "2026-09-01" {
			t.Error("holidays must be excluded from the staff selectable days")
		}
	}
}

func TestFullyBookedDay_IsGlobal(t *testing.T) {
	rules := DefaultRules()

	// Four bookings inside the window, spread over different lawyers.
	existing := []models.Appointment{
		scheduled("L1", at(tuesday, 13, 0)),
		scheduled("L2", at(tuesday, 14, 0)),
		scheduled("L3", at(tuesday, 15, 0)),
		scheduled("L4", at(tuesday, 16, 0)),
	}

	if !rules.IsFullyBooked(tuesday, existing) {
		t.Fatal("four in-window bookings should fully book the day")
	}
	// The limit is office-wide: even a lawyer with no booking that day is
	// locked out.
	if rules.IsSlotFree("L5", at(tuesday, 13, 30), now, existing, nil) {
		t.Error("a fully booked day must be closed for every lawyer")
	}

	days := rules.SelectableDays(tuesday, 7, existing, nil)
	for _, d := range days {
		if d == "2026-09-01" {
			t.Error("fully booked day must be excluded from selectable days")
		}
	}
}

func TestFullyBooked_IgnoresOutOfWindowBookings(t *testing.T) {
	rules := DefaultRules()

	existing := []models.Appointment{
		scheduled("L1", at(tuesday, 13, 0)),
		scheduled("L2", at(tuesday, 14, 0)),
		scheduled("L3", at(tuesday, 15, 0)),
		scheduled("L4", at(tuesday, 9, 0)), // outside 13:00-17:00
	}

	if rules.IsFullyBooked(tuesday, existing) {
		t.Error("bookings outside the daily window must not count toward the limit")
	}
	if !rules.IsSlotFree("L5", at(tuesday, 16, 0), now, existing, nil) {
		t.Error("day with three in-window bookings still has room")
	}
}

func TestSelectableDays(t *testing.T) {
	rules := DefaultRules()

	days := rules.SelectableDays(monday, 7, nil, nil)
	want := []string{"2026-09-01", "2026-09-03"}
	if len(days) != len(want) {
		t.Fatalf("SelectableDays = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("SelectableDays[%d] = %s, want %s", i, days[i], want[i])
		}
	}
}

// Stored appointment dates decode in UTC while client candidates carry their
// own offset; the rules must compare instants and office-local wall clocks,
// never each operand's own zone.
func TestIsSlotFree_MixedLocations(t *testing.T) {
	office := time.FixedZone("UTC+8", 8*60*60)
	rules := DefaultRules()
	rules.Location = office

	// 06:00Z on 2026-09-01 is 14:00 office time, a Tuesday afternoon.
	stored := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	existing := []models.Appointment{scheduled("L1", stored)}

	candidate := time.Date(2026, 9, 1, 14, 0, 0, 0, office)
	if !candidate.Equal(stored) {
		t.Fatal("test times must name the same instant")
	}
	if rules.IsSlotFree("L1", candidate, now, existing, nil) {
		t.Error("a candidate minute-identical in real time to a stored booking must not be free")
	}
	if !rules.IsSlotFree("L1", time.Date(2026, 9, 1, 14, 30, 0, 0, office), now, existing, nil) {
		t.Error("the next half hour stays free")
	}
	if !rules.IsSlotFree("L2", candidate, now, existing, nil) {
		t.Error("another lawyer is not blocked")
	}
}

func TestFullyBooked_MixedLocations(t *testing.T) {
	office := time.FixedZone("UTC+8", 8*60*60)
	rules := DefaultRules()
	rules.Location = office

	// Four bookings at 13:00-16:00 office time, stored as 05:00-08:00 UTC.
	existing := []models.Appointment{
		scheduled("L1", time.Date(2026, 9, 1, 5, 0, 0, 0, time.UTC)),
		scheduled("L2", time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)),
		scheduled("L3", time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC)),
		scheduled("L4", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)),
	}

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, office)
	if !rules.IsFullyBooked(day, existing) {
		t.Fatal("four in-window bookings must close the day regardless of stored zone")
	}
	if rules.IsSlotFree("L5", time.Date(2026, 9, 1, 15, 30, 0, 0, office), now, existing, nil) {
		t.Error("a fully booked day is closed for every lawyer")
	}

	days := rules.SelectableDays(day, 7, existing, nil)
	for _, d := range days {
		if d == "2026-09-01" {
			t.Error("fully booked day must be excluded from selectable days")
		}
	}
}

func TestDayBounds(t *testing.T) {
	office := time.FixedZone("UTC+8", 8*60*60)
	rules := DefaultRules()
	rules.Location = office

	// 20:00Z on Aug 31 is already Sep 1 office time.
	start, end := rules.DayBounds(time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, office)) {
		t.Errorf("day start = %v, want office midnight Sep 1", start)
	}
	if !end.Equal(time.Date(2026, 9, 2, 0, 0, 0, 0, office)) {
		t.Errorf("day end = %v, want office midnight Sep 2", end)
	}
}

func TestOpenSlots(t *testing.T) {
	rules := DefaultRules()
	existing := []models.Appointment{scheduled("L1", at(tuesday, 13, 0))}

	slots := rules.OpenSlots("L1", tuesday, now, existing, nil)
	// 8 half-hour marks in the window, one taken.
	if len(slots) != 7 {
		t.Fatalf("expected 7 open slots, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s.Hour() == 13 && s.Minute() == 0 {
			t.Error("13:00 is booked and must not be offered")
		}
	}
}
