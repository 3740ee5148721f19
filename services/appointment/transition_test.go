package appointment

import (
	"errors"
	"testing"

	"lexaid/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPending, models.StatusApproved, true},
		{models.StatusPending, models.StatusDenied, true},
		{models.StatusPending, models.StatusScheduled, false},
		{models.StatusPending, models.StatusDone, false},
		{models.StatusApproved, models.StatusScheduled, true},
		{models.StatusApproved, models.StatusDenied, false},
		{models.StatusApproved, models.StatusDone, false},
		{models.StatusScheduled, models.StatusScheduled, true}, // reschedule
		{models.StatusScheduled, models.StatusDone, true},
		{models.StatusScheduled, models.StatusApproved, false},
		{models.StatusDenied, models.StatusApproved, false},
		{models.StatusDone, models.StatusScheduled, false},
		{"", models.StatusApproved, false},
		{"bogus", models.StatusDone, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCheckTransition_ErrorCarriesStates(t *testing.T) {
	err := checkTransition(models.StatusDenied, models.StatusApproved)
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if terr.From != models.StatusDenied || terr.To != models.StatusApproved {
		t.Errorf("error states = %q -> %q, want denied -> approved", terr.From, terr.To)
	}

	if err := checkTransition(models.StatusScheduled, models.StatusDone); err != nil {
		t.Errorf("scheduled -> done should be allowed, got %v", err)
	}
}
