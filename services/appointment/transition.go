package appointment

import "lexaid/models"

// transitions is the appointment status graph. Statuses move only forward:
// pending -> (approved | denied) -> scheduled -> done, with reschedules
// looping scheduled -> scheduled.
var transitions = map[string][]string{
	models.StatusPending:   {models.StatusApproved, models.StatusDenied},
	models.StatusApproved:  {models.StatusScheduled},
	models.StatusScheduled: {models.StatusScheduled, models.StatusDone},
	models.StatusDenied:    {},
	models.StatusDone:      {},
}

// CanTransition reports whether the status graph has an edge from -> to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// checkTransition returns a TransitionError when the edge is absent.
func checkTransition(from, to string) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
