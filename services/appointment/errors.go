package appointment

import "fmt"

// ValidationError reports a required field missing or malformed. It is
// raised before any write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// TransitionError reports an attempt to move an appointment along an edge
// the status graph does not have.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("appointment cannot move from %q to %q", e.From, e.To)
}

// SlotUnavailableError reports that the requested consultation slot failed
// the availability rules.
type SlotUnavailableError struct {
	Reason string
}

func (e *SlotUnavailableError) Error() string {
	return "slot unavailable: " + e.Reason
}
