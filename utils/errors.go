package utils

import "fmt"

// Domain error taxonomy. Every failure a caller can recover from is one of
// these types; handlers map them to HTTP statuses, services wrap storage
// failures in anything else and let them surface as internal errors.

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidArgumentError signals malformed or missing input.
type InvalidArgumentError struct {
	Msg string
}

func (e InvalidArgumentError) Error() string { return e.Msg }

// ForbiddenError signals that the authenticated principal lacks the role
// or ownership required for the operation.
type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string { return e.Msg }

// SlotConflictError signals a lost booking race: a non-canceled appointment
// already occupies the (stylist, date, startTime) triple.
type SlotConflictError struct {
	StylistID string
	Date      string
	StartTime string
}

func (e SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is already booked", e.Date, e.StartTime)
}

// InvalidTransitionError signals a state-machine violation on an
// appointment status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move appointment from %s to %s", e.From, e.To)
}

// SlotNotOfferedError signals that the requested slot is not part of the
// configured availability for that stylist and date.
type SlotNotOfferedError struct {
	Date      string
	StartTime string
}

func (e SlotNotOfferedError) Error() string {
	return fmt.Sprintf("slot %s %s is not offered", e.Date, e.StartTime)
}
