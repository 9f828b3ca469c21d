package appointmentRepo

import (
	"context"
	"errors"

	"trimly/models"
)

// ConflictScope controls how far the double-booking check reaches for
// appointments without a stylist assignment.
type ConflictScope string

const (
	// ScopePerStylist only guards the (stylist, date, startTime) triple;
	// unassigned bookings never collide with each other.
	ScopePerStylist ConflictScope = "perStylist"
	// ScopePerSalon additionally makes unassigned bookings of the same
	// service collide on (date, startTime).
	ScopePerSalon ConflictScope = "perSalon"
)

// ErrSlotTaken is returned by Insert when a non-canceled appointment
// already occupies the requested slot.
var ErrSlotTaken = errors.New("slot already booked")

// AppointmentRepository defines data access for the booking ledger.
// Lookups return (nil, nil) when no document matches.
type AppointmentRepository interface {
	// Insert persists a new appointment, atomically failing with
	// ErrSlotTaken when the slot is already held.
	Insert(ctx context.Context, appt *models.Appointment, scope ConflictScope) error
	// SlotTaken reports whether a non-canceled appointment other than the
	// candidate already holds its (stylist, date, startTime) triple under
	// the given scope.
	SlotTaken(appt *models.Appointment, scope ConflictScope) (bool, error)
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// ListByUser returns a user's own appointments.
	ListByUser(userID string) ([]models.Appointment, error)
	// ListByStylist returns the appointments assigned to a stylist.
	ListByStylist(stylistID string) ([]models.Appointment, error)
	// ListByServices returns appointments for any of the given services.
	ListByServices(serviceIDs []string) ([]models.Appointment, error)
	// UpdateStatusFrom atomically moves an appointment from one status to
	// another, optionally rescheduling its date, and returns the updated
	// document. (nil, nil) means no document was in the expected status.
	// Fails with ErrSlotTaken when a reschedule lands on an occupied slot.
	UpdateStatusFrom(id string, from, to models.AppointmentStatus, newDate string) (*models.Appointment, error)
	// CountActiveByServiceDate counts non-canceled appointments of a
	// service on one calendar day.
	CountActiveByServiceDate(serviceID, date string) (int, error)
	// HasActiveForUserService reports whether the user holds any
	// non-canceled appointment for the service.
	HasActiveForUserService(userID, serviceID string) (bool, error)
}
