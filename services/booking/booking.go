package booking

import (
	"context"
	"time"

	"trimly/config"
	appointmentRepo "trimly/database/repository/appointment"
	salonRepo "trimly/database/repository/salon"
	serviceRepo "trimly/database/repository/service"
	userRepo "trimly/database/repository/user"
	"trimly/models"
	"trimly/services/availability"
)

// CreateInput is the booking request after transport decoding.
type CreateInput struct {
	ServiceID string  `json:"serviceId"`
	StylistID *string `json:"stylistId"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
}

// Decision is a stylist/owner ruling on a pending or confirmed appointment.
type Decision struct {
	Status  models.AppointmentStatus `json:"status"`
	NewDate string                   `json:"newDate,omitempty"`
}

// Ledger owns the appointment state machine and role-scoped visibility.
type Ledger interface {
	Create(ctx context.Context, principal models.Principal, input CreateInput) (*models.Appointment, error)
	List(ctx context.Context, principal models.Principal) ([]models.AppointmentView, error)
	Decide(ctx context.Context, principal models.Principal, appointmentID string, decision Decision) (*models.Appointment, error)
	Cancel(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error)
}

// NotificationSink records a user-facing message for an appointment
// lifecycle event.
type NotificationSink interface {
	Push(ctx context.Context, userID, message string) error
}

// ReminderScheduler queues a reminder to fire shortly before a confirmed
// appointment starts.
type ReminderScheduler interface {
	ScheduleReminder(appt models.Appointment, serviceName string) error
}

// Policy captures the booking behaviors that vary per deployment.
type Policy struct {
	// InitialStatus is the state a fresh appointment starts in: pending
	// (stylist/owner must confirm) or confirmed (auto-accept).
	InitialStatus models.AppointmentStatus
	// StylistApprovalRequired hides appointments from stylists whose salon
	// assignment has not been approved yet.
	StylistApprovalRequired bool
	// ConflictScope controls double-booking checks for unassigned bookings.
	ConflictScope appointmentRepo.ConflictScope
	// ReminderLead is how long before start time the reminder fires.
	ReminderLead time.Duration
}

// PolicyFromConfig reads the policy knobs from application config,
// falling back to the documented defaults on invalid values.
func PolicyFromConfig() Policy {
	p := Policy{
		InitialStatus:           models.StatusPending,
		StylistApprovalRequired: config.AppConfig.StylistApprovalRequired,
		ConflictScope:           appointmentRepo.ScopePerStylist,
		ReminderLead:            time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}
	if models.AppointmentStatus(config.AppConfig.InitialAppointmentStatus) == models.StatusConfirmed {
		p.InitialStatus = models.StatusConfirmed
	}
	if appointmentRepo.ConflictScope(config.AppConfig.SlotConflictScope) == appointmentRepo.ScopePerSalon {
		p.ConflictScope = appointmentRepo.ScopePerSalon
	}
	if p.ReminderLead <= 0 {
		p.ReminderLead = 30 * time.Minute
	}
	return p
}

// DefaultLedger implements Ledger.
type DefaultLedger struct {
	Appointments appointmentRepo.AppointmentRepository
	Services     serviceRepo.ServiceRepository
	Salons       salonRepo.SalonRepository
	Users        userRepo.UserRepository
	Engine       availability.Engine
	Notifier     NotificationSink
	Reminders    ReminderScheduler
	Policy       Policy
}
