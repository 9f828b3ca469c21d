package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	"trimly/models"
	"trimly/utils"

	"go.uber.org/zap"
)

// Decide applies a stylist/owner ruling to an appointment: confirm it
// (optionally rescheduling), mark it completed, or cancel it. Only the
// assigned stylist or the owner of the servicing salon may decide.
func (l *DefaultLedger) Decide(ctx context.Context, principal models.Principal, appointmentID string, decision Decision) (*models.Appointment, error) {
	if decision.Status != models.StatusConfirmed &&
		decision.Status != models.StatusCompleted &&
		decision.Status != models.StatusCanceled {
		return nil, utils.InvalidArgumentError{Msg: "decision must be confirmed, completed or canceled"}
	}
	if principal.Role != models.RoleOwner && principal.Role != models.RoleStylist {
		return nil, utils.ForbiddenError{Msg: "only the assigned stylist or the salon owner may decide"}
	}

	appt, err := l.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, utils.NotFoundError{Resource: "appointment", ID: appointmentID}
	}

	inScope, err := l.decidesFor(principal, appt)
	if err != nil {
		return nil, err
	}
	if !inScope {
		// Outside the principal's scope the appointment does not exist.
		return nil, utils.NotFoundError{Resource: "appointment", ID: appointmentID}
	}

	newDate := ""
	if decision.Status == models.StatusConfirmed && decision.NewDate != "" && decision.NewDate != appt.Date {
		if _, err := time.Parse(models.DateLayout, decision.NewDate); err != nil {
			return nil, utils.InvalidArgumentError{Msg: "newDate must be formatted YYYY-MM-DD"}
		}
		if err := l.Engine.ValidateSlot(ctx, appt.ServiceID, appt.StylistID, decision.NewDate, appt.StartTime); err != nil {
			return nil, err
		}
		candidate := *appt
		candidate.Date = decision.NewDate
		taken, err := l.Appointments.SlotTaken(&candidate, l.Policy.ConflictScope)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, slotConflict(&candidate)
		}
		newDate = decision.NewDate
	}

	updated, err := l.transition(appt, decision.Status, newDate)
	if err != nil {
		return nil, err
	}

	l.afterDecision(ctx, updated)
	return updated, nil
}

// Cancel retires an appointment on behalf of the booking user, the
// assigned stylist, or the salon owner.
func (l *DefaultLedger) Cancel(ctx context.Context, principal models.Principal, appointmentID string) (*models.Appointment, error) {
	appt, err := l.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, utils.NotFoundError{Resource: "appointment", ID: appointmentID}
	}

	permitted := appt.UserID == principal.ID
	if !permitted && (principal.Role == models.RoleOwner || principal.Role == models.RoleStylist) {
		permitted, err = l.decidesFor(principal, appt)
		if err != nil {
			return nil, err
		}
	}
	if !permitted {
		return nil, utils.ForbiddenError{Msg: "not a party to this appointment"}
	}

	updated, err := l.transition(appt, models.StatusCanceled, "")
	if err != nil {
		return nil, err
	}

	l.notifyCancellation(ctx, principal, updated)
	return updated, nil
}

// transition enforces the state machine and applies the move atomically.
// Losing the race to a concurrent decision reports InvalidTransition, the
// same as observing the terminal state directly. The store's unique index
// backstops rescheduled slots; losing that race reports SlotConflict.
func (l *DefaultLedger) transition(appt *models.Appointment, to models.AppointmentStatus, newDate string) (*models.Appointment, error) {
	if !appt.Status.CanTransition(to) {
		return nil, utils.InvalidTransitionError{From: string(appt.Status), To: string(to)}
	}
	updated, err := l.Appointments.UpdateStatusFrom(appt.ID, appt.Status, to, newDate)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			conflicted := *appt
			if newDate != "" {
				conflicted.Date = newDate
			}
			return nil, slotConflict(&conflicted)
		}
		return nil, err
	}
	if updated == nil {
		return nil, utils.InvalidTransitionError{From: string(appt.Status), To: string(to)}
	}
	return updated, nil
}

// decidesFor reports whether the principal is the assigned stylist or the
// owner of the salon that sells the appointment's service.
func (l *DefaultLedger) decidesFor(principal models.Principal, appt *models.Appointment) (bool, error) {
	if principal.Role == models.RoleStylist {
		return appt.StylistID != nil && *appt.StylistID == principal.ID, nil
	}

	svc, err := l.Services.GetByID(appt.ServiceID)
	if err != nil {
		return false, err
	}
	if svc == nil {
		return false, nil
	}
	salon, err := l.Salons.GetByID(svc.SalonID)
	if err != nil {
		return false, err
	}
	return salon != nil && salon.OwnerID == principal.ID, nil
}

func (l *DefaultLedger) afterDecision(ctx context.Context, appt *models.Appointment) {
	logger := utils.GetLogger()

	var msg string
	switch appt.Status {
	case models.StatusConfirmed:
		msg = fmt.Sprintf("Your appointment on %s at %s was confirmed", appt.Date, appt.StartTime)
	case models.StatusCompleted:
		msg = fmt.Sprintf("Your appointment on %s at %s was completed", appt.Date, appt.StartTime)
	case models.StatusCanceled:
		msg = fmt.Sprintf("Your appointment on %s at %s was declined", appt.Date, appt.StartTime)
	}
	if err := l.Notifier.Push(ctx, appt.UserID, msg); err != nil {
		logger.Warn("failed to notify user of decision",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}

	if appt.Status == models.StatusConfirmed {
		serviceName := ""
		if svc, err := l.Services.GetByID(appt.ServiceID); err == nil && svc != nil {
			serviceName = svc.Name
		}
		if err := l.Reminders.ScheduleReminder(*appt, serviceName); err != nil {
			logger.Warn("failed to schedule appointment reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
}

func (l *DefaultLedger) notifyCancellation(ctx context.Context, canceler models.Principal, appt *models.Appointment) {
	logger := utils.GetLogger()
	msg := fmt.Sprintf("Appointment on %s at %s was canceled", appt.Date, appt.StartTime)

	// Tell the other side.
	if canceler.ID == appt.UserID {
		if appt.StylistID == nil {
			return
		}
		if err := l.Notifier.Push(ctx, *appt.StylistID, msg); err != nil {
			logger.Warn("failed to notify stylist of cancellation",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
		return
	}
	if err := l.Notifier.Push(ctx, appt.UserID, msg); err != nil {
		logger.Warn("failed to notify user of cancellation",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}
